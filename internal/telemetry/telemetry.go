// Package telemetry joins the host and accelerator samplers into the
// Source the dashboard reads each tick.
package telemetry

import (
	"context"
	"sync"
	"time"

	"codeberg.org/mutker/hwtop/internal/errors"
	"codeberg.org/mutker/hwtop/internal/logger"
)

type service struct {
	host HostSampler
	gpu  GPUSampler
	now  func() time.Time
	log  logger.Logger

	mu   sync.RWMutex
	last Snapshot
}

// NewService returns a Source over host and gpu.
func NewService(host HostSampler, gpu GPUSampler) (Source, error) {
	return newService(host, gpu, time.Now, logger.Default())
}

func newService(host HostSampler, gpu GPUSampler, now func() time.Time, log logger.Logger) (*service, error) {
	errFactory := errors.New()

	if host == nil || gpu == nil {
		return nil, errFactory.New(ErrNilSampler)
	}

	return &service{
		host: host,
		gpu:  gpu,
		now:  now,
		log:  log,
	}, nil
}

// Refresh takes a new sample. Read failures are logged and leave zero
// values in place; only cancellation is returned.
func (s *service) Refresh(ctx context.Context) error {
	errFactory := errors.New()

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationDone, ctx.Err())
	default:
	}

	snap := Snapshot{Timestamp: s.now()}

	hostSample, err := s.host.Sample(ctx)
	if err != nil {
		s.log.Debug().Err(errFactory.Wrap(ErrHostSample, err)).Msg("Partial host sample")
	}
	snap.Host = hostSample

	gpuSample, err := s.gpu.Sample()
	if err != nil {
		s.log.Debug().Err(errFactory.Wrap(ErrGPUSample, err)).Msg("Partial GPU sample")
	}
	snap.GPU = gpuSample

	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()

	return nil
}

func (s *service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.last
}

func (s *service) Inventory(ctx context.Context) (Inventory, error) {
	errFactory := errors.New()

	host, err := s.host.Inventory(ctx)
	if err != nil {
		return Inventory{}, errFactory.Wrap(ErrInventory, err)
	}

	gpu, err := s.gpu.Inventory()
	if err != nil {
		return Inventory{}, errFactory.Wrap(ErrInventory, err)
	}

	return Inventory{Host: host, GPU: gpu}, nil
}

func (s *service) Close() error {
	errFactory := errors.New()

	if err := s.gpu.Close(); err != nil {
		return errFactory.Wrap(ErrServiceClose, err)
	}

	return nil
}

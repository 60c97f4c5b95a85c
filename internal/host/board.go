package host

import (
	"strings"

	"github.com/jaypipes/ghw"
)

// unknown is what ghw reports for an empty DMI field.
const unknown = "unknown"

func ghwBoard() (string, error) {
	info, err := ghw.Baseboard(ghw.WithDisableWarnings())
	if err != nil {
		return "", err
	}

	product := strings.TrimSpace(info.Product)
	if product == "" || strings.EqualFold(product, unknown) {
		return "", nil
	}

	return product, nil
}

package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrUnavailable     ErrorCode = "service_unavailable"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrBindFlags       ErrorCode = "bind_flags_failed"
	ErrInvalidInterval ErrorCode = "invalid_interval"
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"

	// Application errors
	ErrInitApp    ErrorCode = "init_app_failed"
	ErrMainLoop   ErrorCode = "main_loop_failed"
	ErrRefresh    ErrorCode = "refresh_failed"
	ErrEmitFrame  ErrorCode = "emit_frame_failed"
	ErrInventory  ErrorCode = "inventory_failed"
	ErrTerminalIO ErrorCode = "terminal_io_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:        "Internal error occurred",
	ErrInvalidArgument: "Invalid argument provided",
	ErrUnavailable:     "Service unavailable",
	ErrInvalidConfig:   "Invalid configuration",
	ErrBindFlags:       "Failed to bind flags",
	ErrInvalidInterval: "Invalid interval value",
	ErrInvalidLogLevel: "Invalid log level",
	ErrInitFailed:      "Initialization failed",
	ErrShutdownFailed:  "Shutdown failed",
	ErrInitApp:         "Failed to initialize application",
	ErrMainLoop:        "Error in main loop",
	ErrRefresh:         "Failed to refresh hardware sample",
	ErrEmitFrame:       "Failed to write frame",
	ErrInventory:       "Failed to enumerate hardware inventory",
	ErrTerminalIO:      "Failed to control terminal",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}

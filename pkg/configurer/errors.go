package configurer

// Error is a simple error type for configurer errors.
type Error string

// Error implements the error interface.
func (e Error) Error() string { return string(e) }

// Sentinel errors.
var (
	// ErrCouldNotReadConfiguration wraps failures opening or parsing a
	// configuration file.
	ErrCouldNotReadConfiguration = Error("could not read configuration")

	// ErrConfigurationNotFound is returned when no configuration with the
	// requested name exists in the file or the server registry.
	ErrConfigurationNotFound = Error("configuration not found")

	// ErrNotHandler is returned when a configured class is neither a
	// logical nor a protocol handler. The binding is left unchanged.
	ErrNotHandler = Error("not a valid handler")

	// ErrOperationNotSupported is returned by operations this configurer
	// does not implement.
	ErrOperationNotSupported = Error("operation not supported")
)

package classloading

// Error is a simple error type for class-loading errors.
type Error string

// Error implements the error interface.
func (e Error) Error() string { return string(e) }

// Sentinel errors.
var (
	// ErrClassNotFound is returned when no loader knows a class name.
	ErrClassNotFound = Error("class not found")

	// ErrClassExists is returned when registering a name twice.
	ErrClassExists = Error("class already registered")

	// ErrInvalidClass is returned when registering an empty name or a nil
	// factory.
	ErrInvalidClass = Error("invalid class registration")

	// ErrInstantiation is returned when a factory fails or panics.
	ErrInstantiation = Error("cannot instantiate class")
)

package featureflags

// Reason explains where an evaluated value came from.
type Reason string

const (
	// ReasonStatic is returned for types that are never backed by the store.
	ReasonStatic Reason = "STATIC"
	// ReasonResolved is returned when the value was derived from the store.
	ReasonResolved Reason = "RESOLVED"
	// ReasonError is returned when the store lookup failed and the default was used.
	ReasonError Reason = "ERROR"
)

// EvaluationResult is the outcome of a single evaluation.
type EvaluationResult[T any] struct {
	Value     T
	Reason    Reason
	ErrorCode ErrorKind
}

// Metadata identifies a provider.
type Metadata struct {
	Name string
}

package types

import "errors"

// Executor sequencing and backend errors.
var (
	// ErrUnready is returned when an operation is invoked without an open
	// connection or outside a transaction. Always a caller-sequencing bug;
	// never retried by this layer.
	ErrUnready = errors.New("metadata source is not connected or no transaction is active")

	// ErrExecutionFailed is returned when the backend rejects or fails a
	// statement. The backend diagnostic is preserved in the wrapping error.
	ErrExecutionFailed = errors.New("query execution failed")

	// ErrInternal is returned when the store reaches a state it cannot
	// explain, such as an insert that produced no generated identifier.
	ErrInternal = errors.New("internal error")
)

// Input and state errors.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrAlreadyExists      = errors.New("already exists")
	ErrDataLoss           = errors.New("schema version cannot be determined")
	ErrFailedPrecondition = errors.New("failed precondition")
	ErrUnsupported        = errors.New("operation not supported")
)

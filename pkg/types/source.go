package types

// MetadataSource abstracts the SQL engine and its transaction primitives.
// The store only consumes this interface; it never manages connection
// lifecycle and never opens or closes transactions on its own.
//
// ExecuteQuery takes fully rendered SQL text and returns a RecordSet with
// every cell string-encoded; SQL NULL becomes the NullValue sentinel.
type MetadataSource interface {
	// IsConnected reports whether the underlying connection is open.
	IsConnected() bool

	// InTransaction reports whether a transaction is currently active.
	InTransaction() bool

	// ExecuteQuery runs a single statement and returns its result rows.
	// Statements that produce no rows return an empty RecordSet.
	ExecuteQuery(query string) (*RecordSet, error)

	// Begin starts a transaction. Returns an error if one is already
	// active or the source is not connected.
	Begin() error

	// Commit commits the active transaction.
	Commit() error

	// Rollback aborts the active transaction.
	Rollback() error

	// EscapeString renders free text safe for embedding in a single-quoted
	// SQL literal for this source's dialect.
	EscapeString(s string) string
}

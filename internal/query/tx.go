package query

// RunInTransaction begins a transaction on the executor's source, runs
// fn, and commits. Any error from fn rolls the transaction back and is
// returned unchanged.
func (e *Executor) RunInTransaction(fn func() error) error {
	if err := e.src.Begin(); err != nil {
		return err
	}
	if err := fn(); err != nil {
		_ = e.src.Rollback()
		return err
	}
	return e.src.Commit()
}

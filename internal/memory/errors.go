package memory

import "fmt"

// ValidationError reports caller-supplied arguments that violate a documented
// invariant (empty required field, bad status/reference combination). The
// operation that returns it has had no side effect.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an operation that targeted a record which does not
// exist, for operations where absence is an error rather than a normal
// outcome. Delete and search signal absence as false / empty results instead.
type NotFoundError struct {
	Collection Collection
	ID         string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no record %q in %s", e.ID, e.Collection)
}

// CorruptStoreError reports a backing file that exists but cannot be parsed
// into a valid Memory. It is fatal to startup unless the caller opts into
// discarding the file (Config.DiscardCorrupt).
type CorruptStoreError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("corrupt memory file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *CorruptStoreError) Unwrap() error { return e.Err }

// PersistenceError reports a failed durable write. The previously persisted
// file is untouched and the in-memory state of the store still reflects the
// last committed version: the mutation that triggered the write did not
// happen as far as the caller is concerned.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *PersistenceError) Unwrap() error { return e.Err }

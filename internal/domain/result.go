package domain

// Void is the value of a Result that carries no payload.
type Void struct{}

// Result is the outcome of a repository workflow: either a value or a
// failure. The zero Result is a success holding the zero value.
type Result[T any] struct {
	value T
	err   *Error
}

// Ok returns a successful Result.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Done returns a successful Result without a payload.
func Done() Result[Void] {
	return Result[Void]{}
}

// Fail returns a failed Result. Errors that are not *Error are treated as
// storage failures.
func Fail[T any](err error) Result[T] {
	var e *Error
	switch v := err.(type) {
	case *Error:
		e = v
		if e == nil {
			e = StorageFailure(nil)
		}
	case nil:
		e = StorageFailure(nil)
	default:
		e = StorageFailure(err)
	}
	return Result[T]{err: e}
}

// IsOK reports whether the workflow succeeded.
func (r Result[T]) IsOK() bool { return r.err == nil }

// Value returns the payload; it is the zero value on failure.
func (r Result[T]) Value() T { return r.value }

// Err returns the failure or nil.
func (r Result[T]) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// Kind returns the failure kind, or 0 on success.
func (r Result[T]) Kind() Kind {
	if r.err == nil {
		return 0
	}
	return r.err.Kind
}

// Unwrap converts the Result into the usual (value, error) pair.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.Err()
}

package domain

import "errors"

// Kind classifies a repository failure.
type Kind int

const (
	KindStorageFailure Kind = iota + 1
	KindDuplicateEmail
	KindInvalidCredentials
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindStorageFailure:
		return "StorageFailure"
	case KindDuplicateEmail:
		return "DuplicateEmail"
	case KindInvalidCredentials:
		return "InvalidCredentials"
	case KindNotFound:
		return "NotFound"
	}
	return "Unknown"
}

// Error is the failure carried by a Result. Err holds the underlying store
// error, if any, for diagnostics.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// holds for every not-found failure regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	// ErrDuplicateEmail indicates that a user with the same email exists.
	ErrDuplicateEmail = &Error{Kind: KindDuplicateEmail, Msg: "email already registered"}
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Msg: "invalid username or password"}
	// ErrNotFound indicates that the requested record does not exist.
	ErrNotFound = &Error{Kind: KindNotFound, Msg: "not found"}
	// ErrStorageFailure matches every failure raised by the record store.
	ErrStorageFailure = &Error{Kind: KindStorageFailure, Msg: "storage failure"}
)

// StorageFailure wraps an unexpected store error.
func StorageFailure(err error) *Error {
	return &Error{Kind: KindStorageFailure, Msg: "storage failure", Err: err}
}

// KindOf returns the kind of err, or KindStorageFailure for errors that did
// not come from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorageFailure
}

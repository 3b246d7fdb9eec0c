// Package domain contains the core business entities and the ports the
// record store adapters implement.
package domain

import "context"

// User is a registered account. Password holds the digest produced by the
// password hasher, never the plaintext.
type User struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"-"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
}

// FullName is the first/last name projection of a user.
type FullName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UserStore is the port for user persistence.
//
// Finders return (nil, nil) when no row matches. InsertUser returns an error
// matching ErrDuplicateEmail when the email is already on file.
type UserStore interface {
	InsertUser(ctx context.Context, u *User) (int64, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByCredentials(ctx context.Context, username, digest string) (*User, error)
	FindUserByID(ctx context.Context, id int64) (*User, error)
	FindUserByUsername(ctx context.Context, username string) (*User, error)
	FirstNameByID(ctx context.Context, id int64) (string, error)
	LastNameByID(ctx context.Context, id int64) (string, error)
	DeleteUser(ctx context.Context, id int64) error
}

// RecordStore bundles the three stores backed by one storage engine.
type RecordStore interface {
	UserStore
	WeightLogStore
	ImageStore
	Close() error
}

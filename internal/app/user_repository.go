// Package app holds the repository workflows that screens and the HTTP
// adapter call into.
package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"lightweight/internal/domain"
)

// PasswordHasher turns a plaintext password into the digest stored on a user.
type PasswordHasher interface {
	Hash(plaintext string) string
}

// UserRepository runs the account, weight-log and profile-image workflows
// over the record store. Every method reports its outcome as a
// domain.Result; store errors never escape as raw errors.
type UserRepository struct {
	users  domain.UserStore
	logs   domain.WeightLogStore
	images domain.ImageStore
	hasher PasswordHasher
	log    *zap.Logger
}

// NewUserRepository wires the workflows to the given stores.
func NewUserRepository(users domain.UserStore, logs domain.WeightLogStore, images domain.ImageStore, hasher PasswordHasher, log *zap.Logger) *UserRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserRepository{
		users:  users,
		logs:   logs,
		images: images,
		hasher: hasher,
		log:    log.Named("repository"),
	}
}

// Register stores u unless its email is already on file. u.Password must
// already hold a digest. The returned user carries the generated id.
func (r *UserRepository) Register(ctx context.Context, u domain.User) domain.Result[domain.User] {
	existing, err := r.users.FindUserByEmail(ctx, u.Email)
	if err != nil {
		return domain.Fail[domain.User](r.storageFailure("register", err))
	}
	if existing != nil {
		r.log.Warn("registration rejected", zap.String("reason", domain.KindDuplicateEmail.String()))
		return domain.Fail[domain.User](domain.ErrDuplicateEmail)
	}

	u.ID = 0
	id, err := r.users.InsertUser(ctx, &u)
	if errors.Is(err, domain.ErrDuplicateEmail) {
		// Lost the race against a concurrent registration; the unique index
		// caught it.
		r.log.Warn("registration rejected", zap.String("reason", domain.KindDuplicateEmail.String()))
		return domain.Fail[domain.User](domain.ErrDuplicateEmail)
	}
	if err != nil {
		return domain.Fail[domain.User](r.storageFailure("register", err))
	}
	u.ID = id

	r.log.Info("user registered", zap.Int64("user_id", id))
	return domain.Ok(u)
}

// Login returns the user whose username and password digest both match.
// An unknown username and a wrong password fail identically.
func (r *UserRepository) Login(ctx context.Context, username, password string) domain.Result[domain.User] {
	digest := r.hasher.Hash(password)
	if digest == "" {
		// Never match on an empty digest.
		r.log.Error("password hasher returned an empty digest")
		return domain.Fail[domain.User](domain.ErrInvalidCredentials)
	}

	u, err := r.users.FindUserByCredentials(ctx, username, digest)
	if err != nil {
		return domain.Fail[domain.User](r.storageFailure("login", err))
	}
	if u == nil {
		r.log.Info("login rejected")
		return domain.Fail[domain.User](domain.ErrInvalidCredentials)
	}
	return domain.Ok(*u)
}

// LoginByEmail returns the user registered under email. It backs SSO logins
// where the identity provider has already authenticated the caller.
func (r *UserRepository) LoginByEmail(ctx context.Context, email string) domain.Result[domain.User] {
	u, err := r.users.FindUserByEmail(ctx, email)
	if err != nil {
		return domain.Fail[domain.User](r.storageFailure("login by email", err))
	}
	if u == nil {
		return domain.Fail[domain.User](domain.ErrInvalidCredentials)
	}
	return domain.Ok(*u)
}

// GetUser returns the user with the given id.
func (r *UserRepository) GetUser(ctx context.Context, userID int64) domain.Result[domain.User] {
	u, err := r.users.FindUserByID(ctx, userID)
	if err != nil {
		return domain.Fail[domain.User](r.storageFailure("get user", err))
	}
	if u == nil {
		return domain.Fail[domain.User](domain.ErrNotFound)
	}
	return domain.Ok(*u)
}

// GetUserNames returns the first and last name of the user.
func (r *UserRepository) GetUserNames(ctx context.Context, userID int64) domain.Result[domain.FullName] {
	first, err := r.users.FirstNameByID(ctx, userID)
	if err != nil {
		return domain.Fail[domain.FullName](r.classify("get first name", err))
	}
	last, err := r.users.LastNameByID(ctx, userID)
	if err != nil {
		return domain.Fail[domain.FullName](r.classify("get last name", err))
	}
	return domain.Ok(domain.FullName{FirstName: first, LastName: last})
}

// DeleteUser removes the user. The store cascades the delete to the user's
// weight logs and profile images.
func (r *UserRepository) DeleteUser(ctx context.Context, userID int64) domain.Result[domain.Void] {
	if err := r.users.DeleteUser(ctx, userID); err != nil {
		return domain.Fail[domain.Void](r.storageFailure("delete user", err))
	}
	r.log.Info("user deleted", zap.Int64("user_id", userID))
	return domain.Done()
}

func (r *UserRepository) classify(op string, err error) *domain.Error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	return r.storageFailure(op, err)
}

func (r *UserRepository) storageFailure(op string, err error) *domain.Error {
	r.log.Error("record store failure", zap.String("op", op), zap.Error(err))
	return domain.StorageFailure(err)
}

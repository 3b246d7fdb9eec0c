package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lightweight/internal/domain"
)

const userColumns = "id, email, username, password_digest, first_name, last_name, date_of_birth"

// InsertUser inserts a user and returns its generated id.
func (s *Store) InsertUser(ctx context.Context, u *domain.User) (int64, error) {
	var id int64
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(
		"INSERT INTO users (email, username, password_digest, first_name, last_name, date_of_birth) VALUES (?, ?, ?, ?, ?, ?) RETURNING id"),
		u.Email, u.Username, u.Password, u.FirstName, u.LastName, u.DateOfBirth,
	).Scan(&id)
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("insert user: %w", domain.ErrDuplicateEmail)
	}
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// FindUserByEmail retrieves a user by email.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUser(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
}

// FindUserByCredentials retrieves the first user matching username and
// password digest.
func (s *Store) FindUserByCredentials(ctx context.Context, username, digest string) (*domain.User, error) {
	return s.getUser(ctx, "SELECT "+userColumns+" FROM users WHERE username = ? AND password_digest = ? ORDER BY id LIMIT 1", username, digest)
}

// FindUserByID retrieves a user by id.
func (s *Store) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
}

// FindUserByUsername retrieves the first user with the given username.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getUser(ctx, "SELECT "+userColumns+" FROM users WHERE username = ? ORDER BY id LIMIT 1", username)
}

// FirstNameByID returns the user's first name.
func (s *Store) FirstNameByID(ctx context.Context, id int64) (string, error) {
	return s.getName(ctx, "SELECT first_name FROM users WHERE id = ?", id)
}

// LastNameByID returns the user's last name.
func (s *Store) LastNameByID(ctx context.Context, id int64) (string, error) {
	return s.getName(ctx, "SELECT last_name FROM users WHERE id = ?", id)
}

// DeleteUser deletes a user; weight logs and images go with it.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM users WHERE id = ?"), id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *Store) getUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return row.toDomain(), nil
}

func (s *Store) getName(ctx context.Context, query string, id int64) (string, error) {
	var name string
	err := s.db.GetContext(ctx, &name, s.db.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get name: %w", err)
	}
	return name, nil
}

// Package memory implements an in-memory record store for development and
// testing.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"lightweight/internal/domain"
)

// ErrForeignKey mirrors the SQL stores rejecting rows for unknown users.
var ErrForeignKey = errors.New("foreign key constraint failed")

// DB implements an in-memory record store. All access is serialized by one
// mutex, so it behaves as a single-writer store.
type DB struct {
	mu         sync.Mutex
	users      []domain.User
	weightLogs []domain.WeightLog
	images     []domain.ProfileImage

	userIDCounter   int64
	weightIDCounter int64
	imageIDCounter  int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.RecordStore = (*DB)(nil)

// Close is a no-op.
func (db *DB) Close() error { return nil }

// --- UserStore ---

// InsertUser adds a user, rejecting a duplicate email.
func (db *DB) InsertUser(ctx context.Context, u *domain.User) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.users {
		if existing.Email == u.Email {
			return 0, fmt.Errorf("insert user: %w", domain.ErrDuplicateEmail)
		}
	}

	db.userIDCounter++
	row := *u
	row.ID = db.userIDCounter
	db.users = append(db.users, row)
	return row.ID, nil
}

// FindUserByEmail returns the user with the given email.
func (db *DB) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return db.findUser(func(u domain.User) bool { return u.Email == email }), nil
}

// FindUserByCredentials returns the first user matching both username and
// password digest.
func (db *DB) FindUserByCredentials(ctx context.Context, username, digest string) (*domain.User, error) {
	return db.findUser(func(u domain.User) bool {
		return u.Username == username && u.Password == digest
	}), nil
}

// FindUserByID returns the user with the given id.
func (db *DB) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return db.findUser(func(u domain.User) bool { return u.ID == id }), nil
}

// FindUserByUsername returns the first user with the given username.
func (db *DB) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return db.findUser(func(u domain.User) bool { return u.Username == username }), nil
}

// FirstNameByID returns the user's first name.
func (db *DB) FirstNameByID(ctx context.Context, id int64) (string, error) {
	u := db.findUser(func(u domain.User) bool { return u.ID == id })
	if u == nil {
		return "", domain.ErrNotFound
	}
	return u.FirstName, nil
}

// LastNameByID returns the user's last name.
func (db *DB) LastNameByID(ctx context.Context, id int64) (string, error) {
	u := db.findUser(func(u domain.User) bool { return u.ID == id })
	if u == nil {
		return "", domain.ErrNotFound
	}
	return u.LastName, nil
}

// DeleteUser removes the user and cascades to its weight logs and images.
func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.users = deleteWhere(db.users, func(u domain.User) bool { return u.ID == id })
	db.weightLogs = deleteWhere(db.weightLogs, func(l domain.WeightLog) bool { return l.UserID == id })
	db.images = deleteWhere(db.images, func(img domain.ProfileImage) bool { return img.UserID == id })
	return nil
}

func (db *DB) findUser(match func(domain.User) bool) *domain.User {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if match(u) {
			found := u
			return &found
		}
	}
	return nil
}

// callers must hold db.mu.
func (db *DB) userExists(id int64) bool {
	for _, u := range db.users {
		if u.ID == id {
			return true
		}
	}
	return false
}

// --- WeightLogStore ---

// InsertWeightLog adds a weight log for an existing user.
func (db *DB) InsertWeightLog(ctx context.Context, l *domain.WeightLog) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !db.userExists(l.UserID) {
		return 0, fmt.Errorf("insert weight log: %w", ErrForeignKey)
	}

	db.weightIDCounter++
	row := *l
	row.ID = db.weightIDCounter
	db.weightLogs = append(db.weightLogs, row)
	return row.ID, nil
}

// DeleteWeightLog deletes a weight log by id; a missing id is not an error.
func (db *DB) DeleteWeightLog(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.weightLogs = deleteWhere(db.weightLogs, func(l domain.WeightLog) bool { return l.ID == id })
	return nil
}

// ListWeightLogs returns the user's weight logs in insertion order.
func (db *DB) ListWeightLogs(ctx context.Context, userID int64) ([]domain.WeightLog, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []domain.WeightLog{}
	for _, l := range db.weightLogs {
		if l.UserID == userID {
			result = append(result, l)
		}
	}
	return result, nil
}

// ListWeightLogsByDate returns the user's weight logs, oldest date first.
func (db *DB) ListWeightLogsByDate(ctx context.Context, userID int64) ([]domain.WeightLog, error) {
	result, _ := db.ListWeightLogs(ctx, userID)
	sort.SliceStable(result, func(i, j int) bool {
		if c := result[i].Date.Compare(result[j].Date); c != 0 {
			return c < 0
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// --- ImageStore ---

// InsertImage adds a profile image for an existing user.
func (db *DB) InsertImage(ctx context.Context, img *domain.ProfileImage) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.insertImageLocked(img.UserID, img.PictureRef)
}

// FindImageByUserID returns the user's first image.
func (db *DB) FindImageByUserID(ctx context.Context, userID int64) (*domain.ProfileImage, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, img := range db.images {
		if img.UserID == userID {
			found := img
			return &found, nil
		}
	}
	return nil, nil
}

// UpdateImage replaces the image row with the same id. Unknown ids are
// ignored.
func (db *DB) UpdateImage(ctx context.Context, img *domain.ProfileImage) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.images {
		if db.images[i].ID == img.ID {
			if !db.userExists(img.UserID) {
				return fmt.Errorf("update image: %w", ErrForeignKey)
			}
			db.images[i] = *img
			return nil
		}
	}
	return nil
}

// DeleteImagesByUserID removes every image of the user.
func (db *DB) DeleteImagesByUserID(ctx context.Context, userID int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.images = deleteWhere(db.images, func(img domain.ProfileImage) bool { return img.UserID == userID })
	return nil
}

// ReplaceImage swaps the user's images for a single new one under one lock.
func (db *DB) ReplaceImage(ctx context.Context, userID int64, ref string) (*domain.ProfileImage, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !db.userExists(userID) {
		return nil, fmt.Errorf("replace image: %w", ErrForeignKey)
	}
	db.images = deleteWhere(db.images, func(img domain.ProfileImage) bool { return img.UserID == userID })
	id, err := db.insertImageLocked(userID, ref)
	if err != nil {
		return nil, err
	}
	return &domain.ProfileImage{ID: id, UserID: userID, PictureRef: ref}, nil
}

func (db *DB) insertImageLocked(userID int64, ref string) (int64, error) {
	if !db.userExists(userID) {
		return 0, fmt.Errorf("insert image: %w", ErrForeignKey)
	}
	db.imageIDCounter++
	db.images = append(db.images, domain.ProfileImage{ID: db.imageIDCounter, UserID: userID, PictureRef: ref})
	return db.imageIDCounter, nil
}

func deleteWhere[T any](rows []T, match func(T) bool) []T {
	kept := rows[:0]
	for _, r := range rows {
		if !match(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

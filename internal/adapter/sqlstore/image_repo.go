package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lightweight/internal/domain"
)

// InsertImage inserts a profile image and returns its generated id.
func (s *Store) InsertImage(ctx context.Context, img *domain.ProfileImage) (int64, error) {
	var id int64
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(
		"INSERT INTO profile_images (user_id, picture_ref) VALUES (?, ?) RETURNING id"),
		img.UserID, img.PictureRef,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert image: %w", err)
	}
	return id, nil
}

// FindImageByUserID returns the user's first profile image.
func (s *Store) FindImageByUserID(ctx context.Context, userID int64) (*domain.ProfileImage, error) {
	var row imageRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(
		"SELECT id, user_id, picture_ref FROM profile_images WHERE user_id = ? ORDER BY id LIMIT 1"), userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find image: %w", err)
	}
	return row.toDomain(), nil
}

// UpdateImage overwrites the image row with the same id.
func (s *Store) UpdateImage(ctx context.Context, img *domain.ProfileImage) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(
		"UPDATE profile_images SET user_id = ?, picture_ref = ? WHERE id = ?"),
		img.UserID, img.PictureRef, img.ID)
	if err != nil {
		return fmt.Errorf("update image: %w", err)
	}
	return nil
}

// DeleteImagesByUserID deletes every profile image of the user.
func (s *Store) DeleteImagesByUserID(ctx context.Context, userID int64) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM profile_images WHERE user_id = ?"), userID); err != nil {
		return fmt.Errorf("delete images: %w", err)
	}
	return nil
}

// ReplaceImage deletes the user's images and inserts ref in one transaction.
func (s *Store) ReplaceImage(ctx context.Context, userID int64, ref string) (*domain.ProfileImage, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("replace image: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM profile_images WHERE user_id = ?"), userID); err != nil {
		return nil, fmt.Errorf("replace image: delete: %w", err)
	}

	img := &domain.ProfileImage{UserID: userID, PictureRef: ref}
	err = tx.QueryRowxContext(ctx, tx.Rebind(
		"INSERT INTO profile_images (user_id, picture_ref) VALUES (?, ?) RETURNING id"),
		userID, ref,
	).Scan(&img.ID)
	if err != nil {
		return nil, fmt.Errorf("replace image: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("replace image: commit: %w", err)
	}
	return img, nil
}

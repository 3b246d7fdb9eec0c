package domain

import "context"

// ProfileImage associates a picture reference (URL or URI) with a user.
type ProfileImage struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId"`
	PictureRef string `json:"pictureRef"`
}

// ImageStore is the port for profile image persistence.
type ImageStore interface {
	InsertImage(ctx context.Context, img *ProfileImage) (int64, error)
	// FindImageByUserID returns the first image for the user or (nil, nil).
	FindImageByUserID(ctx context.Context, userID int64) (*ProfileImage, error)
	UpdateImage(ctx context.Context, img *ProfileImage) error
	DeleteImagesByUserID(ctx context.Context, userID int64) error
	// ReplaceImage removes every image of the user and inserts ref in one
	// transaction.
	ReplaceImage(ctx context.Context, userID int64, ref string) (*ProfileImage, error)
}

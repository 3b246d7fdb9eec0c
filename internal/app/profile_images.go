package app

import (
	"context"

	"go.uber.org/zap"

	"lightweight/internal/domain"
)

// GetImageByUserID returns the user's profile image, or nil when the user
// has none.
func (r *UserRepository) GetImageByUserID(ctx context.Context, userID int64) domain.Result[*domain.ProfileImage] {
	img, err := r.images.FindImageByUserID(ctx, userID)
	if err != nil {
		return domain.Fail[*domain.ProfileImage](r.storageFailure("get image", err))
	}
	return domain.Ok(img)
}

// UpdateImage deletes every existing image of img.UserID. It does not insert
// img; callers follow up with InsertImage, or use SetProfileImage instead.
func (r *UserRepository) UpdateImage(ctx context.Context, img domain.ProfileImage) domain.Result[domain.Void] {
	if err := r.images.DeleteImagesByUserID(ctx, img.UserID); err != nil {
		return domain.Fail[domain.Void](r.storageFailure("update image", err))
	}
	return domain.Done()
}

// InsertImage stores img without checking for an existing image.
func (r *UserRepository) InsertImage(ctx context.Context, img domain.ProfileImage) domain.Result[domain.ProfileImage] {
	img.ID = 0
	id, err := r.images.InsertImage(ctx, &img)
	if err != nil {
		return domain.Fail[domain.ProfileImage](r.storageFailure("insert image", err))
	}
	img.ID = id
	return domain.Ok(img)
}

// SetProfileImage replaces the user's profile image with ref in a single
// store transaction, leaving exactly one image.
func (r *UserRepository) SetProfileImage(ctx context.Context, userID int64, ref string) domain.Result[domain.ProfileImage] {
	img, err := r.images.ReplaceImage(ctx, userID, ref)
	if err != nil {
		return domain.Fail[domain.ProfileImage](r.storageFailure("set profile image", err))
	}
	r.log.Debug("profile image replaced", zap.Int64("user_id", userID), zap.Int64("image_id", img.ID))
	return domain.Ok(*img)
}

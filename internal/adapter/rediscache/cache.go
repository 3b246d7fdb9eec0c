// Package rediscache puts a redis read-through cache in front of profile
// image lookups.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"lightweight/internal/domain"
)

const (
	// noImage is cached for users without a profile image.
	noImage = "-"
	// invalidated marks a key whose user's image just changed. Reads treat
	// it as a miss and never overwrite it.
	invalidated = "!"
	// tombstoneTTL bounds how long reads bypass the cache after a change.
	tombstoneTTL = 30 * time.Second
)

// Store decorates a record store. FindImageByUserID is served from redis
// when possible. Every write that can change a user's image replaces that
// user's key with a short-lived tombstone, and lookups only fill a key that
// is absent, so a lookup that raced a write cannot cache what it read
// before the write. Redis errors never fail a call: the cache is bypassed
// and the error logged.
type Store struct {
	domain.RecordStore
	client       Client
	ttl          time.Duration
	tombstoneTTL time.Duration
	log          *zap.Logger
}

var _ domain.RecordStore = (*Store)(nil)

// New wraps inner. Entries expire after ttl.
func New(inner domain.RecordStore, client Client, ttl time.Duration, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	tomb := tombstoneTTL
	if ttl > 0 && ttl < tomb {
		tomb = ttl
	}
	return &Store{
		RecordStore:  inner,
		client:       client,
		ttl:          ttl,
		tombstoneTTL: tomb,
		log:          log.Named("rediscache"),
	}
}

func key(userID int64) string {
	return "profile_image:" + strconv.FormatInt(userID, 10)
}

// FindImageByUserID returns the cached image, loading it from the wrapped
// store on a miss.
func (s *Store) FindImageByUserID(ctx context.Context, userID int64) (*domain.ProfileImage, error) {
	k := key(userID)

	fill := true
	v, err := s.client.Get(ctx, k)
	switch {
	case err == nil && v == invalidated:
		fill = false
	case err == nil && v == noImage:
		return nil, nil
	case err == nil:
		var img domain.ProfileImage
		if jerr := json.Unmarshal([]byte(v), &img); jerr == nil {
			return &img, nil
		}
		s.log.Warn("dropping unreadable cache entry", zap.String("key", k))
		s.forget(ctx, userID)
		fill = false
	case !errors.Is(err, redis.Nil):
		s.log.Warn("cache read failed", zap.String("key", k), zap.Error(err))
	}

	img, err := s.RecordStore.FindImageByUserID(ctx, userID)
	if err != nil || !fill {
		return img, err
	}

	v = noImage
	if img != nil {
		b, err := json.Marshal(img)
		if err != nil {
			return img, nil
		}
		v = string(b)
	}
	ok, err := s.client.SetNX(ctx, k, v, s.ttl)
	switch {
	case err != nil:
		s.log.Warn("cache write failed", zap.String("key", k), zap.Error(err))
	case !ok:
		s.log.Debug("cache fill skipped, key changed meanwhile", zap.String("key", k))
	}
	return img, nil
}

func (s *Store) InsertImage(ctx context.Context, img *domain.ProfileImage) (int64, error) {
	defer s.forget(ctx, img.UserID)
	return s.RecordStore.InsertImage(ctx, img)
}

// UpdateImage invalidates the key of img.UserID. An update that moves an
// image to another user leaves the previous owner's entry to expire.
func (s *Store) UpdateImage(ctx context.Context, img *domain.ProfileImage) error {
	defer s.forget(ctx, img.UserID)
	return s.RecordStore.UpdateImage(ctx, img)
}

func (s *Store) DeleteImagesByUserID(ctx context.Context, userID int64) error {
	defer s.forget(ctx, userID)
	return s.RecordStore.DeleteImagesByUserID(ctx, userID)
}

func (s *Store) ReplaceImage(ctx context.Context, userID int64, ref string) (*domain.ProfileImage, error) {
	defer s.forget(ctx, userID)
	return s.RecordStore.ReplaceImage(ctx, userID, ref)
}

// DeleteUser also invalidates the user's key, since the delete cascades to
// images.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	defer s.forget(ctx, id)
	return s.RecordStore.DeleteUser(ctx, id)
}

// forget overwrites the user's key with a tombstone. It runs after the
// wrapped write so any lookup that loaded before the write finds the
// tombstone when it tries to fill.
func (s *Store) forget(ctx context.Context, userID int64) {
	if err := s.client.Set(ctx, key(userID), invalidated, s.tombstoneTTL); err != nil {
		s.log.Warn("cache invalidation failed", zap.Int64("user_id", userID), zap.Error(err))
	}
}

package app_test

import (
	"context"

	"lightweight/internal/domain"
)

type mockUserStore struct {
	insertFn     func(ctx context.Context, u *domain.User) (int64, error)
	byEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	byCredsFn    func(ctx context.Context, username, digest string) (*domain.User, error)
	byIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	byUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	firstNameFn  func(ctx context.Context, id int64) (string, error)
	lastNameFn   func(ctx context.Context, id int64) (string, error)
	deleteFn     func(ctx context.Context, id int64) error
	credsCalls   int
}

func (m *mockUserStore) InsertUser(ctx context.Context, u *domain.User) (int64, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, u)
	}
	return 1, nil
}

func (m *mockUserStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.byEmailFn != nil {
		return m.byEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserStore) FindUserByCredentials(ctx context.Context, username, digest string) (*domain.User, error) {
	m.credsCalls++
	if m.byCredsFn != nil {
		return m.byCredsFn(ctx, username, digest)
	}
	return nil, nil
}

func (m *mockUserStore) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.byIDFn != nil {
		return m.byIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserStore) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.byUsernameFn != nil {
		return m.byUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserStore) FirstNameByID(ctx context.Context, id int64) (string, error) {
	if m.firstNameFn != nil {
		return m.firstNameFn(ctx, id)
	}
	return "", domain.ErrNotFound
}

func (m *mockUserStore) LastNameByID(ctx context.Context, id int64) (string, error) {
	if m.lastNameFn != nil {
		return m.lastNameFn(ctx, id)
	}
	return "", domain.ErrNotFound
}

func (m *mockUserStore) DeleteUser(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockWeightLogStore struct {
	insertFn func(ctx context.Context, l *domain.WeightLog) (int64, error)
	deleteFn func(ctx context.Context, id int64) error
	listFn   func(ctx context.Context, userID int64) ([]domain.WeightLog, error)
}

func (m *mockWeightLogStore) InsertWeightLog(ctx context.Context, l *domain.WeightLog) (int64, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, l)
	}
	return 1, nil
}

func (m *mockWeightLogStore) DeleteWeightLog(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockWeightLogStore) ListWeightLogs(ctx context.Context, userID int64) ([]domain.WeightLog, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockWeightLogStore) ListWeightLogsByDate(ctx context.Context, userID int64) ([]domain.WeightLog, error) {
	return m.ListWeightLogs(ctx, userID)
}

type mockImageStore struct {
	insertFn  func(ctx context.Context, img *domain.ProfileImage) (int64, error)
	findFn    func(ctx context.Context, userID int64) (*domain.ProfileImage, error)
	updateFn  func(ctx context.Context, img *domain.ProfileImage) error
	deleteFn  func(ctx context.Context, userID int64) error
	replaceFn func(ctx context.Context, userID int64, ref string) (*domain.ProfileImage, error)
}

func (m *mockImageStore) InsertImage(ctx context.Context, img *domain.ProfileImage) (int64, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, img)
	}
	return 1, nil
}

func (m *mockImageStore) FindImageByUserID(ctx context.Context, userID int64) (*domain.ProfileImage, error) {
	if m.findFn != nil {
		return m.findFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockImageStore) UpdateImage(ctx context.Context, img *domain.ProfileImage) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, img)
	}
	return nil
}

func (m *mockImageStore) DeleteImagesByUserID(ctx context.Context, userID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID)
	}
	return nil
}

func (m *mockImageStore) ReplaceImage(ctx context.Context, userID int64, ref string) (*domain.ProfileImage, error) {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, userID, ref)
	}
	return &domain.ProfileImage{ID: 1, UserID: userID, PictureRef: ref}, nil
}

type stubHasher string

func (h stubHasher) Hash(string) string { return string(h) }

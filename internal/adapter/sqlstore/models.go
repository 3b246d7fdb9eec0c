package sqlstore

import "lightweight/internal/domain"

type userRow struct {
	ID             int64  `db:"id"`
	Email          string `db:"email"`
	Username       string `db:"username"`
	PasswordDigest string `db:"password_digest"`
	FirstName      string `db:"first_name"`
	LastName       string `db:"last_name"`
	DateOfBirth    string `db:"date_of_birth"`
}

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:          r.ID,
		Email:       r.Email,
		Username:    r.Username,
		Password:    r.PasswordDigest,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		DateOfBirth: r.DateOfBirth,
	}
}

type weightLogRow struct {
	ID     int64  `db:"id"`
	UserID int64  `db:"user_id"`
	Weight string `db:"weight"`
	Date   string `db:"date"`
}

func (r *weightLogRow) toDomain() (domain.WeightLog, error) {
	d, err := domain.ParseStoredDate(r.Date)
	if err != nil {
		return domain.WeightLog{}, err
	}
	return domain.WeightLog{ID: r.ID, UserID: r.UserID, Weight: r.Weight, Date: d}, nil
}

type imageRow struct {
	ID         int64  `db:"id"`
	UserID     int64  `db:"user_id"`
	PictureRef string `db:"picture_ref"`
}

func (r *imageRow) toDomain() *domain.ProfileImage {
	return &domain.ProfileImage{ID: r.ID, UserID: r.UserID, PictureRef: r.PictureRef}
}

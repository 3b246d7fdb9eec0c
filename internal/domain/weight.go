package domain

import "context"

// WeightLog is a single body-weight measurement. Weight keeps the string form
// the user entered (e.g. "170").
type WeightLog struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
	Weight string `json:"weight"`
	Date   Date   `json:"date"`
}

// WeightLogStore is the port for weight log persistence.
type WeightLogStore interface {
	InsertWeightLog(ctx context.Context, l *WeightLog) (int64, error)
	DeleteWeightLog(ctx context.Context, id int64) error
	// ListWeightLogs returns the user's logs in no particular order.
	ListWeightLogs(ctx context.Context, userID int64) ([]WeightLog, error)
	// ListWeightLogsByDate returns the user's logs in chronological order,
	// ties broken by id.
	ListWeightLogsByDate(ctx context.Context, userID int64) ([]WeightLog, error)
}

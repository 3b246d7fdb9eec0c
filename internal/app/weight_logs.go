package app

import (
	"context"

	"go.uber.org/zap"

	"lightweight/internal/domain"
)

// GetWeightLogs returns the user's weight logs, oldest date first.
func (r *UserRepository) GetWeightLogs(ctx context.Context, userID int64) domain.Result[[]domain.WeightLog] {
	logs, err := r.logs.ListWeightLogsByDate(ctx, userID)
	if err != nil {
		return domain.Fail[[]domain.WeightLog](r.storageFailure("get weight logs", err))
	}
	if logs == nil {
		logs = []domain.WeightLog{}
	}
	return domain.Ok(logs)
}

// InsertWeightLog records a measurement for the user. Inputs are stored as
// given; the store assigns the id.
func (r *UserRepository) InsertWeightLog(ctx context.Context, userID int64, weight string, date domain.Date) domain.Result[domain.WeightLog] {
	l := domain.WeightLog{UserID: userID, Weight: weight, Date: date}
	id, err := r.logs.InsertWeightLog(ctx, &l)
	if err != nil {
		return domain.Fail[domain.WeightLog](r.storageFailure("insert weight log", err))
	}
	l.ID = id
	r.log.Debug("weight log added", zap.Int64("user_id", userID), zap.Int64("log_id", id))
	return domain.Ok(l)
}

// DeleteWeightLog removes the log with the given id. A missing id is not an
// error.
func (r *UserRepository) DeleteWeightLog(ctx context.Context, id int64) domain.Result[domain.Void] {
	if err := r.logs.DeleteWeightLog(ctx, id); err != nil {
		return domain.Fail[domain.Void](r.storageFailure("delete weight log", err))
	}
	return domain.Done()
}

package sqlstore

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"lightweight/internal/domain"
)

// Dates are stored as MM/DD/YYYY text; ordering by the year, month and day
// substrings keeps the listing chronological on both engines.
const chronological = "substr(date, 7, 4), substr(date, 1, 2), substr(date, 4, 2), id"

// InsertWeightLog inserts a weight log and returns its generated id.
func (s *Store) InsertWeightLog(ctx context.Context, l *domain.WeightLog) (int64, error) {
	var id int64
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(
		"INSERT INTO weight_logs (user_id, weight, date) VALUES (?, ?, ?) RETURNING id"),
		l.UserID, l.Weight, l.Date,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert weight log: %w", err)
	}
	return id, nil
}

// DeleteWeightLog deletes a weight log by id.
func (s *Store) DeleteWeightLog(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM weight_logs WHERE id = ?"), id); err != nil {
		return fmt.Errorf("delete weight log: %w", err)
	}
	return nil
}

// ListWeightLogs returns all of the user's weight logs.
func (s *Store) ListWeightLogs(ctx context.Context, userID int64) ([]domain.WeightLog, error) {
	return s.listWeightLogs(ctx, "SELECT id, user_id, weight, date FROM weight_logs WHERE user_id = ?", userID)
}

// ListWeightLogsByDate returns the user's weight logs, oldest date first.
func (s *Store) ListWeightLogsByDate(ctx context.Context, userID int64) ([]domain.WeightLog, error) {
	return s.listWeightLogs(ctx, "SELECT id, user_id, weight, date FROM weight_logs WHERE user_id = ? ORDER BY "+chronological, userID)
}

func (s *Store) listWeightLogs(ctx context.Context, query string, userID int64) ([]domain.WeightLog, error) {
	var rows []weightLogRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), userID); err != nil {
		return nil, fmt.Errorf("list weight logs: %w", err)
	}
	out := make([]domain.WeightLog, 0, len(rows))
	for i := range rows {
		l, err := rows[i].toDomain()
		if err != nil {
			// One unreadable row must not hide the rest of the history.
			s.log.Warn("skipping weight log with unreadable date",
				zap.Int64("log_id", rows[i].ID), zap.Int64("user_id", userID), zap.Error(err))
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

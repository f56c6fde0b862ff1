package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/deskpilot/internal/model"
)

const logColumns = `id, user_id, company_id, exercise_id, timestamp, source, duration_seconds`

// InsertLog appends a completed session. The company defaults to the
// user's company, and the timestamp to now.
func (s *Store) InsertLog(ctx context.Context, l model.SessionLog) (model.SessionLog, error) {
	if l.UserID == "" {
		return model.SessionLog{}, fmt.Errorf("session log requires a user id")
	}
	if l.CompanyID == "" {
		user, err := s.FetchUser(ctx, l.UserID)
		if err != nil {
			return model.SessionLog{}, err
		}
		if user.CompanyID == "" {
			return model.SessionLog{}, fmt.Errorf("user %s has no company", l.UserID)
		}
		l.CompanyID = user.CompanyID
	}
	if l.DurationSeconds < 0 {
		return model.SessionLog{}, fmt.Errorf("session duration must be >= 0")
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = nowUTC()
	}
	var exerciseID any
	if l.ExerciseID != "" {
		exerciseID = l.ExerciseID
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_logs (`+logColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ID,
		l.UserID,
		l.CompanyID,
		exerciseID,
		formatTime(l.Timestamp),
		l.Source,
		l.DurationSeconds,
	)
	if err != nil {
		return model.SessionLog{}, fmt.Errorf("inserting session log: %w", err)
	}
	return l, nil
}

// FetchLogs returns a company's logs with start <= timestamp <= end,
// newest first. A zero start or end leaves that side unbounded.
func (s *Store) FetchLogs(ctx context.Context, companyID string, start, end time.Time) ([]model.SessionLog, error) {
	clauses := []string{"company_id = ?"}
	args := []any{companyID}
	if !start.IsZero() {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, formatTime(start))
	}
	if !end.IsZero() {
		clauses = append(clauses, "timestamp <= ?")
		args = append(args, formatTime(end))
	}
	query := fmt.Sprintf(`SELECT %s FROM session_logs
		WHERE %s
		ORDER BY timestamp DESC, id`, logColumns, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing company logs: %w", err)
	}
	defer closeRows(rows)
	logs, err := scanLogs(rows)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("logs fetched", "company", companyID, "start", start, "end", end, "logs", len(logs))
	return logs, nil
}

// FetchAllLogsForUser returns every log of a user, newest first.
func (s *Store) FetchAllLogsForUser(ctx context.Context, userID string) ([]model.SessionLog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+logColumns+` FROM session_logs WHERE user_id = ? ORDER BY timestamp DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing user logs: %w", err)
	}
	defer closeRows(rows)
	return scanLogs(rows)
}

func scanLogs(rows *sql.Rows) ([]model.SessionLog, error) {
	var out []model.SessionLog
	for rows.Next() {
		var l model.SessionLog
		var exerciseID sql.NullString
		var ts string
		if err := rows.Scan(&l.ID, &l.UserID, &l.CompanyID, &exerciseID, &ts, &l.Source, &l.DurationSeconds); err != nil {
			return nil, fmt.Errorf("scanning session log: %w", err)
		}
		l.ExerciseID = exerciseID.String
		parsed, err := parseTime(ts)
		if err != nil {
			return nil, err
		}
		l.Timestamp = parsed
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session logs: %w", err)
	}
	return out, nil
}

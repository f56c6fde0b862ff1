package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/verte-zerg/deskpilot/internal/model"
)

// InsertCompany stores a company, assigning an id and creation time when unset.
func (s *Store) InsertCompany(ctx context.Context, c model.Company) (model.Company, error) {
	if strings.TrimSpace(c.Name) == "" {
		return model.Company{}, fmt.Errorf("company name must not be empty")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = nowUTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO companies (id, name, timezone, reminder_enabled, reminder_times, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.Name,
		c.Timezone,
		boolToInt(c.ReminderEnabled),
		strings.Join(c.ReminderTimes, ","),
		formatTime(c.CreatedAt),
	)
	if err != nil {
		return model.Company{}, fmt.Errorf("inserting company: %w", err)
	}
	return c, nil
}

// FetchCompany returns the company with the given id.
func (s *Store) FetchCompany(ctx context.Context, companyID string) (model.Company, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, timezone, reminder_enabled, reminder_times, created_at
		 FROM companies WHERE id = ?`, companyID)
	c, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Company{}, fmt.Errorf("company %s: %w", companyID, ErrNotFound)
	}
	if err != nil {
		return model.Company{}, err
	}
	return c, nil
}

// ListCompanies returns all companies ordered by name.
func (s *Store) ListCompanies(ctx context.Context) ([]model.Company, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, timezone, reminder_enabled, reminder_times, created_at
		 FROM companies ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer closeRows(rows)

	var out []model.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating companies: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (model.Company, error) {
	var c model.Company
	var reminderEnabled int
	var reminderTimes, createdAt string
	if err := row.Scan(&c.ID, &c.Name, &c.Timezone, &reminderEnabled, &reminderTimes, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Company{}, err
		}
		return model.Company{}, fmt.Errorf("scanning company: %w", err)
	}
	c.ReminderEnabled = reminderEnabled != 0
	c.ReminderTimes = splitList(reminderTimes)
	parsed, err := parseTime(createdAt)
	if err != nil {
		return model.Company{}, err
	}
	c.CreatedAt = parsed
	return c, nil
}

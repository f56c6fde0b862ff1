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

const userColumns = `id, name, email, role, company_id, status, created_at`

// InsertUser stores a user. Role defaults to employee and status to invited.
func (s *Store) InsertUser(ctx context.Context, u model.User) (model.User, error) {
	u.Email = strings.TrimSpace(strings.ToLower(u.Email))
	if u.Email == "" {
		return model.User{}, fmt.Errorf("user email must not be empty")
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Name == "" {
		u.Name = strings.SplitN(u.Email, "@", 2)[0]
	}
	if u.Role == "" {
		u.Role = model.RoleEmployee
	}
	if u.Status == "" {
		u.Status = model.StatusInvited
	}
	if !u.Status.Valid() {
		return model.User{}, fmt.Errorf("invalid user status %q", u.Status)
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = nowUTC()
	}
	var companyID any
	if u.CompanyID != "" {
		companyID = u.CompanyID
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Name,
		u.Email,
		string(u.Role),
		companyID,
		string(u.Status),
		formatTime(u.CreatedAt),
	)
	if err != nil {
		return model.User{}, fmt.Errorf("inserting user: %w", err)
	}
	return u, nil
}

// FetchUser returns the user with the given id.
func (s *Store) FetchUser(ctx context.Context, userID string) (model.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, userID)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

// UpdateUserStatus moves a user to a new membership status, e.g. on
// invitation acceptance or deactivation.
func (s *Store) UpdateUserStatus(ctx context.Context, userID string, status model.Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid user status %q", status)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE users SET status = ? WHERE id = ?`, string(status), userID)
	if err != nil {
		return fmt.Errorf("updating user status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating user status: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return nil
}

// FetchRoster returns the employees of a company in a stable order:
// oldest membership first, ties broken by id.
func (s *Store) FetchRoster(ctx context.Context, companyID string) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE company_id = ? AND role = ?
		 ORDER BY created_at, id`,
		companyID, string(model.RoleEmployee))
	if err != nil {
		return nil, fmt.Errorf("listing roster: %w", err)
	}
	defer closeRows(rows)

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roster: %w", err)
	}
	s.logger.Debug("roster fetched", "company", companyID, "users", len(out))
	return out, nil
}

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	var role, status, createdAt string
	var companyID sql.NullString
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &companyID, &status, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("scanning user: %w", err)
	}
	u.Role = model.Role(role)
	u.Status = model.Status(status)
	u.CompanyID = companyID.String
	parsed, err := parseTime(createdAt)
	if err != nil {
		return model.User{}, err
	}
	u.CreatedAt = parsed
	return u, nil
}

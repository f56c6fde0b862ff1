// Package testutil provides fixtures and stores shared by package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/deskpilot/internal/model"
)

var testUserCounter atomic.Int64

// Fixed is the reference instant used across tests: 2025-01-10 12:00 UTC.
var Fixed = time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC)

func NewTestCompany(name string) model.Company {
	return model.Company{
		ID:        uuid.New().String(),
		Name:      name,
		Timezone:  "UTC",
		CreatedAt: Fixed.AddDate(0, -1, 0),
	}
}

// User options
type UserOption func(*model.User)

func WithStatus(s model.Status) UserOption {
	return func(u *model.User) {
		u.Status = s
	}
}

func WithRole(r model.Role) UserOption {
	return func(u *model.User) {
		u.Role = r
	}
}

func WithEmail(email string) UserOption {
	return func(u *model.User) {
		u.Email = email
	}
}

func WithCreatedAt(t time.Time) UserOption {
	return func(u *model.User) {
		u.CreatedAt = t
	}
}

// NewTestUser returns an active employee of companyID. Successive users
// get increasing creation times so roster order follows call order.
func NewTestUser(companyID, name string, opts ...UserOption) model.User {
	n := testUserCounter.Add(1)
	u := model.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     fmt.Sprintf("user%03d@example.com", n),
		Role:      model.RoleEmployee,
		CompanyID: companyID,
		Status:    model.StatusActive,
		CreatedAt: Fixed.AddDate(0, -1, 0).Add(time.Duration(n) * time.Second),
	}
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

// Log options
type LogOption func(*model.SessionLog)

func WithExercise(id string) LogOption {
	return func(l *model.SessionLog) {
		l.ExerciseID = id
	}
}

func WithDuration(seconds int) LogOption {
	return func(l *model.SessionLog) {
		l.DurationSeconds = seconds
	}
}

func NewTestLog(u model.User, at time.Time, opts ...LogOption) model.SessionLog {
	l := model.SessionLog{
		ID:              uuid.New().String(),
		UserID:          u.ID,
		CompanyID:       u.CompanyID,
		Timestamp:       at,
		Source:          "test",
		DurationSeconds: 60,
	}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

// NewTestLogsOnDays returns one log per offset, each at noon UTC of
// asOf shifted back by that many days.
func NewTestLogsOnDays(u model.User, asOf model.Date, offsets ...int) []model.SessionLog {
	out := make([]model.SessionLog, 0, len(offsets))
	for _, off := range offsets {
		at := asOf.AddDays(-off).Start(time.UTC).Add(12 * time.Hour)
		out = append(out, NewTestLog(u, at))
	}
	return out
}

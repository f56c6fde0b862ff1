// Package model defines shared data structures.
package model

import "time"

// Role is the role a user holds within a company.
type Role string

const (
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

// Status is the membership status of a user.
type Status string

const (
	StatusActive  Status = "active"
	StatusInvited Status = "invited"
	StatusPending Status = "pending"
)

// Valid reports whether s is a known membership status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInvited, StatusPending:
		return true
	default:
		return false
	}
}

// Difficulty grades an exercise.
type Difficulty string

const (
	DifficultyBasic   Difficulty = "basic"
	DifficultyMedium  Difficulty = "medium"
	DifficultyComplex Difficulty = "complex"
)

// User is a company member.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	CompanyID string
	Status    Status
	CreatedAt time.Time
}

// Company scopes every roster and log query.
type Company struct {
	ID              string
	Name            string
	Timezone        string
	ReminderEnabled bool
	ReminderTimes   []string
	CreatedAt       time.Time
}

// Exercise is a guided microbreak.
type Exercise struct {
	ID          string
	Name        string
	Difficulty  Difficulty
	Description string
	CreatedAt   time.Time
}

// SessionLog records one completed microbreak. Logs are append-only.
type SessionLog struct {
	ID              string
	UserID          string
	CompanyID       string
	ExerciseID      string
	Timestamp       time.Time
	Source          string
	DurationSeconds int
}

// DailyCount is the number of sessions on one calendar day.
type DailyCount struct {
	Date  Date
	Count int
}

// UserMetric is the per-user rollup for a report window.
type UserMetric struct {
	UserID           string
	Name             string
	Email            string
	Status           Status
	SessionsToday    int
	SessionsWeek     int
	SessionsInWindow int
	CurrentStreak    int
}

// CompanyMetrics summarizes a company for a report window.
type CompanyMetrics struct {
	TotalEmployees          int
	ActiveEmployees         int
	SessionsToday           int
	ParticipationRate       int
	SessionsInWindow        int
	ActiveInWindow          int
	WindowParticipationRate int
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank   int
	UserID string
	Name   string
	Score  int
}

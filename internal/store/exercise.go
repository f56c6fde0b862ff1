package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/verte-zerg/deskpilot/internal/model"
)

// InsertExercise adds an exercise to the library.
func (s *Store) InsertExercise(ctx context.Context, ex model.Exercise) (model.Exercise, error) {
	if strings.TrimSpace(ex.Name) == "" {
		return model.Exercise{}, fmt.Errorf("exercise name must not be empty")
	}
	if ex.ID == "" {
		ex.ID = uuid.NewString()
	}
	if ex.Difficulty == "" {
		ex.Difficulty = model.DifficultyBasic
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = nowUTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exercises (id, name, difficulty, description, created_at) VALUES (?, ?, ?, ?, ?)`,
		ex.ID, ex.Name, string(ex.Difficulty), ex.Description, formatTime(ex.CreatedAt))
	if err != nil {
		return model.Exercise{}, fmt.Errorf("inserting exercise: %w", err)
	}
	return ex, nil
}

// ListExercises returns the exercise library ordered by name.
func (s *Store) ListExercises(ctx context.Context) ([]model.Exercise, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, difficulty, description, created_at FROM exercises ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing exercises: %w", err)
	}
	defer closeRows(rows)

	var out []model.Exercise
	for rows.Next() {
		var ex model.Exercise
		var difficulty, createdAt string
		if err := rows.Scan(&ex.ID, &ex.Name, &difficulty, &ex.Description, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		ex.Difficulty = model.Difficulty(difficulty)
		parsed, err := parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		ex.CreatedAt = parsed
		out = append(out, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exercises: %w", err)
	}
	return out, nil
}

// Package routine picks daily microbreak exercises.
package routine

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/deskpilot/internal/model"
)

// DefaultSize is the number of exercises in a daily routine.
const DefaultSize = 3

// DefaultFactor is the extra weight per session an exercise trails the
// employee's most practiced one.
const DefaultFactor = 1.0

// Picker produces randomized routines.
type Picker struct {
	rnd *rand.Rand
}

// New returns a Picker seeded with the current time.
func New() *Picker {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic Picker.
func NewSeeded(seed int64) *Picker {
	return &Picker{rnd: rand.New(rand.NewSource(seed))}
}

// Pick selects up to n distinct exercises uniformly.
func (p *Picker) Pick(exercises []model.Exercise, n int) []model.Exercise {
	if n <= 0 || len(exercises) == 0 {
		return nil
	}
	if n > len(exercises) {
		n = len(exercises)
	}
	result := make([]model.Exercise, 0, n)
	for _, idx := range p.rnd.Perm(len(exercises))[:n] {
		result = append(result, exercises[idx])
	}
	return result
}

// PickWeighted selects up to n distinct exercises with a bias toward the
// ones done least. done maps exercise ids to session counts.
func (p *Picker) PickWeighted(exercises []model.Exercise, done map[string]int, n int, factor float64) []model.Exercise {
	if n <= 0 || len(exercises) == 0 {
		return nil
	}
	if n > len(exercises) {
		n = len(exercises)
	}
	most := 0
	for _, ex := range exercises {
		if c := done[ex.ID]; c > most {
			most = c
		}
	}
	pool := make([]model.Exercise, len(exercises))
	copy(pool, exercises)
	weights := make([]float64, len(pool))
	total := 0.0
	for i, ex := range pool {
		w := 1.0 + float64(most-done[ex.ID])*factor
		weights[i] = w
		total += w
	}

	result := make([]model.Exercise, 0, n)
	for len(result) < n {
		r := p.rnd.Float64() * total
		acc := 0.0
		idx := len(pool) - 1
		for j, w := range weights {
			acc += w
			if r <= acc {
				idx = j
				break
			}
		}
		result = append(result, pool[idx])
		total -= weights[idx]
		pool = append(pool[:idx], pool[idx+1:]...)
		weights = append(weights[:idx], weights[idx+1:]...)
	}
	return result
}

// Counts tallies a user's sessions per exercise id.
func Counts(logs []model.SessionLog) map[string]int {
	out := make(map[string]int)
	for _, l := range logs {
		if l.ExerciseID == "" {
			continue
		}
		out[l.ExerciseID]++
	}
	return out
}

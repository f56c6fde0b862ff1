package routine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/deskpilot/internal/model"
)

func library(n int) []model.Exercise {
	out := make([]model.Exercise, n)
	for i := range out {
		out[i] = model.Exercise{ID: fmt.Sprintf("ex-%d", i), Name: fmt.Sprintf("Exercise %d", i)}
	}
	return out
}

func ids(exercises []model.Exercise) map[string]struct{} {
	out := make(map[string]struct{}, len(exercises))
	for _, ex := range exercises {
		out[ex.ID] = struct{}{}
	}
	return out
}

func TestPick_Distinct(t *testing.T) {
	p := NewSeeded(1)
	for i := 0; i < 50; i++ {
		picked := p.Pick(library(6), DefaultSize)
		require.Len(t, picked, DefaultSize)
		assert.Len(t, ids(picked), DefaultSize)
	}
}

func TestPick_Bounds(t *testing.T) {
	p := NewSeeded(1)
	assert.Nil(t, p.Pick(nil, 3))
	assert.Nil(t, p.Pick(library(3), 0))
	assert.Len(t, p.Pick(library(2), 5), 2)
}

func TestPick_Deterministic(t *testing.T) {
	a := NewSeeded(42).Pick(library(10), 4)
	b := NewSeeded(42).Pick(library(10), 4)
	assert.Equal(t, a, b)
}

func TestPickWeighted_FavorsLeastDone(t *testing.T) {
	p := NewSeeded(7)
	exercises := library(2)
	done := map[string]int{"ex-0": 20, "ex-1": 0}

	first := map[string]int{}
	for i := 0; i < 500; i++ {
		picked := p.PickWeighted(exercises, done, 1, DefaultFactor)
		require.Len(t, picked, 1)
		first[picked[0].ID]++
	}
	// ex-1 weighs 21 against 1.
	assert.Greater(t, first["ex-1"], first["ex-0"]*5)
}

func TestPickWeighted_DistinctAndInputUntouched(t *testing.T) {
	p := NewSeeded(3)
	exercises := library(5)
	picked := p.PickWeighted(exercises, map[string]int{"ex-2": 4}, 5, DefaultFactor)

	require.Len(t, picked, 5)
	assert.Len(t, ids(picked), 5)
	assert.Equal(t, library(5), exercises)
}

func TestCounts(t *testing.T) {
	logs := []model.SessionLog{{ExerciseID: "a"}, {ExerciseID: "a"}, {ExerciseID: "b"}, {}}
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, Counts(logs))
}

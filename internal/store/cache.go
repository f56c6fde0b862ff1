package store

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/verte-zerg/deskpilot/internal/model"
)

// DefaultCacheSize is the number of users whose full history is kept.
const DefaultCacheSize = 256

// Cached serves per-user history from an LRU in front of a Store.
// Writes through InsertLog drop the affected user's entry.
type Cached struct {
	*Store
	history *lru.Cache[string, []model.SessionLog]
}

// NewCached wraps st with a history cache of the given size.
func NewCached(st *Store, size int) (*Cached, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	history, err := lru.New[string, []model.SessionLog](size)
	if err != nil {
		return nil, fmt.Errorf("creating history cache: %w", err)
	}
	return &Cached{Store: st, history: history}, nil
}

// FetchAllLogsForUser returns a copy of the cached history, loading it on miss.
func (c *Cached) FetchAllLogsForUser(ctx context.Context, userID string) ([]model.SessionLog, error) {
	if logs, ok := c.history.Get(userID); ok {
		return cloneLogs(logs), nil
	}
	logs, err := c.Store.FetchAllLogsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.history.Add(userID, logs)
	return cloneLogs(logs), nil
}

// InsertLog records the session and invalidates the user's history.
func (c *Cached) InsertLog(ctx context.Context, l model.SessionLog) (model.SessionLog, error) {
	saved, err := c.Store.InsertLog(ctx, l)
	if err != nil {
		return model.SessionLog{}, err
	}
	c.history.Remove(saved.UserID)
	return saved, nil
}

// Len reports the number of cached histories.
func (c *Cached) Len() int {
	return c.history.Len()
}

func cloneLogs(logs []model.SessionLog) []model.SessionLog {
	if logs == nil {
		return nil
	}
	out := make([]model.SessionLog, len(logs))
	copy(out, logs)
	return out
}

package testutil

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/verte-zerg/deskpilot/internal/model"
	"github.com/verte-zerg/deskpilot/internal/store"
)

// FailingSource wraps a store and fails the named read with Err.
// Calls counts every read so tests can assert what was attempted.
type FailingSource struct {
	*store.Store
	FailOn string
	Err    error
	Calls  atomic.Int32
}

func (f *FailingSource) fail(op string) error {
	f.Calls.Add(1)
	if f.FailOn == op {
		return f.Err
	}
	return nil
}

func (f *FailingSource) FetchCompany(ctx context.Context, companyID string) (model.Company, error) {
	if err := f.fail("company"); err != nil {
		return model.Company{}, err
	}
	return f.Store.FetchCompany(ctx, companyID)
}

func (f *FailingSource) FetchRoster(ctx context.Context, companyID string) ([]model.User, error) {
	if err := f.fail("roster"); err != nil {
		return nil, err
	}
	return f.Store.FetchRoster(ctx, companyID)
}

func (f *FailingSource) FetchLogs(ctx context.Context, companyID string, start, end time.Time) ([]model.SessionLog, error) {
	if err := f.fail("logs"); err != nil {
		return nil, err
	}
	return f.Store.FetchLogs(ctx, companyID, start, end)
}

func (f *FailingSource) FetchAllLogsForUser(ctx context.Context, userID string) ([]model.SessionLog, error) {
	if err := f.fail("history"); err != nil {
		return nil, err
	}
	return f.Store.FetchAllLogsForUser(ctx, userID)
}

package testutil

import (
	"context"
	"testing"

	"github.com/verte-zerg/deskpilot/internal/model"
	"github.com/verte-zerg/deskpilot/internal/store"
)

// NewTestStore opens an in-memory store that is closed when the test completes.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// Seed inserts the company, users and logs, failing the test on error.
func Seed(t *testing.T, st *store.Store, company model.Company, users []model.User, logs []model.SessionLog) {
	t.Helper()
	ctx := context.Background()
	if _, err := st.InsertCompany(ctx, company); err != nil {
		t.Fatalf("seeding company: %v", err)
	}
	for _, u := range users {
		if _, err := st.InsertUser(ctx, u); err != nil {
			t.Fatalf("seeding user %s: %v", u.Name, err)
		}
	}
	for _, l := range logs {
		if _, err := st.InsertLog(ctx, l); err != nil {
			t.Fatalf("seeding log: %v", err)
		}
	}
}

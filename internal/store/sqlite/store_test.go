package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kearns/gridbench/internal/results"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestSaveAndListRuns(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	records := []results.RunRecord{
		{Grid: "2x2", Candidate: "CMAS_wo_any_dialogue_history", Iteration: 0, Success: true,
			ActionTime: 5.0, TokenUsage: 30.0, APIQueries: 2},
		{Grid: "2x2", Candidate: "CMAS_wo_any_dialogue_history", Iteration: 1, Success: false},
	}
	if err := store.SaveRuns(ctx, records); err != nil {
		t.Fatalf("save runs: %v", err)
	}
	// Saving again must replace, not duplicate.
	if err := store.SaveRuns(ctx, records); err != nil {
		t.Fatalf("save runs again: %v", err)
	}

	got, err := store.ListRuns(ctx, "2x2", "CMAS_wo_any_dialogue_history")
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(got))
	}
	if !got[0].Success || got[0].ActionTime != 5.0 || got[0].APIQueries != 2 {
		t.Fatalf("run 0 = %+v", got[0])
	}
	if got[1].Success {
		t.Fatalf("run 1 = %+v, want failure", got[1])
	}
}

func TestSaveSummaryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	summary := results.Summary{
		"4x8": {
			"HMAS-2_w_all_dialogue_history": {
				SuccessRate:      0.7,
				AvgActionTime:    42.5,
				AvgTokenUsage:    1234.0,
				AvgAPIQueries:    6.5,
				TotalExperiments: 10,
			},
		},
	}
	if err := store.SaveSummary(ctx, summary); err != nil {
		t.Fatalf("save summary: %v", err)
	}

	stats, err := store.GetStats(ctx, "4x8", "HMAS-2_w_all_dialogue_history")
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.SuccessRate != 0.7 || stats.TotalExperiments != 10 || stats.AvgTokenUsage != 1234.0 {
		t.Fatalf("stats = %+v", stats)
	}

	if _, err := store.GetStats(ctx, "9x9", "nobody"); err == nil {
		t.Fatal("expected error for missing aggregate row")
	}
}

package results

import (
	"path"
	"testing"

	"github.com/kearns/gridbench/internal/config"
	"github.com/kearns/gridbench/internal/store"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.GridSizes = []config.GridSize{{Rows: 2, Cols: 2}}
	cfg.Candidates = []config.Candidate{
		{Framework: "CMAS", DialogueMethod: "_wo_any_dialogue_history"},
	}
	return cfg
}

func put(t *testing.T, st store.Store, name, content string) {
	t.Helper()
	if err := st.Put(name, []byte(content)); err != nil {
		t.Fatalf("put %s: %v", name, err)
	}
}

func runDir(iteration int) string {
	return config.RunDir(config.GridSize{Rows: 2, Cols: 2}, iteration,
		config.Candidate{Framework: "CMAS", DialogueMethod: "_wo_any_dialogue_history"})
}

func TestAnalyzeEmptyTreeYieldsZeroes(t *testing.T) {
	summary, records, err := NewAggregator(testConfig(), store.NewMemory()).Analyze()
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records = %d, want none", len(records))
	}
	stats := summary["2x2"]["CMAS_wo_any_dialogue_history"]
	if stats.SuccessRate != 0 || stats.AvgActionTime != 0 || stats.AvgTokenUsage != 0 ||
		stats.AvgAPIQueries != 0 || stats.TotalExperiments != 0 {
		t.Fatalf("stats = %+v, want all zero", stats)
	}
}

func TestAnalyzeZeroSuccessesDividesSafely(t *testing.T) {
	st := store.NewMemory()
	put(t, st, path.Join(runDir(0), config.StatusFile), "failure\n")
	put(t, st, path.Join(runDir(1), config.StatusFile), "failure\n")

	summary, records, err := NewAggregator(testConfig(), st).Analyze()
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	stats := summary["2x2"]["CMAS_wo_any_dialogue_history"]
	if stats.SuccessRate != 0 {
		t.Fatalf("success rate = %v, want 0", stats.SuccessRate)
	}
	if stats.AvgActionTime != 0 || stats.AvgTokenUsage != 0 || stats.AvgAPIQueries != 0 {
		t.Fatalf("averages = %+v, want zeroes without division error", stats)
	}
	if stats.TotalExperiments != 2 {
		t.Fatalf("total experiments = %d, want 2", stats.TotalExperiments)
	}
	if len(records) != 2 || records[0].Success || records[1].Success {
		t.Fatalf("records = %+v, want two failures", records)
	}
}

func TestAnalyzeSingleSuccess(t *testing.T) {
	st := store.NewMemory()
	put(t, st, path.Join(runDir(0), config.StatusFile), "success\n")
	put(t, st, path.Join(runDir(0), config.ActionTimeFile), "5.0\n")
	put(t, st, path.Join(runDir(0), config.TokenFile), "10.0\n20.0\n")

	summary, records, err := NewAggregator(testConfig(), st).Analyze()
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	stats := summary["2x2"]["CMAS_wo_any_dialogue_history"]
	if stats.SuccessRate != 1.0 {
		t.Fatalf("success rate = %v, want 1.0", stats.SuccessRate)
	}
	if stats.AvgActionTime != 5.0 {
		t.Fatalf("avg action time = %v, want 5.0", stats.AvgActionTime)
	}
	if stats.AvgTokenUsage != 30.0 {
		t.Fatalf("avg token usage = %v, want 30.0", stats.AvgTokenUsage)
	}
	if stats.AvgAPIQueries != 2.0 {
		t.Fatalf("avg api queries = %v, want 2.0", stats.AvgAPIQueries)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	rec := records[0]
	if !rec.Success || rec.ActionTime != 5.0 || rec.TokenUsage != 30.0 || rec.APIQueries != 2 {
		t.Fatalf("record = %+v", rec)
	}
}

func TestAnalyzeSkipsMissingIterations(t *testing.T) {
	st := store.NewMemory()
	// Only iteration 7 exists; the rest are "no data", never errors.
	put(t, st, path.Join(runDir(7), config.StatusFile), "success\n")

	summary, _, err := NewAggregator(testConfig(), st).Analyze()
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	stats := summary["2x2"]["CMAS_wo_any_dialogue_history"]
	if stats.TotalExperiments != 1 || stats.SuccessRate != 1.0 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestAnalyzeMissingMetricFilesAreNoData(t *testing.T) {
	st := store.NewMemory()
	put(t, st, path.Join(runDir(0), config.StatusFile), "success\n")

	summary, _, err := NewAggregator(testConfig(), st).Analyze()
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	stats := summary["2x2"]["CMAS_wo_any_dialogue_history"]
	if stats.SuccessRate != 1.0 || stats.AvgActionTime != 0 || stats.AvgAPIQueries != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestAnalyzeMalformedNumberIsFatal(t *testing.T) {
	st := store.NewMemory()
	put(t, st, path.Join(runDir(0), config.StatusFile), "success\n")
	put(t, st, path.Join(runDir(0), config.TokenFile), "10.0\nnot-a-number\n")

	if _, _, err := NewAggregator(testConfig(), st).Analyze(); err == nil {
		t.Fatal("expected a fatal error for a non-numeric token line")
	}
}

package results

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/kearns/gridbench/internal/config"
	"github.com/kearns/gridbench/internal/store"
)

// successToken is the literal first line a successful run writes.
const successToken = "success"

// Aggregator computes summary statistics from a store of run results.
type Aggregator struct {
	cfg   config.Config
	store store.Store
}

// NewAggregator builds an aggregator over the given store.
func NewAggregator(cfg config.Config, st store.Store) *Aggregator {
	return &Aggregator{cfg: cfg, store: st}
}

// Analyze scans every configured grid size and candidate and returns the
// aggregate mapping plus the individual run records behind it. Missing
// directories and files count as "no data" and are skipped; a malformed
// numeric value aborts the whole pass.
func (a *Aggregator) Analyze() (Summary, []RunRecord, error) {
	summary := make(Summary, len(a.cfg.GridSizes))
	var records []RunRecord
	for _, grid := range a.cfg.GridSizes {
		gridStats := make(map[string]Stats, len(a.cfg.Candidates))
		for _, cand := range a.cfg.Candidates {
			stats, runs, err := a.analyzeCandidate(grid, cand)
			if err != nil {
				return nil, nil, err
			}
			gridStats[cand.Key()] = stats
			records = append(records, runs...)
		}
		summary[grid.Key()] = gridStats
	}
	return summary, records, nil
}

func (a *Aggregator) analyzeCandidate(grid config.GridSize, cand config.Candidate) (Stats, []RunRecord, error) {
	var (
		successCount     int
		validExperiments int
		totalActionTime  float64
		totalTokenUsage  float64
		totalAPIQueries  int
		records          []RunRecord
	)

	for iteration := 0; iteration < a.cfg.Repeat; iteration++ {
		runDir := config.RunDir(grid, iteration, cand)
		statusDoc, ok, err := a.store.Get(path.Join(runDir, config.StatusFile))
		if err != nil {
			return Stats{}, nil, fmt.Errorf("results: read status for %s: %w", runDir, err)
		}
		if !ok {
			continue
		}
		validExperiments++
		record := RunRecord{
			Grid:      grid.Key(),
			Candidate: cand.Key(),
			Iteration: iteration,
		}

		if firstLine(statusDoc) == successToken {
			successCount++
			record.Success = true

			if doc, ok, err := a.store.Get(path.Join(runDir, config.ActionTimeFile)); err != nil {
				return Stats{}, nil, fmt.Errorf("results: read action time for %s: %w", runDir, err)
			} else if ok {
				actionTime, err := parseFloat(firstLine(doc))
				if err != nil {
					return Stats{}, nil, fmt.Errorf("results: action time in %s: %w", runDir, err)
				}
				record.ActionTime = actionTime
				totalActionTime += actionTime
			}

			if doc, ok, err := a.store.Get(path.Join(runDir, config.TokenFile)); err != nil {
				return Stats{}, nil, fmt.Errorf("results: read token counts for %s: %w", runDir, err)
			} else if ok {
				tokens, err := parseFloatLines(doc)
				if err != nil {
					return Stats{}, nil, fmt.Errorf("results: token counts in %s: %w", runDir, err)
				}
				for _, t := range tokens {
					record.TokenUsage += t
				}
				record.APIQueries = len(tokens)
				totalTokenUsage += record.TokenUsage
				totalAPIQueries += len(tokens)
			}
		}
		records = append(records, record)
	}

	stats := Stats{
		SuccessRate:      float64(successCount) / atLeastOne(validExperiments),
		AvgActionTime:    totalActionTime / atLeastOne(successCount),
		AvgTokenUsage:    totalTokenUsage / atLeastOne(successCount),
		AvgAPIQueries:    float64(totalAPIQueries) / atLeastOne(successCount),
		TotalExperiments: validExperiments,
	}
	return stats, records, nil
}

// atLeastOne guards every average against empty denominators.
func atLeastOne(n int) float64 {
	if n < 1 {
		return 1
	}
	return float64(n)
}

func firstLine(doc []byte) string {
	line, _, _ := strings.Cut(string(doc), "\n")
	return strings.TrimSpace(line)
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q as float: %w", s, err)
	}
	return v, nil
}

// parseFloatLines parses one float per line, ignoring blank lines.
func parseFloatLines(doc []byte) ([]float64, error) {
	var values []float64
	for _, line := range strings.Split(string(doc), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		v, err := parseFloat(line)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

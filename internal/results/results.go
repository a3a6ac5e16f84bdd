// Package results walks the experiment tree the simulator filled in and
// reduces per-run logs into per-configuration statistics.
package results

// Stats summarizes every discovered run for one grid size and candidate.
// Averages are guarded: a candidate with zero successes reports zeroes, not
// a division error.
type Stats struct {
	SuccessRate      float64 `json:"success_rate"`
	AvgActionTime    float64 `json:"avg_action_time"`
	AvgTokenUsage    float64 `json:"avg_token_usage"`
	AvgAPIQueries    float64 `json:"avg_api_queries"`
	TotalExperiments int     `json:"total_experiments"`
}

// Summary is the full aggregate mapping, grid key to candidate key to stats.
// Iteration order for reports comes from the Config slices, never from here.
type Summary map[string]map[string]Stats

// RunRecord is one simulator run as read from disk. ActionTime, TokenUsage
// and APIQueries are only meaningful when Success is true.
type RunRecord struct {
	Grid       string  `json:"grid"`
	Candidate  string  `json:"candidate"`
	Iteration  int     `json:"iteration"`
	Success    bool    `json:"success"`
	ActionTime float64 `json:"action_time"`
	TokenUsage float64 `json:"token_usage"`
	APIQueries int     `json:"api_queries"`
}

// internal/config/config.go
//
// This package owns the experiment configuration and the directory layout
// shared by the suite generator, the external simulator, and the result
// aggregator. The layout is the de-facto contract between them:
//
// <root>/env_pg_state_<rows>_<cols>/pg_state<it>/
//     pg_state<it>.json                 <- environment document
//     <framework><dialogue_method>/     <- written by the simulator
//         success_failure.txt
//         env_action_times.txt
//         token_num_count.txt

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Result file names produced by the external simulator inside a run
// directory.
const (
	StatusFile     = "success_failure.txt"
	ActionTimeFile = "env_action_times.txt"
	TokenFile      = "token_num_count.txt"
)

const defaultConfigYAML = `# gridbench experiment configuration
version: 1

# Directory tree shared with the simulator. Regeneration wipes it entirely.
root: experiments
report_dir: reports

# Environments generated per grid size.
repeat: 10

# Artifacts drawn per color, uniform in [low, high].
artifact_range:
  low: 1
  high: 1

grid_sizes:
  - rows: 2
    cols: 2
  - rows: 2
    cols: 4
  - rows: 4
    cols: 4
  - rows: 4
    cols: 8

colors: [blue, red, green, purple, orange]

# Framework / dialogue-method pairs to compare. Order here is report order.
candidates:
  - framework: CMAS
    dialogue_method: _wo_any_dialogue_history
  - framework: CMAS
    dialogue_method: _w_only_state_action_history
  - framework: HMAS-2
    dialogue_method: _wo_any_dialogue_history
  - framework: HMAS-2
    dialogue_method: _w_only_state_action_history
  - framework: HMAS-2
    dialogue_method: _w_all_dialogue_history
  - framework: HMAS-1
    dialogue_method: _w_only_state_action_history
`

// GridSize identifies one environment topology.
type GridSize struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// Key returns the human-facing form, e.g. "2x4". Report sections and the
// summary document are keyed by it.
func (g GridSize) Key() string {
	return fmt.Sprintf("%dx%d", g.Rows, g.Cols)
}

// StateDir returns the per-grid directory name, e.g. "env_pg_state_2_4".
func (g GridSize) StateDir() string {
	return fmt.Sprintf("env_pg_state_%d_%d", g.Rows, g.Cols)
}

// Candidate identifies one experimental condition.
type Candidate struct {
	Framework      string `yaml:"framework"`
	DialogueMethod string `yaml:"dialogue_method"`
}

// Key returns the run directory name, e.g. "CMAS_wo_any_dialogue_history".
func (c Candidate) Key() string {
	return c.Framework + c.DialogueMethod
}

// Range is an inclusive integer interval.
type Range struct {
	Low  int `yaml:"low"`
	High int `yaml:"high"`
}

// Config carries the fixed enumerations and paths for a benchmark run.
// Components receive it explicitly, so tests can hand in a single grid size
// or a two-color palette without touching the defaults.
type Config struct {
	Version       int         `yaml:"version"`
	Root          string      `yaml:"root"`
	ReportDir     string      `yaml:"report_dir"`
	Repeat        int         `yaml:"repeat"`
	ArtifactRange Range       `yaml:"artifact_range"`
	GridSizes     []GridSize  `yaml:"grid_sizes"`
	Colors        []string    `yaml:"colors"`
	Candidates    []Candidate `yaml:"candidates"`
}

// Default returns the stock configuration: the four benchmark grid sizes,
// the five-color palette, and the six candidate conditions.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err != nil {
		panic(fmt.Sprintf("config: default yaml is broken: %v", err))
	}
	return cfg
}

// Load reads a configuration file. A missing file yields the defaults; a
// present but invalid file is an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// EnsureFile writes the commented default configuration to path if nothing
// is there yet.
func EnsureFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Version == 0 {
		c.Version = def.Version
	}
	if c.Root == "" {
		c.Root = def.Root
	}
	if c.ReportDir == "" {
		c.ReportDir = def.ReportDir
	}
	if c.Repeat == 0 {
		c.Repeat = def.Repeat
	}
	if c.ArtifactRange == (Range{}) {
		c.ArtifactRange = def.ArtifactRange
	}
	if len(c.GridSizes) == 0 {
		c.GridSizes = def.GridSizes
	}
	if len(c.Colors) == 0 {
		c.Colors = def.Colors
	}
	if len(c.Candidates) == 0 {
		c.Candidates = def.Candidates
	}
}

func (c *Config) normalize() {
	c.Root = strings.TrimSpace(c.Root)
	c.ReportDir = strings.TrimSpace(c.ReportDir)
	for i, color := range c.Colors {
		c.Colors[i] = strings.ToLower(strings.TrimSpace(color))
	}
	for i := range c.Candidates {
		c.Candidates[i].Framework = strings.TrimSpace(c.Candidates[i].Framework)
		c.Candidates[i].DialogueMethod = strings.TrimSpace(c.Candidates[i].DialogueMethod)
	}
}

// Validate checks the configuration invariants the components rely on.
func (c Config) Validate() error {
	if c.Version < 1 {
		return fmt.Errorf("version must be >= 1")
	}
	if c.Root == "" {
		return fmt.Errorf("root is required")
	}
	if c.Repeat < 1 {
		return fmt.Errorf("repeat must be >= 1")
	}
	if c.ArtifactRange.Low < 1 || c.ArtifactRange.High < c.ArtifactRange.Low {
		return fmt.Errorf("artifact_range must satisfy 1 <= low <= high")
	}
	if len(c.GridSizes) == 0 {
		return fmt.Errorf("at least one grid size is required")
	}
	for i, g := range c.GridSizes {
		if g.Rows < 1 || g.Cols < 1 {
			return fmt.Errorf("grid_sizes[%d]: rows and cols must be positive", i)
		}
	}
	if len(c.Colors) == 0 {
		return fmt.Errorf("at least one color is required")
	}
	seen := map[string]struct{}{}
	for i, color := range c.Colors {
		if color == "" {
			return fmt.Errorf("colors[%d] is empty", i)
		}
		if _, dup := seen[color]; dup {
			return fmt.Errorf("colors[%d] duplicates %q", i, color)
		}
		seen[color] = struct{}{}
	}
	if len(c.Candidates) == 0 {
		return fmt.Errorf("at least one candidate is required")
	}
	for i, cand := range c.Candidates {
		if cand.Framework == "" {
			return fmt.Errorf("candidates[%d]: framework is required", i)
		}
		if !strings.HasPrefix(cand.DialogueMethod, "_") {
			return fmt.Errorf("candidates[%d]: dialogue_method must start with '_'", i)
		}
	}
	return nil
}

// IterationName returns the per-iteration directory and document stem,
// e.g. "pg_state3".
func IterationName(iteration int) string {
	return fmt.Sprintf("pg_state%d", iteration)
}

// EnvDocPath returns the store path of an environment document.
func EnvDocPath(g GridSize, iteration int) string {
	name := IterationName(iteration)
	return path.Join(g.StateDir(), name, name+".json")
}

// RunDir returns the store path of a simulator run directory.
func RunDir(g GridSize, iteration int, c Candidate) string {
	return path.Join(g.StateDir(), IterationName(iteration), c.Key())
}

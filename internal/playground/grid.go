// internal/playground/grid.go
//
// The playground is a rectangular grid with two coordinate families:
// cell centers at half-integer coordinates (where agents and targets live)
// and corners at integer coordinates (where artifacts are placed). Both are
// keyed by the same string encoding the simulator reads back from disk.

package playground

import (
	"strconv"
	"strings"
)

const (
	artifactPrefix = "artifact_"
	targetPrefix   = "target_"
)

// Environment maps coordinate keys to ordered lists of item labels. Keys are
// initialized once and never removed; an empty list means the square is free.
type Environment map[string][]string

// NewEnvironment builds an environment for a rows x cols grid with every
// center and corner key present and empty. The key count is always
// rows*cols + (rows+1)*(cols+1).
func NewEnvironment(rows, cols int) Environment {
	env := make(Environment, rows*cols+(rows+1)*(cols+1))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			env[CenterKey(i, j)] = []string{}
		}
	}
	for i := 0; i <= rows; i++ {
		for j := 0; j <= cols; j++ {
			env[CornerKey(i, j)] = []string{}
		}
	}
	return env
}

// CenterKey returns the key for the center of the cell at (i, j),
// e.g. "1.5_2.5".
func CenterKey(i, j int) string {
	return coordKey(float64(i)+0.5, float64(j)+0.5)
}

// CornerKey returns the key for the corner at (i, j), e.g. "2.0_3.0".
func CornerKey(i, j int) string {
	return coordKey(float64(i), float64(j))
}

// coordKey formats both coordinates with exactly one decimal so center and
// corner keys stay distinguishable ("0.5" vs "0.0").
func coordKey(x, y float64) string {
	return strconv.FormatFloat(x, 'f', 1, 64) + "_" + strconv.FormatFloat(y, 'f', 1, 64)
}

// ArtifactLabel returns the item label for an artifact of the given color.
func ArtifactLabel(color string) string { return artifactPrefix + color }

// TargetLabel returns the item label for a target of the given color.
func TargetLabel(color string) string { return targetPrefix + color }

// IsArtifact reports whether the label names an artifact.
func IsArtifact(label string) bool { return strings.HasPrefix(label, artifactPrefix) }

// IsTarget reports whether the label names a target.
func IsTarget(label string) bool { return strings.HasPrefix(label, targetPrefix) }

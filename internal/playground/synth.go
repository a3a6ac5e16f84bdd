package playground

import (
	"math/rand"
	"time"
)

// Outcome describes what happened to one artifact/target unit during
// synthesis.
type Outcome int

const (
	// Placed means the artifact found a free corner and its paired target
	// was appended to the target cell.
	Placed Outcome = iota
	// Skipped means all four candidate corners around the artifact cell
	// were occupied. The unit is dropped without retry; callers decide
	// whether that matters.
	Skipped
)

// Placement records the outcome of one synthesis unit.
type Placement struct {
	Color       string
	Outcome     Outcome
	ArtifactKey string
	TargetKey   string
}

// Synthesizer populates environments with colored artifact/target pairs.
type Synthesizer struct {
	palette []string
	rand    *rand.Rand
}

// Option customizes a Synthesizer during construction.
type Option func(*Synthesizer)

// WithRand overrides the random source, mainly for deterministic tests.
func WithRand(r *rand.Rand) Option {
	return func(s *Synthesizer) {
		if r != nil {
			s.rand = r
		}
	}
}

// NewSynthesizer builds a synthesizer over the given color palette.
func NewSynthesizer(palette []string, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		palette: palette,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// cornerOffsets are the four corners adjacent to a cell, as (row, col)
// deltas from the cell's low corner.
var cornerOffsets = [4][2]int{{1, 0}, {0, 0}, {0, 1}, {1, 1}}

// Synthesize builds one environment for a rows x cols grid. For each palette
// color it draws a multiplicity uniformly from [low, high] and, per unit,
// tries to place an artifact at a randomly ordered free corner around a
// random cell, pairing it with a target at another random cell's center.
// A unit whose four candidate corners are all occupied is skipped, which the
// returned placements make observable. Preconditions: rows > 0, cols > 0,
// 1 <= low <= high.
func (s *Synthesizer) Synthesize(rows, cols, low, high int) (Environment, []Placement) {
	env := NewEnvironment(rows, cols)
	var placements []Placement

	for _, color := range s.palette {
		units := low + s.rand.Intn(high-low+1)
		for u := 0; u < units; u++ {
			artifactCell := s.rand.Intn(rows * cols)
			targetCell := s.rand.Intn(rows * cols)
			aRow, aCol := artifactCell/cols, artifactCell%cols
			tRow, tCol := targetCell/cols, targetCell%cols

			offsets := cornerOffsets
			s.rand.Shuffle(len(offsets), func(i, j int) {
				offsets[i], offsets[j] = offsets[j], offsets[i]
			})

			placement := Placement{Color: color, Outcome: Skipped}
			for _, off := range offsets {
				cornerKey := CornerKey(aRow+off[0], aCol+off[1])
				if len(env[cornerKey]) != 0 {
					continue
				}
				targetKey := CenterKey(tRow, tCol)
				env[cornerKey] = append(env[cornerKey], ArtifactLabel(color))
				env[targetKey] = append(env[targetKey], TargetLabel(color))
				placement = Placement{
					Color:       color,
					Outcome:     Placed,
					ArtifactKey: cornerKey,
					TargetKey:   targetKey,
				}
				break
			}
			placements = append(placements, placement)
		}
	}
	return env, placements
}

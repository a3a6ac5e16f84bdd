package playground

// Validate reports whether env holds an equal, nonzero number of artifact
// and target labels. Labels matching neither prefix are ignored, so the
// check is total: it never fails, it only answers.
func Validate(env Environment) bool {
	artifacts, targets := 0, 0
	for _, items := range env {
		for _, item := range items {
			switch {
			case IsArtifact(item):
				artifacts++
			case IsTarget(item):
				targets++
			}
		}
	}
	return artifacts == targets && artifacts > 0
}

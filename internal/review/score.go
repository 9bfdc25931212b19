package review

import "github.com/thomas-vilte/matereview/internal/models"

// Weights is the score policy: how much each stat moves the PR score. It is
// a value, not a law; callers can swap it without touching the formula.
type Weights struct {
	Added   float64
	Deleted float64
	Changed float64
	PerFile float64
}

// DefaultWeights favors added code over deleted code and penalizes changes
// that sprawl across many files.
var DefaultWeights = Weights{
	Added:   0.5,
	Deleted: 0.3,
	Changed: 0.2,
	PerFile: 5,
}

// Score computes the heuristic PR score. Pure and linear: the score of a sum
// of stats is the sum of their scores. The result may be negative; clamping
// happens only when rendering the visual bar.
func Score(stats models.DiffStats, weights Weights) float64 {
	return weights.Added*float64(stats.LinesAdded) +
		weights.Deleted*float64(stats.LinesDeleted) +
		weights.Changed*float64(stats.LinesChanged) -
		weights.PerFile*float64(stats.FilesChanged)
}

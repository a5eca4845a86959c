package algorithms

import (
	"fmt"
	"math"
)

// Weights holds the relative importance of each component. A normalized
// Weights sums to exactly 1.0, which guarantees Overall stays in [0,1].
type Weights struct {
	Compliance     float64
	Skills         float64
	Experience     float64
	Trust          float64
	Rate           float64
	Availability   float64
	SuccessHistory float64
	Responsiveness float64
}

// DefaultWeights is the baseline table. Missing override entries fall back
// to these values before normalization.
var DefaultWeights = Weights{
	Compliance:     0.15,
	Skills:         0.25,
	Experience:     0.12,
	Trust:          0.10,
	Rate:           0.13,
	Availability:   0.10,
	SuccessHistory: 0.10,
	Responsiveness: 0.05,
}

// Sum of all eight weights.
func (w Weights) Sum() float64 {
	return w.Compliance + w.Skills + w.Experience + w.Trust +
		w.Rate + w.Availability + w.SuccessHistory + w.Responsiveness
}

// Of returns the weight for the named component.
func (w Weights) Of(name string) float64 {
	switch name {
	case ComponentCompliance:
		return w.Compliance
	case ComponentSkills:
		return w.Skills
	case ComponentExperience:
		return w.Experience
	case ComponentTrust:
		return w.Trust
	case ComponentRate:
		return w.Rate
	case ComponentAvailability:
		return w.Availability
	case ComponentSuccessHistory:
		return w.SuccessHistory
	case ComponentResponsiveness:
		return w.Responsiveness
	}
	return 0
}

func (w *Weights) set(name string, value float64) {
	switch name {
	case ComponentCompliance:
		w.Compliance = value
	case ComponentSkills:
		w.Skills = value
	case ComponentExperience:
		w.Experience = value
	case ComponentTrust:
		w.Trust = value
	case ComponentRate:
		w.Rate = value
	case ComponentAvailability:
		w.Availability = value
	case ComponentSuccessHistory:
		w.SuccessHistory = value
	case ComponentResponsiveness:
		w.Responsiveness = value
	}
}

func (w Weights) scale(factor float64) Weights {
	return Weights{
		Compliance:     w.Compliance * factor,
		Skills:         w.Skills * factor,
		Experience:     w.Experience * factor,
		Trust:          w.Trust * factor,
		Rate:           w.Rate * factor,
		Availability:   w.Availability * factor,
		SuccessHistory: w.SuccessHistory * factor,
		Responsiveness: w.Responsiveness * factor,
	}
}

// NormalizeWeights builds a normalized weight table from a partial override
// map. Unknown keys and negative values are rejected so callers can surface
// them as invalid criteria. An all-zero table falls back entirely to the
// defaults rather than dividing by zero.
func NormalizeWeights(overrides map[string]float64) (Weights, error) {
	known := make(map[string]bool, len(ComponentNames))
	for _, name := range ComponentNames {
		known[name] = true
	}

	w := DefaultWeights
	for key, value := range overrides {
		if !known[key] {
			return Weights{}, fmt.Errorf("unknown weight key %q", key)
		}
		if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			return Weights{}, fmt.Errorf("weight %q must be a non-negative number", key)
		}
		w.set(key, value)
	}

	sum := w.Sum()
	if sum == 0 {
		w = DefaultWeights
		sum = w.Sum()
	}
	return w.scale(1 / sum), nil
}

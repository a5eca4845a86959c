package algorithms

import (
	"fmt"
	"strings"
	"time"

	"smartmatch_backend/internal/models"
)

// Explanation thresholds, relative to the unweighted component score.
const (
	boostThreshold   = 0.8
	warningThreshold = 0.25
)

// Score runs all eight component scorers for one candidate, applies the
// normalized weights, and renders explanations. Deterministic given the
// same inputs: components are walked in fixed order and nothing random
// enters the pipeline.
func Score(candidate *Candidate, criteria *models.MatchingCriteria, weights Weights, now time.Time) *MatchScoreBreakdown {
	breakdown := &MatchScoreBreakdown{
		Compliance:     weighted(ScoreCompliance(candidate.Profile, criteria, now), weights.Compliance),
		Skills:         weighted(ScoreSkills(candidate, criteria), weights.Skills),
		Experience:     weighted(ScoreExperience(candidate.Profile, criteria), weights.Experience),
		Trust:          weighted(ScoreTrust(candidate.Profile, criteria), weights.Trust),
		Rate:           weighted(ScoreRate(candidate, criteria), weights.Rate),
		Availability:   weighted(ScoreAvailability(candidate, criteria), weights.Availability),
		SuccessHistory: weighted(ScoreSuccessHistory(candidate.Profile), weights.SuccessHistory),
		Responsiveness: weighted(ScoreResponsiveness(candidate.Pattern), weights.Responsiveness),
		Explanations:   []string{},
		Warnings:       []string{},
		Boosts:         []string{},
	}

	breakdown.Overall = CalculateOverallScore(breakdown)
	generateExplanations(breakdown, candidate, criteria, now)
	return breakdown
}

// CalculateOverallScore sums the weighted component values. For normalized
// weights the result lies in [0,1] by construction; no further
// normalization is applied.
func CalculateOverallScore(b *MatchScoreBreakdown) float64 {
	overall := 0.0
	for _, name := range ComponentNames {
		overall += b.Component(name).Weighted
	}
	return overall
}

func weighted(score ComponentScore, weight float64) ComponentScore {
	score.Score = clamp01(score.Score)
	score.Weight = clamp01(weight)
	score.Weighted = score.Score * score.Weight
	return score
}

var componentLabels = map[string]string{
	ComponentCompliance:     "compliance",
	ComponentSkills:         "skill coverage",
	ComponentExperience:     "experience fit",
	ComponentTrust:          "trust",
	ComponentRate:           "rate fit",
	ComponentAvailability:   "availability",
	ComponentSuccessHistory: "track record",
	ComponentResponsiveness: "responsiveness",
}

// generateExplanations is rule-based and deterministic: fixed component
// order, fixed thresholds, and messages that reference the concrete
// criterion instead of a generic verdict.
func generateExplanations(b *MatchScoreBreakdown, candidate *Candidate, criteria *models.MatchingCriteria, now time.Time) {
	for _, name := range ComponentNames {
		comp := b.Component(name)
		if comp.Weight == 0 {
			continue
		}
		if comp.Explanation != "" {
			b.Explanations = append(b.Explanations, componentLabels[name]+": "+comp.Explanation)
		}
		if comp.Score >= boostThreshold {
			b.Boosts = append(b.Boosts, "strong "+componentLabels[name]+": "+comp.Explanation)
		} else if comp.Score <= warningThreshold {
			b.Warnings = append(b.Warnings, "weak "+componentLabels[name]+": "+comp.Explanation)
		}
	}

	// Soft compliance warning: requirements met now but expiring soon.
	if len(criteria.RequiredCompliance) > 0 {
		status := EvaluateCompliance(candidate.Profile, criteria.RequiredCompliance, now)
		if len(status.ExpiringWithin30Days) > 0 {
			b.Warnings = append(b.Warnings,
				fmt.Sprintf("compliance expiring within 30 days: %s",
					strings.Join(status.ExpiringWithin30Days, ", ")))
		}
	}
}

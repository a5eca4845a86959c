package algorithms

import (
	"smartmatch_backend/internal/models"
)

// Component names, used as weight-override keys and as match-factor keys in
// the learning ledger.
const (
	ComponentCompliance     = "compliance"
	ComponentSkills         = "skills"
	ComponentExperience     = "experience"
	ComponentTrust          = "trust"
	ComponentRate           = "rate"
	ComponentAvailability   = "availability"
	ComponentSuccessHistory = "success_history"
	ComponentResponsiveness = "responsiveness"
)

// ComponentNames in the fixed order scoring and explanation generation walk
// them. Order is part of the output contract.
var ComponentNames = []string{
	ComponentCompliance,
	ComponentSkills,
	ComponentExperience,
	ComponentTrust,
	ComponentRate,
	ComponentAvailability,
	ComponentSuccessHistory,
	ComponentResponsiveness,
}

// ComponentScore is one dimension of a match. Score and Weight are always
// in [0,1]; Weighted is always their product.
type ComponentScore struct {
	Score       float64 `json:"score"`
	Weight      float64 `json:"weight"`
	Weighted    float64 `json:"weighted"`
	Explanation string  `json:"explanation,omitempty"`
}

// MatchScoreBreakdown is the full scored view of one candidate. Overall is
// the sum of the eight weighted values and lies in [0,1] for normalized
// weights.
type MatchScoreBreakdown struct {
	Compliance     ComponentScore `json:"compliance"`
	Skills         ComponentScore `json:"skills"`
	Experience     ComponentScore `json:"experience"`
	Trust          ComponentScore `json:"trust"`
	Rate           ComponentScore `json:"rate"`
	Availability   ComponentScore `json:"availability"`
	SuccessHistory ComponentScore `json:"success_history"`
	Responsiveness ComponentScore `json:"responsiveness"`

	Overall float64 `json:"overall"`

	Explanations []string `json:"explanations"`
	Warnings     []string `json:"warnings"`
	Boosts       []string `json:"boosts"`
}

// Component returns the named component score. Unknown names return a zero
// value; callers pass the ComponentNames constants.
func (b *MatchScoreBreakdown) Component(name string) ComponentScore {
	switch name {
	case ComponentCompliance:
		return b.Compliance
	case ComponentSkills:
		return b.Skills
	case ComponentExperience:
		return b.Experience
	case ComponentTrust:
		return b.Trust
	case ComponentRate:
		return b.Rate
	case ComponentAvailability:
		return b.Availability
	case ComponentSuccessHistory:
		return b.SuccessHistory
	case ComponentResponsiveness:
		return b.Responsiveness
	}
	return ComponentScore{}
}

// Factors flattens the breakdown into the component→weighted map stored on
// learning-ledger rows.
func (b *MatchScoreBreakdown) Factors() map[string]float64 {
	factors := make(map[string]float64, len(ComponentNames))
	for _, name := range ComponentNames {
		factors[name] = b.Component(name).Weighted
	}
	return factors
}

// ComplianceStatus partitions the criteria's required-compliance list
// against a candidate's records at evaluation time. Recomputed per request,
// never persisted.
type ComplianceStatus struct {
	Met                  []string `json:"met"`
	Missing              []string `json:"missing"`
	ExpiringWithin30Days []string `json:"expiring_within_30_days"`
}

// Candidate is the assembled, read-only scoring input for one freelancer.
// The gateway builds it in one place; every map key is lowercased.
type Candidate struct {
	Profile *models.FreelancerProfile

	// Pattern may be nil; availability and responsiveness degrade to
	// neutral scores.
	Pattern *models.WorkPattern

	// Endorsements maps lowercased skill to endorsement count.
	Endorsements map[string]int

	// RelatedSkills maps each lowercased required skill to the graph edges
	// that could substitute for it.
	RelatedSkills map[string][]models.SkillRelationship

	// MarketRate may be nil or stale-filtered; rate scoring falls back to
	// budget-only.
	MarketRate *models.MarketRate
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package models

import (
	"fmt"
	"time"
)

// MatchingCriteria is the client's hiring requirements for one match
// request. It is a plain value object: immutable for the duration of the
// request, snapshotted into the learning ledger, never persisted on its own.
type MatchingCriteria struct {
	RequiredSkills []string `json:"required_skills"`

	RequiredCompliance  []string `json:"required_compliance,omitempty"`
	PreferredCompliance []string `json:"preferred_compliance,omitempty"`
	RequiredClearance   string   `json:"required_clearance,omitempty"`

	ExperienceLevel ExperienceLevel `json:"experience_level,omitempty"`

	BudgetMin *float64 `json:"budget_min,omitempty"`
	BudgetMax *float64 `json:"budget_max,omitempty"`

	MinTrustScore *float64 `json:"min_trust_score,omitempty"`

	StartDate    *time.Time `json:"start_date,omitempty"`
	HoursPerWeek *int       `json:"hours_per_week,omitempty"`

	// TimezoneOffset is the client's offset in minutes east of UTC.
	TimezoneOffset *int `json:"timezone_offset,omitempty"`

	PreferredDuration EngagementDuration `json:"preferred_duration,omitempty"`

	ExcludeUserIDs []string `json:"exclude_user_ids,omitempty"`
	ProjectID      *string  `json:"project_id,omitempty"`

	// SkillCategory and Region narrow the market-rate lookup. Empty values
	// fall back to the candidate's own segment.
	SkillCategory string `json:"skill_category,omitempty"`
	Region        string `json:"region,omitempty"`
}

// Validate rejects structurally invalid criteria before any data is fetched.
// An empty skill list is allowed; inverted budget bounds are not.
func (c *MatchingCriteria) Validate() error {
	if c.BudgetMin != nil && c.BudgetMax != nil && *c.BudgetMin > *c.BudgetMax {
		return fmt.Errorf("budget_min (%.2f) exceeds budget_max (%.2f)", *c.BudgetMin, *c.BudgetMax)
	}
	if c.ExperienceLevel != "" {
		found := false
		for _, lvl := range AllExperienceLevels {
			if lvl == c.ExperienceLevel {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown experience_level %q", c.ExperienceLevel)
		}
	}
	return nil
}

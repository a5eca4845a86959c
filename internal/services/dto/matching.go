package dto

import (
	"smartmatch_backend/internal/algorithms"
	"smartmatch_backend/internal/models"
)

// FindMatchesRequest is the body of POST /matching/search. Criteria may be
// entirely empty: no skills and no bounds means "rank everyone available".
type FindMatchesRequest struct {
	Criteria models.MatchingCriteria `json:"criteria"`

	// Weights overrides the default component weights. Keys must be known
	// component names; values are renormalized to sum to 1.
	Weights map[string]float64 `json:"weights,omitempty"`

	Page   int    `json:"page,omitempty" binding:"omitempty,min=1"`
	Limit  int    `json:"limit,omitempty" binding:"omitempty,min=1,max=100"`
	SortBy string `json:"sort_by,omitempty" validate:"omitempty,is-sort-key"`
}

// ScoreRequest is the body of a single-candidate score call.
type ScoreRequest struct {
	Criteria models.MatchingCriteria `json:"criteria"`
	Weights  map[string]float64      `json:"weights,omitempty"`
}

// CandidateSummary is the profile slice exposed in ranked results.
type CandidateSummary struct {
	FreelancerID    string                   `json:"freelancer_id"`
	UserID          string                   `json:"user_id"`
	Name            string                   `json:"name"`
	PrimarySkill    string                   `json:"primary_skill"`
	Skills          []string                 `json:"skills"`
	Region          string                   `json:"region,omitempty"`
	YearsExperience int                      `json:"years_experience"`
	HourlyRate      float64                  `json:"hourly_rate,omitempty"`
	TrustScore      float64                  `json:"trust_score"`
	Verification    models.VerificationLevel `json:"verification_level"`
	AverageRating   float64                  `json:"average_rating"`
	ReviewCount     int                      `json:"review_count"`
}

// MatchedFreelancer is one ranked entry.
type MatchedFreelancer struct {
	Candidate  CandidateSummary               `json:"candidate"`
	Score      algorithms.MatchScoreBreakdown `json:"score"`
	Compliance algorithms.ComplianceStatus    `json:"compliance"`
	Rank       int                            `json:"rank"`
}

// MatchResponse is the paginated ranking for one search.
type MatchResponse struct {
	Matches  []MatchedFreelancer `json:"matches"`
	Total    int                 `json:"total"`
	SearchID string              `json:"search_id"`
	Page     int                 `json:"page"`
	Limit    int                 `json:"limit"`
}

// OutcomeRequest reports what happened after a match was shown.
type OutcomeRequest struct {
	Outcome                 models.MatchingOutcome `json:"outcome" binding:"required" validate:"required,is-outcome"`
	WasHired                *bool                  `json:"was_hired,omitempty"`
	ProjectSuccessful       *bool                  `json:"project_successful,omitempty"`
	ClientSatisfactionScore *float64               `json:"client_satisfaction_score,omitempty" binding:"omitempty,min=0,max=5"`
}

// RelatedSkill is one substitution edge in the related-skills response.
type RelatedSkill struct {
	Skill        string              `json:"skill"`
	RelationType models.RelationType `json:"relation_type"`
	Strength     float64             `json:"strength"`
}

// MarketRateResponse exposes a segment snapshot.
type MarketRateResponse struct {
	SkillCategory   string                 `json:"skill_category"`
	Region          string                 `json:"region,omitempty"`
	ExperienceLevel models.ExperienceLevel `json:"experience_level,omitempty"`
	P25             float64                `json:"p25"`
	Median          float64                `json:"median"`
	P75             float64                `json:"p75"`
	P90             float64                `json:"p90"`
	SampleSize      int                    `json:"sample_size"`
	ComputedAt      string                 `json:"computed_at"`
}

// UpdateWorkPatternRequest is the body of PUT /profiles/me/work-pattern.
type UpdateWorkPatternRequest struct {
	WeeklyHours           *int                        `json:"weekly_hours,omitempty" binding:"omitempty,min=0,max=168"`
	WorkStartHour         *int                        `json:"work_start_hour,omitempty" binding:"omitempty,min=0,max=23"`
	WorkEndHour           *int                        `json:"work_end_hour,omitempty" binding:"omitempty,min=0,max=23"`
	TimezoneOffset        *int                        `json:"timezone_offset,omitempty" binding:"omitempty,min=-720,max=840"`
	BudgetMin             *float64                    `json:"budget_min,omitempty" binding:"omitempty,min=0"`
	BudgetMax             *float64                    `json:"budget_max,omitempty" binding:"omitempty,min=0"`
	PreferredDurations    []models.EngagementDuration `json:"preferred_durations,omitempty" validate:"omitempty,dive,is-duration"`
	MaxConcurrentProjects *int                        `json:"max_concurrent_projects,omitempty" binding:"omitempty,min=0"`
	UnavailablePeriods    []models.UnavailablePeriod  `json:"unavailable_periods,omitempty"`
}

// EndorseSkillRequest is the body of POST /profiles/:freelancerId/endorsements.
type EndorseSkillRequest struct {
	Skill string `json:"skill" binding:"required,min=1,max=100"`
}

package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// MatchingEvent is one append-only row of the learning ledger: a candidate
// shown in a ranking, later annotated (at most once) with the real-world
// outcome by a downstream flow. The orchestrator only ever creates rows.
type MatchingEvent struct {
	BaseModel
	EventType    MatchingEventType `gorm:"index" json:"event_type"`
	ClientID     string            `gorm:"type:uuid;index" json:"client_id"`
	FreelancerID string            `gorm:"type:uuid;index" json:"freelancer_id"`
	ProjectID    *string           `gorm:"type:uuid" json:"project_id,omitempty"`

	SearchID   string   `gorm:"type:uuid;index" json:"search_id"`
	MatchScore *float64 `json:"match_score,omitempty"`
	MatchRank  *int     `json:"match_rank,omitempty"`

	// MatchFactors maps component name to its weighted contribution.
	MatchFactors   datatypes.JSON `json:"match_factors"`
	SearchCriteria datatypes.JSON `json:"search_criteria"`

	// Outcome fields are written exactly once by the outcome-reporting flow.
	Outcome                 *MatchingOutcome `json:"outcome,omitempty"`
	WasHired                *bool            `json:"was_hired,omitempty"`
	ProjectSuccessful       *bool            `json:"project_successful,omitempty"`
	ClientSatisfactionScore *float64         `json:"client_satisfaction_score,omitempty"`
	OutcomeAt               *time.Time       `json:"outcome_at,omitempty"`
}

// SetMatchFactors encodes the component→weighted map into the JSON column.
func (e *MatchingEvent) SetMatchFactors(factors map[string]float64) {
	data, _ := json.Marshal(factors)
	e.MatchFactors = datatypes.JSON(data)
}

// SetSearchCriteria snapshots the criteria the ranking was produced for.
func (e *MatchingEvent) SetSearchCriteria(criteria *MatchingCriteria) {
	data, _ := json.Marshal(criteria)
	e.SearchCriteria = datatypes.JSON(data)
}

package models

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

// FreelancerProfile is the read-only candidate snapshot the matching engine
// scores against. It is assembled once at the gateway boundary; scoring code
// never reaches back into the database.
type FreelancerProfile struct {
	BaseModel
	UserID string `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	Name   string `json:"name"`

	Skills        pq.StringArray `gorm:"type:text[]" json:"skills"`
	PrimarySkill  string         `json:"primary_skill"`
	SkillCategory string         `json:"skill_category"`
	Region        string         `json:"region"`

	YearsExperience      int     `json:"years_experience"`
	CompletedEngagements int     `json:"completed_engagements"`
	CancelledEngagements int     `json:"cancelled_engagements"`
	RepeatClientRate     float64 `json:"repeat_client_rate"` // 0..1

	AverageRating float64 `json:"average_rating"` // 0..5
	ReviewCount   int     `json:"review_count"`

	VerificationLevel VerificationLevel `gorm:"default:none" json:"verification_level"`
	TrustScore        float64           `json:"trust_score"` // 0..100

	// HourlyRate of 0 means the freelancer has not stated a rate.
	HourlyRate float64 `json:"hourly_rate"`

	ClearanceLevels pq.StringArray `gorm:"type:text[]" json:"clearance_levels"`

	Compliance []ComplianceRecord `gorm:"foreignKey:FreelancerID" json:"compliance,omitempty"`

	IsAvailableForWork bool `gorm:"default:true" json:"is_available_for_work"`
}

// HasSkill reports whether the profile lists the skill, case-insensitively.
func (p *FreelancerProfile) HasSkill(skill string) bool {
	for _, s := range p.Skills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}

// HasClearance reports whether the profile holds the clearance level.
func (p *FreelancerProfile) HasClearance(level string) bool {
	for _, c := range p.ClearanceLevels {
		if strings.EqualFold(c, level) {
			return true
		}
	}
	return false
}

// ComplianceRecord is one certification/credential held by a freelancer.
// A nil ExpiresAt means the record does not expire.
type ComplianceRecord struct {
	BaseModel
	FreelancerID string     `gorm:"type:uuid;index" json:"freelancer_id"`
	Type         string     `gorm:"index" json:"type"`
	IssuedAt     *time.Time `json:"issued_at,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

func (c *ComplianceRecord) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// ExpiresWithin reports whether the record expires inside the window starting
// at now. Already-expired records return false; they are "missing", not
// "expiring".
func (c *ComplianceRecord) ExpiresWithin(now time.Time, window time.Duration) bool {
	if c.ExpiresAt == nil || c.IsExpired(now) {
		return false
	}
	return c.ExpiresAt.Before(now.Add(window))
}

package models

import "time"

// MarketRate is a percentile snapshot of hourly rates for one
// skill-category/region/experience-level segment. Rows are produced by an
// external aggregation job; this engine only reads them, and tolerates their
// absence.
type MarketRate struct {
	BaseModel
	SkillCategory   string          `gorm:"index:idx_rate_segment" json:"skill_category"`
	Region          string          `gorm:"index:idx_rate_segment" json:"region"`
	ExperienceLevel ExperienceLevel `gorm:"index:idx_rate_segment" json:"experience_level"`

	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`

	SampleSize int       `json:"sample_size"`
	ComputedAt time.Time `json:"computed_at"`
}

// IsFresh reports whether the snapshot is recent enough to use. Stale rows
// are treated as "no market data".
func (m *MarketRate) IsFresh(now time.Time, window time.Duration) bool {
	return now.Sub(m.ComputedAt) <= window
}

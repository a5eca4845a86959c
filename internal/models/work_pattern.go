package models

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// UnavailablePeriod is a declared date range during which a freelancer does
// not accept new work. Stored as part of the work pattern's JSON column.
type UnavailablePeriod struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (p UnavailablePeriod) Contains(t time.Time) bool {
	return !t.Before(p.From) && !t.After(p.To)
}

// WorkPattern describes when and how much a freelancer works. One row per
// user; absent rows degrade availability scoring to neutral.
type WorkPattern struct {
	BaseModel
	UserID string `gorm:"type:uuid;uniqueIndex" json:"user_id"`

	WeeklyHours    int            `json:"weekly_hours"`
	PreferredHours int            `json:"preferred_hours"`
	WorkingDays    pq.StringArray `gorm:"type:text[]" json:"working_days"`

	// Local working window, hours 0-23.
	WorkStartHour int `json:"work_start_hour"`
	WorkEndHour   int `json:"work_end_hour"`

	// TimezoneOffset is minutes east of UTC.
	TimezoneOffset int `json:"timezone_offset"`

	BudgetMin float64 `json:"budget_min"`
	BudgetMax float64 `json:"budget_max"`

	PreferredDurations pq.StringArray `gorm:"type:text[]" json:"preferred_durations"`

	CurrentActiveProjects int `json:"current_active_projects"`
	MaxConcurrentProjects int `json:"max_concurrent_projects"`

	UnavailablePeriods datatypes.JSON `json:"unavailable_periods"`

	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
	LastBidAt    *time.Time `json:"last_bid_at,omitempty"`

	// Zero means no data; responsiveness scoring treats it as unknown.
	AvgResponseSeconds int `json:"avg_response_seconds"`
	AvgFirstBidSeconds int `json:"avg_first_bid_seconds"`
}

// GetUnavailablePeriods decodes the JSON column. Malformed data yields an
// empty slice rather than an error: scoring must stay total.
func (w *WorkPattern) GetUnavailablePeriods() []UnavailablePeriod {
	var periods []UnavailablePeriod
	if len(w.UnavailablePeriods) > 0 {
		json.Unmarshal(w.UnavailablePeriods, &periods)
	}
	return periods
}

func (w *WorkPattern) SetUnavailablePeriods(periods []UnavailablePeriod) {
	if len(periods) == 0 {
		w.UnavailablePeriods = datatypes.JSON("[]")
		return
	}
	data, _ := json.Marshal(periods)
	w.UnavailablePeriods = datatypes.JSON(data)
}

// HasConcurrencyHeadroom reports whether the freelancer can take on another
// engagement. A zero max is treated as "no declared limit".
func (w *WorkPattern) HasConcurrencyHeadroom() bool {
	if w.MaxConcurrentProjects <= 0 {
		return true
	}
	return w.CurrentActiveProjects < w.MaxConcurrentProjects
}

// IsUnavailableAt reports whether t falls inside any declared unavailable
// period.
func (w *WorkPattern) IsUnavailableAt(t time.Time) bool {
	for _, p := range w.GetUnavailablePeriods() {
		if p.Contains(t) {
			return true
		}
	}
	return false
}

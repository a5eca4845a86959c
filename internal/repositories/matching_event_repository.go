package repositories

import (
	"errors"
	"time"

	"smartmatch_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrMatchingEventNotFound = errors.New("matching event not found")
)

// OutcomeUpdate carries the observed result of a surfaced match.
type OutcomeUpdate struct {
	Outcome                 models.MatchingOutcome
	WasHired                *bool
	ProjectSuccessful       *bool
	ClientSatisfactionScore *float64
}

type MatchingEventRepository interface {
	Create(events []models.MatchingEvent) error
	FindByID(id string) (*models.MatchingEvent, error)
	UpdateOutcome(eventID string, update OutcomeUpdate) error
}

type MatchingEventRepositoryImpl struct {
	db *gorm.DB
}

func NewMatchingEventRepository(db *gorm.DB) MatchingEventRepository {
	return &MatchingEventRepositoryImpl{db: db}
}

func (r *MatchingEventRepositoryImpl) Create(events []models.MatchingEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.Create(&events).Error
}

func (r *MatchingEventRepositoryImpl) FindByID(id string) (*models.MatchingEvent, error) {
	var event models.MatchingEvent
	err := r.db.First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchingEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// UpdateOutcome records the outcome once: the first write wins, repeat calls
// are accepted without touching the stored row.
func (r *MatchingEventRepositoryImpl) UpdateOutcome(eventID string, update OutcomeUpdate) error {
	var event models.MatchingEvent
	err := r.db.First(&event, "id = ?", eventID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMatchingEventNotFound
		}
		return err
	}

	now := time.Now().UTC()
	return r.db.Model(&models.MatchingEvent{}).
		Where("id = ? AND outcome_at IS NULL", eventID).
		Updates(map[string]interface{}{
			"outcome":                   update.Outcome,
			"was_hired":                 update.WasHired,
			"project_successful":        update.ProjectSuccessful,
			"client_satisfaction_score": update.ClientSatisfactionScore,
			"outcome_at":                now,
		}).Error
}

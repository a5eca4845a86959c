package repositories

import (
	"errors"

	"smartmatch_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrWorkPatternNotFound = errors.New("work pattern not found")
)

type WorkPatternRepository interface {
	FindByUserID(userID string) (*models.WorkPattern, error)
	FindByUserIDs(userIDs []string) (map[string]*models.WorkPattern, error)
	Upsert(pattern *models.WorkPattern) error
}

type WorkPatternRepositoryImpl struct {
	db *gorm.DB
}

func NewWorkPatternRepository(db *gorm.DB) WorkPatternRepository {
	return &WorkPatternRepositoryImpl{db: db}
}

func (r *WorkPatternRepositoryImpl) FindByUserID(userID string) (*models.WorkPattern, error) {
	var pattern models.WorkPattern
	err := r.db.Where("user_id = ?", userID).First(&pattern).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkPatternNotFound
		}
		return nil, err
	}
	return &pattern, nil
}

// FindByUserIDs batches the pool's work patterns into one query, keyed by
// user id. Users without a pattern are simply absent from the map.
func (r *WorkPatternRepositoryImpl) FindByUserIDs(userIDs []string) (map[string]*models.WorkPattern, error) {
	result := make(map[string]*models.WorkPattern, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var patterns []models.WorkPattern
	if err := r.db.Where("user_id IN ?", userIDs).Find(&patterns).Error; err != nil {
		return nil, err
	}
	for i := range patterns {
		result[patterns[i].UserID] = &patterns[i]
	}
	return result, nil
}

func (r *WorkPatternRepositoryImpl) Upsert(pattern *models.WorkPattern) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(pattern).Error
}

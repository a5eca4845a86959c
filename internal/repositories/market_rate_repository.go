package repositories

import (
	"errors"

	"smartmatch_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrMarketRateNotFound = errors.New("market rate not found")
)

type MarketRateRepository interface {
	FindLatest(skillCategory, region string, level models.ExperienceLevel) (*models.MarketRate, error)
}

type MarketRateRepositoryImpl struct {
	db *gorm.DB
}

func NewMarketRateRepository(db *gorm.DB) MarketRateRepository {
	return &MarketRateRepositoryImpl{db: db}
}

// FindLatest returns the most recent snapshot for the segment. Region and
// experience level are optional narrowings; the widest match wins when they
// are empty.
func (r *MarketRateRepositoryImpl) FindLatest(skillCategory, region string, level models.ExperienceLevel) (*models.MarketRate, error) {
	query := r.db.Where("LOWER(skill_category) = LOWER(?)", skillCategory)
	if region != "" {
		query = query.Where("LOWER(region) = LOWER(?)", region)
	}
	if level != "" {
		query = query.Where("experience_level = ?", level)
	}

	var rate models.MarketRate
	err := query.Order("computed_at DESC").First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMarketRateNotFound
		}
		return nil, err
	}
	return &rate, nil
}

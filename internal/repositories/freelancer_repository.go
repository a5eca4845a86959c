package repositories

import (
	"errors"
	"strings"

	"smartmatch_backend/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrFreelancerNotFound = errors.New("freelancer profile not found")
)

// MatchingPoolCriteria narrows the candidate pool fetch. Skill filtering
// here is a coarse pre-filter (candidate holds at least one of the listed
// skills); fine-grained scoring happens in the algorithms package.
type MatchingPoolCriteria struct {
	Skills         []string
	ExcludeUserIDs []string
	OnlyAvailable  bool
	Limit          int
	Offset         int
}

type FreelancerRepository interface {
	FindByID(id string) (*models.FreelancerProfile, error)
	FindByUserID(userID string) (*models.FreelancerProfile, error)
	FindForMatching(criteria MatchingPoolCriteria) ([]models.FreelancerProfile, int64, error)
	Create(profile *models.FreelancerProfile) error
	Update(profile *models.FreelancerProfile) error
}

type FreelancerRepositoryImpl struct {
	db *gorm.DB
}

func NewFreelancerRepository(db *gorm.DB) FreelancerRepository {
	return &FreelancerRepositoryImpl{db: db}
}

func (r *FreelancerRepositoryImpl) FindByID(id string) (*models.FreelancerProfile, error) {
	var profile models.FreelancerProfile
	err := r.db.Preload("Compliance").First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFreelancerNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *FreelancerRepositoryImpl) FindByUserID(userID string) (*models.FreelancerProfile, error) {
	var profile models.FreelancerProfile
	err := r.db.Preload("Compliance").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFreelancerNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// FindForMatching fetches the bounded candidate pool in one query,
// compliance records preloaded. Ordered by id so repeated fetches over
// unchanged data return identical pools.
func (r *FreelancerRepositoryImpl) FindForMatching(criteria MatchingPoolCriteria) ([]models.FreelancerProfile, int64, error) {
	query := r.db.Model(&models.FreelancerProfile{})

	if criteria.OnlyAvailable {
		query = query.Where("is_available_for_work = ?", true)
	}
	if len(criteria.ExcludeUserIDs) > 0 {
		query = query.Where("user_id NOT IN ?", criteria.ExcludeUserIDs)
	}
	if len(criteria.Skills) > 0 {
		// Case-insensitive overlap against the text[] column: at least one
		// requested skill, however the profile cased it.
		query = query.Where(
			"EXISTS (SELECT 1 FROM unnest(skills) AS skill WHERE LOWER(skill) = ANY(?))",
			pq.StringArray(lowerAll(criteria.Skills)),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []models.FreelancerProfile
	err := query.
		Preload("Compliance").
		Order("id ASC").
		Limit(criteria.Limit).
		Offset(criteria.Offset).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

func lowerAll(values []string) []string {
	lowered := make([]string, len(values))
	for i, v := range values {
		lowered[i] = strings.ToLower(v)
	}
	return lowered
}

func (r *FreelancerRepositoryImpl) Create(profile *models.FreelancerProfile) error {
	return r.db.Create(profile).Error
}

func (r *FreelancerRepositoryImpl) Update(profile *models.FreelancerProfile) error {
	return r.db.Save(profile).Error
}

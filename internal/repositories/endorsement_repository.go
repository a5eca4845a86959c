package repositories

import (
	"strings"

	"smartmatch_backend/internal/models"

	"gorm.io/gorm"
)

type EndorsementRepository interface {
	Create(endorsement *models.SkillEndorsement) error
	Exists(freelancerID, skill, endorserID string) (bool, error)
	CountBySkill(freelancerID string) (map[string]int, error)
	CountByFreelancerIDs(freelancerIDs []string) (map[string]map[string]int, error)
}

type EndorsementRepositoryImpl struct {
	db *gorm.DB
}

func NewEndorsementRepository(db *gorm.DB) EndorsementRepository {
	return &EndorsementRepositoryImpl{db: db}
}

func (r *EndorsementRepositoryImpl) Create(endorsement *models.SkillEndorsement) error {
	return r.db.Create(endorsement).Error
}

func (r *EndorsementRepositoryImpl) Exists(freelancerID, skill, endorserID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.SkillEndorsement{}).
		Where("freelancer_id = ? AND LOWER(skill) = ? AND endorser_id = ?",
			freelancerID, strings.ToLower(skill), endorserID).
		Count(&count).Error
	return count > 0, err
}

type endorsementCount struct {
	FreelancerID string
	Skill        string
	Count        int
}

func (r *EndorsementRepositoryImpl) CountBySkill(freelancerID string) (map[string]int, error) {
	grouped, err := r.CountByFreelancerIDs([]string{freelancerID})
	if err != nil {
		return nil, err
	}
	counts := grouped[freelancerID]
	if counts == nil {
		counts = map[string]int{}
	}
	return counts, nil
}

// CountByFreelancerIDs batches endorsement counts for the whole pool into
// one grouped query: freelancer id → lowercased skill → count.
func (r *EndorsementRepositoryImpl) CountByFreelancerIDs(freelancerIDs []string) (map[string]map[string]int, error) {
	result := make(map[string]map[string]int, len(freelancerIDs))
	if len(freelancerIDs) == 0 {
		return result, nil
	}

	var rows []endorsementCount
	err := r.db.Model(&models.SkillEndorsement{}).
		Select("freelancer_id, LOWER(skill) AS skill, COUNT(*) AS count").
		Where("freelancer_id IN ?", freelancerIDs).
		Group("freelancer_id, LOWER(skill)").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if result[row.FreelancerID] == nil {
			result[row.FreelancerID] = make(map[string]int)
		}
		result[row.FreelancerID][row.Skill] = row.Count
	}
	return result, nil
}

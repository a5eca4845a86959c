package repositories

import (
	"strings"

	"smartmatch_backend/internal/models"

	"gorm.io/gorm"
)

type SkillRelationshipRepository interface {
	FindRelated(skill string) ([]models.SkillRelationship, error)
	FindRelatedForSkills(skills []string) (map[string][]models.SkillRelationship, error)
}

type SkillRelationshipRepositoryImpl struct {
	db *gorm.DB
}

func NewSkillRelationshipRepository(db *gorm.DB) SkillRelationshipRepository {
	return &SkillRelationshipRepositoryImpl{db: db}
}

// FindRelated returns every edge touching the skill. Directionality is the
// caller's concern (SkillRelationship.Other).
func (r *SkillRelationshipRepositoryImpl) FindRelated(skill string) ([]models.SkillRelationship, error) {
	var relationships []models.SkillRelationship
	lowered := strings.ToLower(skill)
	err := r.db.
		Where("LOWER(skill_a) = ? OR LOWER(skill_b) = ?", lowered, lowered).
		Order("strength DESC").
		Find(&relationships).Error
	return relationships, err
}

// FindRelatedForSkills batches the relationship lookup for all required
// skills into one query, keyed by lowercased skill.
func (r *SkillRelationshipRepositoryImpl) FindRelatedForSkills(skills []string) (map[string][]models.SkillRelationship, error) {
	result := make(map[string][]models.SkillRelationship, len(skills))
	if len(skills) == 0 {
		return result, nil
	}

	lowered := make([]string, len(skills))
	for i, s := range skills {
		lowered[i] = strings.ToLower(s)
	}

	var relationships []models.SkillRelationship
	err := r.db.
		Where("LOWER(skill_a) IN ? OR LOWER(skill_b) IN ?", lowered, lowered).
		Find(&relationships).Error
	if err != nil {
		return nil, err
	}

	for _, rel := range relationships {
		a := strings.ToLower(rel.SkillA)
		b := strings.ToLower(rel.SkillB)
		for _, key := range lowered {
			if key == a || key == b {
				result[key] = append(result[key], rel)
			}
		}
	}
	return result, nil
}

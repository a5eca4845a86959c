package models

import "strings"

// SkillRelationship is one edge of the skill graph. It is consulted only as
// a fallback when a required skill is not held verbatim: a related held
// skill earns partial credit proportional to Strength.
type SkillRelationship struct {
	BaseModel
	SkillA        string       `gorm:"index:idx_skill_pair" json:"skill_a"`
	SkillB        string       `gorm:"index:idx_skill_pair" json:"skill_b"`
	RelationType  RelationType `json:"relation_type"`
	Strength      float64      `json:"strength"` // 0..1
	Bidirectional bool         `gorm:"default:true" json:"bidirectional"`
}

// Other returns the opposite endpoint of the edge relative to skill, and
// whether the edge applies in that direction. Non-bidirectional edges only
// apply from SkillA to SkillB.
func (r *SkillRelationship) Other(skill string) (string, bool) {
	if strings.EqualFold(r.SkillA, skill) {
		return r.SkillB, true
	}
	if strings.EqualFold(r.SkillB, skill) {
		return r.SkillA, r.Bidirectional
	}
	return "", false
}

// SkillEndorsement is one peer endorsement of a freelancer's skill.
type SkillEndorsement struct {
	BaseModel
	FreelancerID string `gorm:"type:uuid;uniqueIndex:idx_endorsement_unique" json:"freelancer_id"`
	Skill        string `gorm:"uniqueIndex:idx_endorsement_unique" json:"skill"`
	EndorserID   string `gorm:"type:uuid;uniqueIndex:idx_endorsement_unique" json:"endorser_id"`
}

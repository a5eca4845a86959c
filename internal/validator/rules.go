package validator

import (
	"log"

	"smartmatch_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the domain validation tags. Empty values pass
// every rule; 'required' handles presence.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that cannot register is a startup defect.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-experience-level", validateExperienceLevel)
	mustRegister("is-sort-key", validateSortKey)
	mustRegister("is-duration", validateDuration)
	mustRegister("is-outcome", validateOutcome)
	mustRegister("is-relation-type", validateRelationType)
}

func validateExperienceLevel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	for _, lvl := range models.AllExperienceLevels {
		if models.ExperienceLevel(value) == lvl {
			return true
		}
	}
	return false
}

func validateSortKey(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", models.SortByScore, models.SortByHourlyRate, models.SortByExperience:
		return true
	default:
		return false
	}
}

func validateDuration(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.EngagementDuration(value) {
	case models.DurationShortTerm, models.DurationLongTerm, models.DurationOngoing:
		return true
	default:
		return false
	}
}

func validateOutcome(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.MatchingOutcome(value).Valid()
}

func validateRelationType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.RelationType(value).Valid()
}

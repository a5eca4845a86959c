package models

// ExperienceLevel buckets used by both criteria and market-rate segments.
type ExperienceLevel string

const (
	ExperienceEntry        ExperienceLevel = "entry"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceSenior       ExperienceLevel = "senior"
	ExperienceExpert       ExperienceLevel = "expert"
)

// AllExperienceLevels is ordered from least to most experienced. The order
// matters: the experience scorer bands by distance between buckets.
var AllExperienceLevels = []ExperienceLevel{
	ExperienceEntry,
	ExperienceIntermediate,
	ExperienceSenior,
	ExperienceExpert,
}

// VerificationLevel of a freelancer account.
type VerificationLevel string

const (
	VerificationNone     VerificationLevel = "none"
	VerificationBasic    VerificationLevel = "basic"
	VerificationVerified VerificationLevel = "verified"
	VerificationPremium  VerificationLevel = "premium"
)

// RelationType between two skills in the relationship graph.
type RelationType string

const (
	RelationParentChild   RelationType = "PARENT_CHILD"
	RelationSibling       RelationType = "SIBLING"
	RelationComplementary RelationType = "COMPLEMENTARY"
	RelationPrerequisite  RelationType = "PREREQUISITE"
)

func (r RelationType) Valid() bool {
	switch r {
	case RelationParentChild, RelationSibling, RelationComplementary, RelationPrerequisite:
		return true
	}
	return false
}

// EngagementDuration preference.
type EngagementDuration string

const (
	DurationShortTerm EngagementDuration = "short_term"
	DurationLongTerm  EngagementDuration = "long_term"
	DurationOngoing   EngagementDuration = "ongoing"
)

// Matching event types written to the learning ledger.
type MatchingEventType string

const (
	EventMatchShown     MatchingEventType = "match_shown"
	EventMatchRequested MatchingEventType = "match_requested"
)

// Outcomes reported back to the ledger by the downstream outcome flow.
type MatchingOutcome string

const (
	OutcomeHired     MatchingOutcome = "hired"
	OutcomeContacted MatchingOutcome = "contacted"
	OutcomeIgnored   MatchingOutcome = "ignored"
	OutcomeDeclined  MatchingOutcome = "declined"
)

func (o MatchingOutcome) Valid() bool {
	switch o {
	case OutcomeHired, OutcomeContacted, OutcomeIgnored, OutcomeDeclined:
		return true
	}
	return false
}

// Sort keys accepted by FindMatches.
const (
	SortByScore      = "score"
	SortByHourlyRate = "hourly_rate"
	SortByExperience = "experience"
)

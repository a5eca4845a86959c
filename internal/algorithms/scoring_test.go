package algorithms

import (
	"testing"
	"time"

	"smartmatch_backend/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }
func ptrTime(t time.Time) *time.Time {
	return &t
}

func complianceRecord(typ string, expiresAt *time.Time) models.ComplianceRecord {
	return models.ComplianceRecord{Type: typ, ExpiresAt: expiresAt}
}

func TestEvaluateCompliance(t *testing.T) {
	profile := &models.FreelancerProfile{
		Compliance: []models.ComplianceRecord{
			complianceRecord("soc2", nil),
			complianceRecord("hipaa", ptrTime(testNow.Add(10*24*time.Hour))),
			complianceRecord("gdpr", ptrTime(testNow.Add(-time.Hour))),
		},
	}

	status := EvaluateCompliance(profile, []string{"SOC2", "HIPAA", "GDPR", "iso27001"}, testNow)

	assert.ElementsMatch(t, []string{"SOC2", "HIPAA"}, status.Met)
	assert.ElementsMatch(t, []string{"GDPR", "iso27001"}, status.Missing)
	assert.Equal(t, []string{"HIPAA"}, status.ExpiringWithin30Days)
}

func TestScoreCompliance(t *testing.T) {
	t.Run("no requirements score full", func(t *testing.T) {
		profile := &models.FreelancerProfile{}
		score := ScoreCompliance(profile, &models.MatchingCriteria{}, testNow)

		assert.Equal(t, 1.0, score.Score)
		assert.Equal(t, "no compliance requirements", score.Explanation)
	})

	t.Run("missing required zeroes the component", func(t *testing.T) {
		profile := &models.FreelancerProfile{
			Compliance: []models.ComplianceRecord{complianceRecord("soc2", nil)},
		}
		criteria := &models.MatchingCriteria{RequiredCompliance: []string{"soc2", "hipaa"}}

		score := ScoreCompliance(profile, criteria, testNow)

		assert.Zero(t, score.Score)
		assert.Contains(t, score.Explanation, "hipaa")
	})

	t.Run("expired record counts as missing", func(t *testing.T) {
		profile := &models.FreelancerProfile{
			Compliance: []models.ComplianceRecord{
				complianceRecord("soc2", ptrTime(testNow.Add(-24*time.Hour))),
			},
		}
		criteria := &models.MatchingCriteria{RequiredCompliance: []string{"soc2"}}

		score := ScoreCompliance(profile, criteria, testNow)
		assert.Zero(t, score.Score)
	})

	t.Run("missing clearance zeroes the component", func(t *testing.T) {
		profile := &models.FreelancerProfile{
			ClearanceLevels: pq.StringArray{"public-trust"},
		}
		criteria := &models.MatchingCriteria{RequiredClearance: "secret"}

		score := ScoreCompliance(profile, criteria, testNow)
		assert.Zero(t, score.Score)
	})

	t.Run("requirements met score full", func(t *testing.T) {
		profile := &models.FreelancerProfile{
			Compliance:      []models.ComplianceRecord{complianceRecord("SOC2", nil)},
			ClearanceLevels: pq.StringArray{"Secret"},
		}
		criteria := &models.MatchingCriteria{
			RequiredCompliance:  []string{"soc2"},
			RequiredClearance:   "secret",
			PreferredCompliance: []string{"iso27001"},
		}

		score := ScoreCompliance(profile, criteria, testNow)
		assert.Equal(t, 1.0, score.Score)
	})
}

func TestScoreSkills(t *testing.T) {
	t.Run("no requirements score full", func(t *testing.T) {
		c := &Candidate{Profile: &models.FreelancerProfile{}}
		score := ScoreSkills(c, &models.MatchingCriteria{})
		assert.Equal(t, 1.0, score.Score)
	})

	t.Run("all skills held verbatim score exactly one", func(t *testing.T) {
		c := &Candidate{Profile: &models.FreelancerProfile{
			Skills: pq.StringArray{"Go", "PostgreSQL", "Terraform"},
		}}
		criteria := &models.MatchingCriteria{RequiredSkills: []string{"go", "postgresql", "terraform"}}

		score := ScoreSkills(c, criteria)
		assert.InDelta(t, 1.0, score.Score, 1e-9)
		assert.Equal(t, "holds all required skills", score.Explanation)
	})

	t.Run("no skills held scores zero", func(t *testing.T) {
		c := &Candidate{Profile: &models.FreelancerProfile{Skills: pq.StringArray{"php"}}}
		criteria := &models.MatchingCriteria{RequiredSkills: []string{"go", "rust"}}

		score := ScoreSkills(c, criteria)
		assert.Zero(t, score.Score)
		assert.Contains(t, score.Explanation, "missing: go, rust")
	})

	t.Run("related skill earns partial credit", func(t *testing.T) {
		c := &Candidate{
			Profile: &models.FreelancerProfile{Skills: pq.StringArray{"docker"}},
			RelatedSkills: map[string][]models.SkillRelationship{
				"kubernetes": {
					{SkillA: "kubernetes", SkillB: "docker", RelationType: models.RelationComplementary, Strength: 0.4, Bidirectional: true},
				},
			},
		}
		criteria := &models.MatchingCriteria{RequiredSkills: []string{"kubernetes"}}

		score := ScoreSkills(c, criteria)
		assert.InDelta(t, 0.4, score.Score, 1e-9)
		assert.Contains(t, score.Explanation, "kubernetes (via docker)")
	})

	t.Run("strongest applicable edge wins", func(t *testing.T) {
		c := &Candidate{
			Profile: &models.FreelancerProfile{Skills: pq.StringArray{"docker", "helm"}},
			RelatedSkills: map[string][]models.SkillRelationship{
				"kubernetes": {
					{SkillA: "kubernetes", SkillB: "docker", Strength: 0.4, Bidirectional: true},
					{SkillA: "kubernetes", SkillB: "helm", Strength: 0.6, Bidirectional: true},
				},
			},
		}
		criteria := &models.MatchingCriteria{RequiredSkills: []string{"kubernetes"}}

		score := ScoreSkills(c, criteria)
		assert.InDelta(t, 0.6, score.Score, 1e-9)
		assert.Contains(t, score.Explanation, "via helm")
	})

	t.Run("non-bidirectional edge does not apply in reverse", func(t *testing.T) {
		c := &Candidate{
			Profile: &models.FreelancerProfile{Skills: pq.StringArray{"go"}},
			RelatedSkills: map[string][]models.SkillRelationship{
				"rust": {
					// Edge points rust→go only when read from SkillA.
					{SkillA: "go", SkillB: "rust", Strength: 0.5, Bidirectional: false},
				},
			},
		}
		criteria := &models.MatchingCriteria{RequiredSkills: []string{"rust"}}

		score := ScoreSkills(c, criteria)
		assert.Zero(t, score.Score)
	})

	t.Run("endorsement bonus is bounded by the skill share", func(t *testing.T) {
		c := &Candidate{
			Profile:      &models.FreelancerProfile{Skills: pq.StringArray{"go"}},
			Endorsements: map[string]int{"go": 10},
		}
		criteria := &models.MatchingCriteria{RequiredSkills: []string{"go", "rust"}}

		// go: share 0.5 + bonus min(10*0.005, 0.5*0.2) = 0.05; rust missing.
		score := ScoreSkills(c, criteria)
		assert.InDelta(t, 0.55, score.Score, 1e-9)
	})
}

func TestScoreExperience(t *testing.T) {
	t.Run("no requested level scores the neutral base", func(t *testing.T) {
		profile := &models.FreelancerProfile{YearsExperience: 3}
		score := ScoreExperience(profile, &models.MatchingCriteria{})
		assert.InDelta(t, 0.7, score.Score, 1e-9)
	})

	t.Run("matching bucket scores the top band", func(t *testing.T) {
		profile := &models.FreelancerProfile{YearsExperience: 6}
		criteria := &models.MatchingCriteria{ExperienceLevel: models.ExperienceSenior}

		score := ScoreExperience(profile, criteria)
		assert.InDelta(t, 0.9, score.Score, 1e-9)
	})

	t.Run("adjacent bucket scores the second band", func(t *testing.T) {
		profile := &models.FreelancerProfile{YearsExperience: 3}
		criteria := &models.MatchingCriteria{ExperienceLevel: models.ExperienceSenior}

		score := ScoreExperience(profile, criteria)
		assert.InDelta(t, 0.6, score.Score, 1e-9)
	})

	t.Run("distant bucket scores the bottom band", func(t *testing.T) {
		profile := &models.FreelancerProfile{YearsExperience: 0}
		criteria := &models.MatchingCriteria{ExperienceLevel: models.ExperienceExpert}

		score := ScoreExperience(profile, criteria)
		assert.InDelta(t, 0.1, score.Score, 1e-9)
	})

	t.Run("completed engagements raise the floor", func(t *testing.T) {
		profile := &models.FreelancerProfile{YearsExperience: 3, CompletedEngagements: 25}
		score := ScoreExperience(profile, &models.MatchingCriteria{})
		assert.InDelta(t, 0.75, score.Score, 1e-9)
	})
}

func TestScoreTrust(t *testing.T) {
	t.Run("linear mapping with verification bonus", func(t *testing.T) {
		profile := &models.FreelancerProfile{
			TrustScore:        80,
			VerificationLevel: models.VerificationVerified,
		}
		score := ScoreTrust(profile, &models.MatchingCriteria{})
		assert.InDelta(t, 0.85, score.Score, 1e-9)
	})

	t.Run("below requested minimum is capped not zeroed", func(t *testing.T) {
		profile := &models.FreelancerProfile{TrustScore: 40}
		criteria := &models.MatchingCriteria{MinTrustScore: ptrFloat(70)}

		score := ScoreTrust(profile, criteria)
		assert.InDelta(t, 0.3, score.Score, 1e-9)
		assert.Contains(t, score.Explanation, "below the requested minimum")
	})
}

func TestScoreRate(t *testing.T) {
	t.Run("no stated rate is neutral", func(t *testing.T) {
		c := &Candidate{Profile: &models.FreelancerProfile{}}
		score := ScoreRate(c, &models.MatchingCriteria{})
		assert.Equal(t, 0.5, score.Score)
	})

	t.Run("in budget and in market band scores above the midpoint", func(t *testing.T) {
		c := &Candidate{
			Profile:    &models.FreelancerProfile{HourlyRate: 80},
			MarketRate: &models.MarketRate{P25: 60, Median: 75, P75: 90, P90: 120},
		}
		criteria := &models.MatchingCriteria{
			BudgetMin: ptrFloat(50),
			BudgetMax: ptrFloat(100),
		}

		score := ScoreRate(c, criteria)
		assert.InDelta(t, 1.0, score.Score, 1e-9)
		assert.Greater(t, score.Score, 0.5)
	})

	t.Run("rate above p90 decays with distance", func(t *testing.T) {
		c := &Candidate{
			Profile:    &models.FreelancerProfile{HourlyRate: 150},
			MarketRate: &models.MarketRate{P25: 50, P75: 80, P90: 100},
		}

		score := ScoreRate(c, &models.MatchingCriteria{})
		assert.InDelta(t, 0.3, score.Score, 1e-9)
	})

	t.Run("no market data falls back to budget-only", func(t *testing.T) {
		c := &Candidate{Profile: &models.FreelancerProfile{HourlyRate: 80}}
		criteria := &models.MatchingCriteria{BudgetMin: ptrFloat(50), BudgetMax: ptrFloat(100)}

		score := ScoreRate(c, criteria)
		assert.InDelta(t, 0.9, score.Score, 1e-9)
	})

	t.Run("outside budget decays but never below the floor", func(t *testing.T) {
		c := &Candidate{Profile: &models.FreelancerProfile{HourlyRate: 120}}
		criteria := &models.MatchingCriteria{BudgetMax: ptrFloat(100)}
		score := ScoreRate(c, criteria)
		assert.InDelta(t, 0.7, score.Score, 1e-9)

		far := &Candidate{Profile: &models.FreelancerProfile{HourlyRate: 500}}
		score = ScoreRate(far, criteria)
		assert.InDelta(t, 0.15, score.Score, 1e-9)
	})
}

func TestScoreAvailability(t *testing.T) {
	t.Run("no pattern is neutral", func(t *testing.T) {
		c := &Candidate{Profile: &models.FreelancerProfile{}}
		score := ScoreAvailability(c, &models.MatchingCriteria{})
		assert.Equal(t, 0.5, score.Score)
	})

	t.Run("aligned pattern scores high", func(t *testing.T) {
		c := &Candidate{
			Profile: &models.FreelancerProfile{},
			Pattern: &models.WorkPattern{TimezoneOffset: 60},
		}
		criteria := &models.MatchingCriteria{TimezoneOffset: ptrInt(0)}

		// tz 0.35 + concurrency 0.25 + start 0.25 + duration 0.075
		score := ScoreAvailability(c, criteria)
		assert.InDelta(t, 0.925, score.Score, 1e-9)
	})

	t.Run("conflicts push the score to the floor", func(t *testing.T) {
		pattern := &models.WorkPattern{
			CurrentActiveProjects: 3,
			MaxConcurrentProjects: 3,
		}
		pattern.SetUnavailablePeriods([]models.UnavailablePeriod{
			{From: testNow, To: testNow.Add(14 * 24 * time.Hour)},
		})
		c := &Candidate{Profile: &models.FreelancerProfile{}, Pattern: pattern}
		criteria := &models.MatchingCriteria{StartDate: ptrTime(testNow.Add(24 * time.Hour))}

		// (tz 0.245 + duration 0.075) halved by the start-date conflict.
		score := ScoreAvailability(c, criteria)
		assert.InDelta(t, 0.16, score.Score, 1e-9)
		assert.Contains(t, score.Explanation, "unavailable on requested start date")
	})

	t.Run("matched duration preference earns its sub-weight", func(t *testing.T) {
		c := &Candidate{
			Profile: &models.FreelancerProfile{},
			Pattern: &models.WorkPattern{PreferredDurations: pq.StringArray{"long_term"}},
		}
		criteria := &models.MatchingCriteria{PreferredDuration: models.DurationLongTerm}

		// tz 0.245 + concurrency 0.25 + start 0.25 + duration 0.15
		score := ScoreAvailability(c, criteria)
		assert.InDelta(t, 0.895, score.Score, 1e-9)
	})
}

func TestScoreSuccessHistory(t *testing.T) {
	t.Run("new candidate gets the neutral floor", func(t *testing.T) {
		profile := &models.FreelancerProfile{}
		score := ScoreSuccessHistory(profile)
		assert.Equal(t, 0.4, score.Score)
	})

	t.Run("track record blends completion rating and repeat rate", func(t *testing.T) {
		profile := &models.FreelancerProfile{
			CompletedEngagements: 40,
			CancelledEngagements: 10,
			AverageRating:        4.5,
			ReviewCount:          30,
			RepeatClientRate:     0.5,
		}

		// 0.4*0.8 + 0.4*(0.9*0.75) + 0.2*0.5
		score := ScoreSuccessHistory(profile)
		assert.InDelta(t, 0.69, score.Score, 1e-9)
	})

	t.Run("few reviews dampen a perfect rating", func(t *testing.T) {
		profile := &models.FreelancerProfile{
			CompletedEngagements: 2,
			AverageRating:        5.0,
			ReviewCount:          1,
		}
		many := &models.FreelancerProfile{
			CompletedEngagements: 2,
			AverageRating:        5.0,
			ReviewCount:          100,
		}

		assert.Less(t, ScoreSuccessHistory(profile).Score, ScoreSuccessHistory(many).Score)
	})
}

func TestScoreResponsiveness(t *testing.T) {
	t.Run("no data is neutral", func(t *testing.T) {
		assert.Equal(t, 0.5, ScoreResponsiveness(nil).Score)
		assert.Equal(t, 0.5, ScoreResponsiveness(&models.WorkPattern{}).Score)
	})

	t.Run("bands average across available signals", func(t *testing.T) {
		pattern := &models.WorkPattern{
			AvgResponseSeconds: 1800,  // 30m → 1.0
			AvgFirstBidSeconds: 36000, // 10h → 0.8
		}
		score := ScoreResponsiveness(pattern)
		assert.InDelta(t, 0.9, score.Score, 1e-9)
	})

	t.Run("slower is never better", func(t *testing.T) {
		fast := &models.WorkPattern{AvgResponseSeconds: 600}
		slow := &models.WorkPattern{AvgResponseSeconds: 100000}
		require.Greater(t, ScoreResponsiveness(fast).Score, ScoreResponsiveness(slow).Score)
	})
}

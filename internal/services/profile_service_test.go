package services

import (
	"context"
	"testing"
	"time"

	"smartmatch_backend/internal/models"
	"smartmatch_backend/internal/repositories"
	"smartmatch_backend/internal/services/dto"
	"smartmatch_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFreelancerRepo struct {
	profiles     map[string]*models.FreelancerProfile
	pool         []models.FreelancerProfile
	poolCriteria *repositories.MatchingPoolCriteria
}

func (f *fakeFreelancerRepo) FindByID(id string) (*models.FreelancerProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, repositories.ErrFreelancerNotFound
	}
	return p, nil
}

func (f *fakeFreelancerRepo) FindByUserID(userID string) (*models.FreelancerProfile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, repositories.ErrFreelancerNotFound
}

func (f *fakeFreelancerRepo) FindForMatching(criteria repositories.MatchingPoolCriteria) ([]models.FreelancerProfile, int64, error) {
	f.poolCriteria = &criteria
	return f.pool, int64(len(f.pool)), nil
}

func (f *fakeFreelancerRepo) Create(profile *models.FreelancerProfile) error { return nil }
func (f *fakeFreelancerRepo) Update(profile *models.FreelancerProfile) error { return nil }

type fakeWorkPatternRepo struct {
	patterns map[string]*models.WorkPattern
	upserted []*models.WorkPattern
}

func (f *fakeWorkPatternRepo) FindByUserID(userID string) (*models.WorkPattern, error) {
	p, ok := f.patterns[userID]
	if !ok {
		return nil, repositories.ErrWorkPatternNotFound
	}
	return p, nil
}

func (f *fakeWorkPatternRepo) FindByUserIDs(userIDs []string) (map[string]*models.WorkPattern, error) {
	return f.patterns, nil
}

func (f *fakeWorkPatternRepo) Upsert(pattern *models.WorkPattern) error {
	f.upserted = append(f.upserted, pattern)
	return nil
}

type fakeEndorsementRepo struct {
	existing map[string]bool
	created  []*models.SkillEndorsement
}

func endorsementKey(freelancerID, skill, endorserID string) string {
	return freelancerID + "|" + skill + "|" + endorserID
}

func (f *fakeEndorsementRepo) Create(endorsement *models.SkillEndorsement) error {
	f.created = append(f.created, endorsement)
	return nil
}

func (f *fakeEndorsementRepo) Exists(freelancerID, skill, endorserID string) (bool, error) {
	return f.existing[endorsementKey(freelancerID, skill, endorserID)], nil
}

func (f *fakeEndorsementRepo) CountBySkill(freelancerID string) (map[string]int, error) {
	return nil, nil
}

func (f *fakeEndorsementRepo) CountByFreelancerIDs(freelancerIDs []string) (map[string]map[string]int, error) {
	return nil, nil
}

func newProfileFixture() (*fakeFreelancerRepo, *fakeWorkPatternRepo, *fakeEndorsementRepo, ProfileService) {
	freelancers := &fakeFreelancerRepo{profiles: map[string]*models.FreelancerProfile{
		"f-1": {
			BaseModel: models.BaseModel{ID: "f-1"},
			UserID:    "owner",
			Name:      "Ada",
		},
	}}
	patterns := &fakeWorkPatternRepo{patterns: map[string]*models.WorkPattern{}}
	endorsements := &fakeEndorsementRepo{existing: map[string]bool{}}
	svc := NewProfileService(freelancers, patterns, endorsements)
	return freelancers, patterns, endorsements, svc
}

func TestGetProfile(t *testing.T) {
	_, _, _, svc := newProfileFixture()

	t.Run("existing profile is returned", func(t *testing.T) {
		profile, err := svc.GetProfile(context.Background(), "f-1")
		require.NoError(t, err)
		assert.Equal(t, "Ada", profile.Name)
	})

	t.Run("missing profile maps to not found", func(t *testing.T) {
		_, err := svc.GetProfile(context.Background(), "missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
	})
}

func TestUpdateWorkPattern(t *testing.T) {
	t.Run("first write creates the pattern", func(t *testing.T) {
		_, patterns, _, svc := newProfileFixture()

		hours := 30
		pattern, err := svc.UpdateWorkPattern(context.Background(), "owner", &dto.UpdateWorkPatternRequest{
			WeeklyHours: &hours,
		})
		require.NoError(t, err)

		assert.Equal(t, "owner", pattern.UserID)
		assert.Equal(t, 30, pattern.WeeklyHours)
		require.Len(t, patterns.upserted, 1)
	})

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		_, patterns, _, svc := newProfileFixture()
		patterns.patterns["owner"] = &models.WorkPattern{
			UserID:      "owner",
			WeeklyHours: 40,
			BudgetMin:   50,
		}

		offset := 120
		pattern, err := svc.UpdateWorkPattern(context.Background(), "owner", &dto.UpdateWorkPatternRequest{
			TimezoneOffset: &offset,
		})
		require.NoError(t, err)

		assert.Equal(t, 40, pattern.WeeklyHours)
		assert.Equal(t, 120, pattern.TimezoneOffset)
		assert.InDelta(t, 50, pattern.BudgetMin, 1e-9)
	})

	t.Run("inverted budget bounds are rejected", func(t *testing.T) {
		_, patterns, _, svc := newProfileFixture()

		min, max := 100.0, 50.0
		_, err := svc.UpdateWorkPattern(context.Background(), "owner", &dto.UpdateWorkPatternRequest{
			BudgetMin: &min,
			BudgetMax: &max,
		})
		require.Error(t, err)
		assert.Empty(t, patterns.upserted)
	})

	t.Run("inverted unavailable period is rejected", func(t *testing.T) {
		_, patterns, _, svc := newProfileFixture()

		from := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
		_, err := svc.UpdateWorkPattern(context.Background(), "owner", &dto.UpdateWorkPatternRequest{
			UnavailablePeriods: []models.UnavailablePeriod{
				{From: from, To: from.Add(-24 * time.Hour)},
			},
		})
		require.Error(t, err)
		assert.Empty(t, patterns.upserted)
	})

	t.Run("unavailable periods round-trip through the json column", func(t *testing.T) {
		_, _, _, svc := newProfileFixture()

		from := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
		to := from.Add(7 * 24 * time.Hour)
		pattern, err := svc.UpdateWorkPattern(context.Background(), "owner", &dto.UpdateWorkPatternRequest{
			UnavailablePeriods: []models.UnavailablePeriod{{From: from, To: to}},
		})
		require.NoError(t, err)

		periods := pattern.GetUnavailablePeriods()
		require.Len(t, periods, 1)
		assert.True(t, periods[0].From.Equal(from))
		assert.True(t, periods[0].To.Equal(to))
	})
}

func TestEndorseSkill(t *testing.T) {
	t.Run("valid endorsement is created", func(t *testing.T) {
		_, _, endorsements, svc := newProfileFixture()

		err := svc.EndorseSkill(context.Background(), "peer", "f-1", "go")
		require.NoError(t, err)

		require.Len(t, endorsements.created, 1)
		created := endorsements.created[0]
		assert.Equal(t, "f-1", created.FreelancerID)
		assert.Equal(t, "go", created.Skill)
		assert.Equal(t, "peer", created.EndorserID)
	})

	t.Run("self endorsement is forbidden", func(t *testing.T) {
		_, _, endorsements, svc := newProfileFixture()

		err := svc.EndorseSkill(context.Background(), "owner", "f-1", "go")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrSelfEndorsementNotAllowed)
		assert.Empty(t, endorsements.created)
	})

	t.Run("duplicate endorsement conflicts", func(t *testing.T) {
		_, _, endorsements, svc := newProfileFixture()
		endorsements.existing[endorsementKey("f-1", "go", "peer")] = true

		err := svc.EndorseSkill(context.Background(), "peer", "f-1", "go")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrEndorsementExists)
		assert.Empty(t, endorsements.created)
	})

	t.Run("unknown freelancer maps to not found", func(t *testing.T) {
		_, _, _, svc := newProfileFixture()

		err := svc.EndorseSkill(context.Background(), "peer", "missing", "go")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
	})

	t.Run("blank skill is rejected", func(t *testing.T) {
		_, _, endorsements, svc := newProfileFixture()

		err := svc.EndorseSkill(context.Background(), "peer", "f-1", "   ")
		require.Error(t, err)
		assert.Empty(t, endorsements.created)
	})
}

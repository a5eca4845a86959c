package services

import (
	"context"
	"errors"
	"strings"

	"smartmatch_backend/internal/models"
	"smartmatch_backend/internal/repositories"
	"smartmatch_backend/internal/services/dto"
	"smartmatch_backend/pkg/apperrors"

	"github.com/lib/pq"
)

type ProfileService interface {
	GetProfile(ctx context.Context, freelancerID string) (*models.FreelancerProfile, error)
	GetWorkPattern(ctx context.Context, userID string) (*models.WorkPattern, error)
	UpdateWorkPattern(ctx context.Context, userID string, req *dto.UpdateWorkPatternRequest) (*models.WorkPattern, error)
	EndorseSkill(ctx context.Context, endorserUserID, freelancerID, skill string) error
}

type ProfileServiceImpl struct {
	freelancerRepo  repositories.FreelancerRepository
	workPatternRepo repositories.WorkPatternRepository
	endorsementRepo repositories.EndorsementRepository
}

func NewProfileService(
	freelancerRepo repositories.FreelancerRepository,
	workPatternRepo repositories.WorkPatternRepository,
	endorsementRepo repositories.EndorsementRepository,
) ProfileService {
	return &ProfileServiceImpl{
		freelancerRepo:  freelancerRepo,
		workPatternRepo: workPatternRepo,
		endorsementRepo: endorsementRepo,
	}
}

func (s *ProfileServiceImpl) GetProfile(ctx context.Context, freelancerID string) (*models.FreelancerProfile, error) {
	profile, err := s.freelancerRepo.FindByID(freelancerID)
	if err != nil {
		if errors.Is(err, repositories.ErrFreelancerNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *ProfileServiceImpl) GetWorkPattern(ctx context.Context, userID string) (*models.WorkPattern, error) {
	pattern, err := s.workPatternRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWorkPatternNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return pattern, nil
}

// UpdateWorkPattern applies a partial update over the user's pattern,
// creating it on first write. Inverted budget bounds are rejected before
// anything is persisted.
func (s *ProfileServiceImpl) UpdateWorkPattern(ctx context.Context, userID string, req *dto.UpdateWorkPatternRequest) (*models.WorkPattern, error) {
	pattern, err := s.workPatternRepo.FindByUserID(userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrWorkPatternNotFound) {
			return nil, apperrors.InternalError(err)
		}
		pattern = &models.WorkPattern{UserID: userID}
	}

	if req.WeeklyHours != nil {
		pattern.WeeklyHours = *req.WeeklyHours
	}
	if req.WorkStartHour != nil {
		pattern.WorkStartHour = *req.WorkStartHour
	}
	if req.WorkEndHour != nil {
		pattern.WorkEndHour = *req.WorkEndHour
	}
	if req.TimezoneOffset != nil {
		pattern.TimezoneOffset = *req.TimezoneOffset
	}
	if req.BudgetMin != nil {
		pattern.BudgetMin = *req.BudgetMin
	}
	if req.BudgetMax != nil {
		pattern.BudgetMax = *req.BudgetMax
	}
	if pattern.BudgetMin > 0 && pattern.BudgetMax > 0 && pattern.BudgetMin > pattern.BudgetMax {
		return nil, apperrors.NewBadRequestError("budget_min exceeds budget_max")
	}
	if req.PreferredDurations != nil {
		durations := make(pq.StringArray, len(req.PreferredDurations))
		for i, d := range req.PreferredDurations {
			durations[i] = string(d)
		}
		pattern.PreferredDurations = durations
	}
	if req.MaxConcurrentProjects != nil {
		pattern.MaxConcurrentProjects = *req.MaxConcurrentProjects
	}
	if req.UnavailablePeriods != nil {
		for _, p := range req.UnavailablePeriods {
			if p.To.Before(p.From) {
				return nil, apperrors.NewBadRequestError("unavailable period ends before it starts")
			}
		}
		pattern.SetUnavailablePeriods(req.UnavailablePeriods)
	}

	if err := s.workPatternRepo.Upsert(pattern); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return pattern, nil
}

// EndorseSkill records one peer endorsement. Endorsing yourself and
// endorsing the same skill twice are rejected.
func (s *ProfileServiceImpl) EndorseSkill(ctx context.Context, endorserUserID, freelancerID, skill string) error {
	profile, err := s.freelancerRepo.FindByID(freelancerID)
	if err != nil {
		if errors.Is(err, repositories.ErrFreelancerNotFound) {
			return apperrors.ErrProfileNotFound
		}
		return apperrors.InternalError(err)
	}

	if profile.UserID == endorserUserID {
		return apperrors.ErrSelfEndorsementNotAllowed
	}

	skill = strings.TrimSpace(skill)
	if skill == "" {
		return apperrors.NewBadRequestError("skill is required")
	}

	exists, err := s.endorsementRepo.Exists(profile.ID, skill, endorserUserID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if exists {
		return apperrors.ErrEndorsementExists
	}

	endorsement := &models.SkillEndorsement{
		FreelancerID: profile.ID,
		Skill:        skill,
		EndorserID:   endorserUserID,
	}
	if err := s.endorsementRepo.Create(endorsement); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

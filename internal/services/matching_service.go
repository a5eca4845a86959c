package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"smartmatch_backend/internal/algorithms"
	"smartmatch_backend/internal/logger"
	"smartmatch_backend/internal/models"
	"smartmatch_backend/internal/repositories"
	"smartmatch_backend/internal/services/dto"
	"smartmatch_backend/pkg/apperrors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// Upper bound on candidates fetched and scored per search.
	matchingPoolCap = 500

	// Concurrent scoring goroutines per search.
	scoringConcurrency = 8

	// Ranked entries recorded to the learning ledger per search.
	ledgerTopN = 10

	defaultPageSize = 20
	maxPageSize     = 100
)

// LedgerRecorder accepts learning-ledger rows without blocking the caller.
// The matching flow treats recording as fire-and-forget: a full queue or
// failed write never affects the response.
type LedgerRecorder interface {
	Record(events []models.MatchingEvent)
}

type MatchingService interface {
	FindMatches(ctx context.Context, clientID string, req *dto.FindMatchesRequest) (*dto.MatchResponse, error)
	CalculateMatchScore(ctx context.Context, clientID, freelancerID string, req *dto.ScoreRequest) (*dto.MatchedFreelancer, error)
	UpdateMatchingOutcome(ctx context.Context, eventID string, req *dto.OutcomeRequest) error
	GetRelatedSkills(ctx context.Context, skill string) ([]dto.RelatedSkill, error)
	GetMarketRate(ctx context.Context, skillCategory, region string, level models.ExperienceLevel) (*dto.MarketRateResponse, error)
}

type MatchingServiceImpl struct {
	gateway   CandidateGateway
	eventRepo repositories.MatchingEventRepository
	ledger    LedgerRecorder
}

func NewMatchingService(
	gateway CandidateGateway,
	eventRepo repositories.MatchingEventRepository,
	ledger LedgerRecorder,
) MatchingService {
	return &MatchingServiceImpl{
		gateway:   gateway,
		eventRepo: eventRepo,
		ledger:    ledger,
	}
}

// scoredCandidate pairs a candidate with its breakdown while the ranking is
// being assembled.
type scoredCandidate struct {
	candidate *algorithms.Candidate
	breakdown *algorithms.MatchScoreBreakdown
}

// FindMatches runs one full search: validate, fetch the bounded pool, score
// candidates concurrently, drop hard compliance failures, rank
// deterministically, paginate, and record the top of the ranking to the
// learning ledger. A candidate whose scoring panics is logged and dropped;
// the rest of the ranking is unaffected.
func (s *MatchingServiceImpl) FindMatches(ctx context.Context, clientID string, req *dto.FindMatchesRequest) (*dto.MatchResponse, error) {
	if err := req.Criteria.Validate(); err != nil {
		return nil, apperrors.ErrInvalidCriteria(err.Error())
	}
	weights, err := algorithms.NormalizeWeights(req.Weights)
	if err != nil {
		return nil, apperrors.ErrInvalidCriteria(err.Error())
	}

	page, limit := normalizePagination(req.Page, req.Limit)
	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = models.SortByScore
	}

	searchID := uuid.New().String()
	ctx = logger.WithSearchID(ctx, searchID)

	excludeUserIDs := append([]string{clientID}, req.Criteria.ExcludeUserIDs...)
	candidates, _, err := s.gateway.FetchPool(ctx, &req.Criteria, excludeUserIDs, matchingPoolCap)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "matching", "Failed to load candidate pool", http.StatusInternalServerError)
	}

	scored := s.scorePool(ctx, candidates, &req.Criteria, weights)
	rank(scored, sortBy)

	total := len(scored)
	pageSlice := paginate(scored, page, limit)

	matches := make([]dto.MatchedFreelancer, len(pageSlice))
	offset := (page - 1) * limit
	now := time.Now().UTC()
	for i, sc := range pageSlice {
		matches[i] = toMatchedFreelancer(sc, &req.Criteria, offset+i+1, now)
	}

	s.recordShownMatches(ctx, clientID, searchID, &req.Criteria, scored)

	logger.CtxInfo(ctx, "matching search completed",
		"pool_size", len(candidates),
		"ranked", total,
		"page", page,
	)

	return &dto.MatchResponse{
		Matches:  matches,
		Total:    total,
		SearchID: searchID,
		Page:     page,
		Limit:    limit,
	}, nil
}

// CalculateMatchScore scores one named freelancer against the criteria
// without the hard compliance filter: the caller asked about this specific
// candidate, so a zero compliance score comes back visible instead of
// hidden.
func (s *MatchingServiceImpl) CalculateMatchScore(ctx context.Context, clientID, freelancerID string, req *dto.ScoreRequest) (*dto.MatchedFreelancer, error) {
	if err := req.Criteria.Validate(); err != nil {
		return nil, apperrors.ErrInvalidCriteria(err.Error())
	}
	weights, err := algorithms.NormalizeWeights(req.Weights)
	if err != nil {
		return nil, apperrors.ErrInvalidCriteria(err.Error())
	}

	candidate, err := s.gateway.FetchCandidate(ctx, freelancerID, &req.Criteria)
	if err != nil {
		if errors.Is(err, repositories.ErrFreelancerNotFound) {
			return nil, apperrors.ErrCandidateNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	now := time.Now().UTC()
	breakdown, err := scoreSafely(candidate, &req.Criteria, weights, now)
	if err != nil {
		logger.CtxWithError(ctx, "candidate scoring failed", err, "freelancer_id", freelancerID)
		return nil, apperrors.InternalError(err)
	}

	match := toMatchedFreelancer(scoredCandidate{candidate: candidate, breakdown: breakdown}, &req.Criteria, 0, now)
	return &match, nil
}

// UpdateMatchingOutcome annotates a ledger row with its real-world outcome.
// First outcome wins; repeat reports succeed without rewriting.
func (s *MatchingServiceImpl) UpdateMatchingOutcome(ctx context.Context, eventID string, req *dto.OutcomeRequest) error {
	if !req.Outcome.Valid() {
		return apperrors.ErrInvalidCriteria(fmt.Sprintf("unknown outcome %q", req.Outcome))
	}

	err := s.eventRepo.UpdateOutcome(eventID, repositories.OutcomeUpdate{
		Outcome:                 req.Outcome,
		WasHired:                req.WasHired,
		ProjectSuccessful:       req.ProjectSuccessful,
		ClientSatisfactionScore: req.ClientSatisfactionScore,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrMatchingEventNotFound) {
			return apperrors.ErrMatchingEventNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *MatchingServiceImpl) GetRelatedSkills(ctx context.Context, skill string) ([]dto.RelatedSkill, error) {
	if skill == "" {
		return nil, apperrors.ErrInvalidCriteria("skill is required")
	}

	relationships, err := s.gateway.RelatedSkills(ctx, skill)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	related := make([]dto.RelatedSkill, 0, len(relationships))
	for _, rel := range relationships {
		other, ok := rel.Other(skill)
		if !ok {
			continue
		}
		related = append(related, dto.RelatedSkill{
			Skill:        other,
			RelationType: rel.RelationType,
			Strength:     rel.Strength,
		})
	}
	return related, nil
}

func (s *MatchingServiceImpl) GetMarketRate(ctx context.Context, skillCategory, region string, level models.ExperienceLevel) (*dto.MarketRateResponse, error) {
	if skillCategory == "" {
		return nil, apperrors.ErrInvalidCriteria("skill_category is required")
	}

	rate, err := s.gateway.MarketRate(ctx, skillCategory, region, level)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if rate == nil {
		return nil, apperrors.ErrNotFound(fmt.Errorf("no fresh market rate for category %q", skillCategory))
	}

	return &dto.MarketRateResponse{
		SkillCategory:   rate.SkillCategory,
		Region:          rate.Region,
		ExperienceLevel: rate.ExperienceLevel,
		P25:             rate.P25,
		Median:          rate.Median,
		P75:             rate.P75,
		P90:             rate.P90,
		SampleSize:      rate.SampleSize,
		ComputedAt:      rate.ComputedAt.UTC().Format(time.RFC3339),
	}, nil
}

// scorePool scores candidates concurrently with a bounded worker pool. A
// hard compliance failure (required compliance or clearance not held) drops
// the candidate; a panic while scoring drops only that candidate.
func (s *MatchingServiceImpl) scorePool(ctx context.Context, candidates []algorithms.Candidate, criteria *models.MatchingCriteria, weights algorithms.Weights) []scoredCandidate {
	now := time.Now().UTC()
	hardFilter := len(criteria.RequiredCompliance) > 0 || criteria.RequiredClearance != ""

	var mu sync.Mutex
	scored := make([]scoredCandidate, 0, len(candidates))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(scoringConcurrency)

	for i := range candidates {
		candidate := &candidates[i]
		g.Go(func() error {
			freelancerID := ""
			if candidate.Profile != nil {
				freelancerID = candidate.Profile.ID
			}
			breakdown, err := scoreSafely(candidate, criteria, weights, now)
			if err != nil {
				logger.CtxWithError(ctx, "candidate scoring failed, skipping",
					err, "freelancer_id", freelancerID)
				return nil
			}
			if hardFilter && breakdown.Compliance.Score == 0 {
				return nil
			}
			mu.Lock()
			scored = append(scored, scoredCandidate{candidate: candidate, breakdown: breakdown})
			mu.Unlock()
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()

	return scored
}

// scoreSafely converts a scoring panic into an error so one bad profile
// cannot take down the whole search.
func scoreSafely(candidate *algorithms.Candidate, criteria *models.MatchingCriteria, weights algorithms.Weights, now time.Time) (breakdown *algorithms.MatchScoreBreakdown, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scoring panic: %v", r)
		}
	}()
	return algorithms.Score(candidate, criteria, weights, now), nil
}

// rank orders the pool deterministically. Every sort key falls through to
// overall score, then weighted track record, then freelancer id, so equal
// candidates always appear in the same order.
func rank(scored []scoredCandidate, sortBy string) {
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]

		switch sortBy {
		case models.SortByHourlyRate:
			if a.candidate.Profile.HourlyRate != b.candidate.Profile.HourlyRate {
				// Unstated rates (0) sort last.
				if a.candidate.Profile.HourlyRate == 0 {
					return false
				}
				if b.candidate.Profile.HourlyRate == 0 {
					return true
				}
				return a.candidate.Profile.HourlyRate < b.candidate.Profile.HourlyRate
			}
		case models.SortByExperience:
			if a.candidate.Profile.YearsExperience != b.candidate.Profile.YearsExperience {
				return a.candidate.Profile.YearsExperience > b.candidate.Profile.YearsExperience
			}
		}

		if a.breakdown.Overall != b.breakdown.Overall {
			return a.breakdown.Overall > b.breakdown.Overall
		}
		if a.breakdown.SuccessHistory.Weighted != b.breakdown.SuccessHistory.Weighted {
			return a.breakdown.SuccessHistory.Weighted > b.breakdown.SuccessHistory.Weighted
		}
		return a.candidate.Profile.ID < b.candidate.Profile.ID
	})
}

func normalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func paginate(scored []scoredCandidate, page, limit int) []scoredCandidate {
	start := (page - 1) * limit
	if start >= len(scored) {
		return nil
	}
	end := start + limit
	if end > len(scored) {
		end = len(scored)
	}
	return scored[start:end]
}

func toMatchedFreelancer(sc scoredCandidate, criteria *models.MatchingCriteria, rank int, now time.Time) dto.MatchedFreelancer {
	profile := sc.candidate.Profile
	return dto.MatchedFreelancer{
		Candidate: dto.CandidateSummary{
			FreelancerID:    profile.ID,
			UserID:          profile.UserID,
			Name:            profile.Name,
			PrimarySkill:    profile.PrimarySkill,
			Skills:          profile.Skills,
			Region:          profile.Region,
			YearsExperience: profile.YearsExperience,
			HourlyRate:      profile.HourlyRate,
			TrustScore:      profile.TrustScore,
			Verification:    profile.VerificationLevel,
			AverageRating:   profile.AverageRating,
			ReviewCount:     profile.ReviewCount,
		},
		Score:      *sc.breakdown,
		Compliance: algorithms.EvaluateCompliance(profile, criteria.RequiredCompliance, now),
		Rank:       rank,
	}
}

// recordShownMatches enqueues the top of the ranking as match_shown ledger
// rows. Enqueueing never blocks and failures never surface to the caller.
func (s *MatchingServiceImpl) recordShownMatches(ctx context.Context, clientID, searchID string, criteria *models.MatchingCriteria, scored []scoredCandidate) {
	n := len(scored)
	if n > ledgerTopN {
		n = ledgerTopN
	}
	if n == 0 {
		return
	}

	events := make([]models.MatchingEvent, n)
	for i := 0; i < n; i++ {
		sc := scored[i]
		score := sc.breakdown.Overall
		matchRank := i + 1

		event := models.MatchingEvent{
			EventType:    models.EventMatchShown,
			ClientID:     clientID,
			FreelancerID: sc.candidate.Profile.ID,
			ProjectID:    criteria.ProjectID,
			SearchID:     searchID,
			MatchScore:   &score,
			MatchRank:    &matchRank,
		}
		event.SetMatchFactors(sc.breakdown.Factors())
		event.SetSearchCriteria(criteria)
		events[i] = event
	}

	s.ledger.Record(events)
	logger.CtxDebug(ctx, "ledger events enqueued", "count", n)
}

package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"smartmatch_backend/internal/algorithms"
	"smartmatch_backend/internal/logger"
	"smartmatch_backend/internal/models"
	"smartmatch_backend/internal/repositories"
)

// Market snapshots older than this are treated as absent and rate scoring
// falls back to budget-only.
const marketRateFreshness = 90 * 24 * time.Hour

// CandidateGateway assembles read-only scoring inputs. It is the only place
// that knows which tables feed a Candidate; the scoring engine never touches
// storage.
type CandidateGateway interface {
	FetchPool(ctx context.Context, criteria *models.MatchingCriteria, excludeUserIDs []string, limit int) ([]algorithms.Candidate, int64, error)
	FetchCandidate(ctx context.Context, freelancerID string, criteria *models.MatchingCriteria) (*algorithms.Candidate, error)
	RelatedSkills(ctx context.Context, skill string) ([]models.SkillRelationship, error)
	MarketRate(ctx context.Context, skillCategory, region string, level models.ExperienceLevel) (*models.MarketRate, error)
}

type CandidateGatewayImpl struct {
	freelancerRepo   repositories.FreelancerRepository
	workPatternRepo  repositories.WorkPatternRepository
	endorsementRepo  repositories.EndorsementRepository
	relationshipRepo repositories.SkillRelationshipRepository
	marketRateRepo   repositories.MarketRateRepository
}

func NewCandidateGateway(
	freelancerRepo repositories.FreelancerRepository,
	workPatternRepo repositories.WorkPatternRepository,
	endorsementRepo repositories.EndorsementRepository,
	relationshipRepo repositories.SkillRelationshipRepository,
	marketRateRepo repositories.MarketRateRepository,
) CandidateGateway {
	return &CandidateGatewayImpl{
		freelancerRepo:   freelancerRepo,
		workPatternRepo:  workPatternRepo,
		endorsementRepo:  endorsementRepo,
		relationshipRepo: relationshipRepo,
		marketRateRepo:   marketRateRepo,
	}
}

// FetchPool loads the bounded candidate pool with one query per input type:
// profiles (compliance preloaded), work patterns, endorsement counts, skill
// relationships and the segment market rate. The pool pre-filter is widened
// with substitution edges so candidates holding only related skills still
// reach scoring. Profile failures abort; the enrichment queries degrade to
// empty inputs so a broken side table cannot take matching down.
func (g *CandidateGatewayImpl) FetchPool(ctx context.Context, criteria *models.MatchingCriteria, excludeUserIDs []string, limit int) ([]algorithms.Candidate, int64, error) {
	related, err := g.relationshipRepo.FindRelatedForSkills(criteria.RequiredSkills)
	if err != nil {
		logger.CtxWarn(ctx, "skill relationship fetch failed, scoring without substitutes", "error", err)
		related = nil
	}

	profiles, total, err := g.freelancerRepo.FindForMatching(repositories.MatchingPoolCriteria{
		Skills:         expandPoolSkills(criteria.RequiredSkills, related),
		ExcludeUserIDs: excludeUserIDs,
		OnlyAvailable:  true,
		Limit:          limit,
	})
	if err != nil {
		return nil, 0, err
	}
	if len(profiles) == 0 {
		return nil, total, nil
	}

	userIDs := make([]string, len(profiles))
	freelancerIDs := make([]string, len(profiles))
	for i := range profiles {
		userIDs[i] = profiles[i].UserID
		freelancerIDs[i] = profiles[i].ID
	}

	patterns, err := g.workPatternRepo.FindByUserIDs(userIDs)
	if err != nil {
		logger.CtxWarn(ctx, "work pattern fetch failed, scoring without patterns", "error", err)
		patterns = nil
	}

	endorsements, err := g.endorsementRepo.CountByFreelancerIDs(freelancerIDs)
	if err != nil {
		logger.CtxWarn(ctx, "endorsement fetch failed, scoring without endorsements", "error", err)
		endorsements = nil
	}

	rate := g.segmentRate(ctx, criteria)

	candidates := make([]algorithms.Candidate, len(profiles))
	for i := range profiles {
		candidates[i] = algorithms.Candidate{
			Profile:       &profiles[i],
			Pattern:       patterns[profiles[i].UserID],
			Endorsements:  endorsements[profiles[i].ID],
			RelatedSkills: related,
			MarketRate:    rate,
		}
	}
	return candidates, total, nil
}

// FetchCandidate assembles one candidate for a direct score request.
func (g *CandidateGatewayImpl) FetchCandidate(ctx context.Context, freelancerID string, criteria *models.MatchingCriteria) (*algorithms.Candidate, error) {
	profile, err := g.freelancerRepo.FindByID(freelancerID)
	if err != nil {
		return nil, err
	}

	pattern, err := g.workPatternRepo.FindByUserID(profile.UserID)
	if err != nil && !errors.Is(err, repositories.ErrWorkPatternNotFound) {
		logger.CtxWarn(ctx, "work pattern fetch failed, scoring without pattern", "error", err)
	}

	endorsements, err := g.endorsementRepo.CountBySkill(profile.ID)
	if err != nil {
		logger.CtxWarn(ctx, "endorsement fetch failed, scoring without endorsements", "error", err)
		endorsements = nil
	}

	related, err := g.relationshipRepo.FindRelatedForSkills(criteria.RequiredSkills)
	if err != nil {
		logger.CtxWarn(ctx, "skill relationship fetch failed, scoring without substitutes", "error", err)
		related = nil
	}

	return &algorithms.Candidate{
		Profile:       profile,
		Pattern:       pattern,
		Endorsements:  endorsements,
		RelatedSkills: related,
		MarketRate:    g.segmentRate(ctx, criteria),
	}, nil
}

func (g *CandidateGatewayImpl) RelatedSkills(ctx context.Context, skill string) ([]models.SkillRelationship, error) {
	return g.relationshipRepo.FindRelated(strings.TrimSpace(skill))
}

// MarketRate returns the freshest snapshot for the segment, or nil when the
// segment has no snapshot newer than the freshness window.
func (g *CandidateGatewayImpl) MarketRate(ctx context.Context, skillCategory, region string, level models.ExperienceLevel) (*models.MarketRate, error) {
	rate, err := g.marketRateRepo.FindLatest(skillCategory, region, level)
	if err != nil {
		if errors.Is(err, repositories.ErrMarketRateNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !rate.IsFresh(time.Now().UTC(), marketRateFreshness) {
		return nil, nil
	}
	return rate, nil
}

// expandPoolSkills widens the coarse pool filter with the endpoints of every
// substitution edge, lowercased and deduplicated. Over-widening is fine: the
// pre-filter only bounds retrieval, partial-credit scoring decides.
func expandPoolSkills(required []string, related map[string][]models.SkillRelationship) []string {
	seen := make(map[string]bool, len(required))
	skills := make([]string, 0, len(required))
	add := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		skills = append(skills, s)
	}

	for _, s := range required {
		add(s)
	}
	for _, edges := range related {
		for _, edge := range edges {
			add(edge.SkillA)
			add(edge.SkillB)
		}
	}
	return skills
}

// segmentRate resolves the market snapshot used for the whole pool. Missing
// or stale data is normal: rate scoring has a budget-only path.
func (g *CandidateGatewayImpl) segmentRate(ctx context.Context, criteria *models.MatchingCriteria) *models.MarketRate {
	if criteria.SkillCategory == "" {
		return nil
	}
	rate, err := g.MarketRate(ctx, criteria.SkillCategory, criteria.Region, criteria.ExperienceLevel)
	if err != nil {
		logger.CtxWarn(ctx, "market rate fetch failed, scoring without market data", "error", err)
		return nil
	}
	return rate
}

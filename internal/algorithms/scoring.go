package algorithms

import (
	"fmt"
	"math"
	"strings"
	"time"

	"smartmatch_backend/internal/models"
)

// Every scorer in this file is pure and total: valid input never panics, and
// missing optional data degrades to a neutral score instead of failing.
// Scores are returned unweighted; the aggregator applies weights.

const complianceExpiryWarningWindow = 30 * 24 * time.Hour

// EvaluateCompliance partitions the required-compliance list against the
// candidate's records at evaluation time.
func EvaluateCompliance(profile *models.FreelancerProfile, required []string, now time.Time) ComplianceStatus {
	status := ComplianceStatus{
		Met:                  []string{},
		Missing:              []string{},
		ExpiringWithin30Days: []string{},
	}

	byType := make(map[string]*models.ComplianceRecord, len(profile.Compliance))
	for i := range profile.Compliance {
		rec := &profile.Compliance[i]
		byType[strings.ToLower(rec.Type)] = rec
	}

	for _, req := range required {
		rec, ok := byType[strings.ToLower(req)]
		if !ok || rec.IsExpired(now) {
			status.Missing = append(status.Missing, req)
			continue
		}
		status.Met = append(status.Met, req)
		if rec.ExpiresWithin(now, complianceExpiryWarningWindow) {
			status.ExpiringWithin30Days = append(status.ExpiringWithin30Days, req)
		}
	}
	return status
}

// ScoreCompliance is a hard requirement: any missing or expired required
// type zeroes the component. Preferred types and clearance surface as a
// small bonus that can never substitute for a missing requirement.
func ScoreCompliance(profile *models.FreelancerProfile, criteria *models.MatchingCriteria, now time.Time) ComponentScore {
	status := EvaluateCompliance(profile, criteria.RequiredCompliance, now)

	if len(status.Missing) > 0 {
		return ComponentScore{
			Score:       0,
			Explanation: "missing required compliance: " + strings.Join(status.Missing, ", "),
		}
	}

	if criteria.RequiredClearance != "" && !profile.HasClearance(criteria.RequiredClearance) {
		return ComponentScore{
			Score:       0,
			Explanation: fmt.Sprintf("missing required clearance level %q", criteria.RequiredClearance),
		}
	}

	score := 1.0
	bonus := 0.0
	for _, pref := range criteria.PreferredCompliance {
		prefStatus := EvaluateCompliance(profile, []string{pref}, now)
		if len(prefStatus.Met) > 0 {
			bonus += 0.05
		}
	}
	if bonus > 0.15 {
		bonus = 0.15
	}

	explanation := "all compliance requirements met"
	if len(criteria.RequiredCompliance) == 0 && criteria.RequiredClearance == "" {
		explanation = "no compliance requirements"
	}

	return ComponentScore{
		Score:       clamp01(score + bonus),
		Explanation: explanation,
	}
}

const (
	// Endorsement bonus: 0.5% of full score per endorsement, capped at 20%
	// of the skill's base share so a heavily endorsed skill cannot outweigh
	// an actual required skill.
	endorsementBonusPerCount = 0.005
	endorsementBonusShareCap = 0.2
)

// ScoreSkills awards each required skill its 1/N share when held verbatim,
// partial credit via the strongest applicable relationship edge otherwise,
// and a bounded endorsement bonus on top.
func ScoreSkills(candidate *Candidate, criteria *models.MatchingCriteria) ComponentScore {
	required := criteria.RequiredSkills
	if len(required) == 0 {
		return ComponentScore{Score: 1, Explanation: "no skill requirements"}
	}

	share := 1.0 / float64(len(required))
	score := 0.0
	var missing, substituted []string

	for _, req := range required {
		key := strings.ToLower(req)

		if candidate.Profile.HasSkill(req) {
			score += share
			if count := candidate.Endorsements[key]; count > 0 {
				bonus := float64(count) * endorsementBonusPerCount
				if maxBonus := share * endorsementBonusShareCap; bonus > maxBonus {
					bonus = maxBonus
				}
				score += bonus
			}
			continue
		}

		best := 0.0
		bestSkill := ""
		for _, rel := range candidate.RelatedSkills[key] {
			other, ok := rel.Other(req)
			if !ok || !candidate.Profile.HasSkill(other) {
				continue
			}
			if rel.Strength > best {
				best = rel.Strength
				bestSkill = other
			}
		}
		if best > 0 {
			score += best * share
			substituted = append(substituted, fmt.Sprintf("%s (via %s)", req, bestSkill))
		} else {
			missing = append(missing, req)
		}
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(missing, ", "))
	}
	if len(substituted) > 0 {
		parts = append(parts, "partial credit: "+strings.Join(substituted, ", "))
	}
	explanation := "holds all required skills"
	if len(parts) > 0 {
		explanation = strings.Join(parts, "; ")
	}

	return ComponentScore{Score: clamp01(score), Explanation: explanation}
}

// experienceBandScores is the deterministic banding table, indexed by the
// distance between the candidate's bucket and the requested bucket.
// Banding, not interpolation, keeps results auditable.
var experienceBandScores = []float64{0.9, 0.6, 0.3, 0.1}

func experienceBucket(years int) int {
	switch {
	case years < 2:
		return 0 // entry
	case years < 5:
		return 1 // intermediate
	case years < 8:
		return 2 // senior
	default:
		return 3 // expert
	}
}

func bucketIndex(level models.ExperienceLevel) int {
	for i, lvl := range models.AllExperienceLevels {
		if lvl == level {
			return i
		}
	}
	return -1
}

// ScoreExperience bands years-of-experience against the requested bucket,
// with completed engagements raising the floor.
func ScoreExperience(profile *models.FreelancerProfile, criteria *models.MatchingCriteria) ComponentScore {
	base := 0.7
	explanation := "no experience level requested"

	if criteria.ExperienceLevel != "" {
		want := bucketIndex(criteria.ExperienceLevel)
		have := experienceBucket(profile.YearsExperience)
		dist := want - have
		if dist < 0 {
			dist = -dist
		}
		if dist >= len(experienceBandScores) {
			dist = len(experienceBandScores) - 1
		}
		base = experienceBandScores[dist]
		switch dist {
		case 0:
			explanation = fmt.Sprintf("experience matches the %s bucket", criteria.ExperienceLevel)
		case 1:
			explanation = fmt.Sprintf("experience is adjacent to the %s bucket", criteria.ExperienceLevel)
		default:
			explanation = fmt.Sprintf("experience is far from the %s bucket", criteria.ExperienceLevel)
		}
	}

	// Completed work raises the floor, capped at 50 engagements.
	completed := profile.CompletedEngagements
	if completed > 50 {
		completed = 50
	}
	base += float64(completed) / 50.0 * 0.1

	return ComponentScore{Score: clamp01(base), Explanation: explanation}
}

// Trust below the requested minimum is capped, not zeroed: trust is
// advisory, unlike compliance.
const trustBelowMinimumCeiling = 0.3

var verificationBonus = map[models.VerificationLevel]float64{
	models.VerificationNone:     0,
	models.VerificationBasic:    0.02,
	models.VerificationVerified: 0.05,
	models.VerificationPremium:  0.08,
}

// ScoreTrust maps the 0-100 trust value linearly to [0,1] with a small
// verification bonus.
func ScoreTrust(profile *models.FreelancerProfile, criteria *models.MatchingCriteria) ComponentScore {
	base := clamp01(profile.TrustScore / 100.0)
	base += verificationBonus[profile.VerificationLevel]

	if criteria.MinTrustScore != nil && profile.TrustScore < *criteria.MinTrustScore {
		if base > trustBelowMinimumCeiling {
			base = trustBelowMinimumCeiling
		}
		return ComponentScore{
			Score: clamp01(base),
			Explanation: fmt.Sprintf("trust score %.0f is below the requested minimum %.0f",
				profile.TrustScore, *criteria.MinTrustScore),
		}
	}

	return ComponentScore{
		Score:       clamp01(base),
		Explanation: fmt.Sprintf("trust score %.0f/100", profile.TrustScore),
	}
}

// ScoreRate scores the candidate's hourly rate against the requested budget
// and, when present, the market's interquartile band. No stated rate scores
// neutrally rather than zero.
func ScoreRate(candidate *Candidate, criteria *models.MatchingCriteria) ComponentScore {
	rate := candidate.Profile.HourlyRate
	if rate <= 0 {
		return ComponentScore{Score: 0.5, Explanation: "no stated hourly rate"}
	}

	hasBudget := criteria.BudgetMin != nil || criteria.BudgetMax != nil
	inBudget := true
	if criteria.BudgetMin != nil && rate < *criteria.BudgetMin {
		inBudget = false
	}
	if criteria.BudgetMax != nil && rate > *criteria.BudgetMax {
		inBudget = false
	}

	if candidate.MarketRate != nil {
		mr := candidate.MarketRate
		score := 0.5
		inBand := rate >= mr.P25 && rate <= mr.P75

		if hasBudget && inBudget {
			score += 0.3
		}
		if inBand {
			score += 0.2
		}

		// Outliers decay monotonically with distance from the band edge.
		if mr.P90 > 0 && rate > mr.P90 {
			penalty := 0.4 * (rate - mr.P90) / mr.P90
			score -= math.Min(0.4, penalty)
		} else if mr.P25 > 0 && rate < mr.P25 {
			penalty := 0.3 * (mr.P25 - rate) / mr.P25
			score -= math.Min(0.3, penalty)
		}

		explanation := fmt.Sprintf("rate $%.0f/hr vs market band $%.0f-$%.0f", rate, mr.P25, mr.P75)
		if !inBudget && hasBudget {
			explanation += " (outside requested budget)"
		}
		return ComponentScore{Score: clamp01(score), Explanation: explanation}
	}

	// No market data: score purely against the requested budget.
	if !hasBudget {
		return ComponentScore{Score: 0.6, Explanation: "no budget or market data to compare against"}
	}
	if inBudget {
		return ComponentScore{Score: 0.9, Explanation: fmt.Sprintf("rate $%.0f/hr is within budget", rate)}
	}

	// Outside the budget: decay with relative distance, never below a floor.
	var distance float64
	if criteria.BudgetMax != nil && rate > *criteria.BudgetMax {
		distance = (rate - *criteria.BudgetMax) / *criteria.BudgetMax
	} else if criteria.BudgetMin != nil {
		distance = (*criteria.BudgetMin - rate) / *criteria.BudgetMin
	}
	score := math.Max(0.15, 0.9-distance)
	return ComponentScore{
		Score:       clamp01(score),
		Explanation: fmt.Sprintf("rate $%.0f/hr is outside the requested budget", rate),
	}
}

// Availability sub-factor weights. They sum to 1.0; a start date inside a
// declared unavailable period additionally halves the total.
const (
	availWeightTimezone    = 0.35
	availWeightConcurrency = 0.25
	availWeightStartDate   = 0.25
	availWeightDuration    = 0.15
)

// ScoreAvailability combines timezone overlap, concurrency headroom, start
// date conflicts, and duration preference.
func ScoreAvailability(candidate *Candidate, criteria *models.MatchingCriteria) ComponentScore {
	pattern := candidate.Pattern
	if pattern == nil {
		return ComponentScore{Score: 0.5, Explanation: "no work pattern on file"}
	}

	score := 0.0
	var conflicts []string

	// Timezone overlap: full credit within 2h offset, linear falloff to zero
	// at 10h.
	if criteria.TimezoneOffset != nil {
		diffHours := math.Abs(float64(pattern.TimezoneOffset-*criteria.TimezoneOffset)) / 60.0
		switch {
		case diffHours <= 2:
			score += availWeightTimezone
		case diffHours >= 10:
			conflicts = append(conflicts, fmt.Sprintf("%.0fh timezone offset", diffHours))
		default:
			score += availWeightTimezone * (10 - diffHours) / 8
		}
	} else {
		score += availWeightTimezone * 0.7
	}

	// Concurrency headroom.
	if pattern.HasConcurrencyHeadroom() {
		score += availWeightConcurrency
	} else {
		conflicts = append(conflicts, fmt.Sprintf("at maximum concurrent engagements (%d/%d)",
			pattern.CurrentActiveProjects, pattern.MaxConcurrentProjects))
	}

	// Requested start date vs declared unavailable periods.
	unavailableAtStart := false
	if criteria.StartDate != nil && pattern.IsUnavailableAt(*criteria.StartDate) {
		unavailableAtStart = true
		conflicts = append(conflicts, fmt.Sprintf("unavailable on requested start date %s",
			criteria.StartDate.Format("2006-01-02")))
	} else {
		score += availWeightStartDate
	}

	// Duration preference.
	if criteria.PreferredDuration != "" {
		matched := false
		for _, d := range pattern.PreferredDurations {
			if strings.EqualFold(d, string(criteria.PreferredDuration)) {
				matched = true
				break
			}
		}
		if matched {
			score += availWeightDuration
		}
	} else {
		score += availWeightDuration * 0.5
	}

	if unavailableAtStart {
		score *= 0.5
	}

	explanation := "available for the requested engagement"
	if len(conflicts) > 0 {
		explanation = strings.Join(conflicts, "; ")
	}
	return ComponentScore{Score: clamp01(score), Explanation: explanation}
}

// New candidates score at a neutral floor instead of zero.
const successHistoryNeutralFloor = 0.4

// ScoreSuccessHistory combines completion ratio, rating confidence, and
// repeat-client rate. Review count acts as a diminishing-returns confidence
// multiplier on the rating.
func ScoreSuccessHistory(profile *models.FreelancerProfile) ComponentScore {
	total := profile.CompletedEngagements + profile.CancelledEngagements
	if profile.CompletedEngagements == 0 {
		return ComponentScore{
			Score:       successHistoryNeutralFloor,
			Explanation: "no completed engagements yet",
		}
	}

	completionRatio := float64(profile.CompletedEngagements) / float64(total)
	confidence := float64(profile.ReviewCount) / (float64(profile.ReviewCount) + 10)
	ratingScore := profile.AverageRating / 5.0 * confidence

	score := 0.4*completionRatio + 0.4*ratingScore + 0.2*profile.RepeatClientRate

	return ComponentScore{
		Score: clamp01(score),
		Explanation: fmt.Sprintf("%d completed engagements, %.1f rating over %d reviews",
			profile.CompletedEngagements, profile.AverageRating, profile.ReviewCount),
	}
}

// Responsiveness breakpoints, low to high. Lower durations are better; the
// tables map through fixed bands rather than a curve so results stay
// auditable.
var responseTimeBands = []struct {
	upTo  time.Duration
	score float64
}{
	{1 * time.Hour, 1.0},
	{4 * time.Hour, 0.85},
	{12 * time.Hour, 0.65},
	{24 * time.Hour, 0.45},
	{72 * time.Hour, 0.25},
}

var firstBidBands = []struct {
	upTo  time.Duration
	score float64
}{
	{6 * time.Hour, 1.0},
	{24 * time.Hour, 0.8},
	{72 * time.Hour, 0.55},
	{168 * time.Hour, 0.3},
}

func bandScore(d time.Duration, bands []struct {
	upTo  time.Duration
	score float64
}) float64 {
	for _, b := range bands {
		if d <= b.upTo {
			return b.score
		}
	}
	return 0.1
}

// ScoreResponsiveness inverts response and first-bid times through fixed
// breakpoints. Missing data yields a neutral score.
func ScoreResponsiveness(pattern *models.WorkPattern) ComponentScore {
	if pattern == nil || (pattern.AvgResponseSeconds <= 0 && pattern.AvgFirstBidSeconds <= 0) {
		return ComponentScore{Score: 0.5, Explanation: "no responsiveness data"}
	}

	var scores []float64
	if pattern.AvgResponseSeconds > 0 {
		scores = append(scores, bandScore(time.Duration(pattern.AvgResponseSeconds)*time.Second, responseTimeBands))
	}
	if pattern.AvgFirstBidSeconds > 0 {
		scores = append(scores, bandScore(time.Duration(pattern.AvgFirstBidSeconds)*time.Second, firstBidBands))
	}

	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	score := sum / float64(len(scores))

	return ComponentScore{
		Score:       clamp01(score),
		Explanation: fmt.Sprintf("typical response within %s", (time.Duration(pattern.AvgResponseSeconds) * time.Second).Round(time.Minute)),
	}
}

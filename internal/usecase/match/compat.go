package match

import (
	"math"

	"github.com/studybuddy-app/studybuddy-backend/internal/domain"
)

// Per-factor maximum weights. They happen to sum to 100, but the final
// score is always computed as a ratio of earned to accumulated max so
// rebalancing a weight keeps the 0-100 range correct.
const (
	weightSubjects      = 40.0
	weightSchedule      = 25.0
	weightDuration      = 15.0
	weightPace          = 10.0
	weightCommunication = 10.0
)

// CalculateBasicCompatibility scores a user/peer pair 0-100 from five
// weighted attribute-similarity factors. All comparisons are exact
// string equality against the fixed catalogs; unknown values fall into
// the worst tier of their factor instead of erroring.
func CalculateBasicCompatibility(user, peer *domain.Profile) int {
	var earned, maxScore float64

	maxScore += weightSubjects
	if user.SubjectProficient == peer.SubjectHelp && user.SubjectHelp == peer.SubjectProficient {
		earned += weightSubjects
	}

	maxScore += weightSchedule
	if user.StudySchedule == peer.StudySchedule {
		earned += weightSchedule
	} else {
		earned += scheduleCompatibility(user.StudySchedule, peer.StudySchedule) * weightSchedule
	}

	maxScore += weightDuration
	if user.StudyDuration == peer.StudyDuration {
		earned += weightDuration
	} else {
		earned += durationCompatibility(user.StudyDuration, peer.StudyDuration) * weightDuration
	}

	maxScore += weightPace
	if user.LearningPace == peer.LearningPace {
		earned += weightPace
	} else {
		earned += paceCompatibility(user.LearningPace, peer.LearningPace) * weightPace
	}

	maxScore += weightCommunication
	if user.CommunicationStyle == peer.CommunicationStyle {
		earned += weightCommunication
	} else {
		earned += communicationCompatibility(user.CommunicationStyle, peer.CommunicationStyle) * weightCommunication
	}

	return int(math.Round(earned / maxScore * 100))
}

// CalculateAvailabilityOverlap returns the percentage of weekdays,
// among those present in both maps, where both sides are available.
// Days missing from either map are skipped, and no shared days means
// 0, not a division by zero.
func CalculateAvailabilityOverlap(a, b domain.Availability) int {
	var overlap, total int
	for _, day := range domain.Weekdays {
		av, aok := a[day]
		bv, bok := b[day]
		if !aok || !bok {
			continue
		}
		total++
		if av && bv {
			overlap++
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(overlap) / float64(total) * 100))
}

// overallScore blends the deterministic factors 70/30.
func overallScore(basic, availability int) int {
	return int(math.Round(0.7*float64(basic) + 0.3*float64(availability)))
}

func scheduleCompatibility(a, b string) float64 {
	i := indexOf(domain.ScheduleBuckets, a)
	j := indexOf(domain.ScheduleBuckets, b)
	if i < 0 || j < 0 {
		return 0.1
	}
	switch d := abs(i - j); {
	case d <= 1:
		return 0.7
	case d <= 2:
		return 0.4
	default:
		return 0.1
	}
}

func durationCompatibility(a, b string) float64 {
	i := indexOf(domain.DurationBuckets, a)
	j := indexOf(domain.DurationBuckets, b)
	if i < 0 || j < 0 {
		return 0.3
	}
	switch abs(i - j) {
	case 0:
		return 1.0
	case 1:
		return 0.7
	default:
		return 0.3
	}
}

func paceCompatibility(a, b string) float64 {
	if a == domain.PaceDepends || b == domain.PaceDepends {
		return 0.8
	}
	i := indexOf(domain.PaceLevels, a)
	j := indexOf(domain.PaceLevels, b)
	if i < 0 || j < 0 {
		return 0.3
	}
	if abs(i-j) == 1 {
		return 0.6
	}
	return 0.3
}

func communicationCompatibility(a, b string) float64 {
	if partner, ok := domain.CommunicationPartner[a]; ok && partner == b {
		return 0.7
	}
	return 0.4
}

func indexOf(list []string, v string) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return -1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

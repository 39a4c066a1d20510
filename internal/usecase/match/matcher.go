package match

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/studybuddy-app/studybuddy-backend/internal/domain"
	"go.uber.org/zap"
)

// contentGenerator is the re-ranker contract: one prompt in, raw model
// text out. The Gemini infrastructure client satisfies it; tests use a
// stub.
type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

const (
	// rerankPoolSize bounds how many candidates are embedded in the
	// prompt, which bounds prompt size and cost.
	rerankPoolSize = 10
	maxMatches     = 5

	fallbackExplanation = "Smart match based on study preferences and schedule compatibility."
	fallbackChallenge   = "Get to know each other's communication styles."
	fallbackFunInsight  = "You both are working on complementary subjects!"

	logPreviewLen = 200
)

// Matcher ranks complementary peers for a user. It is pure over its
// inputs: nothing is persisted, and concurrent calls share no state
// beyond the generator.
type Matcher struct {
	generator contentGenerator
	timeout   time.Duration
	logger    *zap.Logger
}

// NewMatcher builds a Matcher. The generator may be nil, in which case
// every request takes the deterministic fallback path. The timeout
// bounds the single re-ranker call.
func NewMatcher(generator contentGenerator, timeout time.Duration, logger *zap.Logger) *Matcher {
	return &Matcher{
		generator: generator,
		timeout:   timeout,
		logger:    logger,
	}
}

type rerankResponse struct {
	Matches []rerankMatch `json:"matches"`
}

type rerankMatch struct {
	CandidateIndex     int    `json:"candidateIndex"`
	CompatibilityScore int    `json:"compatibilityScore"`
	Explanation        string `json:"explanation"`
	Challenge          string `json:"challenge"`
	FunInsight         string `json:"funInsight"`
}

// FindCompatiblePeers returns at most five candidates ordered best
// first. Peers whose subjects are not the exact mirror of the user's
// are excluded before any scoring happens; no eligible peer is an
// empty result, not an error. Re-ranker trouble of any kind degrades
// to the deterministic top five and is never surfaced to the caller.
func (m *Matcher) FindCompatiblePeers(ctx context.Context, currentUser *domain.Profile, allPeers []*domain.Profile) ([]*domain.Candidate, error) {
	candidates := make([]*domain.Candidate, 0, len(allPeers))
	for _, peer := range allPeers {
		if peer.SubjectProficient != currentUser.SubjectHelp ||
			peer.SubjectHelp != currentUser.SubjectProficient {
			continue
		}
		basic := CalculateBasicCompatibility(currentUser, peer)
		availability := CalculateAvailabilityOverlap(currentUser.Availability, peer.Availability)
		candidates = append(candidates, &domain.Candidate{
			Profile:                 *peer,
			BasicCompatibilityScore: basic,
			AvailabilityScore:       availability,
			OverallScore:            overallScore(basic, availability),
		})
	}

	if len(candidates) == 0 {
		return []*domain.Candidate{}, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].OverallScore > candidates[j].OverallScore
	})
	if len(candidates) > rerankPoolSize {
		candidates = candidates[:rerankPoolSize]
	}

	if m.generator == nil {
		return fallbackList(candidates), nil
	}

	prompt := buildPrompt(currentUser, candidates)

	m.logger.Debug("re-rank request",
		zap.Int("candidates", len(candidates)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	callCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	// Single attempt: a failed call goes straight to the fallback,
	// never into a retry loop.
	raw, err := m.generator.GenerateContent(callCtx, prompt)
	if err != nil {
		m.logger.Warn("re-rank call failed, using deterministic fallback", zap.Error(err))
		return fallbackList(candidates), nil
	}

	m.logger.Debug("re-rank response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", truncate(raw, logPreviewLen)),
	)

	merged, err := m.merge(candidates, raw)
	if err != nil {
		m.logger.Warn("re-rank response unusable, using deterministic fallback", zap.Error(err))
		return fallbackList(candidates), nil
	}
	return merged, nil
}

// merge pairs each returned match with the candidate it indexes into
// the exact pool that was sent. Out-of-range or repeated indexes are
// dropped; an empty survivor set is reported as an error so the caller
// falls back.
func (m *Matcher) merge(pool []*domain.Candidate, raw string) ([]*domain.Candidate, error) {
	var parsed rerankResponse
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("parse re-rank response: %w", err)
	}

	seen := make(map[int]bool, len(parsed.Matches))
	merged := make([]*domain.Candidate, 0, maxMatches)
	for _, entry := range parsed.Matches {
		if entry.CandidateIndex < 0 || entry.CandidateIndex >= len(pool) {
			m.logger.Warn("dropping re-rank entry with out-of-range index",
				zap.Int("candidate_index", entry.CandidateIndex))
			continue
		}
		if seen[entry.CandidateIndex] {
			continue
		}
		seen[entry.CandidateIndex] = true

		candidate := *pool[entry.CandidateIndex]
		candidate.AICompatibilityScore = entry.CompatibilityScore
		candidate.Explanation = entry.Explanation
		candidate.Challenge = entry.Challenge
		candidate.FunInsight = entry.FunInsight
		candidate.FinalScore = int(math.Round(
			0.4*float64(candidate.OverallScore) + 0.6*float64(entry.CompatibilityScore)))
		merged = append(merged, &candidate)

		if len(merged) == maxMatches {
			break
		}
	}

	if len(merged) == 0 {
		return nil, fmt.Errorf("re-rank response contained no usable matches")
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].FinalScore > merged[j].FinalScore
	})
	return merged, nil
}

// fallbackList annotates the deterministic top five with placeholder
// insights. The AI score mirrors the overall score so downstream
// display stays consistent.
func fallbackList(pool []*domain.Candidate) []*domain.Candidate {
	n := len(pool)
	if n > maxMatches {
		n = maxMatches
	}
	out := make([]*domain.Candidate, 0, n)
	for _, c := range pool[:n] {
		candidate := *c
		candidate.AICompatibilityScore = candidate.OverallScore
		candidate.Explanation = fallbackExplanation
		candidate.Challenge = fallbackChallenge
		candidate.FunInsight = fallbackFunInsight
		candidate.FinalScore = candidate.OverallScore
		out = append(out, &candidate)
	}
	return out
}

// extractJSON strips a markdown code fence if the model wrapped its
// JSON in one.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

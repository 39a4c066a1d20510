package match

import (
	"fmt"
	"strings"

	"github.com/studybuddy-app/studybuddy-backend/internal/domain"
)

// buildPrompt embeds the requesting user's study attributes and every
// pooled candidate, keyed by a 0-based candidateIndex plus the stable
// profile ID. The deterministic scores are included so the model can
// weigh them; the response contract is strict JSON.
func buildPrompt(user *domain.Profile, candidates []*domain.Candidate) string {
	var sb strings.Builder

	sb.WriteString("You are an expert at matching study partners based on personality and learning compatibility.\n\n")
	sb.WriteString("Current User Profile:\n")
	writeAttributes(&sb, &userAttributes{
		Personality:   user.PersonalityType,
		StudyStyle:    user.StudyStyle,
		Communication: user.CommunicationStyle,
		Environment:   user.StudyEnvironment,
		Motivation:    user.MotivationLevel,
		Goals:         user.Goals,
		Schedule:      user.StudySchedule,
		Bio:           user.Bio,
	})

	sb.WriteString("\nAnalyze these potential study partners and rank the top 5 based on personality compatibility, learning synergy, and overall study partnership potential:\n")

	for i, peer := range candidates {
		fmt.Fprintf(&sb, "\nCandidate %d (candidateIndex: %d, id: %s):\n", i+1, i, peer.ID)
		fmt.Fprintf(&sb, "- Name: %s\n", orDefault(peer.FirstName, "Not specified"))
		writeAttributes(&sb, &userAttributes{
			Personality:   peer.PersonalityType,
			StudyStyle:    peer.StudyStyle,
			Communication: peer.CommunicationStyle,
			Environment:   peer.StudyEnvironment,
			Motivation:    peer.MotivationLevel,
			Goals:         peer.Goals,
			Schedule:      peer.StudySchedule,
			Bio:           peer.Bio,
		})
		fmt.Fprintf(&sb, "- Basic Compatibility Score: %d%%\n", peer.BasicCompatibilityScore)
		fmt.Fprintf(&sb, "- Schedule Availability Overlap: %d%%\n", peer.AvailabilityScore)
	}

	sb.WriteString(`
Please provide:
1. Rank the top 5 candidates (1-5, with 1 being the best match)
2. For each top 5 candidate, provide:
   - A compatibility percentage (0-100%)
   - A brief explanation (2-3 sentences) of why they're a good match
   - One potential challenge or area to be aware of
   - A fun compatibility insight

Format your response as JSON, where candidateIndex is the 0-based index shown above:
{
  "matches": [
    {
      "candidateIndex": 0,
      "compatibilityScore": 95,
      "explanation": "You both are highly motivated visual learners who prefer structured study sessions...",
      "challenge": "Your different communication styles might need some adjustment initially...",
      "funInsight": "You both love late-night study sessions and have similar academic goals!"
    }
  ]
}

Only include candidates you genuinely think would be good matches (minimum 60% compatibility). Focus on personality synergy, learning compatibility, and mutual benefit potential.
`)

	return sb.String()
}

type userAttributes struct {
	Personality   string
	StudyStyle    string
	Communication string
	Environment   string
	Motivation    string
	Goals         string
	Schedule      string
	Bio           string
}

// writeAttributes renders one profile's study attributes. Optional
// fields get an explicit placeholder so the prompt shape is stable no
// matter how sparse the profile is.
func writeAttributes(sb *strings.Builder, a *userAttributes) {
	fmt.Fprintf(sb, "- Personality: %s\n", orDefault(a.Personality, "Not specified"))
	fmt.Fprintf(sb, "- Learning Style: %s\n", orDefault(a.StudyStyle, "Not specified"))
	fmt.Fprintf(sb, "- Communication: %s\n", orDefault(a.Communication, "Not specified"))
	fmt.Fprintf(sb, "- Study Environment: %s\n", orDefault(a.Environment, "Not specified"))
	fmt.Fprintf(sb, "- Motivation Level: %s\n", orDefault(a.Motivation, "Not specified"))
	fmt.Fprintf(sb, "- Goals: %s\n", orDefault(a.Goals, "Not specified"))
	fmt.Fprintf(sb, "- Study Schedule: %s\n", orDefault(a.Schedule, "Not specified"))
	fmt.Fprintf(sb, "- Bio: %s\n", orDefault(a.Bio, "Not provided"))
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

package match

import (
	"strings"
	"testing"

	"github.com/studybuddy-app/studybuddy-backend/internal/domain"
)

func TestBuildPromptPlaceholders(t *testing.T) {
	user := testUser()
	user.PersonalityType = "Extroverted & Outgoing"
	user.Bio = ""

	peer := mirrorPeer("Jordan", "Evening (5-8 PM)")
	candidate := &domain.Candidate{
		Profile:                 *peer,
		BasicCompatibilityScore: 100,
		AvailabilityScore:       50,
	}

	prompt := buildPrompt(user, []*domain.Candidate{candidate})

	if !strings.Contains(prompt, "- Personality: Extroverted & Outgoing") {
		t.Fatalf("prompt missing user personality")
	}
	if !strings.Contains(prompt, "- Bio: Not provided") {
		t.Fatalf("empty bio should render the placeholder")
	}
	if !strings.Contains(prompt, "- Goals: Not specified") {
		t.Fatalf("empty goals should render the placeholder")
	}
	if !strings.Contains(prompt, "candidateIndex: 0, id: "+peer.ID.String()) {
		t.Fatalf("prompt missing candidate index and stable id")
	}
	if !strings.Contains(prompt, "- Basic Compatibility Score: 100%") {
		t.Fatalf("prompt missing deterministic score")
	}
	if !strings.Contains(prompt, "- Schedule Availability Overlap: 50%") {
		t.Fatalf("prompt missing availability overlap")
	}
}

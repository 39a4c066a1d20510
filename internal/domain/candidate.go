package domain

// Candidate is a peer profile annotated with matching scores. It lives
// only for the duration of one matching request and is never stored.
type Candidate struct {
	Profile
	BasicCompatibilityScore int    `json:"basic_compatibility_score"`
	AvailabilityScore       int    `json:"availability_score"`
	OverallScore            int    `json:"overall_score"`
	AICompatibilityScore    int    `json:"ai_compatibility_score"`
	Explanation             string `json:"explanation"`
	Challenge               string `json:"challenge"`
	FunInsight              string `json:"fun_insight"`
	FinalScore              int    `json:"final_score"`
}

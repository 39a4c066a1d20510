package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the tutoring profile for one user. Its ID is the owning
// user's ID, so one user has at most one profile.
type Profile struct {
	ID                 uuid.UUID    `json:"id" db:"id"`
	FirstName          string       `json:"first_name" db:"first_name"`
	LastName           string       `json:"last_name,omitempty" db:"last_name"`
	Email              string       `json:"email,omitempty" db:"email"`
	School             string       `json:"school,omitempty" db:"school"`
	Grade              string       `json:"grade" db:"grade"`
	SubjectProficient  string       `json:"subject_proficient" db:"subject_proficient"`
	SubjectHelp        string       `json:"subject_help" db:"subject_help"`
	StudySchedule      string       `json:"study_schedule" db:"study_schedule"`
	StudyDuration      string       `json:"study_duration" db:"study_duration"`
	LearningPace       string       `json:"learning_pace" db:"learning_pace"`
	CommunicationStyle string       `json:"communication_style" db:"communication_style"`
	PersonalityType    string       `json:"personality_type" db:"personality_type"`
	StudyStyle         string       `json:"study_style" db:"study_style"`
	StudyEnvironment   string       `json:"study_environment" db:"study_environment"`
	MotivationLevel    string       `json:"motivation_level" db:"motivation_level"`
	Goals              string       `json:"goals" db:"goals"`
	Bio                string       `json:"bio" db:"bio"`
	Availability       Availability `json:"availability" db:"availability"`
	ShowLastName       bool         `json:"show_last_name" db:"show_last_name"`
	ShowEmail          bool         `json:"show_email" db:"show_email"`
	ShowSchool         bool         `json:"show_school" db:"show_school"`
	CreatedAt          time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at" db:"updated_at"`
}

// Matchable reports whether the profile can enter peer matching.
// Both subjects must be set; everything else is optional.
func (p *Profile) Matchable() bool {
	return p.SubjectProficient != "" && p.SubjectHelp != ""
}

// PublicView returns a copy of the profile with fields blanked out
// according to the owner's visibility flags. Matching never uses the
// hidden fields, so this only affects what other users see.
func (p *Profile) PublicView() Profile {
	out := *p
	if !out.ShowLastName {
		out.LastName = ""
	}
	if !out.ShowEmail {
		out.Email = ""
	}
	if !out.ShowSchool {
		out.School = ""
	}
	return out
}

package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/studybuddy-app/studybuddy-backend/internal/domain"
	"github.com/studybuddy-app/studybuddy-backend/internal/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// SaveProfileRequest carries one full profile submission. The form
// always submits every field, so saving replaces the profile in place.
type SaveProfileRequest struct {
	FirstName          string              `json:"first_name" binding:"required,min=1,max=100"`
	LastName           string              `json:"last_name" binding:"required,min=1,max=100"`
	School             string              `json:"school" binding:"required,max=200"`
	Grade              string              `json:"grade" binding:"required,grade"`
	SubjectProficient  string              `json:"subject_proficient" binding:"required,subject"`
	SubjectHelp        string              `json:"subject_help" binding:"required,subject"`
	StudySchedule      string              `json:"study_schedule" binding:"omitempty,schedule"`
	StudyDuration      string              `json:"study_duration" binding:"omitempty,duration"`
	LearningPace       string              `json:"learning_pace" binding:"omitempty,max=100"`
	CommunicationStyle string              `json:"communication_style" binding:"omitempty,max=100"`
	PersonalityType    string              `json:"personality_type" binding:"omitempty,max=100"`
	StudyStyle         string              `json:"study_style" binding:"omitempty,max=100"`
	StudyEnvironment   string              `json:"study_environment" binding:"omitempty,max=100"`
	MotivationLevel    string              `json:"motivation_level" binding:"omitempty,max=100"`
	Goals              string              `json:"goals" binding:"omitempty,max=500"`
	Bio                string              `json:"bio" binding:"omitempty,max=255"`
	Availability       domain.Availability `json:"availability"`
	ShowLastName       *bool               `json:"show_last_name"`
	ShowEmail          *bool               `json:"show_email"`
	ShowSchool         *bool               `json:"show_school"`
}

// GetMyProfile returns the caller's own profile, unredacted.
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

// GetPublicProfile returns another user's profile with hidden fields
// blanked per their visibility flags.
func (uc *ProfileUseCase) GetPublicProfile(ctx context.Context, targetUserID uuid.UUID) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	view := profile.PublicView()
	return &view, nil
}

// SaveProfile creates the profile on first submission and updates it
// in place afterwards. Profiles are never deleted here.
func (uc *ProfileUseCase) SaveProfile(ctx context.Context, userID uuid.UUID, req *SaveProfileRequest) (*domain.Profile, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	profile := &domain.Profile{
		ID:                 userID,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              user.Email,
		School:             req.School,
		Grade:              req.Grade,
		SubjectProficient:  req.SubjectProficient,
		SubjectHelp:        req.SubjectHelp,
		StudySchedule:      req.StudySchedule,
		StudyDuration:      req.StudyDuration,
		LearningPace:       req.LearningPace,
		CommunicationStyle: req.CommunicationStyle,
		PersonalityType:    req.PersonalityType,
		StudyStyle:         req.StudyStyle,
		StudyEnvironment:   req.StudyEnvironment,
		MotivationLevel:    req.MotivationLevel,
		Goals:              req.Goals,
		Bio:                req.Bio,
		Availability:       req.Availability,
		ShowLastName:       boolOr(req.ShowLastName, true),
		ShowEmail:          boolOr(req.ShowEmail, true),
		ShowSchool:         boolOr(req.ShowSchool, true),
	}
	if profile.Availability == nil {
		profile.Availability = domain.Availability{}
	}

	_, err = uc.profileRepo.GetByUserID(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		if err := uc.profileRepo.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to check profile: %w", err)
	default:
		if err := uc.profileRepo.Update(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return profile, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

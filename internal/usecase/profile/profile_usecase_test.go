package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/studybuddy-app/studybuddy-backend/internal/domain"
)

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*domain.Profile
	created  *domain.Profile
	updated  *domain.Profile
	getErr   error
}

func (f *fakeProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	f.created = p
	return nil
}

func (f *fakeProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	f.updated = p
	return nil
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) FindComplementary(context.Context, string, string, uuid.UUID) ([]*domain.Profile, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func (f *fakeUserRepo) Create(context.Context, *domain.User) error { return nil }

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func saveRequest() *SaveProfileRequest {
	return &SaveProfileRequest{
		FirstName:         "Sam",
		LastName:          "Carter",
		School:            "Lincoln High",
		Grade:             "11th Grade (junior)",
		SubjectProficient: "Chemistry",
		SubjectHelp:       "Biology",
	}
}

func TestSaveProfileCreatesOnFirstSubmission(t *testing.T) {
	userID := uuid.New()
	profileRepo := &fakeProfileRepo{}
	uc := NewProfileUseCase(profileRepo, &fakeUserRepo{users: map[uuid.UUID]*domain.User{
		userID: {ID: userID, Email: "sam@example.com"},
	}})

	got, err := uc.SaveProfile(context.Background(), userID, saveRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profileRepo.created == nil || profileRepo.updated != nil {
		t.Fatal("first submission should create, not update")
	}
	if got.ID != userID {
		t.Fatalf("profile ID should be the user ID, got %s", got.ID)
	}
	if got.Email != "sam@example.com" {
		t.Fatalf("email must come from the account record, got %q", got.Email)
	}
	if got.Availability == nil {
		t.Fatal("nil availability should be replaced with an empty map")
	}
	if !got.ShowLastName || !got.ShowEmail || !got.ShowSchool {
		t.Fatalf("visibility should default to shown: %+v", got)
	}
}

func TestSaveProfileUpdatesExisting(t *testing.T) {
	userID := uuid.New()
	profileRepo := &fakeProfileRepo{profiles: map[uuid.UUID]*domain.Profile{
		userID: {ID: userID, FirstName: "Old"},
	}}
	uc := NewProfileUseCase(profileRepo, &fakeUserRepo{users: map[uuid.UUID]*domain.User{
		userID: {ID: userID, Email: "sam@example.com"},
	}})

	hide := false
	req := saveRequest()
	req.ShowEmail = &hide

	got, err := uc.SaveProfile(context.Background(), userID, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profileRepo.updated == nil || profileRepo.created != nil {
		t.Fatal("resubmission should update, not create")
	}
	if got.ShowEmail {
		t.Fatal("explicit visibility flag ignored")
	}
	if got.FirstName != "Sam" {
		t.Fatalf("submission should replace fields, got %q", got.FirstName)
	}
}

func TestSaveProfileUnknownUser(t *testing.T) {
	uc := NewProfileUseCase(&fakeProfileRepo{}, &fakeUserRepo{})

	_, err := uc.SaveProfile(context.Background(), uuid.New(), saveRequest())
	if err == nil || !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected wrapped ErrUserNotFound, got %v", err)
	}
}

func TestGetPublicProfileRedacts(t *testing.T) {
	userID := uuid.New()
	uc := NewProfileUseCase(&fakeProfileRepo{profiles: map[uuid.UUID]*domain.Profile{
		userID: {
			ID:        userID,
			FirstName: "Sam",
			LastName:  "Carter",
			Email:     "sam@example.com",
			School:    "Lincoln High",
			// everything hidden
		},
	}}, &fakeUserRepo{})

	got, err := uc.GetPublicProfile(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.LastName != "" || got.Email != "" || got.School != "" {
		t.Fatalf("hidden fields leaked: %+v", got)
	}
	if got.FirstName != "Sam" {
		t.Fatalf("first name should always be visible, got %q", got.FirstName)
	}
}

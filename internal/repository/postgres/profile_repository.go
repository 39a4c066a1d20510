package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/studybuddy-app/studybuddy-backend/internal/domain"
	"github.com/studybuddy-app/studybuddy-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			id, first_name, last_name, email, school, grade,
			subject_proficient, subject_help,
			study_schedule, study_duration, learning_pace, communication_style,
			personality_type, study_style, study_environment, motivation_level,
			goals, bio, availability,
			show_last_name, show_email, show_school
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.ID, profile.FirstName, profile.LastName, profile.Email,
		profile.School, profile.Grade,
		profile.SubjectProficient, profile.SubjectHelp,
		profile.StudySchedule, profile.StudyDuration, profile.LearningPace,
		profile.CommunicationStyle, profile.PersonalityType, profile.StudyStyle,
		profile.StudyEnvironment, profile.MotivationLevel,
		profile.Goals, profile.Bio, profile.Availability,
		profile.ShowLastName, profile.ShowEmail, profile.ShowSchool,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET first_name = $1, last_name = $2, email = $3, school = $4, grade = $5,
		    subject_proficient = $6, subject_help = $7,
		    study_schedule = $8, study_duration = $9, learning_pace = $10,
		    communication_style = $11, personality_type = $12, study_style = $13,
		    study_environment = $14, motivation_level = $15,
		    goals = $16, bio = $17, availability = $18,
		    show_last_name = $19, show_email = $20, show_school = $21,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $22
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.FirstName, profile.LastName, profile.Email, profile.School,
		profile.Grade,
		profile.SubjectProficient, profile.SubjectHelp,
		profile.StudySchedule, profile.StudyDuration, profile.LearningPace,
		profile.CommunicationStyle, profile.PersonalityType, profile.StudyStyle,
		profile.StudyEnvironment, profile.MotivationLevel,
		profile.Goals, profile.Bio, profile.Availability,
		profile.ShowLastName, profile.ShowEmail, profile.ShowSchool,
		profile.ID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT * FROM profiles WHERE id = $1`
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindComplementary(ctx context.Context, subjectProficient, subjectHelp string, excludeUserID uuid.UUID) ([]*domain.Profile, error) {
	var profiles []*domain.Profile
	query := `
		SELECT * FROM profiles
		WHERE subject_proficient = $1 AND subject_help = $2 AND id <> $3
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &profiles, query, subjectProficient, subjectHelp, excludeUserID)
	return profiles, err
}

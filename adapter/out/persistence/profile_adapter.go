package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/port/out"

	"github.com/jmoiron/sqlx"
)

// ProfileAdapter implements out.ProfileRepository using PostgreSQL.
type ProfileAdapter struct {
	db *sqlx.DB
}

// NewProfileAdapter creates a new ProfileAdapter.
func NewProfileAdapter(db *sqlx.DB) *ProfileAdapter {
	return &ProfileAdapter{db: db}
}

const profileColumns = `profile_id, user_id, education_level, institution,
       board_or_university, current_semester, subjects_enrolled, target_exam,
       learning_style, preferred_content_type, language_preference,
       study_time_preference, session_duration_preference, reminder_frequency,
       focus_level, available_hours_per_week, study_days, motivation_level,
       preferred_breaks, study_goals, strong_subjects, weak_subjects,
       previous_scores, learning_gaps, career_goal, desired_skills,
       job_preference, certifications_interest, created_at, updated_at`

// Create inserts a profile and fills in the generated id.
func (a *ProfileAdapter) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, education_level, institution,
			board_or_university, current_semester, subjects_enrolled, target_exam,
			learning_style, preferred_content_type, language_preference,
			study_time_preference, session_duration_preference, reminder_frequency,
			focus_level, available_hours_per_week, study_days, motivation_level,
			preferred_breaks, study_goals, strong_subjects, weak_subjects,
			previous_scores, learning_gaps, career_goal, desired_skills,
			job_preference, certifications_interest)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
		RETURNING profile_id, created_at, updated_at`

	err := a.db.QueryRowContext(ctx, query,
		profile.UserID,
		profile.EducationLevel,
		profile.Institution,
		profile.BoardOrUniversity,
		profile.CurrentSemester,
		profile.SubjectsEnrolled,
		profile.TargetExam,
		profile.LearningStyle,
		profile.PreferredContentType,
		profile.LanguagePreference,
		profile.StudyTimePreference,
		profile.SessionDurationPreference,
		profile.ReminderFrequency,
		profile.FocusLevel,
		profile.AvailableHoursPerWeek,
		profile.StudyDays,
		profile.MotivationLevel,
		profile.PreferredBreaks,
		nullableJSON(profile.StudyGoals),
		profile.StrongSubjects,
		profile.WeakSubjects,
		nullableJSON(profile.PreviousScores),
		nullableJSON(profile.LearningGaps),
		profile.CareerGoal,
		profile.DesiredSkills,
		profile.JobPreference,
		profile.CertificationsInterest,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByUserID returns the profile for a user.
func (a *ProfileAdapter) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	if err := a.db.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// List returns profiles ordered by creation time.
func (a *ProfileAdapter) List(ctx context.Context, limit, offset int) ([]*domain.Profile, error) {
	var profiles []*domain.Profile
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	if err := a.db.SelectContext(ctx, &profiles, query, limit, offset); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Update rewrites all mutable profile fields.
func (a *ProfileAdapter) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET education_level = $1, institution = $2, board_or_university = $3,
		    current_semester = $4, subjects_enrolled = $5, target_exam = $6,
		    learning_style = $7, preferred_content_type = $8,
		    language_preference = $9, study_time_preference = $10,
		    session_duration_preference = $11, reminder_frequency = $12,
		    focus_level = $13, available_hours_per_week = $14, study_days = $15,
		    motivation_level = $16, preferred_breaks = $17, study_goals = $18,
		    strong_subjects = $19, weak_subjects = $20, previous_scores = $21,
		    learning_gaps = $22, career_goal = $23, desired_skills = $24,
		    job_preference = $25, certifications_interest = $26, updated_at = $27
		WHERE user_id = $28`

	result, err := a.db.ExecContext(ctx, query,
		profile.EducationLevel,
		profile.Institution,
		profile.BoardOrUniversity,
		profile.CurrentSemester,
		profile.SubjectsEnrolled,
		profile.TargetExam,
		profile.LearningStyle,
		profile.PreferredContentType,
		profile.LanguagePreference,
		profile.StudyTimePreference,
		profile.SessionDurationPreference,
		profile.ReminderFrequency,
		profile.FocusLevel,
		profile.AvailableHoursPerWeek,
		profile.StudyDays,
		profile.MotivationLevel,
		profile.PreferredBreaks,
		nullableJSON(profile.StudyGoals),
		profile.StrongSubjects,
		profile.WeakSubjects,
		nullableJSON(profile.PreviousScores),
		nullableJSON(profile.LearningGaps),
		profile.CareerGoal,
		profile.DesiredSkills,
		profile.JobPreference,
		profile.CertificationsInterest,
		time.Now(),
		profile.UserID,
	)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByUserID removes the profile for a user.
func (a *ProfileAdapter) DeleteByUserID(ctx context.Context, userID int64) error {
	result, err := a.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// nullableJSON maps empty JSON payloads to SQL NULL.
func nullableJSON(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	return data
}

// Ensure ProfileAdapter implements out.ProfileRepository
var _ out.ProfileRepository = (*ProfileAdapter)(nil)

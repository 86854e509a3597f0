package domain

import (
	"time"

	"github.com/lib/pq"
)

// Profile captures a user's study preferences and academic context.
type Profile struct {
	ID     int64 `json:"profile_id" db:"profile_id"`
	UserID int64 `json:"user_id" db:"user_id"`

	// Academic background
	EducationLevel    string         `json:"education_level" db:"education_level"`
	Institution       string         `json:"institution" db:"institution"`
	BoardOrUniversity string         `json:"board_or_university" db:"board_or_university"`
	CurrentSemester   string         `json:"current_semester" db:"current_semester"`
	SubjectsEnrolled  pq.StringArray `json:"subjects_enrolled" db:"subjects_enrolled"`
	TargetExam        string         `json:"target_exam" db:"target_exam"`

	// Learning preferences
	LearningStyle        string `json:"learning_style" db:"learning_style"`
	PreferredContentType string `json:"preferred_content_type" db:"preferred_content_type"`
	LanguagePreference   string `json:"language_preference" db:"language_preference"`

	// Study habits
	StudyTimePreference       string         `json:"study_time_preference" db:"study_time_preference"`
	SessionDurationPreference int            `json:"session_duration_preference" db:"session_duration_preference"`
	ReminderFrequency         string         `json:"reminder_frequency" db:"reminder_frequency"`
	FocusLevel                string         `json:"focus_level" db:"focus_level"`
	AvailableHoursPerWeek     int            `json:"available_hours_per_week" db:"available_hours_per_week"`
	StudyDays                 pq.StringArray `json:"study_days" db:"study_days"`
	MotivationLevel           float64        `json:"motivation_level" db:"motivation_level"`
	PreferredBreaks           string         `json:"preferred_breaks" db:"preferred_breaks"`

	// Academic standing
	StudyGoals     []byte         `json:"study_goals" db:"study_goals"`
	StrongSubjects pq.StringArray `json:"strong_subjects" db:"strong_subjects"`
	WeakSubjects   pq.StringArray `json:"weak_subjects" db:"weak_subjects"`
	PreviousScores []byte         `json:"previous_scores" db:"previous_scores"`
	LearningGaps   []byte         `json:"learning_gaps" db:"learning_gaps"`

	// Career
	CareerGoal             string         `json:"career_goal" db:"career_goal"`
	DesiredSkills          pq.StringArray `json:"desired_skills" db:"desired_skills"`
	JobPreference          string         `json:"job_preference" db:"job_preference"`
	CertificationsInterest pq.StringArray `json:"certifications_interest" db:"certifications_interest"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewProfile returns a profile with the documented defaults applied.
func NewProfile(userID int64) *Profile {
	return &Profile{
		UserID:                    userID,
		LanguagePreference:        "English",
		SessionDurationPreference: 45,
		ReminderFrequency:         "Daily",
		AvailableHoursPerWeek:     10,
		StudyDays:                 pq.StringArray{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
		MotivationLevel:           5.0,
	}
}

package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Migrate creates all tables and indexes if they do not exist.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id BIGSERIAL PRIMARY KEY,
			user_full_name TEXT NOT NULL,
			user_email TEXT NOT NULL UNIQUE,
			user_phone TEXT NOT NULL DEFAULT '',
			user_hashed_password TEXT NOT NULL,
			user_is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			user_data BOOLEAN NOT NULL DEFAULT FALSE,
			user_created_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS profiles (
			profile_id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL UNIQUE REFERENCES users(user_id) ON DELETE CASCADE,
			education_level TEXT NOT NULL DEFAULT '',
			institution TEXT NOT NULL DEFAULT '',
			board_or_university TEXT NOT NULL DEFAULT '',
			current_semester TEXT NOT NULL DEFAULT '',
			subjects_enrolled TEXT[] NOT NULL DEFAULT '{}',
			target_exam TEXT NOT NULL DEFAULT '',
			learning_style TEXT NOT NULL DEFAULT '',
			preferred_content_type TEXT NOT NULL DEFAULT '',
			language_preference TEXT NOT NULL DEFAULT 'English',
			study_time_preference TEXT NOT NULL DEFAULT '',
			session_duration_preference INT NOT NULL DEFAULT 45,
			reminder_frequency TEXT NOT NULL DEFAULT 'Daily',
			focus_level TEXT NOT NULL DEFAULT '',
			available_hours_per_week INT NOT NULL DEFAULT 10,
			study_days TEXT[] NOT NULL DEFAULT '{Monday,Tuesday,Wednesday,Thursday,Friday,Saturday,Sunday}',
			motivation_level DOUBLE PRECISION NOT NULL DEFAULT 5.0,
			preferred_breaks TEXT NOT NULL DEFAULT '',
			study_goals JSONB,
			strong_subjects TEXT[] NOT NULL DEFAULT '{}',
			weak_subjects TEXT[] NOT NULL DEFAULT '{}',
			previous_scores JSONB,
			learning_gaps JSONB,
			career_goal TEXT NOT NULL DEFAULT '',
			desired_skills TEXT[] NOT NULL DEFAULT '{}',
			job_preference TEXT NOT NULL DEFAULT '',
			certifications_interest TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS google_accounts (
			google_account_id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL UNIQUE REFERENCES users(user_id) ON DELETE CASCADE,
			google_email TEXT NOT NULL UNIQUE,
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL DEFAULT '',
			token_expiry TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS emails (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
			message_id TEXT NOT NULL,
			thread_id TEXT NOT NULL DEFAULT '',
			sender TEXT NOT NULL DEFAULT '',
			recipient TEXT NOT NULL DEFAULT '',
			subject TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL DEFAULT '',
			raw BYTEA,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_emails_user_message
			ON emails(user_id, message_id)`,

		`CREATE TABLE IF NOT EXISTS email_summaries (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
			message_id TEXT NOT NULL,
			summary TEXT NOT NULL,
			created_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_email_summaries_user_message
			ON email_summaries(user_id, message_id)`,

		`CREATE TABLE IF NOT EXISTS goals (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
			data JSONB NOT NULL,
			created_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS resources (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
			data JSONB NOT NULL,
			resource_type TEXT NOT NULL,
			created_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS chats (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
			chat_title VARCHAR(100) NOT NULL DEFAULT '',
			data JSONB NOT NULL,
			created_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Package profile implements study profile management.
package profile

import (
	"context"
	"errors"

	"github.com/kisxo/SikshaSathi-Backend/adapter/out/persistence"
	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/port/out"
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"
)

// Service manages study profiles.
type Service struct {
	profiles out.ProfileRepository
}

// NewService creates a profile Service.
func NewService(profiles out.ProfileRepository) *Service {
	return &Service{profiles: profiles}
}

// Create stores a profile for the user. One profile per user.
func (s *Service) Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	applyDefaults(profile)

	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			return nil, apperr.AlreadyExists("profile")
		}
		return nil, err
	}
	return profile, nil
}

// GetByUserID returns the user's profile.
func (s *Service) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, apperr.NotFound("profile")
		}
		return nil, err
	}
	return profile, nil
}

// List returns all profiles.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*domain.Profile, error) {
	return s.profiles.List(ctx, limit, offset)
}

// Update rewrites the user's profile.
func (s *Service) Update(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	applyDefaults(profile)

	if err := s.profiles.Update(ctx, profile); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, apperr.NotFound("profile")
		}
		return nil, err
	}
	return profile, nil
}

// Delete removes the user's profile.
func (s *Service) Delete(ctx context.Context, userID int64) error {
	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return apperr.NotFound("profile")
		}
		return err
	}
	return nil
}

func applyDefaults(profile *domain.Profile) {
	defaults := domain.NewProfile(profile.UserID)
	if profile.LanguagePreference == "" {
		profile.LanguagePreference = defaults.LanguagePreference
	}
	if profile.SessionDurationPreference == 0 {
		profile.SessionDurationPreference = defaults.SessionDurationPreference
	}
	if profile.ReminderFrequency == "" {
		profile.ReminderFrequency = defaults.ReminderFrequency
	}
	if profile.AvailableHoursPerWeek == 0 {
		profile.AvailableHoursPerWeek = defaults.AvailableHoursPerWeek
	}
	if len(profile.StudyDays) == 0 {
		profile.StudyDays = defaults.StudyDays
	}
	if profile.MotivationLevel == 0 {
		profile.MotivationLevel = defaults.MotivationLevel
	}
}

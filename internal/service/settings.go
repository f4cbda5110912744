package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/templui/deskboard/internal/model"
	"github.com/templui/deskboard/internal/repository"
	"github.com/templui/deskboard/internal/validation"
)

type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// Settings returns the user's settings, creating the defaults on first read.
func (s *SettingsService) Settings(userID string) (*model.UserSettings, error) {
	settings, err := s.settingsRepo.ByUserID(userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, repository.ErrSettingsNotFound) {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	now := time.Now().UTC()
	settings = model.DefaultSettings(userID)
	settings.ID = uuid.New().String()
	settings.CreatedAt = now
	settings.UpdatedAt = now

	err = s.settingsRepo.Create(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}

	// Re-read so a concurrent first read returns the same row.
	settings, err = s.settingsRepo.ByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// Update merges the supplied fields into the user's settings.
func (s *SettingsService) Update(userID string, update model.SettingsUpdate) (*model.UserSettings, error) {
	err := validation.ValidateSettingsUpdate(update)
	if err != nil {
		return nil, invalidInput(err)
	}

	settings, err := s.Settings(userID)
	if err != nil {
		return nil, err
	}

	update.Apply(settings)
	settings.UpdatedAt = time.Now().UTC()

	err = s.settingsRepo.Update(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	return settings, nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/templui/deskboard/internal/model"
	"github.com/templui/deskboard/internal/repository"
	"github.com/templui/deskboard/internal/validation"
)

const (
	RecentFilesLimit     = 5
	DefaultAnalyticsDays = 7
	MaxAnalyticsDays     = 90
)

type UserService struct {
	userRepository  repository.UserRepository
	fileRepository  repository.FileRepository
	fileService     *FileService
	settingsService *SettingsService
	emailService    *EmailService
}

func NewUserService(
	userRepository repository.UserRepository,
	fileRepository repository.FileRepository,
	fileService *FileService,
	settingsService *SettingsService,
	emailService *EmailService,
) *UserService {
	return &UserService{
		userRepository:  userRepository,
		fileRepository:  fileRepository,
		fileService:     fileService,
		settingsService: settingsService,
		emailService:    emailService,
	}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepository.ByID(id)
}

// Profile returns the user together with their files and settings.
func (s *UserService) Profile(userID string) (*model.Profile, error) {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	files, err := s.fileService.Files(userID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsService.Settings(userID)
	if err != nil {
		return nil, err
	}

	return &model.Profile{User: user, Files: files, Settings: settings}, nil
}

func (s *UserService) UpdateName(userID, name string) (*model.User, error) {
	name = strings.TrimSpace(name)

	err := validation.ValidateName(name)
	if err != nil {
		return nil, invalidInput(err)
	}

	err = s.userRepository.UpdateName(userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to update name: %w", err)
	}

	return s.userRepository.ByID(userID)
}

func (s *UserService) Dashboard(userID string) (*model.DashboardSummary, error) {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	stats, err := s.fileRepository.Stats(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get file stats: %w", err)
	}

	recent, err := s.fileRepository.Recent(userID, RecentFilesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent files: %w", err)
	}

	return &model.DashboardSummary{
		FilesCount:  stats.Count,
		TotalSize:   stats.TotalSize,
		JoinedDate:  user.CreatedAt,
		RecentFiles: recent,
	}, nil
}

// Analytics aggregates uploads per UTC day over the last days days
// (today included) and groups all files by MIME category.
func (s *UserService) Analytics(userID string, days int, now time.Time) (*model.Analytics, error) {
	if days <= 0 {
		days = DefaultAnalyticsDays
	}
	if days > MaxAnalyticsDays {
		days = MaxAnalyticsDays
	}

	files, err := s.fileService.Files(userID)
	if err != nil {
		return nil, err
	}

	today := now.UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -(days - 1))

	result := &model.Analytics{
		Days:   make([]model.DailyUploads, days),
		ByType: []model.TypeUsage{},
	}
	index := make(map[string]int, days)
	for i := range days {
		date := start.AddDate(0, 0, i).Format(time.DateOnly)
		result.Days[i] = model.DailyUploads{Date: date}
		index[date] = i
	}

	byType := map[string]*model.TypeUsage{}
	for _, file := range files {
		result.TotalFiles++
		result.TotalSize += file.Size

		category, _, _ := strings.Cut(file.Type, "/")
		usage, ok := byType[category]
		if !ok {
			usage = &model.TypeUsage{Type: category}
			byType[category] = usage
		}
		usage.Count++
		usage.Size += file.Size

		i, ok := index[file.UploadedAt.UTC().Format(time.DateOnly)]
		if !ok {
			continue
		}
		result.Days[i].Uploads++
		result.Days[i].Bytes += file.Size
		result.PeriodUploads++
		result.PeriodBytes += file.Size
	}

	for _, usage := range byType {
		result.ByType = append(result.ByType, *usage)
	}
	sort.Slice(result.ByType, func(i, j int) bool {
		if result.ByType[i].Count != result.ByType[j].Count {
			return result.ByType[i].Count > result.ByType[j].Count
		}
		return result.ByType[i].Type < result.ByType[j].Type
	})

	return result, nil
}

// DeleteAccount removes the user's stored objects, then the user. Files and
// settings rows go with the user through ON DELETE CASCADE.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	err = s.fileService.DeleteAllUserObjects(ctx, userID)
	if err != nil {
		slog.Warn("failed to delete user objects from storage", "user_id", userID, "error", err)
	}

	err = s.userRepository.Delete(userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	err = s.emailService.SendAccountDeletedEmail(ctx, user.Email, user.Name)
	if err != nil {
		slog.Warn("failed to send account deleted email", "user_id", userID, "error", err)
	}

	slog.Info("account deleted", "user_id", userID)
	return nil
}

package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/deskboard/internal/cache"
	"github.com/templui/deskboard/internal/config"
	"github.com/templui/deskboard/internal/db"
	"github.com/templui/deskboard/internal/middleware"
	"github.com/templui/deskboard/internal/repository"
	"github.com/templui/deskboard/internal/service"
	"github.com/templui/deskboard/internal/storage"
)

// App holds every long lived dependency. It is built once at startup and
// passed explicitly to the routes.
type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	Storage         storage.Storage
	Cache           cache.Cache
	AuthLimiter     *middleware.RateLimiter
	AuthService     *service.AuthService
	UserService     *service.UserService
	EmailService    *service.EmailService
	FileService     *service.FileService
	SettingsService *service.SettingsService
	WeatherService  *service.WeatherService

	stop context.CancelFunc
}

func New(cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	migrateCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	err = db.RunMigrations(migrateCtx, database.DB, cfg.DBDriver)
	cancel()
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Storage backend is chosen once here and never re-evaluated per request.
	fileStorage, err := storage.New(cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	weatherCache, err := cache.New(cfg.RedisURL)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	fileRepository := repository.NewFileRepository(database)
	settingsRepository := repository.NewSettingsRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	fileService := service.NewFileService(fileRepository, fileStorage, cfg.S3PresignTTL)
	settingsService := service.NewSettingsService(settingsRepository)
	authService := service.NewAuthService(
		userRepository,
		emailService,
		cfg.JWTSecret,
		cfg.JWTExpiry,
		cfg.IsProduction(),
	)
	userService := service.NewUserService(userRepository, fileRepository, fileService, settingsService, emailService)
	weatherService := service.NewWeatherService(nil, cfg.WeatherAPIURL, cfg.WeatherAPIKey, weatherCache, cfg.WeatherCacheTTL)

	// 5 attempts per 15 minutes per IP on login/register.
	authLimiter := middleware.NewRateLimiter(5, 15*time.Minute)
	ctx, stop := context.WithCancel(context.Background())
	go authLimiter.Run(ctx, 5*time.Minute)

	return &App{
		Cfg:             cfg,
		DB:              database,
		Storage:         fileStorage,
		Cache:           weatherCache,
		AuthLimiter:     authLimiter,
		AuthService:     authService,
		UserService:     userService,
		EmailService:    emailService,
		FileService:     fileService,
		SettingsService: settingsService,
		WeatherService:  weatherService,
		stop:            stop,
	}, nil
}

func (a *App) Close() error {
	if a.stop != nil {
		a.stop()
	}

	var errs []error
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}

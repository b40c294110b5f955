package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jobbuddy/api/internal/config"
	"github.com/jobbuddy/api/internal/db"
	"github.com/jobbuddy/api/internal/hunter"
	"github.com/jobbuddy/api/internal/repository"
	"github.com/jobbuddy/api/internal/service"
	"github.com/jobbuddy/api/internal/storage"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	AuthService         *service.AuthService
	UserService         *service.UserService
	CompanyService      *service.CompanyService
	ContactService      *service.ContactService
	ApplicationService  *service.ApplicationService
	OutreachService     *service.OutreachService
	GoalService         *service.GoalService
	StreakService       *service.StreakService
	NotificationService *service.NotificationService
	CVAnalysisService   *service.CVAnalysisService
	OnboardingService   *service.OnboardingService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	companyRepository := repository.NewCompanyRepository(database)
	contactRepository := repository.NewContactRepository(database)
	applicationRepository := repository.NewApplicationRepository(database)
	outreachRepository := repository.NewOutreachRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	streakRepository := repository.NewStreakRepository(database)
	notificationRepository := repository.NewNotificationRepository(database)
	cvAnalysisRepository := repository.NewCVAnalysisRepository(database)
	onboardingRepository := repository.NewOnboardingRepository(database)

	// Storage
	fileStorage, err := newStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// External clients
	hunterClient := hunter.New(cfg.HunterAPIKey, cfg.HunterTimeout)

	// Services
	lifecycleService := service.NewLifecycleService(
		goalRepository,
		streakRepository,
		notificationRepository,
		cfg.GoalLazyCreateOnApply,
	)
	authService := service.NewAuthService(
		database,
		userRepository,
		streakRepository,
		goalRepository,
		cfg.JWTSecret,
		cfg.JWTExpiry,
	)
	userService := service.NewUserService(userRepository, authService)
	companyService := service.NewCompanyService(companyRepository)
	contactService := service.NewContactService(contactRepository, companyRepository, hunterClient)
	applicationService := service.NewApplicationService(database, applicationRepository, companyRepository, lifecycleService)
	outreachService := service.NewOutreachService(
		database,
		outreachRepository,
		contactRepository,
		applicationRepository,
		companyRepository,
		lifecycleService,
	)
	goalService := service.NewGoalService(database, goalRepository, lifecycleService)
	streakService := service.NewStreakService(streakRepository)
	notificationService := service.NewNotificationService(notificationRepository)
	cvAnalysisService := service.NewCVAnalysisService(cvAnalysisRepository, applicationRepository, fileStorage)
	onboardingService := service.NewOnboardingService(onboardingRepository)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		AuthService:         authService,
		UserService:         userService,
		CompanyService:      companyService,
		ContactService:      contactService,
		ApplicationService:  applicationService,
		OutreachService:     outreachService,
		GoalService:         goalService,
		StreakService:       streakService,
		NotificationService: notificationService,
		CVAnalysisService:   cvAnalysisService,
		OnboardingService:   onboardingService,
	}, nil
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageBackend == "s3" {
		return storage.NewS3Storage(storage.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
	}
	return storage.NewLocalStorage(cfg.StoragePath)
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

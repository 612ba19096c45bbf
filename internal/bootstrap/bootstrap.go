package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/edusync/edusync/internal/app/controllers"
	"github.com/edusync/edusync/internal/app/migrations"
	"github.com/edusync/edusync/internal/app/repositories"
	appRoutes "github.com/edusync/edusync/internal/app/routes"
	"github.com/edusync/edusync/internal/app/services"
	"github.com/edusync/edusync/internal/config"
	"github.com/edusync/edusync/internal/db"
	"github.com/edusync/edusync/internal/middleware"
	"github.com/edusync/edusync/internal/pkg/auth"
	"github.com/edusync/edusync/internal/pkg/filestorage"
	"github.com/edusync/edusync/internal/pkg/logger"
	"github.com/edusync/edusync/internal/pkg/websocket"
	"github.com/edusync/edusync/internal/seed"
)

// Dependencies holds all the initialized application components.
type Dependencies struct {
	Repositories *repositories.Repositories
	JWTService   *auth.JWTService
	FileStorage  filestorage.FileStorage

	AuthService      services.AuthService
	StudentService   services.StudentService
	ActivityService  services.ActivityService
	ProfileService   services.ProfileService
	ChatService      services.ChatService
	SettingsService  services.SettingsService
	DashboardService services.DashboardService
	ExportService    services.ExportService

	AuthMiddleware *middleware.AuthMiddleware

	AuthController      *controllers.AuthController
	StudentController   *controllers.StudentController
	ActivityController  *controllers.ActivityController
	ProfileController   *controllers.ProfileController
	ChatController      *controllers.ChatController
	SettingsController  *controllers.SettingsController
	DashboardController *controllers.DashboardController
}

// LoadConfigAndSetupLogger loads the application configuration and configures
// the global logger based on it.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format == "pretty",
	})

	lgr := log.Logger
	lgr.Info().Str("config", configPath).Msg("Configuration loaded")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL, applies pending migrations and seeds
// default data. Seeding failures are logged but do not abort startup.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	lgr.Info().Msg("Database connection established")

	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	migrator := migrations.NewMigrator(database)
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer seedCancel()
	if err := seed.CreateDefaultData(seedCtx, database.Pool, lgr); err != nil {
		lgr.Warn().Err(err).Msg("Seeding default data reported errors")
	}

	return database.Pool, nil
}

// BuildDependencies wires repositories, services, controllers and middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	repos := repositories.NewRepositories(dbPool)

	baseURL := cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}
	storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  parseDuration(cfg.JWT.AccessTokenExpiration, time.Hour, lgr),
		RefreshTokenExp: parseDuration(cfg.JWT.RefreshTokenExpiration, 7*24*time.Hour, lgr),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	activityService := services.NewActivityService(repos.ActivityRepository, lgr)
	studentService := services.NewStudentService(repos.StudentRepository, activityService, lgr)
	authService := services.NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService, lgr)
	profileService := services.NewProfileService(repos.UserRepository, repos.ProfileRepository, storage, lgr)
	chatService := services.NewChatService(services.ChatConfig{
		Endpoint: cfg.Chat.Endpoint,
		APIKey:   cfg.Chat.APIKey,
		Model:    cfg.Chat.Model,
		Timeout:  parseDuration(cfg.Chat.RequestTimeout, 30*time.Second, lgr),
	}, lgr)
	settingsService := services.NewSettingsService(repos.SettingsRepository, lgr)
	dashboardService := services.NewDashboardService(repos.StudentRepository, activityService, lgr)
	exportService, err := services.NewExportService(repos.StudentRepository, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize export service: %w", err)
	}

	assistantHandler := websocket.NewAssistantHandler(chatService, lgr)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	deps := &Dependencies{
		Repositories: repos,
		JWTService:   jwtService,
		FileStorage:  storage,

		AuthService:      authService,
		StudentService:   studentService,
		ActivityService:  activityService,
		ProfileService:   profileService,
		ChatService:      chatService,
		SettingsService:  settingsService,
		DashboardService: dashboardService,
		ExportService:    exportService,

		AuthMiddleware: authMiddleware,

		AuthController:      controllers.NewAuthController(authService, lgr),
		StudentController:   controllers.NewStudentController(studentService, exportService, lgr),
		ActivityController:  controllers.NewActivityController(activityService, lgr),
		ProfileController:   controllers.NewProfileController(profileService, lgr),
		ChatController:      controllers.NewChatController(chatService, assistantHandler, lgr),
		SettingsController:  controllers.NewSettingsController(settingsService, lgr),
		DashboardController: controllers.NewDashboardController(dashboardService, lgr),
	}

	lgr.Info().Msg("Application dependencies initialized")
	return deps, nil
}

// TokenCleanupInterval is how often expired refresh tokens are swept.
const TokenCleanupInterval = 12 * time.Hour

// TokenSweeper is the slice of token persistence the cleanup loop needs.
type TokenSweeper interface {
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// StartTokenCleanup sweeps expired and long-revoked refresh tokens once
// right away and then on every tick until ctx is cancelled.
func StartTokenCleanup(ctx context.Context, tokens TokenSweeper, interval time.Duration, lgr zerolog.Logger) {
	go func() {
		sweepExpiredTokens(ctx, tokens, lgr)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sweepExpiredTokens(ctx, tokens, lgr)
			}
		}
	}()
}

func sweepExpiredTokens(ctx context.Context, tokens TokenSweeper, lgr zerolog.Logger) {
	sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := tokens.CleanupExpiredTokens(sweepCtx); err != nil {
		lgr.Warn().Err(err).Msg("Refresh token cleanup failed")
	}
}

// SetupRouter builds the Gin engine with global middleware and registers all
// application routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(lgr))
	router.Use(middleware.Metrics())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.ActivityController,
		deps.ProfileController,
		deps.ChatController,
		deps.SettingsController,
		deps.DashboardController,
		deps.AuthMiddleware,
		cfg.Server.StoragePath,
	)

	return router
}

// requestLogger logs each HTTP request with zerolog instead of Gin's default
// stdout logger.
func requestLogger(lgr zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := lgr.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = lgr.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("clientIP", c.ClientIP()).
			Msg("HTTP request")
	}
}

func parseDuration(value string, fallback time.Duration, lgr zerolog.Logger) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		lgr.Warn().Err(err).Str("value", value).Dur("fallback", fallback).Msg("Invalid duration, using fallback")
		return fallback
	}
	return d
}

package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/tuyensinh/admission-advisor/api"
	"github.com/tuyensinh/admission-advisor/config"
	"github.com/tuyensinh/admission-advisor/database"
	"github.com/tuyensinh/admission-advisor/router"
	"github.com/tuyensinh/admission-advisor/services"
	"github.com/tuyensinh/admission-advisor/services/admission"
	"github.com/tuyensinh/admission-advisor/services/gemini"
	"github.com/tuyensinh/admission-advisor/utils"
	"github.com/tuyensinh/admission-advisor/utils/auth"
	"github.com/tuyensinh/admission-advisor/utils/cache"
	"github.com/tuyensinh/admission-advisor/utils/middleware"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	logger := utils.NewLogger(getEnv.LOG_LEVEL, getEnv.LOG_FORMAT)

	jwtManager, err := auth.NewJWTManager(auth.JWTConfig{
		Secret: getEnv.JWT_SECRET,
		Expiry: 24 * time.Hour,
		Issuer: getEnv.JWT_ISSUER,
	})
	if err != nil {
		return fmt.Errorf("JWT_SECRET environment variable is not set: %w", err)
	}

	// Initialize GORM database connection
	store, err := database.StartGORM(getEnv)
	if err != nil {
		logger.Error().Err(err).Str("driver", getEnv.DB_DRIVER).Msg("Failed to connect to database")
		return err
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		logger.Error().Err(err).Msg("Failed to initialize database tables")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisCache := connectRedis(getEnv.REDIS_URL, logger)
	if redisCache != nil {
		defer redisCache.Close()
	}

	chatService, err := NewChatService(ctx, getEnv, store, redisCache, logger)
	if err != nil {
		return err
	}

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT), logger)

	deps := router.Dependencies{
		Store:       store,
		JWTManager:  jwtManager,
		ChatService: chatService,
		Security: middleware.SecurityConfig{
			AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
			RateLimitRequests: getEnv.RATE_LIMIT_REQUESTS,
			RateLimitWindow:   time.Minute,
		},
		Logger: logger,
	}
	if redisCache != nil {
		deps.Revocations = auth.NewRedisRevocationList(redisCache)
		deps.Security.Storage = cache.NewFiberStorage(redisCache, "ratelimit:")
	}

	// Setup Routes
	router.SetupRoutes(server.GetEngine(), deps)

	return server.Run(ctx)
}

// NewChatService wires the admission retriever, the Gemini client and the
// session locker into a chat service.
func NewChatService(ctx context.Context, getEnv *config.EnvironmentVariable, store database.Storage, redisCache *cache.RedisCache, logger zerolog.Logger) (*services.ChatService, error) {
	retriever := admission.NewRetriever(admission.NewGORMCatalog(store.GetDB()), logger)

	completer, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:            getEnv.GEMINI_API_KEY,
		Model:             getEnv.GEMINI_MODEL,
		BaseURL:           getEnv.GEMINI_BASE_URL,
		APIVersion:        getEnv.GEMINI_API_VERSION,
		RequestsPerMinute: getEnv.GEMINI_REQUESTS_PER_MINUTE,
	}, logger)
	if err != nil {
		return nil, err
	}

	advisor := services.NewAdvisorService(retriever, completer, logger)
	locker := services.NewSessionLocker(getEnv.CHAT_SESSION_LOCK, redisCache, logger)

	return services.NewChatService(store.GetDB(), advisor, locker, logger), nil
}

// connectRedis returns nil when Redis is not configured or unreachable; the
// service then runs with in-process rate limiting and without token revocation.
func connectRedis(url string, logger zerolog.Logger) *cache.RedisCache {
	if url == "" {
		logger.Info().Msg("REDIS_URL not set, running without Redis")
		return nil
	}

	redisCache, err := cache.NewRedisCache(url)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to connect to Redis, running without it")
		return nil
	}
	return redisCache
}

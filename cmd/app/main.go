// cmd/app/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/iots1/contacts-api/config"
	_ "github.com/iots1/contacts-api/docs"
	"github.com/iots1/contacts-api/internal/modules"
	"github.com/iots1/contacts-api/internal/shared/adapters"
	"github.com/iots1/contacts-api/internal/shared/cache"
	"github.com/iots1/contacts-api/internal/shared/event"
	"github.com/iots1/contacts-api/internal/shared/infrastructure"
	"github.com/iots1/contacts-api/internal/shared/ratelimit"
	"github.com/iots1/contacts-api/internal/shared/utils"
	userAdapters "github.com/iots1/contacts-api/internal/user/adapters"
)

// @title Contacts API
// @version 1.0
// @description REST API for managing personal contacts with JWT authentication.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// --- 0. Setup Global Application Context ---
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// --- 1. Initialize Configuration ---
	config.InitConfig()
	appConfig := config.LoadAppConfig()
	postgresConfig := config.LoadPostgresConfig()
	redisConfig := config.LoadRedisConfig()
	loggerLevel := config.LoadLoggerConfig()

	// --- Initialize Zap Logger FIRST ---
	utils.InitLogger(appConfig.Environment, loggerLevel)
	defer utils.SyncLogger()

	utils.Logger.Info("Application is starting up...")

	// Initialize the global validator
	v := validator.New()
	utils.SetGlobalValidator(v)
	utils.Logger.Debug("Global validator initialized and set.")

	// --- 2. Initialize Infrastructure Connections ---
	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer initCancel()

	// 2.1. PostgreSQL
	postgresClient := infrastructure.NewPostgresClient(postgresConfig)
	pool, err := postgresClient.Connect(initCtx)
	if err != nil {
		utils.Logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	utils.Logger.Info("Connected to PostgreSQL",
		zap.String("host", postgresConfig.Host), zap.String("database", postgresConfig.Database))

	// 2.2. Redis (cache + rate limiting)
	redisClientConn := infrastructure.NewRedisClient(redisConfig.Addr, redisConfig.Password, redisConfig.DB)
	rdb, err := redisClientConn.Connect(initCtx)
	if err != nil {
		utils.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	utils.Logger.Info("Connected to Redis", zap.String("address", redisConfig.Addr), zap.Int("db", redisConfig.DB))

	cacheManager := cache.NewCacheManager(rdb)
	limiter := ratelimit.New(rdb)

	// 2.3. Initialize In-Memory Event Bus (InMemPubSub)
	inMemPubSub := event.NewInMemoryBus()
	utils.Logger.Info("Initialized In-Memory Event Bus (InMemPubSub).")

	// 2.4. Initialize Asynq Client
	asynqRedisOpt := event.GetRedisClientOpt(redisConfig.Addr, redisConfig.Password, redisConfig.DB)
	asynqConcreteClient := event.NewAsynqClient(asynqRedisOpt)
	utils.Logger.Info("Initialized Asynq client", zap.String("address", redisConfig.Addr), zap.Int("db", redisConfig.DB))

	// 2.5. Initialize Low and High Importance Publishers
	lowPublisher := event.NewLowImportancePublisher(inMemPubSub)
	highPublisher := event.NewHighImportancePublisher(asynqConcreteClient)
	utils.Logger.Info("Initialized Low and High Importance Publishers.")

	// 2.6. Avatar storage
	// Cloudinary is optional at boot; the avatar endpoint reports 500 if
	// it is never configured.
	uploader := userAdapters.NewCloudinaryUploader(config.LoadCloudinaryURL())

	deps := infrastructure.NewAppDependencies(
		appCtx, pool, rdb, cacheManager, limiter,
		lowPublisher, highPublisher, inMemPubSub,
		appConfig, adapters.NewPasswordHasher(),
	)

	// --- 3. Setup Fiber App ---
	app := fiber.New(fiber.Config{
		AppName:               "contacts-api",
		DisableStartupMessage: appConfig.Environment == "production",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(appConfig.AllowedOrigins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"msg": "Contacts API. Visit /docs for Swagger UI"})
	})
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// --- 4. Setup Feature Modules ---
	userUsecase, userHandler := modules.SetupUserModule(deps, uploader)
	authMiddleware := modules.SetupAuthModule(app, deps, userUsecase)
	modules.RegisterUserRoutes(app, deps, userHandler, authMiddleware)
	modules.SetupContactModule(app, deps, authMiddleware)

	// --- 5. Start Server in a Goroutine ---
	go func() {
		port := fmt.Sprintf(":%d", appConfig.Port)
		if listenErr := app.Listen(port); listenErr != nil {
			utils.Logger.Fatal("Fiber server failed to start", zap.Error(listenErr))
		}
	}()
	utils.Logger.Info("Fiber server listening", zap.Int("port", appConfig.Port), zap.String("environment", appConfig.Environment))

	// --- 6. Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Logger.Info("Shutting down application...")
	appCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err = app.ShutdownWithContext(shutdownCtx); err != nil {
		utils.Logger.Error("Fiber server forced to shutdown", zap.Error(err))
	}
	utils.Logger.Info("Fiber server gracefully stopped.")

	postgresClient.Disconnect()
	utils.Logger.Info("PostgreSQL disconnected.")

	redisClientConn.Disconnect()
	utils.Logger.Info("Redis client disconnected.")

	if err = asynqConcreteClient.Close(); err != nil {
		utils.Logger.Error("Error closing Asynq client", zap.Error(err))
	} else {
		utils.Logger.Info("Asynq client disconnected.")
	}

	// Give in-memory goroutines a moment to respond to context cancellation
	time.Sleep(1 * time.Second)

	utils.Logger.Info("Application fully stopped.")
}

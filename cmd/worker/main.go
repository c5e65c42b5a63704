// cmd/worker/main.go
//
// Background worker that delivers the emails enqueued by the API (account
// verification and password reset) and sweeps expired refresh tokens. Run
// alongside cmd/app against the same Redis and Postgres instances.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/iots1/contacts-api/config"
	"github.com/iots1/contacts-api/internal/auth/repository"
	"github.com/iots1/contacts-api/internal/shared/event"
	"github.com/iots1/contacts-api/internal/shared/infrastructure"
	"github.com/iots1/contacts-api/internal/shared/mailer"
	"github.com/iots1/contacts-api/internal/shared/utils"
)

const tokenSweepInterval = time.Hour

func main() {
	config.InitConfig()
	appConfig := config.LoadAppConfig()
	postgresConfig := config.LoadPostgresConfig()
	redisConfig := config.LoadRedisConfig()
	mailConfig := config.LoadMailConfig()
	loggerLevel := config.LoadLoggerConfig()

	utils.InitLogger(appConfig.Environment, loggerLevel)
	defer utils.SyncLogger()

	utils.Logger.Info("Mail worker is starting up...")

	workerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	postgresClient := infrastructure.NewPostgresClient(postgresConfig)
	pool, err := postgresClient.Connect(workerCtx)
	if err != nil {
		utils.Logger.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer postgresClient.Disconnect()

	tokenRepo := repository.NewPostgresRefreshTokenRepository(pool)
	go repository.SweepExpiredTokens(workerCtx, tokenRepo, tokenSweepInterval)

	srv := asynq.NewServer(
		event.GetRedisClientOpt(redisConfig.Addr, redisConfig.Password, redisConfig.DB),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	smtpMailer := mailer.NewSMTPMailer(mailConfig, appConfig.BaseURL)
	handlers := event.NewMailTaskHandlers(smtpMailer)

	mux := asynq.NewServeMux()
	handlers.Register(mux)

	go func() {
		if err := srv.Run(mux); err != nil {
			utils.Logger.Fatal("Asynq server failed", zap.Error(err))
		}
	}()
	utils.Logger.Info("Mail worker listening for tasks",
		zap.String("redis", redisConfig.Addr), zap.Int("db", redisConfig.DB))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Logger.Info("Shutting down mail worker...")
	cancel()
	srv.Shutdown()
	utils.Logger.Info("Mail worker stopped.")
}

package utils

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger

// InitLogger configures the global Zap logger for the given environment.
func InitLogger(env, logLevelStr string) {
	var config zap.Config

	switch env {
	case "production":
		config = zap.NewProductionConfig()
		config.Encoding = "json"
	default:
		// Development (and unknown environments): human-readable console output.
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = customTimeEncoder
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
		config.Encoding = "console"
	}

	if logLevelStr == "" {
		logLevelStr = "info"
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(logLevelStr)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Invalid LOG_LEVEL '%s', defaulting to INFO\n", logLevelStr)
		level = zapcore.InfoLevel
	}
	config.Level.SetLevel(level)

	var err error
	Logger, err = config.Build(zap.AddCallerSkip(1))
	if err != nil {
		// If logger creation fails, we can't really log, so panic.
		panic(fmt.Sprintf("Failed to initialize Zap logger: %v", err))
	}
}

// customTimeEncoder formats time as YYYY-MM-DD HH:MM:SS (UTC).
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format("2006-01-02 15:04:05 UTC"))
}

func init() {
	// Ensure Logger is always usable; main re-initializes with real settings.
	InitLogger(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
}

// SyncLogger flushes any buffered logs. Should be called before application exits.
func SyncLogger() {
	if Logger != nil {
		err := Logger.Sync()
		if err != nil && err.Error() != "sync /dev/null: invalid argument" { // Ignore common harmless error on some systems
			fmt.Fprintf(os.Stderr, "Error syncing Zap logger: %v\n", err)
		}
	}
}

// WithContext adds a context field to the logger.
func WithContext(ctx string) *zap.Logger {
	return Logger.With(zap.String("context", ctx))
}

// cmd/migrator/main.go
//
// Applies SQL migrations from ./migrations against the configured Postgres
// database. Supports up (default) and down via -direction.
package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/iots1/contacts-api/config"
	"github.com/iots1/contacts-api/internal/shared/utils"
)

func main() {
	var migrationsPath, direction string
	flag.StringVar(&migrationsPath, "migrations-path", "./migrations", "path to a directory containing migration files")
	flag.StringVar(&direction, "direction", "up", "migration direction: up or down")
	flag.Parse()

	config.InitConfig()
	appConfig := config.LoadAppConfig()
	postgresConfig := config.LoadPostgresConfig()
	loggerLevel := config.LoadLoggerConfig()

	utils.InitLogger(appConfig.Environment, loggerLevel)
	defer utils.SyncLogger()

	m, err := migrate.New("file://"+migrationsPath, postgresConfig.ConnString())
	if err != nil {
		utils.Logger.Fatal("Failed to init migrator", zap.Error(err))
	}

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	default:
		utils.Logger.Fatal("Unknown direction", zap.String("direction", direction))
	}

	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("no migrations to apply")
			return
		}
		utils.Logger.Fatal("Migration failed", zap.Error(err))
	}
	fmt.Println("migrations completed successfully")
}

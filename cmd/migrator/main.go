package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/niksmo/storefront/migrations"
	"github.com/spf13/pflag"
)

const (
	dsnFlag  = "dsn"
	downFlag = "down"
)

func main() {
	dsn, down := getFlagsValues()
	validateFlags(dsn)
	makeMigrations(dsn, down)
}

type MigrationLogger struct {
	logger  *slog.Logger
	verbose bool
}

func NewMigrationLogger() *MigrationLogger {
	return &MigrationLogger{
		logger:  slog.Default(),
		verbose: true,
	}
}

func (ml *MigrationLogger) Printf(format string, v ...any) {
	ml.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (ml *MigrationLogger) Verbose() bool {
	return ml.verbose
}

func getFlagsValues() (dsn string, down bool) {
	dsnArg := pflag.StringP(dsnFlag, "d", "", "postgres connection string")
	downArg := pflag.Bool(downFlag, false, "roll back all migrations")
	pflag.Parse()
	return *dsnArg, *downArg
}

func validateFlags(dsn string) {
	if dsn == "" {
		slog.Error("too few args", "err", fmt.Errorf("--%s flag: required", dsnFlag))
		fallDown()
	}
}

// pgxURL switches the dsn scheme to the one of the pgx/v5 driver.
func pgxURL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

func makeMigrations(dsn string, down bool) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		slog.Error("failed to read migrations", "err", err)
		fallDown()
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, pgxURL(dsn))
	if err != nil {
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}
	defer m.Close()

	m.Log = NewMigrationLogger()

	migrateFn := m.Up
	if down {
		migrateFn = m.Down
	}

	if err := migrateFn(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return
		}
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}
	m.Log.Printf("migration applied")
}

func fallDown() {
	os.Exit(2)
}

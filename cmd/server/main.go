package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/iliyamo/drill-inventory/internal/config"
	"github.com/iliyamo/drill-inventory/internal/database"
	"github.com/iliyamo/drill-inventory/internal/logging"
)

var envFile string

// rootCmd serves the catalog when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Drill tooling inventory server",
	Long: `Serves the drill tooling inventory: designs, drills and inventory records
under /catalog.  Subcommands manage the schema, load demonstration data and
run the audit consumer for catalog change events.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadDotEnv(envFiles()...)
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to a .env file (default ./.env)")
	rootCmd.AddCommand(newMigrateCmd(), newSeedCmd(), newConsumeCmd())
}

func envFiles() []string {
	if envFile != "" {
		return []string{envFile}
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration, initialises logging and opens the store.
func setup(ctx context.Context) (config.Config, *sql.DB, database.Dialect, error) {
	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.LogPretty)

	var (
		db      *sql.DB
		err     error
		dialect = database.Dialect(cfg.DBDriver)
	)
	switch dialect {
	case database.SQLite:
		db, err = database.OpenSQLite(cfg.SQLitePath)
	default:
		db, err = database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	}
	if err != nil {
		return cfg, nil, dialect, fmt.Errorf("open %s database: %w", dialect, err)
	}
	log.Info().Str("driver", cfg.DBDriver).Str("env", cfg.Env).Msg("database connected")

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db, dialect); err != nil {
			_ = db.Close()
			return cfg, nil, dialect, fmt.Errorf("migrate: %w", err)
		}
	}
	return cfg, db, dialect, nil
}

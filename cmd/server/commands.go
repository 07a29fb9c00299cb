package main

import (
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/iliyamo/drill-inventory/internal/config"
	"github.com/iliyamo/drill-inventory/internal/database"
	"github.com/iliyamo/drill-inventory/internal/logging"
	"github.com/iliyamo/drill-inventory/internal/queue"
	"github.com/iliyamo/drill-inventory/internal/repository"
	"github.com/iliyamo/drill-inventory/internal/seed"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the catalog tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, db, dialect, err := setup(ctx)
			if err != nil {
				return err
			}
			defer db.Close()
			// setup already migrates unless DB_MIGRATE=false
			if err := database.Migrate(ctx, db, dialect); err != nil {
				return err
			}
			log.Info().Str("dialect", string(dialect)).Msg("schema up to date")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var opts seed.Options
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demonstration designs, drills and records",
		Long: `Loads six designs, nine drills and twelve inventory records.  The command
refuses to run against a catalog that already has designs unless
--skip-existing is given, in which case designs and drills are matched by
name and part number and only missing rows are added.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, db, _, err := setup(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			loader := seed.NewLoader(repository.NewDesignRepo(db), repository.NewDrillRepo(db), repository.NewRecordRepo(db))
			res, err := loader.Load(log.Logger.WithContext(ctx), opts)
			if err != nil {
				return err
			}
			cmd.Printf("seeded %d designs, %d drills, %d records\n", res.Designs, res.Drills, res.Records)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.SkipExisting, "skip-existing", false, "Keep existing designs and drills and only add what is missing")
	return cmd
}

func newConsumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consume",
		Short: "Append catalog change events to the audit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Init(envOr("LOG_LEVEL", "info"), envOr("LOG_PRETTY", "") == "true")
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg := config.LoadEventsConfig()
			log.Info().Str("queue", cfg.Queue).Msg("starting audit consumer")
			if err := queue.StartAuditConsumer(ctx, cfg); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/gigledger/internal/database"
	"github.com/MrJamesThe3rd/gigledger/internal/seed"
	seedStore "github.com/MrJamesThe3rd/gigledger/internal/seed/store"
)

var seedFlags struct {
	dir     string
	reset   bool
	migrate bool
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load profiles, contracts and jobs from a fixture directory",
	Long: "Reads " + seed.ProfilesFile + ", " + seed.ContractsFile + " and " + seed.JobsFile +
		"\nfrom --dir, validates them and inserts them in a single transaction.",
	RunE: runSeed,
}

func init() {
	f := seedCmd.Flags()
	f.StringVar(&seedFlags.dir, "dir", "", "Fixture directory (required)")
	f.BoolVar(&seedFlags.reset, "reset", false, "Empty all tables before loading")
	f.BoolVar(&seedFlags.migrate, "migrate", true, "Apply the schema first")

	_ = seedCmd.MarkFlagRequired("dir")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	fixtures, err := seed.Parse(os.DirFS(seedFlags.dir))
	if err != nil {
		return fmt.Errorf("reading fixtures from %s: %w", seedFlags.dir, err)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()

	if seedFlags.migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	svc := seed.NewService(seedStore.New(db))
	if err := svc.Load(ctx, fixtures, seed.LoadOptions{Reset: seedFlags.reset}); err != nil {
		return err
	}

	slog.Info("fixtures loaded",
		"profiles", len(fixtures.Profiles),
		"contracts", len(fixtures.Contracts),
		"jobs", len(fixtures.Jobs),
		"reset", seedFlags.reset,
	)

	return nil
}

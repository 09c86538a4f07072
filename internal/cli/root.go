// Package cli wires the engine's commands to a cobra command tree. Each
// subcommand is one engine operation; every invocation runs the
// opportunistic day-rollover check via the service before doing anything
// else.
package cli

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jask/daybudget/internal/config"
	"github.com/jask/daybudget/internal/database"
	"github.com/jask/daybudget/internal/database/repository"
	"github.com/jask/daybudget/internal/service"
)

type app struct {
	cfg    config.Config
	db     *sql.DB
	svc    *service.BudgetService
	logger *log.Logger
}

// Execute builds the command tree and runs it.
func Execute() error {
	a := &app{}

	root := &cobra.Command{
		Use:           "daybudget",
		Short:         "Personal daily-budget allocator",
		Long:          "daybudget spreads a pot of money over the days until an end date,\ntracks spending against named accounts, and sweeps unspent allowance\ninto savings at day rollover.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.db != nil {
				_ = a.db.Close()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().Bool("verbose", false, "enable debug logging")

	root.AddCommand(
		a.setupCmd(),
		a.statusCmd(),
		a.daysCmd(),
		a.addCmd(),
		a.incomeCmd(),
		a.editCmd(),
		a.rmCmd(),
		a.transferCmd(),
		a.historyCmd(),
		a.accountsCmd(),
		a.configCmd(),
		a.resetCmd(),
		a.tuiCmd(),
	)
	return root.Execute()
}

func (a *app) init(cmd *cobra.Command) error {
	level := log.WarnLevel
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = log.DebugLevel
	}
	a.logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "daybudget",
		Level:  level,
	})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.cfg = cfg

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir db dir: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		_ = db.Close()
		return fmt.Errorf("migrate: %w", err)
	}
	a.db = db

	loc := cfg.Location()
	a.svc = &service.BudgetService{
		Snapshots: repository.NewSnapshotRepo(db),
		Mirror:    repository.NewMirrorRepo(db),
		Log:       a.logger,
		Now:       func() time.Time { return time.Now().In(loc) },
	}
	return nil
}

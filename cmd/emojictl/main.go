// Command emojictl is the operator CLI: it applies migrations, seeds system
// puzzles and mints development tokens.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/srkarthi1982/guess-the-emoji/internal/auth"
	"github.com/srkarthi1982/guess-the-emoji/internal/config"
	"github.com/srkarthi1982/guess-the-emoji/internal/db"
	"github.com/srkarthi1982/guess-the-emoji/internal/logger"
	"github.com/srkarthi1982/guess-the-emoji/internal/repository/sqlite"
	"github.com/srkarthi1982/guess-the-emoji/internal/seed"
	"github.com/srkarthi1982/guess-the-emoji/internal/services"
)

var (
	cfg      config.Config
	tokenTTL time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "emojictl",
		Short:        "Administer the guess-the-emoji backend",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			logger.SetDefault(logger.New(
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
				logger.WithFormat(logger.ParseFormat(cfg.LogFormat)),
			))
			return nil
		},
	}

	tokenCmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Mint a bearer token for a user id",
		Args:  cobra.ExactArgs(1),
		RunE:  runToken,
	}
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")

	root.AddCommand(
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations",
			Args:  cobra.NoArgs,
			RunE:  runMigrate,
		},
		&cobra.Command{
			Use:   "seed <file.yaml>",
			Short: "Create system puzzles from a YAML fixture",
			Args:  cobra.ExactArgs(1),
			RunE:  runSeed,
		},
		tokenCmd,
	)
	return root
}

func openDB() (*db.DB, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("DB_PATH cannot be empty")
	}
	return db.Open(cfg.DBPath)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	// db.Open applies pending migrations.
	database, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close()

	applied, err := database.AppliedMigrations(cmd.Context())
	if err != nil {
		return err
	}
	for _, v := range applied {
		fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	f, err := seed.LoadFile(args[0])
	if err != nil {
		return err
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close()

	svc := services.NewPuzzleService(sqlite.NewPuzzleRepository(database.DB))
	n, err := seed.Apply(cmd.Context(), svc, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d puzzles\n", n)
	return nil
}

func runToken(cmd *cobra.Command, args []string) error {
	if len(cfg.AuthSecret) < 16 {
		return fmt.Errorf("AUTH_SECRET must be at least 16 bytes")
	}
	token, err := auth.NewIssuer(cfg.AuthSecret, cfg.AuthIssuer, nil).Mint(args[0], tokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"recipebook/internal/config"
	"recipebook/internal/repository/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var (
		opts   Options
		dbPath string
		seed   uint64
	)

	cmd := &cobra.Command{
		Use:   "seed [flags]",
		Short: "Reset the database and fill it with fake users and recipes",
		Long: "Deletes every recipe, user and session, then creates fresh users sharing one\n" +
			"password and recipes owned by random users. Intended for local development.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			logger := logrus.New()
			logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

			if dbPath == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				dbPath = cfg.Database.Path
			}
			if seed == 0 {
				seed = rand.Uint64() //nolint:gosec // fake data only
			}

			db, err := sqlite.Open(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			s := &Seeder{
				Users:   sqlite.NewUserRepository(db),
				Recipes: sqlite.NewRecipeRepository(db),
				Faker:   gofakeit.New(seed),
				Logger:  logger.WithField("db", dbPath),
			}
			summary, err := s.Run(cmd.Context(), opts)
			if err != nil {
				logger.WithError(err).Error("seeding failed")
				return err
			}

			logger.WithFields(logrus.Fields{
				"users":   summary.Users,
				"recipes": summary.Recipes,
				"seed":    seed,
			}).Info("seeding complete")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.Users, "users", 20, "number of users to create")
	flags.IntVar(&opts.Recipes, "recipes", 100, "number of recipes to create")
	flags.StringVar(&opts.Password, "password", "securepassword", "password shared by every seeded user")
	flags.StringVar(&dbPath, "db", "", "sqlite database path (defaults to database.path from config)")
	flags.Uint64Var(&seed, "seed", 0, "random seed, 0 picks one")

	return cmd
}

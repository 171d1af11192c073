package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"skill-matrix/internal/config"
	"skill-matrix/internal/database"
	"skill-matrix/internal/database/migration"
	dbpostgres "skill-matrix/internal/database/postgres"
	"skill-matrix/internal/database/seeder"
	"skill-matrix/internal/repository"
	"skill-matrix/internal/usecase"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "matrixctl",
		Short:        "Operational commands for the skill matrix store",
		SilenceUsage: true,
	}

	var migrationsDir string
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, db database.DB) error {
				return migration.Runner{Dir: migrationsDir}.Run(ctx, db.SQLDB())
			})
		},
	}
	migrateCmd.Flags().StringVar(&migrationsDir, "dir", "migrations", "migrations directory")

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the default matrix record and starter catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, db database.DB) error {
				return seeder.Runner{Seeders: seeder.Default()}.Run(ctx, db)
			})
		},
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Record a progress snapshot of the current matrix",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, db database.DB) error {
				logger := log.Default()
				matrixRepo := repository.NewPostgresMatrixRepository(db, logger)
				snapshotRepo := repository.NewPostgresSnapshotRepository(db)
				uc := usecase.NewProgressUsecase(matrixRepo, snapshotRepo, nil, nil, logger)
				if !uc.TakeSnapshot(ctx) {
					return fmt.Errorf("snapshot failed")
				}
				fmt.Println("snapshot recorded")
				return nil
			})
		},
	}

	root.AddCommand(migrateCmd, seedCmd, snapshotCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func withDB(ctx context.Context, fn func(context.Context, database.DB) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, config.LoadDatabase())
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	return fn(ctx, db)
}

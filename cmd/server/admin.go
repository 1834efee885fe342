package main

import (
	"context"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"eventbooking/internal/adapters/auth"
	"eventbooking/internal/repository/postgres"
	"eventbooking/internal/services"
)

func migrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "apply or roll back database migrations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, logger, db, err := setup(commandContext(cmd))
				if err != nil {
					return err
				}
				defer db.Close()
				if err := postgres.MigrateUp(db); err != nil {
					return err
				}
				logger.Info("migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "roll back migrations (default 1 step)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n < 1 {
						return errors.Newf("steps must be a positive integer, got %q", args[0])
					}
					steps = n
				}
				_, logger, db, err := setup(commandContext(cmd))
				if err != nil {
					return err
				}
				defer db.Close()
				if err := postgres.MigrateDown(db, steps); err != nil {
					return err
				}
				logger.Info("migrations rolled back", "steps", steps)
				return nil
			},
		},
	)
	return cmd
}

func createAdminCommand() *cobra.Command {
	var emailAddr, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			cfg, logger, db, err := setup(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := services.NewAuthService(postgres.NewAdminRepository(db), auth.NewBcryptHasher(auth.DefaultBcryptCost), auth.NewJWT(cfg.JWTSecret), cfg.JWTExpiry)
			admin, err := svc.CreateAdmin(ctx, emailAddr, password)
			if err != nil {
				return errors.Wrap(err, "create admin")
			}
			logger.Info("admin created", "id", admin.ID, "email", admin.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&emailAddr, "email", "", "admin email address")
	cmd.Flags().StringVar(&password, "password", "", "admin password (at least 8 characters)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

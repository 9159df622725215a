package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/usermodel/backend/internal/logger"
	"github.com/usermodel/backend/internal/seed"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the starter roles and users into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			svc := newServices(a.db, logger.Logger)
			seeded, err := seed.NewSeeder(svc.roles, svc.users, logger.Logger).Run(ctx)
			if err != nil {
				return err
			}
			if !seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "users already present, nothing seeded")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "seed data inserted")
			return nil
		},
	}
}

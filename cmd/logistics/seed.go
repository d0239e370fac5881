package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/afjrotc/logistics/internal/kv"
	"github.com/afjrotc/logistics/internal/seed"
	"github.com/afjrotc/logistics/internal/store"
)

var errDataExists = errors.New("inventory data already exists")

func newSeedCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the sample items and allow-list to the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := a.openStore(ctx, nil)
			if err != nil {
				return err
			}

			if !force {
				for _, key := range []string{kv.KeyItems, kv.KeyAllowedEmails} {
					_, ok, err := s.Get(ctx, key)
					if err != nil {
						return err
					}
					if ok {
						return fmt.Errorf("%w: pass --force to overwrite", errDataExists)
					}
				}
			}

			items := seed.Items()
			if err := store.NewInventory(s, nil).Reset(ctx, items); err != nil {
				return err
			}
			users := seed.AllowedEmails()
			if err := store.NewAllowList(s).Reset(ctx, users); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d items and %d authorized users\n", len(items), len(users))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing items and allow-list")
	return cmd
}

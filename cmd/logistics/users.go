package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/afjrotc/logistics/internal/model"
	"github.com/afjrotc/logistics/internal/seed"
	"github.com/afjrotc/logistics/internal/store"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage the emails allowed to log in",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List authorized users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			allow, err := a.allowList(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "EMAIL\tNAME\tROLE")
			for _, u := range allow.List() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", u.Email, u.Name, model.RoleLabel(u.Role))
			}
			return tw.Flush()
		},
	}

	var role string
	add := &cobra.Command{
		Use:   "add <email> <name>",
		Short: "Authorize an email",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			allow, err := a.allowList(cmd.Context())
			if err != nil {
				return err
			}
			entry, err := allow.Add(cmd.Context(), args[0], args[1], role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Authorized %s (%s) as %s\n", entry.Email, entry.Name, model.RoleLabel(entry.Role))
			return nil
		},
	}
	add.Flags().StringVar(&role, "role", model.RoleCadet, "role (admin, logistics, cadet)")

	var yes bool
	remove := &cobra.Command{
		Use:   "remove <email>",
		Short: "Revoke an email's access",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			allow, err := a.allowList(cmd.Context())
			if err != nil {
				return err
			}
			removed, err := allow.Remove(cmd.Context(), args[0], store.Confirmation(yes))
			if err != nil {
				if !yes {
					return fmt.Errorf("%w: pass --yes to remove %s", err, args[0])
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s)\n", removed.Email, removed.Name)
			return nil
		},
	}
	remove.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the removal")

	cmd.AddCommand(list, add, remove)
	return cmd
}

// allowList opens the store and loads the allow-list, seeding it on first
// use like the server does.
func (a *app) allowList(ctx context.Context) (*store.AllowList, error) {
	s, err := a.openStore(ctx, nil)
	if err != nil {
		return nil, err
	}
	allow := store.NewAllowList(s)
	if err := allow.Load(ctx, seed.AllowedEmails()); err != nil {
		return nil, err
	}
	return allow, nil
}

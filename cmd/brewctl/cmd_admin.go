package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"brewbuy/internal/repo"
	"brewbuy/internal/service"
)

func withAdmins(fn func(cmd *cobra.Command, svc *service.AdminUserService, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, db, log, done, err := bootDB()
		if err != nil {
			return err
		}
		defer done()
		svc := service.NewAdminUserService(repo.NewAdminUserRepo(db), cfg.Admin.DefaultUsername, log)
		if err := svc.EnsureDefault(cmd.Context(), cfg.Admin.DefaultPassword); err != nil {
			return err
		}
		return fn(cmd, svc, args)
	}
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage back-office admin accounts",
}

// brewctl admin list
var adminListCmd = &cobra.Command{
	Use:   "list",
	Short: "List admin accounts",
	Args:  cobra.NoArgs,
	RunE: withAdmins(func(cmd *cobra.Command, svc *service.AdminUserService, _ []string) error {
		list, err := svc.ListAll(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "USERNAME\tPASSWORD")
		for _, a := range list {
			fmt.Fprintf(w, "%s\t%s\n", a.Username, a.Password)
		}
		return w.Flush()
	}),
}

// brewctl admin add <username> <password>
var adminAddCmd = &cobra.Command{
	Use:   "add <username> <password>",
	Short: "Add an admin account",
	Args:  cobra.ExactArgs(2),
	RunE: withAdmins(func(cmd *cobra.Command, svc *service.AdminUserService, args []string) error {
		if err := svc.Add(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "admin %q added\n", args[0])
		return nil
	}),
}

// brewctl admin passwd <username> <password>
var adminPasswdCmd = &cobra.Command{
	Use:   "passwd <username> <password>",
	Short: "Change an admin password",
	Args:  cobra.ExactArgs(2),
	RunE: withAdmins(func(cmd *cobra.Command, svc *service.AdminUserService, args []string) error {
		if err := svc.UpdatePassword(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "password for %q updated\n", args[0])
		return nil
	}),
}

// brewctl admin delete <username>
var adminDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete an admin account (the default account is protected)",
	Args:  cobra.ExactArgs(1),
	RunE: withAdmins(func(cmd *cobra.Command, svc *service.AdminUserService, args []string) error {
		if err := svc.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "admin %q deleted\n", args[0])
		return nil
	}),
}

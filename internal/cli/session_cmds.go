package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mhimmo/internal/domain"
)

func loginCmd(e *env) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Authenticate and remember the identity for later commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer s.close()
			a, err := s.assemble(ctx)
			if err != nil {
				return err
			}
			ok, err := a.Gate.Login(ctx, args[0], password)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("invalid credentials")
			}
			id, _ := a.Gate.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s)\n", id.Name, id.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the remembered identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer s.close()
			a, err := s.assemble(ctx)
			if err != nil {
				return err
			}
			if err := a.Gate.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func whoamiCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the remembered identity, if it still resolves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer s.close()
			a, err := s.assemble(ctx)
			if err != nil {
				return err
			}
			ok, err := a.Gate.Resume(ctx)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), a.Gate.State())
				return nil
			}
			id, _ := a.Gate.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s\n", id.Name, id.Email, id.Role)
			return nil
		},
	}
}

func usersCmd(e *env) *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List the other users; needs an owner or manager login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := domain.Role(role)
			if role != "" && !r.Valid() {
				return fmt.Errorf("unknown role %q", role)
			}
			ctx := cmd.Context()
			s, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer s.close()
			a, err := s.assemble(ctx)
			if err != nil {
				return err
			}
			if _, err := a.Gate.Resume(ctx); err != nil {
				return err
			}
			caller, err := a.Gate.Require(domain.RoleOwner, domain.RoleManager)
			switch {
			case errors.Is(err, domain.ErrNotAuthenticated):
				return errors.New("not logged in, run login first")
			case errors.Is(err, domain.ErrForbidden):
				return fmt.Errorf("a %s cannot list users", caller.Role)
			}
			list := a.Store.Users()
			if r != "" {
				list = a.Store.UsersByRole(r)
			}
			for _, u := range list {
				if u.ID == caller.ID {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "only this role (owner, manager, tenant)")
	return cmd
}

func darkModeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "dark-mode [on|off]",
		Short: "Show or set the display preference",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer s.close()
			a, err := s.assemble(ctx)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				on, err := parseSwitch(args[0])
				if err != nil {
					return err
				}
				if err := a.Preferences.SetDarkMode(ctx, on); err != nil {
					return err
				}
			}
			on, err := a.Preferences.DarkMode(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dark mode: %s\n", onOff(on))
			return nil
		},
	}
}

func parseSwitch(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("want on or off, got %q", s)
	}
	return b, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

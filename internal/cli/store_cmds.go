package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mhimmo/internal/domain"
	"mhimmo/internal/persistence"
)

func seedCmd(e *env) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the bootstrap dataset into empty slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer s.close()
			if force {
				if err := s.adapter.Reset(ctx); err != nil {
					return err
				}
			}
			a, err := s.assemble(ctx)
			if err != nil {
				return err
			}
			st := a.Store.Stats("")
			fmt.Fprintf(cmd.OutOrStdout(), "store ready: %d users, %d properties (%d occupied), %d contracts\n",
				len(a.Store.Users()), st.TotalProperties, st.OccupiedProperties, len(a.Store.Contracts()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "delete every slot first")
	return cmd
}

func dumpCmd(e *env) *cobra.Command {
	names := make([]string, 0, len(domain.Collections))
	for _, c := range domain.Collections {
		names = append(names, string(c))
	}
	return &cobra.Command{
		Use:       "dump <collection>",
		Short:     "Print a stored collection as indented JSON",
		Long:      "Collections: " + strings.Join(names, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := domain.Collection(args[0])
			if !c.Valid() {
				return fmt.Errorf("unknown collection %q (want one of %s)", args[0], strings.Join(names, ", "))
			}
			ctx := cmd.Context()
			s, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer s.close()

			raw, err := s.adapter.Raw(ctx, c)
			if errors.Is(err, persistence.ErrNotFound) {
				return fmt.Errorf("%s: slot is empty, run seed first", c)
			}
			if err != nil {
				return err
			}
			var out bytes.Buffer
			if err := json.Indent(&out, raw, "", "  "); err != nil {
				return fmt.Errorf("%s: stored payload is not JSON: %w", c, err)
			}
			out.WriteByte('\n')
			_, err = out.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}

func resetCmd(e *env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every slot, including sessions and credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("reset deletes all data; pass --yes to confirm")
			}
			ctx := cmd.Context()
			s, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer s.close()
			held, err := s.adapter.Stored(ctx)
			if err != nil {
				return err
			}
			if err := s.adapter.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d slots\n", len(held))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm")
	return cmd
}

func slotsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List the slots that currently hold data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer s.close()
			held, err := s.adapter.Stored(ctx)
			if err != nil {
				return err
			}
			if len(held) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no slots, run seed first")
				return nil
			}
			for _, k := range held {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}

func checkCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Compare stored property occupancy with the contracts",
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
			drift, err := a.Check(ctx)
			if err != nil {
				return err
			}
			for _, d := range drift {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			if len(drift) > 0 {
				return fmt.Errorf("%d properties disagree with their contracts", len(drift))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/EmilIverskog/storageFinder/internal/inventory"
)

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search components by ID",
		Long: `Search components whose ID contains the query, ignoring case.
Without a query every stored component is listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(rootOpts, cmd, strings.Join(args, " "), limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results (0 = no limit)")

	return cmd
}

func runSearch(opts *RootOptions, cmd *cobra.Command, query string, limit int) error {
	svc, s, err := opts.openService()
	if err != nil {
		return err
	}
	defer s.Close()

	results, err := svc.Search(query)
	if err != nil {
		return WrapExitError(ExitFailure, "search", err)
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		if strings.TrimSpace(query) == "" {
			fmt.Fprintln(out, "No components stored yet.")
			return nil
		}
		fmt.Fprintf(out, "No components found for: %q\n", query)
		return nil
	}

	fmt.Fprintf(out, "Found %s:\n\n", inventory.CountLabel(len(results)))
	for i, c := range results {
		if limit > 0 && i >= limit {
			fmt.Fprintf(out, "... and %d more\n", len(results)-limit)
			break
		}
		fmt.Fprintf(out, "[%d] %s → %s\n", i+1, c.ID, c.Location)
	}
	return nil
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show where a component is stored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, s, err := rootOpts.openService()
			if err != nil {
				return err
			}
			defer s.Close()

			c, err := svc.Get(args[0])
			if err != nil {
				return WrapExitError(ExitFailure, fmt.Sprintf("get %q", args[0]), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Location)
			return nil
		},
	}
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <id> <location>",
		Short: "Register a new component",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, s, err := rootOpts.openService()
			if err != nil {
				return err
			}
			defer s.Close()

			c, err := svc.Add(args[0], args[1])
			if err != nil {
				return WrapExitError(ExitFailure, "add component", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Component added: %s → %s\n", c.ID, c.Location)
			return nil
		},
	}
}

// NewEditCommand creates the edit command. Omitted flags keep the current
// values.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	var newID, location string

	cmd := &cobra.Command{
		Use:   "edit <original-id>",
		Short: "Rename or relocate a component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("id") && !cmd.Flags().Changed("location") {
				return NewExitError(ExitCommandError, "provide --id or --location")
			}

			svc, s, err := rootOpts.openService()
			if err != nil {
				return err
			}
			defer s.Close()

			current, err := svc.Get(args[0])
			if err != nil {
				return WrapExitError(ExitFailure, fmt.Sprintf("edit %q", args[0]), err)
			}
			if !cmd.Flags().Changed("id") {
				newID = current.ID
			}
			if !cmd.Flags().Changed("location") {
				location = current.Location
			}

			c, err := svc.Update(current.ID, newID, location)
			if err != nil {
				return WrapExitError(ExitFailure, fmt.Sprintf("edit %q", args[0]), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Component updated: %s → %s\n", c.ID, c.Location)
			return nil
		},
	}

	cmd.Flags().StringVar(&newID, "id", "", "new component ID")
	cmd.Flags().StringVar(&location, "location", "", "new storage location")

	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, s, err := rootOpts.openService()
			if err != nil {
				return err
			}
			defer s.Close()

			removed, err := svc.Delete(args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "delete component", err)
			}
			if !removed {
				return WrapExitError(ExitFailure, fmt.Sprintf("delete %q", args[0]), inventory.ErrNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Component deleted: %s\n", args[0])
			return nil
		},
	}
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, s, err := rootOpts.openService()
			if err != nil {
				return err
			}
			defer s.Close()

			stats, err := svc.Stats()
			if err != nil {
				return WrapExitError(ExitFailure, "stats", err)
			}

			locations := "none yet"
			if len(stats.Locations) > 0 {
				locations = strings.Join(stats.Locations, ", ")
			}

			cfg := rootOpts.StoreConfig()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Storage Finder Stats\n")
			fmt.Fprintf(out, "  Components: %d\n", stats.Total)
			fmt.Fprintf(out, "  Locations:  %s\n", locations)
			fmt.Fprintf(out, "  Backend:    %s\n", cfg.Backend)
			return nil
		},
	}
}

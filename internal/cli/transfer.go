package cli

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/EmilIverskog/storageFinder/internal/backup"
	"github.com/EmilIverskog/storageFinder/internal/inventory"
)

var nowFn = time.Now

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var dir, format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog to a backup file",
		Long: `Write every stored component to a timestamped backup file
(detaljer_backup_YYYY-MM-DD_HH-MM.json) that import can read back.
Use --format xlsx for a spreadsheet copy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = rootOpts.ExportDir()
			}

			write := backup.WriteJSON
			switch strings.ToLower(format) {
			case "", "json":
			case "xlsx":
				write = backup.WriteXLSX
			default:
				return NewExitError(ExitCommandError, fmt.Sprintf("unknown format %q (use json or xlsx)", format))
			}

			svc, s, err := rootOpts.openService()
			if err != nil {
				return err
			}
			defer s.Close()

			items, err := svc.All()
			if err != nil {
				return WrapExitError(ExitFailure, "export", err)
			}

			path, err := write(dir, nowFn(), items)
			if errors.Is(err, backup.ErrNothingToExport) {
				fmt.Fprintln(cmd.OutOrStdout(), "No data to export")
				return nil
			}
			if err != nil {
				return WrapExitError(ExitFailure, "export", err)
			}

			slog.Info("catalog exported", "path", path, "count", len(items))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", inventory.CountLabel(len(items)), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default --export-dir)")
	cmd.Flags().StringVar(&format, "format", "json", "output format (json|xlsx)")

	return cmd
}

// NewImportCommand creates the import command. The file replaces the whole
// catalog, so it asks for confirmation unless --yes is given.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the catalog with a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := backup.ReadFile(args[0])
			if err != nil {
				return WrapExitError(ExitFailure, fmt.Sprintf("import %s", args[0]), err)
			}

			svc, s, err := rootOpts.openService()
			if err != nil {
				return err
			}
			defer s.Close()

			if !yes {
				current, err := svc.All()
				if err != nil {
					return WrapExitError(ExitFailure, "import", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Replace %s with %s from %s? [y/N] ",
					inventory.CountLabel(len(current)), inventory.CountLabel(len(items)), args[0])
				if !confirm(cmd) {
					fmt.Fprintln(cmd.OutOrStdout(), "Import cancelled")
					return nil
				}
			}

			if err := svc.Replace(items); err != nil {
				return WrapExitError(ExitFailure, "import", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", inventory.CountLabel(len(items)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace without asking")

	return cmd
}

func confirm(cmd *cobra.Command) bool {
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

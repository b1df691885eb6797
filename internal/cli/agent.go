package cli

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/EmilIverskog/storageFinder/internal/app"
	"github.com/EmilIverskog/storageFinder/internal/mcp"
	"github.com/EmilIverskog/storageFinder/internal/setup"
	"github.com/EmilIverskog/storageFinder/internal/tui"
)

var serveStdio = func(srv *mcpserver.MCPServer) error {
	return mcpserver.ServeStdio(srv)
}

// NewTUICommand creates the tui command. The root command runs the same thing.
func NewTUICommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(rootOpts)
		},
	}
}

func runTUI(opts *RootOptions) error {
	cfg := opts.StoreConfig()

	logFile, err := openLogFile(cfg.DataDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "open log file", err)
	}
	defer logFile.Close()
	if err := setupLogging(logFile, opts.v.GetString("log-level")); err != nil {
		return err
	}

	_, s, err := opts.openService()
	if err != nil {
		return err
	}
	defer s.Close()

	ctl, err := app.NewController(s, opts.ExportDir())
	if err != nil {
		return WrapExitError(ExitFailure, "start", err)
	}

	slog.Info("tui started", "backend", cfg.Backend, "data_dir", cfg.DataDir)
	p := tea.NewProgram(tui.New(ctl, opts.Version))
	if _, err := p.Run(); err != nil {
		return WrapExitError(ExitFailure, "tui", err)
	}
	return nil
}

// NewMCPCommand creates the mcp command.
func NewMCPCommand(rootOpts *RootOptions) *cobra.Command {
	var tools string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the catalog to AI agents over MCP (stdio)",
		Long: `Start an MCP server on stdin/stdout.

--tools selects what agents may call: "read" (search, get, stats),
"write" (add, update, delete, export), "all", or a comma-separated list
of tool names.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, s, err := rootOpts.openService()
			if err != nil {
				return err
			}
			defer s.Close()

			srv := mcp.NewServerWithTools(svc, mcp.Options{
				Version:   rootOpts.Version,
				ExportDir: rootOpts.ExportDir(),
			}, mcp.ResolveTools(tools))

			slog.Info("mcp server starting", "tools", tools)
			if err := serveStdio(srv); err != nil {
				return WrapExitError(ExitFailure, "mcp", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tools, "tools", "all", "tool profile (read|write|all|tool names)")

	return cmd
}

// NewSetupCommand creates the setup command.
func NewSetupCommand(rootOpts *RootOptions) *cobra.Command {
	var tools string

	cmd := &cobra.Command{
		Use:   "setup [agent]",
		Short: "Register the MCP server with an AI agent",
		Long: `Register "storagefinder mcp" with an AI coding agent.
Without an agent the supported agents are listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintln(out, "Supported agents:")
				for _, a := range setup.SupportedAgents() {
					fmt.Fprintf(out, "  %-12s %s\n", a.Name, a.Description)
					fmt.Fprintf(out, "  %-12s %s\n", "", a.InstallDir)
				}
				return nil
			}

			result, err := setup.Install(args[0], tools)
			if err != nil {
				return WrapExitError(ExitFailure, "setup", err)
			}
			fmt.Fprintf(out, "Registered %s for %s (tools: %s)\n", setup.ServerName, result.Agent, result.Tools)
			fmt.Fprintf(out, "  %s\n", result.Destination)
			return nil
		},
	}

	cmd.Flags().StringVar(&tools, "tools", setup.DefaultTools, "tool profile the agent gets")

	return cmd
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "storagefinder %s\n", rootOpts.Version)
		},
	}
}

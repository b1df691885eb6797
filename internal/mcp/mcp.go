// Package mcp implements the Model Context Protocol server for Storage Finder.
//
// This exposes the component catalog via MCP stdio transport so any agent
// (OpenCode, Claude Code, Gemini CLI, ...) can answer "where is part X?"
// just by adding it as an MCP server.
//
// Tool profiles allow agents to load only the tools they need:
//
//	storagefinder mcp                     → all 7 tools (default)
//	storagefinder mcp --tools=read        → lookups only (search, get, stats)
//	storagefinder mcp --tools=write       → mutations (add, update, delete, export)
//	storagefinder mcp --tools=read,write  → combine profiles
//	storagefinder mcp --tools=inventory_search,inventory_get → individual tool names
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/EmilIverskog/storageFinder/internal/backup"
	"github.com/EmilIverskog/storageFinder/internal/inventory"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var nowFn = time.Now

// ─── Tool Profiles ───────────────────────────────────────────────────────────

// ProfileRead contains the lookup tools. Safe to hand to any agent.
var ProfileRead = map[string]bool{
	"inventory_search": true,
	"inventory_get":    true,
	"inventory_stats":  true,
}

// ProfileWrite contains the tools that change the catalog or write files.
var ProfileWrite = map[string]bool{
	"inventory_add":    true,
	"inventory_update": true,
	"inventory_delete": true,
	"inventory_export": true,
}

// Profiles maps profile names to their tool sets.
var Profiles = map[string]map[string]bool{
	"read":  ProfileRead,
	"write": ProfileWrite,
}

// ResolveTools takes a comma-separated string of profile names and/or
// individual tool names and returns the set of tool names to register.
// An empty input means "all": every tool is registered.
func ResolveTools(input string) map[string]bool {
	input = strings.TrimSpace(input)
	if input == "" || input == "all" {
		return nil // nil means register everything
	}

	result := make(map[string]bool)
	for _, token := range strings.Split(input, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if token == "all" {
			return nil
		}
		if profile, ok := Profiles[token]; ok {
			for tool := range profile {
				result[tool] = true
			}
		} else {
			// Treat as individual tool name
			result[token] = true
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// Options configures the server.
type Options struct {
	Version   string
	ExportDir string // default directory for inventory_export
}

// NewServer creates an MCP server with ALL tools registered.
func NewServer(svc *inventory.Service, opts Options) *server.MCPServer {
	return NewServerWithTools(svc, opts, nil)
}

// serverInstructions is returned in the initialize response and may be added
// to the system prompt by clients.
const serverInstructions = `Storage Finder knows where every physical component is stored. ` +
	`Search these tools when you need to: find the shelf, drawer or bin for a part ID; ` +
	`register, move, rename or remove a part; ` +
	`back up the catalog. Key tools: inventory_search, inventory_get.`

// NewServerWithTools creates an MCP server registering only the tools in
// the allowlist. If allowlist is nil, all tools are registered.
func NewServerWithTools(svc *inventory.Service, opts Options, allowlist map[string]bool) *server.MCPServer {
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	srv := server.NewMCPServer(
		"storagefinder",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(serverInstructions),
	)

	registerTools(srv, svc, opts, allowlist)
	return srv
}

// shouldRegister returns true if the tool should be registered given the
// allowlist. If allowlist is nil, everything is allowed.
func shouldRegister(name string, allowlist map[string]bool) bool {
	if allowlist == nil {
		return true
	}
	return allowlist[name]
}

func registerTools(srv *server.MCPServer, svc *inventory.Service, opts Options, allowlist map[string]bool) {
	// ─── inventory_search (profile: read) ──────────────────────────────
	if shouldRegister("inventory_search", allowlist) {
		srv.AddTool(
			mcp.NewTool("inventory_search",
				mcp.WithDescription("Search components by ID. Matching is a case-insensitive substring match on the ID; an empty query lists everything."),
				mcp.WithTitleAnnotation("Search Components"),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithDestructiveHintAnnotation(false),
				mcp.WithIdempotentHintAnnotation(true),
				mcp.WithOpenWorldHintAnnotation(false),
				mcp.WithString("query",
					mcp.Description("Part of a component ID, e.g. 'R-10'"),
				),
				mcp.WithNumber("limit",
					mcp.Description("Max results (default: 20, max: 200)"),
				),
			),
			handleSearch(svc),
		)
	}

	// ─── inventory_get (profile: read) ─────────────────────────────────
	if shouldRegister("inventory_get", allowlist) {
		srv.AddTool(
			mcp.NewTool("inventory_get",
				mcp.WithDescription("Get the storage location of one component by its exact ID (case-sensitive)."),
				mcp.WithTitleAnnotation("Get Component"),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithDestructiveHintAnnotation(false),
				mcp.WithIdempotentHintAnnotation(true),
				mcp.WithOpenWorldHintAnnotation(false),
				mcp.WithString("id",
					mcp.Required(),
					mcp.Description("Exact component ID"),
				),
			),
			handleGet(svc),
		)
	}

	// ─── inventory_stats (profile: read) ───────────────────────────────
	if shouldRegister("inventory_stats", allowlist) {
		srv.AddTool(
			mcp.NewTool("inventory_stats",
				mcp.WithDescription("Show how many components are stored and which locations are in use."),
				mcp.WithTitleAnnotation("Inventory Stats"),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithDestructiveHintAnnotation(false),
				mcp.WithIdempotentHintAnnotation(true),
				mcp.WithOpenWorldHintAnnotation(false),
			),
			handleStats(svc),
		)
	}

	// ─── inventory_add (profile: write) ────────────────────────────────
	if shouldRegister("inventory_add", allowlist) {
		srv.AddTool(
			mcp.NewTool("inventory_add",
				mcp.WithDescription("Register a new component and where it is stored. Fails if the ID already exists; use inventory_update to move an existing component."),
				mcp.WithTitleAnnotation("Add Component"),
				mcp.WithReadOnlyHintAnnotation(false),
				mcp.WithDestructiveHintAnnotation(false),
				mcp.WithIdempotentHintAnnotation(false),
				mcp.WithOpenWorldHintAnnotation(false),
				mcp.WithString("id",
					mcp.Required(),
					mcp.Description("Component ID, unique and case-sensitive"),
				),
				mcp.WithString("location",
					mcp.Required(),
					mcp.Description("Free-text storage location, e.g. 'Shelf 3, drawer B'"),
				),
			),
			handleAdd(svc),
		)
	}

	// ─── inventory_update (profile: write) ─────────────────────────────
	if shouldRegister("inventory_update", allowlist) {
		srv.AddTool(
			mcp.NewTool("inventory_update",
				mcp.WithDescription("Move or rename an existing component. Omitted fields keep their current value."),
				mcp.WithTitleAnnotation("Update Component"),
				mcp.WithReadOnlyHintAnnotation(false),
				mcp.WithDestructiveHintAnnotation(false),
				mcp.WithIdempotentHintAnnotation(true),
				mcp.WithOpenWorldHintAnnotation(false),
				mcp.WithString("id",
					mcp.Required(),
					mcp.Description("Current component ID"),
				),
				mcp.WithString("new_id",
					mcp.Description("New component ID (must not belong to another component)"),
				),
				mcp.WithString("location",
					mcp.Description("New storage location"),
				),
			),
			handleUpdate(svc),
		)
	}

	// ─── inventory_delete (profile: write) ─────────────────────────────
	if shouldRegister("inventory_delete", allowlist) {
		srv.AddTool(
			mcp.NewTool("inventory_delete",
				mcp.WithDescription("Permanently remove a component from the catalog."),
				mcp.WithTitleAnnotation("Delete Component"),
				mcp.WithReadOnlyHintAnnotation(false),
				mcp.WithDestructiveHintAnnotation(true),
				mcp.WithIdempotentHintAnnotation(true),
				mcp.WithOpenWorldHintAnnotation(false),
				mcp.WithString("id",
					mcp.Required(),
					mcp.Description("Exact component ID"),
				),
			),
			handleDelete(svc),
		)
	}

	// ─── inventory_export (profile: write) ─────────────────────────────
	if shouldRegister("inventory_export", allowlist) {
		srv.AddTool(
			mcp.NewTool("inventory_export",
				mcp.WithDescription("Write a timestamped backup of the whole catalog (detaljer_backup_<date>_<time>.json or .xlsx) and return its path."),
				mcp.WithTitleAnnotation("Export Catalog"),
				mcp.WithReadOnlyHintAnnotation(false),
				mcp.WithDestructiveHintAnnotation(false),
				mcp.WithIdempotentHintAnnotation(false),
				mcp.WithOpenWorldHintAnnotation(false),
				mcp.WithString("format",
					mcp.Description("json (default) or xlsx"),
				),
				mcp.WithString("dir",
					mcp.Description("Target directory (default: configured export dir)"),
				),
			),
			handleExport(svc, opts.ExportDir),
		)
	}
}

// ─── Tool Handlers ───────────────────────────────────────────────────────────

func handleSearch(svc *inventory.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, _ := req.GetArguments()["query"].(string)
		limit := intArg(req, "limit", 20)
		if limit <= 0 {
			limit = 20
		}
		if limit > 200 {
			limit = 200
		}

		results, err := svc.Search(query)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Search error: %s", err)), nil
		}

		if len(results) == 0 {
			if strings.TrimSpace(query) == "" {
				return mcp.NewToolResultText("The catalog is empty."), nil
			}
			return mcp.NewToolResultText(fmt.Sprintf("No components found for: %q", query)), nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Found %s:\n\n", inventory.CountLabel(len(results)))
		for i, c := range results {
			if i >= limit {
				fmt.Fprintf(&b, "... and %d more (raise limit or narrow the query)\n", len(results)-limit)
				break
			}
			fmt.Fprintf(&b, "[%d] %s → %s\n", i+1, c.ID, c.Location)
		}

		return mcp.NewToolResultText(b.String()), nil
	}
}

func handleGet(svc *inventory.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, _ := req.GetArguments()["id"].(string)
		if id == "" {
			return mcp.NewToolResultError("id is required"), nil
		}

		c, err := svc.Get(id)
		if errors.Is(err, inventory.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("Component not found: %q. Try inventory_search.", id)), nil
		}
		if err != nil {
			return mcp.NewToolResultError("Failed to get component: " + err.Error()), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("%s is stored at: %s", c.ID, c.Location)), nil
	}
}

func handleStats(svc *inventory.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := svc.Stats()
		if err != nil {
			return mcp.NewToolResultError("Failed to get stats: " + err.Error()), nil
		}

		locations := "none yet"
		if len(stats.Locations) > 0 {
			locations = strings.Join(stats.Locations, ", ")
		}

		result := fmt.Sprintf("Inventory Stats:\n- Components: %d\n- Locations (%d): %s",
			stats.Total, len(stats.Locations), locations)

		return mcp.NewToolResultText(result), nil
	}
}

func handleAdd(svc *inventory.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, _ := req.GetArguments()["id"].(string)
		location, _ := req.GetArguments()["location"].(string)

		c, err := svc.Add(id, location)
		if err != nil {
			return mcp.NewToolResultError("Failed to add component: " + describe(err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Component added: %s → %s", c.ID, c.Location)), nil
	}
}

func handleUpdate(svc *inventory.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, _ := req.GetArguments()["id"].(string)
		if id == "" {
			return mcp.NewToolResultError("id is required"), nil
		}

		newID, hasID := req.GetArguments()["new_id"].(string)
		location, hasLocation := req.GetArguments()["location"].(string)
		if !hasID && !hasLocation {
			return mcp.NewToolResultError("provide new_id or location to update"), nil
		}

		current, err := svc.Get(id)
		if err != nil {
			return mcp.NewToolResultError("Failed to update component: " + describe(err)), nil
		}
		if !hasID {
			newID = current.ID
		}
		if !hasLocation {
			location = current.Location
		}

		c, err := svc.Update(id, newID, location)
		if err != nil {
			return mcp.NewToolResultError("Failed to update component: " + describe(err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Component updated: %s → %s", c.ID, c.Location)), nil
	}
}

func handleDelete(svc *inventory.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, _ := req.GetArguments()["id"].(string)
		if id == "" {
			return mcp.NewToolResultError("id is required"), nil
		}

		removed, err := svc.Delete(id)
		if err != nil {
			return mcp.NewToolResultError("Failed to delete component: " + err.Error()), nil
		}
		if !removed {
			return mcp.NewToolResultText(fmt.Sprintf("Nothing to delete: %q is not in the catalog", id)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Component %q deleted", id)), nil
	}
}

func handleExport(svc *inventory.Service, defaultDir string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		format, _ := req.GetArguments()["format"].(string)
		dir, _ := req.GetArguments()["dir"].(string)
		if dir == "" {
			dir = defaultDir
		}

		write := backup.WriteJSON
		switch strings.ToLower(format) {
		case "", "json":
		case "xlsx":
			write = backup.WriteXLSX
		default:
			return mcp.NewToolResultError(fmt.Sprintf("unknown format %q (use json or xlsx)", format)), nil
		}

		items, err := svc.All()
		if err != nil {
			return mcp.NewToolResultError("Failed to export: " + err.Error()), nil
		}

		path, err := write(dir, nowFn(), items)
		if errors.Is(err, backup.ErrNothingToExport) {
			return mcp.NewToolResultText("No data to export."), nil
		}
		if err != nil {
			return mcp.NewToolResultError("Failed to export: " + err.Error()), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Exported %s to %s", inventory.CountLabel(len(items)), path)), nil
	}
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func describe(err error) string {
	switch {
	case errors.Is(err, inventory.ErrBlankField):
		return "id and location must not be empty"
	case errors.Is(err, inventory.ErrDuplicateID):
		return "a component with that ID already exists"
	case errors.Is(err, inventory.ErrNotFound):
		return "component not found"
	}
	return err.Error()
}

func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

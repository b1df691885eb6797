// Package setup registers the storagefinder MCP server with AI agents.
//
// - OpenCode: injects a local server in opencode.json under "mcp"
// - Claude Code: runs `claude mcp add --scope user`
// - Gemini CLI: injects a server in ~/.gemini/settings.json under "mcpServers"
// - Codex: upserts a [mcp_servers.storagefinder] block in ~/.codex/config.toml
//
// Every agent gets the same command line: `storagefinder mcp --tools=<profile>`.
package setup

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	runtimeGOOS = runtime.GOOS
	userHomeDir = os.UserHomeDir
	lookPathFn  = exec.LookPath
	runCommand  = func(name string, args ...string) ([]byte, error) {
		return exec.Command(name, args...).CombinedOutput()
	}
	readFileFn          = os.ReadFile
	writeFileFn         = os.WriteFile
	jsonMarshalFn       = json.Marshal
	jsonMarshalIndentFn = json.MarshalIndent
)

// ServerName is the key the MCP server is registered under in every agent.
const ServerName = "storagefinder"

// DefaultTools is the tool profile agents get unless told otherwise.
const DefaultTools = "read"

// Agent represents a supported AI coding agent.
type Agent struct {
	Name        string
	Description string
	InstallDir  string // resolved at runtime (display only for claude-code)
}

// Result holds the outcome of an installation.
type Result struct {
	Agent       string
	Destination string
	Tools       string
}

// SupportedAgents returns the agents an MCP registration can be written for.
func SupportedAgents() []Agent {
	return []Agent{
		{
			Name:        "opencode",
			Description: "OpenCode — local MCP server entry in opencode.json",
			InstallDir:  openCodeConfigPath(),
		},
		{
			Name:        "claude-code",
			Description: "Claude Code — user-scoped MCP server via `claude mcp add`",
			InstallDir:  "managed by claude mcp",
		},
		{
			Name:        "gemini-cli",
			Description: "Gemini CLI — mcpServers entry in settings.json",
			InstallDir:  geminiConfigPath(),
		},
		{
			Name:        "codex",
			Description: "Codex — [mcp_servers] block in config.toml",
			InstallDir:  codexConfigPath(),
		},
	}
}

// Install registers the server for agentName with the given tool profile.
// An empty tools value means DefaultTools.
func Install(agentName, tools string) (*Result, error) {
	tools = strings.TrimSpace(tools)
	if tools == "" {
		tools = DefaultTools
	}

	var (
		dest string
		err  error
	)
	switch agentName {
	case "opencode":
		dest, err = installOpenCode(tools)
	case "claude-code":
		dest, err = installClaudeCode(tools)
	case "gemini-cli":
		dest, err = installGeminiCLI(tools)
	case "codex":
		dest, err = installCodex(tools)
	default:
		return nil, fmt.Errorf("unknown agent: %q (supported: opencode, claude-code, gemini-cli, codex)", agentName)
	}
	if err != nil {
		return nil, err
	}

	return &Result{Agent: agentName, Destination: dest, Tools: tools}, nil
}

func serverArgs(tools string) []string {
	return []string{"mcp", "--tools=" + tools}
}

// ─── OpenCode ────────────────────────────────────────────────────────────────

func installOpenCode(tools string) (string, error) {
	path := openCodeConfigPath()
	entry := map[string]any{
		"type":    "local",
		"command": append([]string{ServerName}, serverArgs(tools)...),
		"enabled": true,
	}
	if err := upsertJSONServer(path, "mcp", entry); err != nil {
		return "", err
	}
	return path, nil
}

// openCodeConfigPath returns the path to opencode.json.
func openCodeConfigPath() string {
	home, _ := userHomeDir()

	switch runtimeGOOS {
	case "darwin", "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "opencode", "opencode.json")
		}
		return filepath.Join(home, ".config", "opencode", "opencode.json")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "opencode", "opencode.json")
		}
		return filepath.Join(home, "AppData", "Roaming", "opencode", "opencode.json")
	default:
		return filepath.Join(home, ".config", "opencode", "opencode.json")
	}
}

// ─── Claude Code ─────────────────────────────────────────────────────────────

func installClaudeCode(tools string) (string, error) {
	claudeBin, err := lookPathFn("claude")
	if err != nil {
		return "", fmt.Errorf("claude CLI not found in PATH — install Claude Code first")
	}

	args := append([]string{"mcp", "add", "--scope", "user", ServerName, "--", ServerName}, serverArgs(tools)...)
	out, err := runCommand(claudeBin, args...)
	output := strings.TrimSpace(string(out))
	if err != nil {
		// Re-running setup is fine
		if !strings.Contains(output, "already exists") {
			return "", fmt.Errorf("claude mcp add failed: %s", output)
		}
	}

	return "claude mcp (user scope)", nil
}

// ─── Gemini CLI ──────────────────────────────────────────────────────────────

func installGeminiCLI(tools string) (string, error) {
	path := geminiConfigPath()
	entry := map[string]any{
		"command": ServerName,
		"args":    serverArgs(tools),
	}
	if err := upsertJSONServer(path, "mcpServers", entry); err != nil {
		return "", err
	}
	return path, nil
}

func geminiConfigPath() string {
	home, _ := userHomeDir()

	switch runtimeGOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "gemini", "settings.json")
		}
		return filepath.Join(home, "AppData", "Roaming", "gemini", "settings.json")
	default:
		return filepath.Join(home, ".gemini", "settings.json")
	}
}

// ─── Shared JSON config ──────────────────────────────────────────────────────

// upsertJSONServer sets config[block][ServerName] = entry in the JSON file at
// path, preserving every other key. A missing file starts from {}.
func upsertJSONServer(path, block string, entry map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var config map[string]json.RawMessage
	data, err := readFileFn(path)
	switch {
	case os.IsNotExist(err):
		config = make(map[string]json.RawMessage)
	case err != nil:
		return fmt.Errorf("read config: %w", err)
	case len(strings.TrimSpace(string(data))) == 0:
		config = make(map[string]json.RawMessage)
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
	}

	servers := make(map[string]json.RawMessage)
	if raw, exists := config[block]; exists {
		if err := json.Unmarshal(raw, &servers); err != nil {
			return fmt.Errorf("parse %s block: %w", block, err)
		}
	}

	entryJSON, err := jsonMarshalFn(entry)
	if err != nil {
		return fmt.Errorf("marshal %s entry: %w", ServerName, err)
	}
	servers[ServerName] = json.RawMessage(entryJSON)

	blockJSON, err := jsonMarshalFn(servers)
	if err != nil {
		return fmt.Errorf("marshal %s block: %w", block, err)
	}
	config[block] = json.RawMessage(blockJSON)

	output, err := jsonMarshalIndentFn(config, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := writeFileFn(path, output, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ─── Codex ───────────────────────────────────────────────────────────────────

func installCodex(tools string) (string, error) {
	path := codexConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}

	data, err := readFileFn(path)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("read config: %w", err)
	}

	updated := upsertCodexBlock(string(data), tools)
	if err := writeFileFn(path, []byte(updated), 0644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

func codexBlock(tools string) string {
	return fmt.Sprintf("[mcp_servers.%s]\ncommand = %q\nargs = [\"mcp\", %q]", ServerName, ServerName, "--tools="+tools)
}

// upsertCodexBlock drops any existing [mcp_servers.storagefinder] table and
// appends a fresh one.
func upsertCodexBlock(content, tools string) string {
	header := "[mcp_servers." + ServerName + "]"
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")

	var kept []string
	for i := 0; i < len(lines); {
		if strings.TrimSpace(lines[i]) == header {
			i++
			for i < len(lines) {
				next := strings.TrimSpace(lines[i])
				if strings.HasPrefix(next, "[") && strings.HasSuffix(next, "]") {
					break
				}
				i++
			}
			continue
		}

		kept = append(kept, lines[i])
		i++
	}

	base := strings.TrimSpace(strings.Join(kept, "\n"))
	if base == "" {
		return codexBlock(tools) + "\n"
	}
	return base + "\n\n" + codexBlock(tools) + "\n"
}

func codexConfigPath() string {
	home, _ := userHomeDir()

	switch runtimeGOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "codex", "config.toml")
		}
		return filepath.Join(home, "AppData", "Roaming", "codex", "config.toml")
	default:
		return filepath.Join(home, ".codex", "config.toml")
	}
}

// Storage Finder: where is that component stored?
//
// Usage:
//
//	storagefinder                 Open the terminal UI
//	storagefinder search <query>  Search components from the CLI
//	storagefinder mcp             Start MCP server (stdio transport)
//	storagefinder setup <agent>   Register the MCP server with an AI agent
//
// Run `storagefinder --help` for every command.
package main

import (
	"os"

	"github.com/EmilIverskog/storageFinder/internal/cli"
)

const version = "0.1.0"

func main() {
	os.Exit(cli.Execute(version))
}

package main

import (
	"flag"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/claude/gtg/internal/mcp"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// gtg-mcp bridges a local MCP client speaking stdio to a remote GTG
// server over its REST API. Point Claude Desktop or any other MCP
// client at this binary with the server URL.
func main() {
	url := flag.String("url", "http://localhost:8080", "base URL of the GTG server")
	apiKey := flag.String("api-key", os.Getenv("GTG_API_KEY"), "API key for mutating operations")
	flag.Parse()

	// Logs go to stderr; stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	client := mcp.NewHTTPClient(*url, *apiKey)
	srv := mcp.New(client, Version, log)

	log.Info("starting MCP stdio server", "url", *url, "version", Version)
	if err := mcpserver.ServeStdio(srv); err != nil {
		log.Error("MCP server error", "error", err)
		os.Exit(1)
	}
}

// TM1 MCP Server - A Model Context Protocol server for IBM Planning
// Analytics (TM1). Provides tools for managing dimensions, hierarchies,
// subsets, and cube data over the TM1 REST API.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/planops/tm1-mcp-server/internal/rest"
	"github.com/planops/tm1-mcp-server/internal/tm1"
	"github.com/planops/tm1-mcp-server/tools"
	"github.com/planops/tm1-mcp-server/tracing"
)

const (
	ServerName    = "tm1-mcp-server"
	ServerVersion = "1.0.0"
)

func main() {
	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Load configuration from environment
	config, err := rest.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Initialize tracing (no-op unless OTEL is configured)
	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	// Create TM1 client over the shared REST transport
	restClient := rest.NewClient(config, rest.WithLogger(logger))
	client := tm1.NewClient(restClient, logger)

	// Create MCP server
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: buildInstructions(),
	})

	// Register all tools
	registry := tools.NewHandlerRegistry(client, logger)
	registry.RegisterAll(server)

	// Run server on stdio transport
	logger.Info("Starting TM1 MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"tm1_address", config.Address,
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// buildInstructions assembles the server instructions from the tool registry
// so the listing never drifts from the registered tools
func buildInstructions() string {
	var b strings.Builder
	b.WriteString(`TM1 MCP Server provides tools for managing IBM Planning Analytics (TM1) models over the REST API.

Available tools:
`)
	for _, spec := range tools.AllTools {
		b.WriteString("- ")
		b.WriteString(spec.Name)
		b.WriteString(": ")
		b.WriteString(spec.Title)
		b.WriteString("\n")
	}
	b.WriteString(`
Object names compare ignoring case and spaces. The Leaves hierarchy of a dimension is maintained by the server and is never created, updated, or deleted by these tools.

Configure via environment variables:
- TM1_ADDRESS: TM1 REST API base URL (e.g., https://tm1.example.com:12354)
- TM1_USER / TM1_PASSWORD: Credentials
- TM1_CAM_NAMESPACE: Set for CAM authentication (IntegratedSecurityMode 4/5)`)
	return b.String()
}

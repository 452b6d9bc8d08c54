package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/planops/tm1-mcp-server/internal/tm1"
	"github.com/planops/tm1-mcp-server/metrics"
	"github.com/planops/tm1-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	client *tm1.Client
	logger *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(client *tm1.Client, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		client: client,
		logger: logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	for _, spec := range AllTools {
		h.registerByName(server, spec)
	}
	h.logger.Info("Registered all tools", "count", len(AllTools))
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) {
	tool := h.buildTool(spec)

	switch spec.Method {
	// Dimension tools
	case "ListDimensions":
		register(h, server, tool, spec, h.client.ListDimensionsMCP)
	case "GetDimension":
		register(h, server, tool, spec, h.client.GetDimensionMCP)
	case "CreateDimension":
		register(h, server, tool, spec, h.client.CreateDimensionMCP)
	case "UpdateDimension":
		register(h, server, tool, spec, h.client.UpdateDimensionMCP)
	case "DeleteDimension":
		register(h, server, tool, spec, h.client.DeleteDimensionMCP)
	case "DimensionExists":
		register(h, server, tool, spec, h.client.DimensionExistsMCP)
	case "ExecuteDimensionMDX":
		register(h, server, tool, spec, h.client.ExecuteDimensionMDXMCP)
	case "CreateElementAttributes":
		register(h, server, tool, spec, h.client.CreateElementAttributesMCP)

	// Hierarchy tools
	case "ListHierarchies":
		register(h, server, tool, spec, h.client.ListHierarchiesMCP)

	// Subset tools
	case "GetSubset":
		register(h, server, tool, spec, h.client.GetSubsetMCP)
	case "CreateSubset":
		register(h, server, tool, spec, h.client.CreateSubsetMCP)
	case "DeleteSubset":
		register(h, server, tool, spec, h.client.DeleteSubsetMCP)

	// Process tools
	case "ExecuteTI":
		register(h, server, tool, spec, h.client.ExecuteTIMCP)

	// Cell tools
	case "ExecuteMDXValues":
		register(h, server, tool, spec, h.client.ExecuteMDXValuesMCP)
	case "WriteCellValue":
		register(h, server, tool, spec, h.client.WriteCellValueMCP)

	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
	}
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the client method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (*mcp.CallToolResult, Result, error) {
		defer h.recoverPanic(spec.Name)

		// Start trace span
		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		span.SetAttributes(
			attribute.String("mcp.tool.name", spec.Name),
			attribute.String("mcp.tool.category", spec.Category),
			attribute.Bool("mcp.tool.readonly", spec.ReadOnly),
		)

		// Track in-flight requests
		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)
		return nil, result, nil
	})
}

// recoverPanic recovers from panics in tool handlers.
func (h *HandlerRegistry) recoverPanic(toolName string) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name, "category", spec.Category}

	// Add extractable fields from args using type assertions
	switch a := args.(type) {
	case tm1.GetDimensionArgs:
		attrs = append(attrs, "dimension", a.Name)
	case tm1.CreateDimensionArgs:
		attrs = append(attrs, "dimension", a.Dimension.Name, "hierarchies", len(a.Dimension.Hierarchies))
	case tm1.UpdateDimensionArgs:
		attrs = append(attrs, "dimension", a.Dimension.Name, "hierarchies", len(a.Dimension.Hierarchies))
	case tm1.DeleteDimensionArgs:
		attrs = append(attrs, "dimension", a.Name)
	case tm1.DimensionExistsArgs:
		attrs = append(attrs, "dimension", a.Name)
	case tm1.ExecuteDimensionMDXArgs:
		attrs = append(attrs, "dimension", a.Dimension)
	case tm1.CreateElementAttributesArgs:
		attrs = append(attrs, "dimension", a.Dimension.Name)
	case tm1.ListHierarchiesArgs:
		attrs = append(attrs, "dimension", a.Dimension)
	case tm1.GetSubsetArgs:
		attrs = append(attrs, "dimension", a.Dimension, "subset", a.Name)
	case tm1.CreateSubsetArgs:
		attrs = append(attrs, "dimension", a.Dimension, "subset", a.Name)
	case tm1.DeleteSubsetArgs:
		attrs = append(attrs, "dimension", a.Dimension, "subset", a.Name)
	case tm1.ExecuteTIArgs:
		attrs = append(attrs, "prolog_lines", len(a.Prolog), "epilog_lines", len(a.Epilog))
	case tm1.WriteCellValueArgs:
		attrs = append(attrs, "cube", a.Cube)
	}

	// Add extractable fields from result
	switch r := result.(type) {
	case tm1.ListDimensionsResult:
		attrs = append(attrs, "count", r.Count)
	case tm1.GetDimensionResult:
		attrs = append(attrs, "hierarchies", len(r.Hierarchies))
	case tm1.DimensionExistsResult:
		attrs = append(attrs, "exists", r.Exists)
	case tm1.ExecuteDimensionMDXResult:
		attrs = append(attrs, "elements", r.Count)
	case tm1.CreateElementAttributesResult:
		attrs = append(attrs, "attributes_created", r.Created)
	case tm1.ListHierarchiesResult:
		attrs = append(attrs, "count", r.Count)
	case tm1.GetSubsetResult:
		attrs = append(attrs, "dynamic", r.Dynamic, "elements", len(r.Elements))
	case tm1.ExecuteMDXValuesResult:
		attrs = append(attrs, "cells", r.Count)
	}

	h.logger.Info("Tool executed", attrs...)
}

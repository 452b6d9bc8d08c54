package tools

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/planops/tm1-mcp-server/internal/rest"
	"github.com/planops/tm1-mcp-server/internal/tm1"
)

func testRegistry(t *testing.T) *HandlerRegistry {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rc := rest.NewClient(&rest.Config{
		Address:    "http://localhost:8879",
		Timeout:    time.Second,
		MaxRetries: 1,
		UserAgent:  "test",
	}, rest.WithLogger(logger))
	return NewHandlerRegistry(tm1.NewClient(rc, logger), logger)
}

func TestNewHandlerRegistry(t *testing.T) {
	registry := testRegistry(t)
	if registry == nil {
		t.Fatal("Expected non-nil registry")
	}
	if registry.client == nil {
		t.Error("Registry should hold the TM1 client reference")
	}
}

func TestBuildTool(t *testing.T) {
	registry := testRegistry(t)

	tests := []struct {
		name      string
		spec      ToolSpec
		wantRO    bool
		wantIdem  bool
		wantDestr bool
		wantOpen  bool
	}{
		{
			name: "read-only tool",
			spec: ToolSpec{
				Name:       "tm1_list_dimensions",
				Title:      "List Dimensions",
				Method:     "ListDimensions",
				ReadOnly:   true,
				Idempotent: true,
				OpenWorld:  true,
			},
			wantRO:   true,
			wantIdem: true,
			wantOpen: true,
		},
		{
			name: "destructive tool",
			spec: ToolSpec{
				Name:        "tm1_delete_dimension",
				Title:       "Delete Dimension",
				Method:      "DeleteDimension",
				Destructive: true,
				Idempotent:  true,
			},
			wantIdem:  true,
			wantDestr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := registry.buildTool(tt.spec)

			if tool.Name != tt.spec.Name {
				t.Errorf("name = %q, want %q", tool.Name, tt.spec.Name)
			}
			if tool.Annotations.ReadOnlyHint != tt.wantRO {
				t.Errorf("read-only hint = %v, want %v", tool.Annotations.ReadOnlyHint, tt.wantRO)
			}
			if tool.Annotations.IdempotentHint != tt.wantIdem {
				t.Errorf("idempotent hint = %v, want %v", tool.Annotations.IdempotentHint, tt.wantIdem)
			}
			gotDestr := tool.Annotations.DestructiveHint != nil && *tool.Annotations.DestructiveHint
			if gotDestr != tt.wantDestr {
				t.Errorf("destructive hint = %v, want %v", gotDestr, tt.wantDestr)
			}
			gotOpen := tool.Annotations.OpenWorldHint != nil && *tool.Annotations.OpenWorldHint
			if gotOpen != tt.wantOpen {
				t.Errorf("open-world hint = %v, want %v", gotOpen, tt.wantOpen)
			}
		})
	}
}

func TestAllToolsWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, spec := range AllTools {
		if spec.Name == "" || spec.Method == "" || spec.Title == "" {
			t.Errorf("tool %+v is missing required metadata", spec)
		}
		if !strings.HasPrefix(spec.Name, "tm1_") {
			t.Errorf("tool %q does not carry the tm1_ prefix", spec.Name)
		}
		if spec.Description == "" {
			t.Errorf("tool %q has no description", spec.Name)
		}
		if seen[spec.Name] {
			t.Errorf("tool name %q is duplicated", spec.Name)
		}
		seen[spec.Name] = true

		if spec.ReadOnly && spec.Destructive {
			t.Errorf("tool %q cannot be both read-only and destructive", spec.Name)
		}
	}
}

func TestAllToolsHaveCategories(t *testing.T) {
	valid := map[string]bool{
		"dimension": true,
		"hierarchy": true,
		"subset":    true,
		"process":   true,
		"cell":      true,
	}
	for _, spec := range AllTools {
		if !valid[spec.Category] {
			t.Errorf("tool %q has unknown category %q", spec.Name, spec.Category)
		}
	}
}

package tm1

import (
	"context"
	"io"
	"net/http"
	"testing"
)

func TestToDimension(t *testing.T) {
	dim, err := toDimension(DimensionInput{
		Name: "Product",
		Hierarchies: []HierarchyInput{
			{
				Name:       "Product",
				Elements:   []ElementInput{{Name: "Widget"}, {Name: "All", Type: "Consolidated"}},
				Edges:      []EdgeInput{{Parent: "All", Component: "Widget"}},
				Attributes: []AttributeInput{{Name: "Price", Type: AttributeNumeric}},
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h := dim.Hierarchies[0]
	if h.DimensionName != "Product" {
		t.Errorf("dimension name not stamped on hierarchy: %q", h.DimensionName)
	}
	if h.Elements[0].Type != "Numeric" {
		t.Errorf("element type default = %q, want Numeric", h.Elements[0].Type)
	}
	if h.Elements[1].Type != "Consolidated" {
		t.Errorf("explicit element type lost: %q", h.Elements[1].Type)
	}
	if h.Edges[0].Weight != 1 {
		t.Errorf("edge weight default = %v, want 1", h.Edges[0].Weight)
	}
}

func TestToDimension_Validation(t *testing.T) {
	if _, err := toDimension(DimensionInput{}); err == nil {
		t.Error("missing dimension name must be rejected")
	}
	if _, err := toDimension(DimensionInput{
		Name:        "Product",
		Hierarchies: []HierarchyInput{{}},
	}); err == nil {
		t.Error("missing hierarchy name must be rejected")
	}
}

func TestListDimensionsMCP(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"value":[{"Name":"Region"},{"Name":"Product"}]}`)
	}))

	result, err := client.ListDimensionsMCP(context.Background(), ListDimensionsArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Count != 2 || result.Names[0] != "Region" {
		t.Errorf("result = %+v", result)
	}
}

func TestDimensionExistsMCP(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	result, err := client.DimensionExistsMCP(context.Background(), DimensionExistsArgs{Name: "Missing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Exists {
		t.Error("absent dimension reported as existing")
	}
}

func TestCreateSubsetMCP_RejectsMixedDefinition(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	}))

	_, err := client.CreateSubsetMCP(context.Background(), CreateSubsetArgs{
		Dimension:  "Region",
		Name:       "Bad",
		Expression: "{}",
		Elements:   []string{"Europe"},
	})
	if err == nil {
		t.Fatal("expected a validation error")
	}
}

package tm1

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	apierrors "github.com/planops/tm1-mcp-server/internal/errors"
)

func TestHierarchyGetAllNames(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/Dimensions('Region')/Hierarchies") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		io.WriteString(w, `{"value":[{"Name":"Region"},{"Name":"Leaves"}]}`)
	}))

	names, err := client.Dimensions.Hierarchies.GetAllNames(context.Background(), "Region")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "Region" || names[1] != "Leaves" {
		t.Errorf("got %v, want [Region Leaves]", names)
	}
}

func TestHierarchyGetAllNames_DimensionMissing(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.Dimensions.Hierarchies.GetAllNames(context.Background(), "Missing")
	if !apierrors.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestHierarchyLeavesGuard(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request must not reach the server: %s %s", r.Method, r.URL.Path)
	}))

	hs := client.Dimensions.Hierarchies
	leaves := &Hierarchy{Name: "Leaves", DimensionName: "Region"}

	if err := hs.Create(context.Background(), leaves); !errors.Is(err, ErrLeavesHierarchy) {
		t.Errorf("create: got %v, want ErrLeavesHierarchy", err)
	}
	if err := hs.Update(context.Background(), leaves); !errors.Is(err, ErrLeavesHierarchy) {
		t.Errorf("update: got %v, want ErrLeavesHierarchy", err)
	}
	if err := hs.Delete(context.Background(), "Region", " leaves "); !errors.Is(err, ErrLeavesHierarchy) {
		t.Errorf("delete: got %v, want ErrLeavesHierarchy", err)
	}
}

func TestHierarchyCreate(t *testing.T) {
	log := &callLog{}
	var createBody []byte

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch log.record(r) {
		case "POST /Dimensions('Region')/Hierarchies":
			createBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusCreated)
		case "GET /Dimensions('Region')/Hierarchies('Continent')/ElementAttributes":
			io.WriteString(w, `{"value":[]}`)
		case "POST /Dimensions('Region')/Hierarchies('Continent')/ElementAttributes":
			w.WriteHeader(http.StatusCreated)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
		}
	}))

	h := &Hierarchy{
		Name:              "Continent",
		DimensionName:     "Region",
		Elements:          []Element{{Name: "Europe", Type: "Numeric"}},
		ElementAttributes: []ElementAttribute{{Name: "ISO", Type: AttributeString}},
	}
	if err := client.Dimensions.Hierarchies.Create(context.Background(), h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Attributes are reconciled separately, never part of the create payload
	var payload map[string]any
	if err := json.Unmarshal(createBody, &payload); err != nil {
		t.Fatalf("failed to parse create body: %v", err)
	}
	if _, ok := payload["ElementAttributes"]; ok {
		t.Error("create payload must not carry ElementAttributes")
	}
	if !log.has("POST /Dimensions('Region')/Hierarchies('Continent')/ElementAttributes") {
		t.Error("element attribute was not created")
	}
}

func TestHierarchyUpdate_ReconcilesAttributes(t *testing.T) {
	log := &callLog{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch log.record(r) {
		case "PATCH /Dimensions('Region')/Hierarchies('Region')":
			w.WriteHeader(http.StatusOK)
		case "GET /Dimensions('Region')/Hierarchies('Region')/ElementAttributes":
			io.WriteString(w, `{"value":[{"Name":"Currency","Type":"String"},{"Name":"Obsolete","Type":"Numeric"}]}`)
		case "DELETE /Dimensions('Region')/Hierarchies('Region')/ElementAttributes('Obsolete')":
			w.WriteHeader(http.StatusNoContent)
		case "POST /Dimensions('Region')/Hierarchies('Region')/ElementAttributes":
			body, _ := io.ReadAll(r.Body)
			if !strings.Contains(string(body), "Population") {
				t.Errorf("unexpected attribute create body: %s", body)
			}
			w.WriteHeader(http.StatusCreated)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
		}
	}))

	h := &Hierarchy{
		Name:          "Region",
		DimensionName: "Region",
		ElementAttributes: []ElementAttribute{
			{Name: "Currency", Type: AttributeString},
			{Name: "Population", Type: AttributeNumeric},
		},
	}
	if err := client.Dimensions.Hierarchies.Update(context.Background(), h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !log.has("DELETE /Dimensions('Region')/Hierarchies('Region')/ElementAttributes('Obsolete')") {
		t.Error("stale attribute was not deleted")
	}
	// Currency exists on both sides and must be left alone
	if got := log.count("POST /Dimensions('Region')/Hierarchies('Region')/ElementAttributes"); got != 1 {
		t.Errorf("got %d attribute creations, want 1", got)
	}
}

func TestHierarchyExists(t *testing.T) {
	status := http.StatusOK
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		if status == http.StatusOK {
			io.WriteString(w, `{"Name":"Region"}`)
		}
	}))

	exists, err := client.Dimensions.Hierarchies.Exists(context.Background(), "Region", "Region")
	if err != nil || !exists {
		t.Errorf("exists = %v, err = %v; want true, nil", exists, err)
	}

	status = http.StatusNotFound
	exists, err = client.Dimensions.Hierarchies.Exists(context.Background(), "Region", "Missing")
	if err != nil || exists {
		t.Errorf("exists = %v, err = %v; want false, nil", exists, err)
	}
}

func TestHierarchyGet(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{
			"Name": "Region",
			"Elements": [{"Name":"Europe","Type":"Consolidated"}],
			"Edges": [{"ParentName":"Europe","ComponentName":"Germany","Weight":1}],
			"ElementAttributes": [{"Name":"Currency","Type":"String"}]
		}`)
	}))

	h, err := client.Dimensions.Hierarchies.Get(context.Background(), "Region", "Region")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.DimensionName != "Region" {
		t.Errorf("dimension name = %q, want Region", h.DimensionName)
	}
	if len(h.Elements) != 1 || len(h.Edges) != 1 || len(h.ElementAttributes) != 1 {
		t.Errorf("hierarchy not fully parsed: %+v", h)
	}
}

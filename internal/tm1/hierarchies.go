package tm1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	apierrors "github.com/planops/tm1-mcp-server/internal/errors"
	"github.com/planops/tm1-mcp-server/internal/rest"
)

// ErrLeavesHierarchy is returned when a client tries to create, update, or
// delete the server-maintained Leaves hierarchy
var ErrLeavesHierarchy = errors.New("the Leaves hierarchy is maintained by the server and cannot be modified")

// HierarchyService manages hierarchies within a dimension
type HierarchyService struct {
	rest   *rest.Client
	logger *slog.Logger
}

// NewHierarchyService creates a hierarchy service over the given transport
func NewHierarchyService(rc *rest.Client, logger *slog.Logger) *HierarchyService {
	return &HierarchyService{rest: rc, logger: logger}
}

// GetAllNames returns the hierarchy names of a dimension in server order
func (s *HierarchyService) GetAllNames(ctx context.Context, dimensionName string) ([]string, error) {
	path := fmt.Sprintf("/Dimensions('%s')/Hierarchies?$select=Name", escapeName(dimensionName))
	body, status, err := s.rest.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, apierrors.NewNotFoundError("dimension", dimensionName)
	}
	if status >= 400 {
		return nil, apierrors.NewAPIError(status, string(body))
	}

	var resp namesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse hierarchy names: %w", err)
	}
	return resp.names(), nil
}

// Exists checks whether the hierarchy is present on the dimension
func (s *HierarchyService) Exists(ctx context.Context, dimensionName, hierarchyName string) (bool, error) {
	path := fmt.Sprintf("/Dimensions('%s')/Hierarchies('%s')",
		escapeName(dimensionName), escapeName(hierarchyName))
	body, status, err := s.rest.Get(ctx, path)
	if err != nil {
		return false, err
	}
	switch {
	case status == http.StatusOK:
		return true, nil
	case status == http.StatusNotFound:
		return false, nil
	default:
		return false, apierrors.NewAPIError(status, string(body))
	}
}

// Get retrieves the hierarchy with elements, edges, and attributes expanded
func (s *HierarchyService) Get(ctx context.Context, dimensionName, hierarchyName string) (*Hierarchy, error) {
	path := fmt.Sprintf("/Dimensions('%s')/Hierarchies('%s')?$expand=Elements,Edges,ElementAttributes",
		escapeName(dimensionName), escapeName(hierarchyName))
	body, status, err := s.rest.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, apierrors.NewNotFoundError("hierarchy", dimensionName+":"+hierarchyName)
	}
	if status >= 400 {
		return nil, apierrors.NewAPIError(status, string(body))
	}

	h := &Hierarchy{}
	if err := json.Unmarshal(body, h); err != nil {
		return nil, fmt.Errorf("failed to parse hierarchy response: %w", err)
	}
	h.DimensionName = dimensionName
	return h, nil
}

// Create adds the hierarchy to its dimension and registers its element
// attributes
func (s *HierarchyService) Create(ctx context.Context, h *Hierarchy) error {
	if h.IsLeaves() {
		return ErrLeavesHierarchy
	}

	payload, err := h.Body()
	if err != nil {
		return fmt.Errorf("failed to build hierarchy body: %w", err)
	}

	path := fmt.Sprintf("/Dimensions('%s')/Hierarchies", escapeName(h.DimensionName))
	body, status, err := s.rest.Post(ctx, path, payload)
	if err != nil {
		return err
	}
	if status >= 400 {
		return apierrors.NewAPIError(status, string(body))
	}

	return s.updateElementAttributes(ctx, h)
}

// Update replaces the hierarchy's structure and reconciles its element
// attributes with the given definition
func (s *HierarchyService) Update(ctx context.Context, h *Hierarchy) error {
	if h.IsLeaves() {
		return ErrLeavesHierarchy
	}

	payload, err := h.Body()
	if err != nil {
		return fmt.Errorf("failed to build hierarchy body: %w", err)
	}

	path := fmt.Sprintf("/Dimensions('%s')/Hierarchies('%s')",
		escapeName(h.DimensionName), escapeName(h.Name))
	body, status, err := s.rest.Patch(ctx, path, payload)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return apierrors.NewNotFoundError("hierarchy", h.DimensionName+":"+h.Name)
	}
	if status >= 400 {
		return apierrors.NewAPIError(status, string(body))
	}

	return s.updateElementAttributes(ctx, h)
}

// Delete removes the hierarchy from its dimension
func (s *HierarchyService) Delete(ctx context.Context, dimensionName, hierarchyName string) error {
	if NamesEqual(hierarchyName, LeavesHierarchy) {
		return ErrLeavesHierarchy
	}

	path := fmt.Sprintf("/Dimensions('%s')/Hierarchies('%s')",
		escapeName(dimensionName), escapeName(hierarchyName))
	body, status, err := s.rest.Delete(ctx, path)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return apierrors.NewNotFoundError("hierarchy", dimensionName+":"+hierarchyName)
	}
	if status >= 400 {
		return apierrors.NewAPIError(status, string(body))
	}
	return nil
}

// GetElementAttributes returns the attributes currently defined on the
// hierarchy
func (s *HierarchyService) GetElementAttributes(ctx context.Context, dimensionName, hierarchyName string) ([]ElementAttribute, error) {
	path := fmt.Sprintf("/Dimensions('%s')/Hierarchies('%s')/ElementAttributes",
		escapeName(dimensionName), escapeName(hierarchyName))
	body, status, err := s.rest.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, apierrors.NewNotFoundError("hierarchy", dimensionName+":"+hierarchyName)
	}
	if status >= 400 {
		return nil, apierrors.NewAPIError(status, string(body))
	}

	var resp struct {
		Value []ElementAttribute `json:"value"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse element attributes: %w", err)
	}
	return resp.Value, nil
}

// updateElementAttributes reconciles the server-side attributes with the
// hierarchy definition: attributes missing from the definition are removed,
// new ones are added. Attributes present on both sides are left untouched
// so their cube data survives.
func (s *HierarchyService) updateElementAttributes(ctx context.Context, h *Hierarchy) error {
	existing, err := s.GetElementAttributes(ctx, h.DimensionName, h.Name)
	if err != nil {
		return err
	}

	desired := make(map[string]ElementAttribute, len(h.ElementAttributes))
	for _, attr := range h.ElementAttributes {
		desired[NormalizeName(attr.Name)] = attr
	}
	present := make(map[string]bool, len(existing))
	for _, attr := range existing {
		present[NormalizeName(attr.Name)] = true
	}

	basePath := fmt.Sprintf("/Dimensions('%s')/Hierarchies('%s')/ElementAttributes",
		escapeName(h.DimensionName), escapeName(h.Name))

	for _, attr := range existing {
		if _, keep := desired[NormalizeName(attr.Name)]; keep {
			continue
		}
		path := fmt.Sprintf("%s('%s')", basePath, escapeName(attr.Name))
		body, status, err := s.rest.Delete(ctx, path)
		if err != nil {
			return err
		}
		if status >= 400 && status != http.StatusNotFound {
			return apierrors.NewAPIError(status, string(body))
		}
	}

	for _, attr := range h.ElementAttributes {
		if present[NormalizeName(attr.Name)] {
			continue
		}
		payload, err := json.Marshal(attr)
		if err != nil {
			return err
		}
		body, status, err := s.rest.Post(ctx, basePath, payload)
		if err != nil {
			return err
		}
		if status >= 400 {
			return apierrors.NewAPIError(status, string(body))
		}
	}
	return nil
}

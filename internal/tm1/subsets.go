package tm1

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	apierrors "github.com/planops/tm1-mcp-server/internal/errors"
	"github.com/planops/tm1-mcp-server/internal/rest"
)

// SubsetService manages public subsets on dimension hierarchies
type SubsetService struct {
	rest   *rest.Client
	logger *slog.Logger
}

// NewSubsetService creates a subset service over the given transport
func NewSubsetService(rc *rest.Client, logger *slog.Logger) *SubsetService {
	return &SubsetService{rest: rc, logger: logger}
}

// subsetPath builds the collection path. An empty hierarchy name falls back
// to the same-named hierarchy, the TM1 default.
func subsetPath(dimensionName, hierarchyName string) string {
	if hierarchyName == "" {
		hierarchyName = dimensionName
	}
	return fmt.Sprintf("/Dimensions('%s')/Hierarchies('%s')/Subsets",
		escapeName(dimensionName), escapeName(hierarchyName))
}

// GetAllNames returns the subset names on a hierarchy in server order
func (s *SubsetService) GetAllNames(ctx context.Context, dimensionName, hierarchyName string) ([]string, error) {
	body, status, err := s.rest.Get(ctx, subsetPath(dimensionName, hierarchyName)+"?$select=Name")
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, apierrors.NewNotFoundError("hierarchy", dimensionName+":"+hierarchyName)
	}
	if status >= 400 {
		return nil, apierrors.NewAPIError(status, string(body))
	}

	var resp namesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse subset names: %w", err)
	}
	return resp.names(), nil
}

// Exists checks whether the subset is present on the hierarchy
func (s *SubsetService) Exists(ctx context.Context, dimensionName, hierarchyName, subsetName string) (bool, error) {
	path := fmt.Sprintf("%s('%s')", subsetPath(dimensionName, hierarchyName), escapeName(subsetName))
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

// Get retrieves the subset with its expression and element names
func (s *SubsetService) Get(ctx context.Context, dimensionName, hierarchyName, subsetName string) (*Subset, error) {
	path := fmt.Sprintf("%s('%s')?$expand=Elements($select=Name)",
		subsetPath(dimensionName, hierarchyName), escapeName(subsetName))
	body, status, err := s.rest.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, apierrors.NewNotFoundError("subset", subsetName)
	}
	if status >= 400 {
		return nil, apierrors.NewAPIError(status, string(body))
	}

	var resp struct {
		Name       string `json:"Name"`
		Expression string `json:"Expression"`
		Elements   []struct {
			Name string `json:"Name"`
		} `json:"Elements"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse subset response: %w", err)
	}

	subset := &Subset{
		Name:          resp.Name,
		DimensionName: dimensionName,
		HierarchyName: hierarchyName,
		Expression:    resp.Expression,
	}
	for _, el := range resp.Elements {
		subset.Elements = append(subset.Elements, el.Name)
	}
	return subset, nil
}

// Create adds the subset to its hierarchy
func (s *SubsetService) Create(ctx context.Context, subset *Subset) error {
	payload, err := subset.Body()
	if err != nil {
		return fmt.Errorf("failed to build subset body: %w", err)
	}

	body, status, err := s.rest.Post(ctx, subsetPath(subset.DimensionName, subset.HierarchyName), payload)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return apierrors.NewNotFoundError("hierarchy", subset.DimensionName+":"+subset.HierarchyName)
	}
	if status >= 400 {
		return apierrors.NewAPIError(status, string(body))
	}

	s.logger.Info("subset created",
		"dimension", subset.DimensionName,
		"subset", subset.Name,
		"dynamic", subset.IsDynamic())
	return nil
}

// Update replaces the subset definition in place
func (s *SubsetService) Update(ctx context.Context, subset *Subset) error {
	payload, err := subset.Body()
	if err != nil {
		return fmt.Errorf("failed to build subset body: %w", err)
	}

	path := fmt.Sprintf("%s('%s')", subsetPath(subset.DimensionName, subset.HierarchyName), escapeName(subset.Name))
	body, status, err := s.rest.Patch(ctx, path, payload)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return apierrors.NewNotFoundError("subset", subset.Name)
	}
	if status >= 400 {
		return apierrors.NewAPIError(status, string(body))
	}
	return nil
}

// Delete removes the subset from its hierarchy
func (s *SubsetService) Delete(ctx context.Context, dimensionName, hierarchyName, subsetName string) error {
	path := fmt.Sprintf("%s('%s')", subsetPath(dimensionName, hierarchyName), escapeName(subsetName))
	body, status, err := s.rest.Delete(ctx, path)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return apierrors.NewNotFoundError("subset", subsetName)
	}
	if status >= 400 {
		return apierrors.NewAPIError(status, string(body))
	}
	return nil
}

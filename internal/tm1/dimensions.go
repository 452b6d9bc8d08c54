package tm1

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	apierrors "github.com/planops/tm1-mcp-server/internal/errors"
	"github.com/planops/tm1-mcp-server/internal/rest"
	"github.com/planops/tm1-mcp-server/metrics"
)

// elementAttributesCubePrefix is the control cube holding attribute values
// for a dimension's elements
const elementAttributesCubePrefix = "}ElementAttributes_"

// DimensionService manages TM1 dimensions. Hierarchy, subset, and process
// operations are delegated to the collaborating services, all sharing one
// REST transport.
type DimensionService struct {
	rest   *rest.Client
	logger *slog.Logger

	Hierarchies *HierarchyService
	Subsets     *SubsetService
	Processes   *ProcessService
}

// NewDimensionService creates a dimension service and its collaborators
// over the given transport
func NewDimensionService(rc *rest.Client, logger *slog.Logger) *DimensionService {
	return &DimensionService{
		rest:        rc,
		logger:      logger,
		Hierarchies: NewHierarchyService(rc, logger),
		Subsets:     NewSubsetService(rc, logger),
		Processes:   NewProcessService(rc, logger),
	}
}

// Create creates the dimension with all its hierarchies and element
// attributes. If the hierarchy setup fails after the dimension was created,
// the partially created dimension is deleted so the server is left without
// a half-initialized object.
func (s *DimensionService) Create(ctx context.Context, dim *Dimension) (err error) {
	start := time.Now()
	defer func() { metrics.RecordAPICall("dimension", "create", time.Since(start).Seconds(), err == nil) }()

	exists, err := s.Exists(ctx, dim.Name)
	if err != nil {
		return err
	}
	if exists {
		return apierrors.NewAlreadyExistsError("dimension", dim.Name)
	}

	body, err := dim.Body()
	if err != nil {
		return fmt.Errorf("failed to build dimension body: %w", err)
	}

	respBody, status, err := s.rest.Post(ctx, "/Dimensions", body)
	if err != nil {
		return err
	}
	if status >= 400 {
		return apierrors.NewAPIError(status, string(respBody))
	}

	// Element attributes cannot be sent with the create payload; they are
	// reconciled per hierarchy afterwards
	for i := range dim.Hierarchies {
		h := &dim.Hierarchies[i]
		if h.IsLeaves() || len(h.ElementAttributes) == 0 {
			continue
		}
		h.DimensionName = dim.Name
		if updateErr := s.Hierarchies.Update(ctx, h); updateErr != nil {
			return s.rollbackCreate(ctx, dim.Name, updateErr)
		}
	}

	s.logger.Info("dimension created", "dimension", dim.Name, "hierarchies", len(dim.Hierarchies))
	return nil
}

// rollbackCreate removes a dimension left behind by a failed Create. The
// original cause is returned when the cleanup succeeds; when the cleanup
// itself fails, both errors are reported.
func (s *DimensionService) rollbackCreate(ctx context.Context, name string, cause error) error {
	op := fmt.Sprintf("create dimension %q", name)

	exists, probeErr := s.Exists(ctx, name)
	if probeErr != nil {
		return &apierrors.CompensationError{Op: op, Err: cause, CompensationErr: probeErr}
	}
	if exists {
		if delErr := s.Delete(ctx, name); delErr != nil {
			return &apierrors.CompensationError{Op: op, Err: cause, CompensationErr: delErr}
		}
		s.logger.Warn("rolled back partially created dimension", "dimension", name, "cause", cause)
	}
	return cause
}

// Get retrieves the dimension with all hierarchies fully expanded
func (s *DimensionService) Get(ctx context.Context, name string) (dim *Dimension, err error) {
	start := time.Now()
	defer func() { metrics.RecordAPICall("dimension", "get", time.Since(start).Seconds(), err == nil) }()

	path := fmt.Sprintf("/Dimensions('%s')?$expand=Hierarchies($expand=*)", escapeName(name))
	body, status, err := s.rest.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, apierrors.NewNotFoundError("dimension", name)
	}
	if status >= 400 {
		return nil, apierrors.NewAPIError(status, string(body))
	}

	dim = &Dimension{}
	if err := json.Unmarshal(body, dim); err != nil {
		return nil, fmt.Errorf("failed to parse dimension response: %w", err)
	}
	for i := range dim.Hierarchies {
		dim.Hierarchies[i].DimensionName = dim.Name
	}
	return dim, nil
}

// Update reconciles the server-side dimension with the given definition:
// hierarchies missing from the new definition are deleted, the rest are
// created or updated in place. The Leaves hierarchy is never touched.
func (s *DimensionService) Update(ctx context.Context, dim *Dimension) (err error) {
	start := time.Now()
	defer func() { metrics.RecordAPICall("dimension", "update", time.Since(start).Seconds(), err == nil) }()

	currentNames, err := s.Hierarchies.GetAllNames(ctx, dim.Name)
	if err != nil {
		return err
	}

	for _, name := range currentNames {
		if NamesEqual(name, LeavesHierarchy) || dim.HasHierarchy(name) {
			continue
		}
		if err := s.Hierarchies.Delete(ctx, dim.Name, name); err != nil {
			return err
		}
	}

	for i := range dim.Hierarchies {
		h := &dim.Hierarchies[i]
		if h.IsLeaves() {
			continue
		}
		h.DimensionName = dim.Name

		exists, err := s.Hierarchies.Exists(ctx, dim.Name, h.Name)
		if err != nil {
			return err
		}
		if exists {
			if err := s.Hierarchies.Update(ctx, h); err != nil {
				return err
			}
		} else {
			if err := s.Hierarchies.Create(ctx, h); err != nil {
				return err
			}
		}
	}

	s.logger.Info("dimension updated", "dimension", dim.Name)
	return nil
}

// Delete removes the dimension and everything it contains
func (s *DimensionService) Delete(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { metrics.RecordAPICall("dimension", "delete", time.Since(start).Seconds(), err == nil) }()

	body, status, err := s.rest.Delete(ctx, fmt.Sprintf("/Dimensions('%s')", escapeName(name)))
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return apierrors.NewNotFoundError("dimension", name)
	}
	if status >= 400 {
		return apierrors.NewAPIError(status, string(body))
	}
	return nil
}

// Exists checks whether the dimension is present on the server. The check
// always hits the server; existence is never cached.
func (s *DimensionService) Exists(ctx context.Context, name string) (bool, error) {
	body, status, err := s.rest.Get(ctx, fmt.Sprintf("/Dimensions('%s')", escapeName(name)))
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

// GetAllNames returns the names of all dimensions in server order
func (s *DimensionService) GetAllNames(ctx context.Context) ([]string, error) {
	body, status, err := s.rest.Get(ctx, "/Dimensions?$select=Name")
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, apierrors.NewAPIError(status, string(body))
	}

	var resp namesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse dimension names: %w", err)
	}
	return resp.names(), nil
}

// mdxAxisExpand asks the server for the row axis only, with each tuple's
// first member resolved to its element name
const mdxAxisExpand = "$expand=Axes($filter=Ordinal%20eq%201;$expand=Tuples($expand=Members($select=Ordinal;$expand=Element($select=Name))))"

// ExecuteMDX evaluates a row-axis MDX fragment against the dimension's
// element attributes cube and returns the element name of each resulting
// tuple, in axis order
func (s *DimensionService) ExecuteMDX(ctx context.Context, dimensionName, mdx string) (names []string, err error) {
	start := time.Now()
	defer func() { metrics.RecordAPICall("dimension", "execute_mdx", time.Since(start).Seconds(), err == nil) }()

	cube := elementAttributesCubePrefix + dimensionName
	fullMDX := fmt.Sprintf("SELECT %s ON ROWS, { [%s].DefaultMember } ON COLUMNS  FROM [%s]", mdx, cube, cube)

	payload, err := json.Marshal(map[string]string{"MDX": fullMDX})
	if err != nil {
		return nil, err
	}

	body, status, err := s.rest.Post(ctx, "/ExecuteMDX?"+mdxAxisExpand, payload)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, apierrors.NewNotFoundError("cube", cube)
	}
	if status >= 400 {
		return nil, apierrors.NewAPIError(status, string(body))
	}

	var resp struct {
		Axes []struct {
			Tuples []struct {
				Members []struct {
					Element struct {
						Name string `json:"Name"`
					} `json:"Element"`
				} `json:"Members"`
			} `json:"Tuples"`
		} `json:"Axes"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse MDX response: %w", err)
	}
	if len(resp.Axes) == 0 {
		return []string{}, nil
	}

	names = make([]string, 0, len(resp.Axes[0].Tuples))
	for _, tuple := range resp.Axes[0].Tuples {
		if len(tuple.Members) == 0 {
			continue
		}
		names = append(names, tuple.Members[0].Element.Name)
	}
	return names, nil
}

// CreateElementAttributesThroughTI registers the dimension's element
// attributes via AttrInsert statements, one batch per hierarchy. Unlike the
// REST attribute endpoint, AttrInsert also creates the backing attribute
// cube cells for existing elements.
func (s *DimensionService) CreateElementAttributesThroughTI(ctx context.Context, dim *Dimension) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordAPICall("dimension", "create_attributes", time.Since(start).Seconds(), err == nil)
	}()

	for i := range dim.Hierarchies {
		h := &dim.Hierarchies[i]
		statements := make([]string, 0, len(h.ElementAttributes))
		for _, attr := range h.ElementAttributes {
			if attr.Name == "" || attr.Type == "" {
				return fmt.Errorf("element attribute on hierarchy %q must have a name and type", h.Name)
			}
			statements = append(statements, fmt.Sprintf("AttrInsert('%s', '', '%s', '%s');",
				tiQuote(dim.Name), tiQuote(attr.Name), attr.Type[:1]))
		}
		if len(statements) == 0 {
			continue
		}
		if err := s.Processes.ExecuteTICode(ctx, statements, nil); err != nil {
			return fmt.Errorf("failed to create attributes for hierarchy %q: %w", h.Name, err)
		}
	}
	return nil
}

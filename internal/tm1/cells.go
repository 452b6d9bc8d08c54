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

// CellService reads and writes cube cell data
type CellService struct {
	rest   *rest.Client
	logger *slog.Logger
}

// NewCellService creates a cell service over the given transport
func NewCellService(rc *rest.Client, logger *slog.Logger) *CellService {
	return &CellService{rest: rc, logger: logger}
}

// ExecuteMDXValues evaluates an MDX query and returns the raw cell values
// in cellset order. Numeric cells come back as float64, string cells as
// string, empty cells as nil.
func (s *CellService) ExecuteMDXValues(ctx context.Context, mdx string) (values []any, err error) {
	start := time.Now()
	defer func() { metrics.RecordAPICall("cell", "execute_mdx", time.Since(start).Seconds(), err == nil) }()

	payload, err := json.Marshal(map[string]string{"MDX": mdx})
	if err != nil {
		return nil, err
	}

	body, status, err := s.rest.Post(ctx, "/ExecuteMDX?$expand=Cells($select=Value)", payload)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, apierrors.NewAPIError(status, string(body))
	}

	var resp struct {
		ID    string `json:"ID"`
		Cells []struct {
			Value any `json:"Value"`
		} `json:"Cells"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse cellset response: %w", err)
	}

	// The server keeps the cellset alive until it is deleted. Failure to
	// delete is logged; the data has already been read.
	if resp.ID != "" {
		if _, delStatus, delErr := s.rest.Delete(ctx, fmt.Sprintf("/Cellsets('%s')", resp.ID)); delErr != nil || delStatus >= 400 {
			s.logger.Warn("failed to delete cellset", "cellset", resp.ID, "status", delStatus, "error", delErr)
		}
	}

	values = make([]any, 0, len(resp.Cells))
	for _, cell := range resp.Cells {
		values = append(values, cell.Value)
	}
	return values, nil
}

// WriteValue writes a single cell. The element names must be given in the
// cube's dimension order, matched position by position with the dimension
// names.
func (s *CellService) WriteValue(ctx context.Context, cubeName string, dimensions, elements []string, value any) (err error) {
	start := time.Now()
	defer func() { metrics.RecordAPICall("cell", "write", time.Since(start).Seconds(), err == nil) }()

	if len(dimensions) != len(elements) {
		return fmt.Errorf("dimension count (%d) does not match element count (%d)",
			len(dimensions), len(elements))
	}
	if len(dimensions) == 0 {
		return fmt.Errorf("at least one dimension/element pair is required")
	}

	binds := make([]string, 0, len(dimensions))
	for i, dim := range dimensions {
		binds = append(binds, fmt.Sprintf("Dimensions('%s')/Hierarchies('%s')/Elements('%s')",
			dim, dim, elements[i]))
	}

	payload, err := json.Marshal(struct {
		Cells []struct {
			Tuple []string `json:"Tuple@odata.bind"`
		} `json:"Cells"`
		Value any `json:"Value"`
	}{
		Cells: []struct {
			Tuple []string `json:"Tuple@odata.bind"`
		}{{Tuple: binds}},
		Value: value,
	})
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/Cubes('%s')/tm1.Update", escapeName(cubeName))
	body, status, err := s.rest.Post(ctx, path, payload)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return apierrors.NewNotFoundError("cube", cubeName)
	}
	if status >= 400 {
		return apierrors.NewAPIError(status, string(body))
	}
	return nil
}

package tm1

import (
	"log/slog"

	"github.com/planops/tm1-mcp-server/internal/rest"
)

// Client bundles the TM1 service facades behind one REST transport
type Client struct {
	Dimensions *DimensionService
	Cells      *CellService

	rest   *rest.Client
	logger *slog.Logger
}

// NewClient creates the full TM1 client over the given transport
func NewClient(rc *rest.Client, logger *slog.Logger) *Client {
	return &Client{
		Dimensions: NewDimensionService(rc, logger),
		Cells:      NewCellService(rc, logger),
		rest:       rc,
		logger:     logger,
	}
}

package tm1

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	apierrors "github.com/planops/tm1-mcp-server/internal/errors"
	"github.com/planops/tm1-mcp-server/internal/rest"
)

// tempProcessPrefix marks throwaway processes created for ad-hoc TI
// execution. The } prefix keeps them out of the user-visible namespace.
const tempProcessPrefix = "}tm1mcp_"

// executeSuccessStatus is the status code TM1 reports for a clean run
const executeSuccessStatus = "CompletedSuccessfully"

// ProcessService manages TurboIntegrator processes
type ProcessService struct {
	rest   *rest.Client
	logger *slog.Logger
}

// NewProcessService creates a process service over the given transport
func NewProcessService(rc *rest.Client, logger *slog.Logger) *ProcessService {
	return &ProcessService{rest: rc, logger: logger}
}

// ExecuteTICode runs ad-hoc TI statements by creating a uniquely named
// temporary process, executing it, and deleting it again. The process is
// deleted even when execution fails.
func (s *ProcessService) ExecuteTICode(ctx context.Context, prologLines, epilogLines []string) error {
	name := tempProcessPrefix + randomHex(8)

	payload, err := json.Marshal(struct {
		Name              string `json:"Name"`
		PrologProcedure   string `json:"PrologProcedure"`
		EpilogProcedure   string `json:"EpilogProcedure"`
		HasSecurityAccess bool   `json:"HasSecurityAccess"`
	}{
		Name:              name,
		PrologProcedure:   strings.Join(prologLines, "\r\n"),
		EpilogProcedure:   strings.Join(epilogLines, "\r\n"),
		HasSecurityAccess: false,
	})
	if err != nil {
		return err
	}

	body, status, err := s.rest.Post(ctx, "/Processes", payload)
	if err != nil {
		return err
	}
	if status >= 400 {
		return apierrors.NewAPIError(status, string(body))
	}

	defer func() {
		// Best-effort cleanup; a leaked temporary process is logged, not fatal
		_, delStatus, delErr := s.rest.Delete(ctx, fmt.Sprintf("/Processes('%s')", escapeName(name)))
		if delErr != nil || delStatus >= 400 {
			s.logger.Warn("failed to delete temporary process",
				"process", name, "status", delStatus, "error", delErr)
		}
	}()

	return s.executeWithReturn(ctx, name)
}

// executeWithReturn runs the named process and inspects its completion
// status
func (s *ProcessService) executeWithReturn(ctx context.Context, name string) error {
	path := fmt.Sprintf("/Processes('%s')/tm1.ExecuteWithReturn?$expand=ErrorLogFile", escapeName(name))
	body, status, err := s.rest.Post(ctx, path, nil)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return apierrors.NewNotFoundError("process", name)
	}
	if status >= 400 {
		return apierrors.NewAPIError(status, string(body))
	}

	var resp struct {
		ProcessExecuteStatusCode string `json:"ProcessExecuteStatusCode"`
		ErrorLogFile             *struct {
			Filename string `json:"Filename"`
		} `json:"ErrorLogFile"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to parse process execution response: %w", err)
	}

	if resp.ProcessExecuteStatusCode != executeSuccessStatus {
		logFile := ""
		if resp.ErrorLogFile != nil {
			logFile = resp.ErrorLogFile.Filename
		}
		return fmt.Errorf("process execution failed with status %q (error log: %s)",
			resp.ProcessExecuteStatusCode, logFile)
	}
	return nil
}

// randomHex returns n random bytes hex-encoded
func randomHex(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

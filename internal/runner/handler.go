package runner

import (
	"context"
	"net/http"

	"github.com/ergomap/geocoder/internal/dto"
	"github.com/gin-gonic/gin"
)

// BatchRunner is what the trigger endpoint invokes.
type BatchRunner interface {
	Run(ctx context.Context) (Report, error)
}

// Handler exposes the batch trigger invoked by the external scheduler. The
// shared-secret check sits in front of it as middleware.
type Handler struct {
	runner BatchRunner
}

func NewHandler(r BatchRunner) *Handler {
	return &Handler{runner: r}
}

// Trigger handles POST /internal/geocoding/run. The request has no body;
// the response carries the batch counts.
func (h *Handler) Trigger(c *gin.Context) {
	report, err := h.runner.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.RunReportDTO{
			OK:    false,
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.RunReportDTO{
		OK:         true,
		Processed:  report.Processed,
		Successful: report.Successful,
		Failed:     report.Failed,
	})
}

package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/post-engagement-api/internal/report"
	"github.com/post-engagement-api/internal/service"
)

// ReportHandler streams engagement reports
type ReportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(services *service.Services, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		services: services,
		log:      log.With().Str("handler", "report").Logger(),
	}
}

// Download handles GET /posts/:postId/report?userId=...
// Streams the PDF directly to the response
func (h *ReportHandler) Download(c *gin.Context) {
	userID, err := actor(c, c.Query("userId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	postID := c.Param("postId")
	r, err := h.services.Report.Build(c.Request.Context(), postID, userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(postID)))
	c.Status(http.StatusOK)

	if err := h.services.Report.Write(c.Writer, r); err != nil {
		h.log.Error().Err(err).Str("post_id", postID).Msg("Report streaming failed")
		// Headers are already sent; the stream is simply ended
		return
	}

	h.log.Info().Str("post_id", postID).Str("user_id", userID).Msg("Report downloaded")
}

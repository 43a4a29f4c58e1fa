package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/post-engagement-api/internal/service"
)

// ReplyHandler handles replies nested in a comment
type ReplyHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewReplyHandler creates a new ReplyHandler
func NewReplyHandler(services *service.Services, log zerolog.Logger) *ReplyHandler {
	return &ReplyHandler{
		services: services,
		log:      log.With().Str("handler", "reply").Logger(),
	}
}

// Add handles POST /posts/:postId/comments/:commentId/replies
func (h *ReplyHandler) Add(c *gin.Context) {
	req, err := contentRequest(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	post, err := h.services.Reply.Add(c.Request.Context(), c.Param("postId"), c.Param("commentId"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusCreated, post, "")
}

// Update handles PUT /posts/:postId/comments/:commentId/replies/:replyId
func (h *ReplyHandler) Update(c *gin.Context) {
	req, err := contentRequest(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	post, err := h.services.Reply.Update(c.Request.Context(),
		c.Param("postId"), c.Param("commentId"), c.Param("replyId"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, post, "")
}

// Delete handles DELETE /posts/:postId/comments/:commentId/replies/:replyId
func (h *ReplyHandler) Delete(c *gin.Context) {
	userID, err := actorFromBodyOrQuery(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	post, err := h.services.Reply.Delete(c.Request.Context(),
		c.Param("postId"), c.Param("commentId"), c.Param("replyId"), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, post, "")
}

// ToggleLike handles POST /posts/:postId/comments/:commentId/replies/:replyId/like
func (h *ReplyHandler) ToggleLike(c *gin.Context) {
	userID, err := actorFromBodyOrQuery(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	post, err := h.services.Reply.ToggleLike(c.Request.Context(),
		c.Param("postId"), c.Param("commentId"), c.Param("replyId"), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, post, "")
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/post-engagement-api/internal/models"
	"github.com/post-engagement-api/internal/service"
)

// CommentHandler handles comments nested in a post
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// contentRequest binds {userId, content} and reconciles userId with the session
func contentRequest(c *gin.Context) (*models.ContentRequest, error) {
	var req models.ContentRequest
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}

	userID, err := actor(c, req.UserID)
	if err != nil {
		return nil, err
	}
	req.UserID = userID
	return &req, nil
}

// Add handles POST /posts/:postId/comments
func (h *CommentHandler) Add(c *gin.Context) {
	req, err := contentRequest(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	post, err := h.services.Comment.Add(c.Request.Context(), c.Param("postId"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusCreated, post, "")
}

// Update handles PUT /posts/:postId/comments/:commentId
func (h *CommentHandler) Update(c *gin.Context) {
	req, err := contentRequest(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	post, err := h.services.Comment.Update(c.Request.Context(), c.Param("postId"), c.Param("commentId"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, post, "")
}

// Delete handles DELETE /posts/:postId/comments/:commentId
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, err := actorFromBodyOrQuery(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	post, err := h.services.Comment.Delete(c.Request.Context(), c.Param("postId"), c.Param("commentId"), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, post, "")
}

// ToggleLike handles POST /posts/:postId/comments/:commentId/like
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	userID, err := actorFromBodyOrQuery(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	post, err := h.services.Comment.ToggleLike(c.Request.Context(), c.Param("postId"), c.Param("commentId"), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, post, "")
}

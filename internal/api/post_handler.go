package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/post-engagement-api/internal/models"
	"github.com/post-engagement-api/internal/service"
)

// PostHandler handles post aggregate endpoints
type PostHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(services *service.Services, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		services: services,
		log:      log.With().Str("handler", "post").Logger(),
	}
}

// List handles GET /posts?authorId=...
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.services.Post.List(c.Request.Context(), models.PostFilter{
		AuthorID: c.Query("authorId"),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, posts, "")
}

// Get handles GET /posts/:postId
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.services.Post.Get(c.Request.Context(), c.Param("postId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, post, "")
}

// Create handles POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	var req models.CreatePostRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	authorID, err := actor(c, req.AuthorID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	req.AuthorID = authorID

	post, err := h.services.Post.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusCreated, post, "Post published successfully.")
}

// Update handles PUT /posts/:postId
func (h *PostHandler) Update(c *gin.Context) {
	var req models.UpdatePostRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	userID, err := actor(c, req.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	req.UserID = userID

	post, err := h.services.Post.Update(c.Request.Context(), c.Param("postId"), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, post, "")
}

// Delete handles DELETE /posts/:postId
func (h *PostHandler) Delete(c *gin.Context) {
	userID, err := actorFromBodyOrQuery(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	deleted, err := h.services.Post.Delete(c.Request.Context(), c.Param("postId"), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, deleted, "Post deleted successfully.")
}

// ToggleLike handles POST /posts/:postId/like
func (h *PostHandler) ToggleLike(c *gin.Context) {
	userID, err := actorFromBodyOrQuery(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	post, err := h.services.Post.ToggleLike(c.Request.Context(), c.Param("postId"), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, http.StatusOK, post, "")
}

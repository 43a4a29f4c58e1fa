package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/post-engagement-api/internal/models"
	"github.com/post-engagement-api/internal/service"
)

const unexpectedMessage = "An unexpected error occurred."

var (
	errInvalidBody  = &service.Error{Kind: service.KindValidation, Message: "Invalid request body."}
	errBodyTooLarge = &service.Error{Kind: service.KindPayloadTooLarge, Message: "Request body is too large."}
)

// statusFor maps a domain error kind to its HTTP status
func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindUnauthenticated:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	case service.KindPayloadTooLarge:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondOK writes a success envelope; message is omitted when empty
func respondOK(c *gin.Context, status int, data interface{}, message string) {
	body := gin.H{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// respondError writes a failure envelope. Unexpected errors are logged and
// replaced by a generic message.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var domainErr *service.Error
	if !errors.As(err, &domainErr) {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": unexpectedMessage,
		})
		return
	}

	c.AbortWithStatusJSON(statusFor(domainErr.Kind), gin.H{
		"success": false,
		"message": domainErr.Message,
	})
}

// bindJSON decodes the request body into dst. An empty body leaves dst untouched.
func bindJSON(c *gin.Context, dst interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}

	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errBodyTooLarge
	}
	return errInvalidBody
}

// actorFromBodyOrQuery reads {userId} from the body, falling back to the
// userId query parameter, and reconciles it with the session
func actorFromBodyOrQuery(c *gin.Context) (string, error) {
	var req models.ActorRequest
	if err := bindJSON(c, &req); err != nil {
		return "", err
	}
	if req.UserID == "" {
		req.UserID = c.Query("userId")
	}
	return actor(c, req.UserID)
}

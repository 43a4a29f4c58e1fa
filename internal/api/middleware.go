package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/post-engagement-api/internal/auth"
	"github.com/post-engagement-api/internal/service"
)

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"message": unexpectedMessage,
				})
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests and feeds the request metrics
func loggingMiddleware(log zerolog.Logger, m *httpMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.observe(c.Request.Method, route, strconv.Itoa(statusCode), duration)

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("route", route).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS. The report filename travels in
// Content-Disposition, so browsers must be allowed to read it.
func corsMiddleware(allowedOrigins string) gin.HandlerFunc {
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case len(origins) == 1 && origins[0] == "*":
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && lo.Contains(origins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// bodyLimitMiddleware caps request bodies at limit bytes
func bodyLimitMiddleware(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil && limit > 0 {
			if c.Request.ContentLength > limit {
				respondError(c, zerolog.Nop(), errBodyTooLarge)
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// sessionMiddleware attaches the bearer session, when one is presented, to the
// request context. Requests without a token pass through untouched.
func sessionMiddleware(authService service.AuthService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			respondError(c, log, &service.Error{
				Kind:    service.KindUnauthenticated,
				Message: "Authorization header must use the Bearer scheme.",
			})
			return
		}

		session, err := authService.Authenticate(strings.TrimSpace(raw))
		if err != nil {
			respondError(c, log, err)
			return
		}

		c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), session))
		c.Next()
	}
}

// actor resolves the acting user id from the request payload and the session.
// Either may be absent; when both are present they must agree.
func actor(c *gin.Context, claimed string) (string, error) {
	claimed = strings.TrimSpace(claimed)
	session, ok := auth.FromContext(c.Request.Context())
	if !ok {
		return claimed, nil
	}
	if claimed == "" {
		return session.UserID, nil
	}
	if claimed != session.UserID {
		return "", &service.Error{
			Kind:    service.KindForbidden,
			Message: "The userId does not match the session.",
		}
	}
	return claimed, nil
}

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"demo-bank/internal/core/ports"
	"demo-bank/pkg/apperror"
	"demo-bank/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// HeaderRequestID carries the request correlation ID.
	HeaderRequestID = "X-Request-ID"

	// Context keys
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxToken    = "session_token"

	// LoginPath is where unauthenticated requests are sent.
	LoginPath = "/login"
)

// SessionGuard resolves the signed session cookie and stores the user in
// the gin context. Requests without a live session are redirected to
// LoginPath, API routes included.
func SessionGuard(authSvc ports.AuthService, cookie *SessionCookie, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := cookie.Token(c)
		if !ok {
			redirectToLogin(c)
			return
		}

		sess, err := authSvc.ResolveSession(c.Request.Context(), token)
		if err != nil {
			if !apperror.HasCode(err, apperror.CodeNotAuthenticated) {
				log.Error().Err(err).
					Str("request_id", response.GetRequestID(c)).
					Msg("session lookup failed")
			}
			redirectToLogin(c)
			return
		}

		c.Set(CtxUserID, sess.UserID)
		c.Set(CtxUsername, sess.Username)
		c.Set(CtxToken, token)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, LoginPath)
	c.Abort()
}

// UserID returns the authenticated user ID set by SessionGuard.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// RequestID propagates X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.New().String()
		}
		c.Set(response.RequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("request_id", response.GetRequestID(c)).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				if err, ok := r.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(r)
				}
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				response.Error(c, apperror.InternalError(fmt.Errorf("panic: %v", r)))
				c.Abort()
			}
		}()
		c.Next()
	}
}

// MaxBodySize returns middleware that limits the request body size.
// Once the limit is exceeded reads fail with *http.MaxBytesError; handlers
// decide the response (the transfer API answers 413, login redirects).
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil && maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

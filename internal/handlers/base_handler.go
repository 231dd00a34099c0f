package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/classroom-intro-service/internal/sessions"
)

// BaseHandler provides common functionality shared by all handlers.
type BaseHandler struct {
	logger *slog.Logger
}

func NewBaseHandler(logger *slog.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs an incoming request with its request id
func (h *BaseHandler) LogRequest(c *gin.Context, message string) {
	h.logger.Info(message,
		"request_id", c.GetString("request_id"),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
}

// CurrentSession returns the session attached by the session middleware,
// or nil for an anonymous request.
func CurrentSession(c *gin.Context) *sessions.Session {
	v, ok := c.Get(contextKeySession)
	if !ok {
		return nil
	}
	session, ok := v.(*sessions.Session)
	if !ok {
		return nil
	}
	return session
}

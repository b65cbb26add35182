package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"classroom-auth/internal/logger"
	"classroom-auth/internal/session"
)

func (h *Handler) logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		// best-effort delete; logout stays idempotent
		_ = h.sessions.Store.Delete(c.Request.Context(), cookie.Value)
		logger.Info("logout", "session_id", cookie.Value)
	}

	session.ClearCookie(c.Writer, session.CookieOptions{
		Secure:   h.sessions.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	c.Status(http.StatusNoContent)
}

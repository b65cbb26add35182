package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"classroom-auth/internal/auth/pending"
	"classroom-auth/internal/auth/provider"
	"classroom-auth/internal/auth/resolver"
	"classroom-auth/internal/logger"
)

func (h *Handler) callback(c *gin.Context) {
	// The handshake pair is single-use: expire the cookies on every
	// outcome, including rejections.
	h.handshake.Expire(c.Writer)

	code := c.Query("code")
	storedState, codeVerifier := h.handshake.Read(c.Request)

	if err := h.handshake.Verify(c.Query("state"), storedState, codeVerifier); err != nil || code == "" {
		logger.Warn("callback rejected: handshake invalid")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	ctx := c.Request.Context()

	token, err := h.provider.Exchange(ctx, code, codeVerifier)
	if err != nil {
		if errors.Is(err, provider.ErrInvalidGrant) {
			logger.Warn("callback rejected: authorization code refused",
				"error", err.Error(),
			)
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		logger.Error("token exchange failed", "error", err.Error())
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	profile, err := h.provider.FetchProfile(ctx, token)
	if err != nil {
		logger.Error("profile fetch failed", "error", err.Error())
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	userID, err := h.resolver.Resolve(ctx, profile.Subject)

	switch {
	case err == nil:
		// Known identity: no account writes, straight to a session.
		if _, err := h.sessions.Issue(ctx, c.Writer, userID); err != nil {
			logger.Error("session issue failed", "error", err.Error())
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		logger.Info("login", "user_id", userID)
		c.Redirect(http.StatusFound, "/")

	case errors.Is(err, resolver.ErrNotFound):
		// First-time identity: no session and no rows until the
		// profile-completion step commits.
		h.redirectToCompletion(c, profile.Subject, profile.Email, profile.Name, profile.Picture)

	default:
		logger.Error("identity resolution failed", "error", err.Error())
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

func (h *Handler) redirectToCompletion(c *gin.Context, googleID, email, name, picture string) {
	newUserID := uuid.NewString()

	token, err := h.pending.Sign(pending.Provisioning{
		UserID:   newUserID,
		GoogleID: googleID,
		Email:    email,
		Picture:  picture,
	})
	if err != nil {
		logger.Error("pending token sign failed", "error", err.Error())
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	q := url.Values{}
	q.Set("userId", newUserID)
	q.Set("googleId", googleID)
	q.Set("email", email)
	q.Set("name", name)
	q.Set("picture", picture)
	q.Set("token", token)

	logger.Info("new identity, redirecting to profile completion",
		"google_id", googleID,
	)
	c.Redirect(http.StatusFound, "/auth/complete-profile?"+q.Encode())
}

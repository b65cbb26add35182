package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"classroom-auth/internal/auth/handshake"
	"classroom-auth/internal/auth/pending"
	"classroom-auth/internal/auth/provider"
	"classroom-auth/internal/auth/provision"
	"classroom-auth/internal/auth/resolver"
	"classroom-auth/internal/session"
)

// Provisioner commits a user account plus identity linkage atomically.
type Provisioner interface {
	Provision(ctx context.Context, p provision.Params) (string, error)
}

type Handler struct {
	provider    provider.Provider
	handshake   handshake.Handshake
	pending     *pending.Signer
	resolver    resolver.Resolver
	provisioner Provisioner
	sessions    session.Issuer
}

func NewHandler(
	p provider.Provider,
	hs handshake.Handshake,
	signer *pending.Signer,
	res resolver.Resolver,
	prov Provisioner,
	issuer session.Issuer,
) *Handler {
	return &Handler{
		provider:    p,
		handshake:   hs,
		pending:     signer,
		resolver:    res,
		provisioner: prov,
		sessions:    issuer,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/auth/google/login", h.login)
	r.GET("/auth/google/callback", h.callback)
	r.POST("/auth/complete-profile", h.completeProfile)
	r.POST("/auth/logout", h.logout)
}

func (h *Handler) login(c *gin.Context) {
	state, codeChallenge := h.handshake.Begin(c.Writer)
	c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state, codeChallenge))
}

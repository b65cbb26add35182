package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"classroom-auth/internal/auth/handler"
	"classroom-auth/internal/auth/handshake"
	"classroom-auth/internal/auth/pending"
	"classroom-auth/internal/auth/provider/google"
	"classroom-auth/internal/auth/provision"
	"classroom-auth/internal/auth/resolver"
	"classroom-auth/internal/config"
	"classroom-auth/internal/middleware"
	"classroom-auth/internal/session"
	"classroom-auth/internal/user"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	users := user.NewRepository(infra.DB)

	googleProvider, err := google.New(
		ctx,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
	)
	if err != nil {
		return nil, nil, err
	}

	authHandler := handler.NewHandler(
		googleProvider,
		handshake.Handshake{TTL: cfg.HandshakeTTL, Secure: cfg.CookieSecure},
		pending.NewSigner(cfg.TokenSecret, cfg.HandshakeTTL),
		resolver.NewDBResolver(infra.DB),
		provision.NewService(infra.DB),
		session.Issuer{Store: sessionStore, TTL: cfg.SessionTTL, Secure: cfg.CookieSecure},
	)

	authMiddleware := middleware.NewAuthMiddleware(sessionStore, users)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireAuth(authMiddleware))

	api.GET("/me", func(c *gin.Context) {
		userID, ok := middleware.UserIDFromContext(c.Request.Context())
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
			return
		}

		c.JSON(http.StatusOK, u)
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		return infra.DB.Close()
	}, nil
}

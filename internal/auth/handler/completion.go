package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"classroom-auth/internal/auth/provision"
	"classroom-auth/internal/logger"
)

type completeProfileRequest struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Role     string `form:"role"`
	UserID   string `form:"userId"`
	GoogleID string `form:"googleId"`
	Picture  string `form:"picture"`
	Token    string `form:"token"`
}

// completeProfile finishes provisioning for a first-time Google identity.
// Identity fields (user id, google id, email, picture) are taken from the
// signed pending token minted at callback time; the form only contributes
// name and role. A submission whose fields disagree with the token is
// rejected, so a client cannot claim someone else's provider identity.
func (h *Handler) completeProfile(c *gin.Context) {
	var req completeProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid form submission",
		})
		return
	}

	if req.Name == "" || req.Email == "" || req.Role == "" ||
		req.UserID == "" || req.GoogleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "all required fields must be filled",
		})
		return
	}

	if !provision.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "role must be teacher or student",
		})
		return
	}

	claims, err := h.pending.Verify(req.Token)
	if err != nil {
		logger.Warn("completion rejected: bad pending token", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid or expired sign-in, please log in again",
		})
		return
	}

	if claims.UserID != req.UserID || claims.GoogleID != req.GoogleID ||
		claims.Email != req.Email {
		logger.Warn("completion rejected: fields do not match pending sign-in",
			"google_id", claims.GoogleID,
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "submission does not match the pending sign-in",
		})
		return
	}

	ctx := c.Request.Context()

	userID, err := h.provisioner.Provision(ctx, provision.Params{
		UserID:   claims.UserID,
		GoogleID: claims.GoogleID,
		Email:    claims.Email,
		Name:     req.Name,
		Role:     req.Role,
		Picture:  claims.Picture,
	})
	if err != nil {
		logger.Error("provisioning failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to create user",
			"details": err.Error(),
		})
		return
	}

	if _, err := h.sessions.Issue(ctx, c.Writer, userID); err != nil {
		logger.Error("session issue failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to create session",
			"details": err.Error(),
		})
		return
	}

	logger.Info("profile completed", "user_id", userID, "role", req.Role)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

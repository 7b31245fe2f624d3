package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/nami21/support-portal/internal/middleware"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/services"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

// AuthHandler serves login, logout, and session status.
type AuthHandler struct {
	userService *services.UserService
	logger      *observability.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService *services.UserService, logger *observability.Logger) *AuthHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &AuthHandler{userService: userService, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and establishes a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.UserIDKey, user.ID)
	session.Set(middleware.UserRoleKey, string(user.Role))
	session.Set(middleware.UserEmailKey, user.Email)
	if err := session.Save(); err != nil {
		RespondError(c, h.logger, contextutils.WrapError(err, "failed to save session"))
		return
	}

	h.logger.Info(c.Request.Context(), "User logged in", map[string]interface{}{
		"user_id": user.ID,
		"role":    string(user.Role),
	})
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout clears the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{MaxAge: -1, Path: "/"})
	if err := session.Save(); err != nil {
		RespondError(c, h.logger, contextutils.WrapError(err, "failed to clear session"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Status reports whether the caller has a valid session, and if so returns
// the current account record.
func (h *AuthHandler) Status(c *gin.Context) {
	session := sessions.Default(c)
	userID, _ := session.Get(middleware.UserIDKey).(string)
	if userID == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	ctx := contextutils.WithUserID(c.Request.Context(), userID)
	user, err := h.userService.Profile(ctx)
	if err != nil {
		if contextutils.IsError(err, contextutils.ErrRecordNotFound) {
			// Account deleted since login; the session is stale.
			session.Clear()
			_ = session.Save()
			c.JSON(http.StatusOK, gin.H{"authenticated": false})
			return
		}
		RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"authenticated": true, "user": user})
}

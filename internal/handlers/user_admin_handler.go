package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/services"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

// UserAdminHandler serves the admin-only account management routes.
type UserAdminHandler struct {
	userService *services.UserService
	logger      *observability.Logger
}

// NewUserAdminHandler creates a new UserAdminHandler.
func NewUserAdminHandler(userService *services.UserService, logger *observability.Logger) *UserAdminHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &UserAdminHandler{userService: userService, logger: logger}
}

// ListUsers returns all accounts.
func (h *UserAdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser returns one account by id.
func (h *UserAdminHandler) GetUser(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser provisions a new account.
func (h *UserAdminHandler) CreateUser(c *gin.Context) {
	var input models.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.userService.Create(c.Request.Context(), input)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateUser applies a partial update to an account.
func (h *UserAdminHandler) UpdateUser(c *gin.Context) {
	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.userService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteUser removes an account.
func (h *UserAdminHandler) DeleteUser(c *gin.Context) {
	deleted, err := h.userService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	if !deleted {
		RespondError(c, h.logger, contextutils.ErrRecordNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

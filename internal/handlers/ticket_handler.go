package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/services"
)

// TicketHandler serves the support ticket routes that fall outside the
// standard CRUD set.
type TicketHandler struct {
	ticketService *services.TicketService
	logger        *observability.Logger
}

// NewTicketHandler creates a new TicketHandler.
func NewTicketHandler(ticketService *services.TicketService, logger *observability.Logger) *TicketHandler {
	if ticketService == nil {
		panic("ticketService cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &TicketHandler{ticketService: ticketService, logger: logger}
}

// GetTicket returns a single ticket by id.
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticket, err := h.ticketService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

package services

import (
	"context"

	"github.com/nami21/support-portal/internal/authz"
	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/store"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

// TicketService manages support tickets.
type TicketService struct {
	store  store.Store
	logger *observability.Logger
}

// NewTicketService creates a new TicketService.
func NewTicketService(st store.Store, logger *observability.Logger) *TicketService {
	if st == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &TicketService{store: st, logger: logger}
}

// List returns all tickets, newest first.
func (s *TicketService) List(ctx context.Context) (result []models.Ticket, err error) {
	ctx, span := observability.TraceTicketFunction(ctx, "TicketService.List")
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionList, authz.KindTicket); err != nil {
		return nil, err
	}
	return s.store.ListTickets(ctx)
}

// Get returns a single ticket by id.
func (s *TicketService) Get(ctx context.Context, id string) (result *models.Ticket, err error) {
	ctx, span := observability.TraceTicketFunction(ctx, "TicketService.Get", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionList, authz.KindTicket); err != nil {
		return nil, err
	}
	return s.store.GetTicket(ctx, id)
}

// Create opens a new ticket on behalf of the acting user. The creator is
// always taken from the authenticated identity, never from the request body.
func (s *TicketService) Create(ctx context.Context, input models.TicketInput) (result *models.Ticket, err error) {
	ctx, span := observability.TraceTicketFunction(ctx, "TicketService.Create")
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionCreate, authz.KindTicket); err != nil {
		return nil, err
	}

	userID := actingUserID(ctx)
	if userID == "" {
		return nil, contextutils.ErrUnauthorized
	}
	input.CreatedBy = userID

	created, err := s.store.CreateTicket(ctx, input)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Ticket created", map[string]interface{}{
		"ticket_id": created.ID,
		"category":  string(created.Category),
		"priority":  string(created.Priority),
	})
	return created, nil
}

// Update applies a status, priority, or assignment change. Staff only.
func (s *TicketService) Update(ctx context.Context, id string, patch models.TicketPatch) (result *models.Ticket, err error) {
	ctx, span := observability.TraceTicketFunction(ctx, "TicketService.Update", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionUpdate, authz.KindTicket); err != nil {
		return nil, err
	}
	return s.store.UpdateTicket(ctx, id, patch)
}

// Delete removes a ticket, reporting whether a record existed. Staff only.
func (s *TicketService) Delete(ctx context.Context, id string) (result bool, err error) {
	ctx, span := observability.TraceTicketFunction(ctx, "TicketService.Delete", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionDelete, authz.KindTicket); err != nil {
		return false, err
	}
	return s.store.DeleteTicket(ctx, id)
}

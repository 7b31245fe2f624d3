package services

import (
	"context"

	"github.com/nami21/support-portal/internal/authz"
	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/store"
)

// SystemUpdateService manages system maintenance and incident notices.
type SystemUpdateService struct {
	store  store.Store
	logger *observability.Logger
}

// NewSystemUpdateService creates a new SystemUpdateService.
func NewSystemUpdateService(st store.Store, logger *observability.Logger) *SystemUpdateService {
	if st == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &SystemUpdateService{store: st, logger: logger}
}

// List returns all system updates, newest first.
func (s *SystemUpdateService) List(ctx context.Context) (result []models.SystemUpdate, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "SystemUpdateService.List")
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionList, authz.KindSystemUpdate); err != nil {
		return nil, err
	}
	return s.store.ListSystemUpdates(ctx)
}

// Create publishes a new system update notice.
func (s *SystemUpdateService) Create(ctx context.Context, input models.SystemUpdateInput) (result *models.SystemUpdate, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "SystemUpdateService.Create")
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionCreate, authz.KindSystemUpdate); err != nil {
		return nil, err
	}

	created, err := s.store.CreateSystemUpdate(ctx, input)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "System update created", map[string]interface{}{
		"system_update_id": created.ID,
		"severity":         string(created.Severity),
	})
	return created, nil
}

// Update applies a partial update to a system update notice.
func (s *SystemUpdateService) Update(ctx context.Context, id string, patch models.SystemUpdatePatch) (result *models.SystemUpdate, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "SystemUpdateService.Update", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionUpdate, authz.KindSystemUpdate); err != nil {
		return nil, err
	}
	return s.store.UpdateSystemUpdate(ctx, id, patch)
}

// Delete removes a system update notice, reporting whether a record existed.
func (s *SystemUpdateService) Delete(ctx context.Context, id string) (result bool, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "SystemUpdateService.Delete", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionDelete, authz.KindSystemUpdate); err != nil {
		return false, err
	}
	return s.store.DeleteSystemUpdate(ctx, id)
}

package services

import (
	"context"

	"github.com/nami21/support-portal/internal/authz"
	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/store"
)

// AnnouncementService manages company announcements.
type AnnouncementService struct {
	store  store.Store
	logger *observability.Logger
}

// NewAnnouncementService creates a new AnnouncementService.
func NewAnnouncementService(st store.Store, logger *observability.Logger) *AnnouncementService {
	if st == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &AnnouncementService{store: st, logger: logger}
}

// List returns all announcements, newest first.
func (s *AnnouncementService) List(ctx context.Context) (result []models.Announcement, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "AnnouncementService.List")
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionList, authz.KindAnnouncement); err != nil {
		return nil, err
	}
	return s.store.ListAnnouncements(ctx)
}

// Create publishes a new announcement.
func (s *AnnouncementService) Create(ctx context.Context, input models.AnnouncementInput) (result *models.Announcement, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "AnnouncementService.Create")
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionCreate, authz.KindAnnouncement); err != nil {
		return nil, err
	}

	created, err := s.store.CreateAnnouncement(ctx, input)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Announcement created", map[string]interface{}{"announcement_id": created.ID})
	return created, nil
}

// Update applies a partial update to an announcement.
func (s *AnnouncementService) Update(ctx context.Context, id string, patch models.AnnouncementPatch) (result *models.Announcement, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "AnnouncementService.Update", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionUpdate, authz.KindAnnouncement); err != nil {
		return nil, err
	}
	return s.store.UpdateAnnouncement(ctx, id, patch)
}

// Delete removes an announcement, reporting whether a record existed.
func (s *AnnouncementService) Delete(ctx context.Context, id string) (result bool, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "AnnouncementService.Delete", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionDelete, authz.KindAnnouncement); err != nil {
		return false, err
	}
	return s.store.DeleteAnnouncement(ctx, id)
}

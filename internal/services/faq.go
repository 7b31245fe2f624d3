package services

import (
	"context"

	"github.com/nami21/support-portal/internal/authz"
	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/store"
)

// FAQService manages frequently asked questions.
type FAQService struct {
	store  store.Store
	logger *observability.Logger
}

// NewFAQService creates a new FAQService.
func NewFAQService(st store.Store, logger *observability.Logger) *FAQService {
	if st == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &FAQService{store: st, logger: logger}
}

// List returns all FAQs, newest first.
func (s *FAQService) List(ctx context.Context) (result []models.FAQ, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "FAQService.List")
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionList, authz.KindFAQ); err != nil {
		return nil, err
	}
	return s.store.ListFAQs(ctx)
}

// Create adds a new FAQ.
func (s *FAQService) Create(ctx context.Context, input models.FAQInput) (result *models.FAQ, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "FAQService.Create")
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionCreate, authz.KindFAQ); err != nil {
		return nil, err
	}

	created, err := s.store.CreateFAQ(ctx, input)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "FAQ created", map[string]interface{}{"faq_id": created.ID})
	return created, nil
}

// Update applies a partial update to an FAQ.
func (s *FAQService) Update(ctx context.Context, id string, patch models.FAQPatch) (result *models.FAQ, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "FAQService.Update", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionUpdate, authz.KindFAQ); err != nil {
		return nil, err
	}
	return s.store.UpdateFAQ(ctx, id, patch)
}

// Delete removes an FAQ, reporting whether a record existed.
func (s *FAQService) Delete(ctx context.Context, id string) (result bool, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "FAQService.Delete", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionDelete, authz.KindFAQ); err != nil {
		return false, err
	}
	return s.store.DeleteFAQ(ctx, id)
}

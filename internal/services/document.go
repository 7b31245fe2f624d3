package services

import (
	"context"

	"github.com/nami21/support-portal/internal/authz"
	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/store"
)

// DocumentService manages the shared reference document library.
type DocumentService struct {
	store  store.Store
	logger *observability.Logger
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(st store.Store, logger *observability.Logger) *DocumentService {
	if st == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &DocumentService{store: st, logger: logger}
}

// List returns all documents, newest first.
func (s *DocumentService) List(ctx context.Context) (result []models.OtherDocument, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "DocumentService.List")
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionList, authz.KindOtherDocument); err != nil {
		return nil, err
	}
	return s.store.ListOtherDocuments(ctx)
}

// Create adds a document to the library.
func (s *DocumentService) Create(ctx context.Context, input models.OtherDocumentInput) (result *models.OtherDocument, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "DocumentService.Create")
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionCreate, authz.KindOtherDocument); err != nil {
		return nil, err
	}

	created, err := s.store.CreateOtherDocument(ctx, input)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Document created", map[string]interface{}{"document_id": created.ID})
	return created, nil
}

// Update applies a partial update to a document.
func (s *DocumentService) Update(ctx context.Context, id string, patch models.OtherDocumentPatch) (result *models.OtherDocument, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "DocumentService.Update", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionUpdate, authz.KindOtherDocument); err != nil {
		return nil, err
	}
	return s.store.UpdateOtherDocument(ctx, id, patch)
}

// Delete removes a document, reporting whether a record existed.
func (s *DocumentService) Delete(ctx context.Context, id string) (result bool, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "DocumentService.Delete", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionDelete, authz.KindOtherDocument); err != nil {
		return false, err
	}
	return s.store.DeleteOtherDocument(ctx, id)
}

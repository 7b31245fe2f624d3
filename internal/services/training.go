package services

import (
	"context"

	"github.com/nami21/support-portal/internal/authz"
	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/store"
)

// TrainingService manages awareness campaigns and training videos.
type TrainingService struct {
	store  store.Store
	logger *observability.Logger
}

// NewTrainingService creates a new TrainingService.
func NewTrainingService(st store.Store, logger *observability.Logger) *TrainingService {
	if st == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &TrainingService{store: st, logger: logger}
}

// List returns all training materials, newest first.
func (s *TrainingService) List(ctx context.Context) (result []models.TrainingMaterial, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "TrainingService.List")
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionList, authz.KindTrainingMaterial); err != nil {
		return nil, err
	}
	return s.store.ListTrainingMaterials(ctx)
}

// Create adds a campaign or video entry.
func (s *TrainingService) Create(ctx context.Context, input models.TrainingMaterialInput) (result *models.TrainingMaterial, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "TrainingService.Create")
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionCreate, authz.KindTrainingMaterial); err != nil {
		return nil, err
	}

	created, err := s.store.CreateTrainingMaterial(ctx, input)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Training material created", map[string]interface{}{
		"training_material_id": created.ID,
		"type":                 string(created.Type),
	})
	return created, nil
}

// Update applies a partial update to a training material.
func (s *TrainingService) Update(ctx context.Context, id string, patch models.TrainingMaterialPatch) (result *models.TrainingMaterial, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "TrainingService.Update", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionUpdate, authz.KindTrainingMaterial); err != nil {
		return nil, err
	}
	return s.store.UpdateTrainingMaterial(ctx, id, patch)
}

// Delete removes a training material, reporting whether a record existed.
func (s *TrainingService) Delete(ctx context.Context, id string) (result bool, err error) {
	ctx, span := observability.TraceContentFunction(ctx, "TrainingService.Delete", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionDelete, authz.KindTrainingMaterial); err != nil {
		return false, err
	}
	return s.store.DeleteTrainingMaterial(ctx, id)
}

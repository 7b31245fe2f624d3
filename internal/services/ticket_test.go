package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/services"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

func TestTicketService_CreatorComesFromIdentity(t *testing.T) {
	svc := services.NewTicketService(newTestStore(t), testLogger())

	created, err := svc.Create(ctxAs("user-7", models.RoleUser), models.TicketInput{
		Title:       "Docking station not charging",
		Category:    models.TicketITSupport,
		Priority:    models.PriorityHigh,
		Description: "Laptop does not charge when docked at desk 14.",
		CreatedBy:   "spoofed-id",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-7", created.CreatedBy, "creator is taken from the session, not the body")
	assert.Equal(t, models.TicketOpen, created.Status)
}

func TestTicketService_CreateRequiresIdentity(t *testing.T) {
	svc := services.NewTicketService(newTestStore(t), testLogger())

	_, err := svc.Create(contextutils.WithUserRole(context.Background(), string(models.RoleUser)), models.TicketInput{
		Title:       "No identity",
		Category:    models.TicketOther,
		Priority:    models.PriorityLow,
		Description: "x",
	})
	assert.True(t, contextutils.IsError(err, contextutils.ErrUnauthorized))
}

func TestTicketService_StaffOnlyMutations(t *testing.T) {
	svc := services.NewTicketService(newTestStore(t), testLogger())

	created, err := svc.Create(ctxAs("user-7", models.RoleUser), models.TicketInput{
		Title:       "Projector remote missing",
		Category:    models.TicketFacilities,
		Priority:    models.PriorityLow,
		Description: "Conference room B projector remote has gone missing.",
	})
	require.NoError(t, err)

	inProgress := models.TicketInProgress
	patch := models.TicketPatch{Status: &inProgress}

	_, err = svc.Update(ctxAs("user-7", models.RoleUser), created.ID, patch)
	assert.True(t, contextutils.IsError(err, contextutils.ErrForbidden), "requesters cannot change ticket status")

	updated, err := svc.Update(ctxAs("support-1", models.RoleSupport), created.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, models.TicketInProgress, updated.Status)

	_, err = svc.Delete(ctxAs("user-7", models.RoleUser), created.ID)
	assert.True(t, contextutils.IsError(err, contextutils.ErrForbidden))

	deleted, err := svc.Delete(ctxAs("admin-1", models.RoleAdmin), created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestTicketService_ListAndGet(t *testing.T) {
	svc := services.NewTicketService(newTestStore(t), testLogger())

	created, err := svc.Create(ctxAs("user-7", models.RoleUser), models.TicketInput{
		Title:       "Payroll question",
		Category:    models.TicketHR,
		Priority:    models.PriorityMedium,
		Description: "My last payslip looks wrong.",
	})
	require.NoError(t, err)

	tickets, err := svc.List(ctxAs("support-1", models.RoleSupport))
	require.NoError(t, err)
	require.Len(t, tickets, 1)

	fetched, err := svc.Get(ctxAs("support-1", models.RoleSupport), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	_, err = svc.Get(ctxAs("support-1", models.RoleSupport), "missing")
	assert.True(t, contextutils.IsError(err, contextutils.ErrRecordNotFound))
}

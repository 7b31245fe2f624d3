package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/services"
	"github.com/nami21/support-portal/internal/store"
	"github.com/nami21/support-portal/internal/store/localstore"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := localstore.New(t.TempDir(), observability.NewLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func testLogger() *observability.Logger {
	return observability.NewLogger(nil)
}

// ctxAs builds a request context carrying the given authenticated identity.
func ctxAs(userID string, role models.Role) context.Context {
	ctx := contextutils.WithUserID(context.Background(), userID)
	return contextutils.WithUserRole(ctx, string(role))
}

func TestFAQService_RoleGating(t *testing.T) {
	svc := services.NewFAQService(newTestStore(t), testLogger())

	input := models.FAQInput{
		Title:    "How do I book a meeting room?",
		Content:  "Use the calendar integration on the intranet home page.",
		Category: models.FAQCategoryITSystems,
	}

	tests := []struct {
		name      string
		role      models.Role
		canCreate bool
	}{
		{"admin can create", models.RoleAdmin, true},
		{"support can create", models.RoleSupport, true},
		{"regular user cannot create", models.RoleUser, false},
		{"unassigned cannot create", models.RoleUnassigned, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctxAs("u1", tc.role), input)
			if tc.canCreate {
				assert.NoError(t, err)
			} else {
				assert.True(t, contextutils.IsError(err, contextutils.ErrForbidden))
			}
		})
	}
}

func TestFAQService_ListOpenToAllFunctionalRoles(t *testing.T) {
	svc := services.NewFAQService(newTestStore(t), testLogger())

	_, err := svc.Create(ctxAs("admin-1", models.RoleAdmin), models.FAQInput{
		Title:    "Where do I find the org chart?",
		Content:  "Under Company > People on the intranet.",
		Category: models.FAQCategoryPolicies,
	})
	require.NoError(t, err)

	for _, role := range []models.Role{models.RoleAdmin, models.RoleSupport, models.RoleUser} {
		faqs, err := svc.List(ctxAs("u1", role))
		require.NoError(t, err)
		assert.Len(t, faqs, 1)
	}

	_, err = svc.List(ctxAs("u1", models.RoleUnassigned))
	assert.True(t, contextutils.IsError(err, contextutils.ErrForbidden))

	_, err = svc.List(context.Background())
	assert.True(t, contextutils.IsError(err, contextutils.ErrForbidden), "missing identity is denied")
}

func TestFAQService_UpdateAndDelete(t *testing.T) {
	svc := services.NewFAQService(newTestStore(t), testLogger())
	staff := ctxAs("support-1", models.RoleSupport)

	created, err := svc.Create(staff, models.FAQInput{
		Title:    "How long are backups kept?",
		Content:  "Ninety days.",
		Category: models.FAQCategoryITSystems,
	})
	require.NoError(t, err)

	content := "Ninety days, with monthly snapshots kept for a year."
	updated, err := svc.Update(staff, created.ID, models.FAQPatch{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, content, updated.Content)

	_, err = svc.Update(ctxAs("u1", models.RoleUser), created.ID, models.FAQPatch{Content: &content})
	assert.True(t, contextutils.IsError(err, contextutils.ErrForbidden))

	deleted, err := svc.Delete(staff, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(staff, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

package localstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/store"
	"github.com/nami21/support-portal/internal/store/localstore"
	"github.com/nami21/support-portal/internal/store/storetest"
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

func TestLocalStoreConformance(t *testing.T) {
	storetest.Run(t, newTestStore)
}

func TestBackendName(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, store.BackendLocal, s.Backend())
}

func TestInitializeSeedsDemoData(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Initialize(ctx))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 5)

	emails := make(map[string]models.Role, len(users))
	for _, u := range users {
		emails[u.Email] = u.Role
	}
	assert.Equal(t, models.RoleAdmin, emails["admin@company.com"])
	assert.Equal(t, models.RoleSupport, emails["support@company.com"])
	assert.Equal(t, models.RoleUnassigned, emails["unassigned@company.com"])

	faqs, err := s.ListFAQs(ctx)
	require.NoError(t, err)
	assert.Len(t, faqs, 3)

	announcements, err := s.ListAnnouncements(ctx)
	require.NoError(t, err)
	assert.Len(t, announcements, 2)

	updates, err := s.ListSystemUpdates(ctx)
	require.NoError(t, err)
	assert.Len(t, updates, 1)

	docs, err := s.ListOtherDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	materials, err := s.ListTrainingMaterials(ctx)
	require.NoError(t, err)
	assert.Len(t, materials, 6)

	tickets, err := s.ListTickets(ctx)
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestSameTickCreationOrdering(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Created back to back, these routinely land on the same millisecond;
	// the store's clock must keep newest-first ordering deterministic anyway.
	titles := []string{"a", "b", "c", "d", "e"}
	for _, title := range titles {
		_, err := s.CreateFAQ(ctx, models.FAQInput{
			Title:    title,
			Content:  "content",
			Category: models.FAQCategoryPolicies,
		})
		require.NoError(t, err)
	}

	faqs, err := s.ListFAQs(ctx)
	require.NoError(t, err)
	require.Len(t, faqs, len(titles))
	for i, faq := range faqs {
		assert.Equal(t, titles[len(titles)-1-i], faq.Title)
	}
	for i := 1; i < len(faqs); i++ {
		assert.True(t, faqs[i-1].CreatedAt.After(faqs[i].CreatedAt), "creation timestamps must be strictly increasing")
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Initialize(ctx))

	created, err := s.CreateFAQ(ctx, models.FAQInput{
		Title:    "Can I expense a standing desk?",
		Content:  "Yes, with manager approval up to the equipment budget.",
		Category: models.FAQCategoryPolicies,
	})
	require.NoError(t, err)

	// A restart must not reseed over data entered through the portal.
	require.NoError(t, s.Initialize(ctx))

	faqs, err := s.ListFAQs(ctx)
	require.NoError(t, err)
	require.Len(t, faqs, 4)
	assert.Equal(t, created.ID, faqs[0].ID)
}

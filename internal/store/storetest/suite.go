// Package storetest provides a conformance suite that every persistence
// backend must pass. The local and remote stores are expected to be
// observationally equivalent, so both run the same suite.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/store"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

// Factory returns a fresh, empty store for a single subtest.
type Factory func(t *testing.T) store.Store

// Run exercises the full persistence contract against the given backend.
func Run(t *testing.T, newStore Factory) {
	t.Run("FAQLifecycle", func(t *testing.T) { testFAQLifecycle(t, newStore(t)) })
	t.Run("FAQOrdering", func(t *testing.T) { testFAQOrdering(t, newStore(t)) })
	t.Run("AnnouncementLifecycle", func(t *testing.T) { testAnnouncementLifecycle(t, newStore(t)) })
	t.Run("SystemUpdateLifecycle", func(t *testing.T) { testSystemUpdateLifecycle(t, newStore(t)) })
	t.Run("OtherDocumentLifecycle", func(t *testing.T) { testOtherDocumentLifecycle(t, newStore(t)) })
	t.Run("TrainingMaterialLifecycle", func(t *testing.T) { testTrainingMaterialLifecycle(t, newStore(t)) })
	t.Run("TicketLifecycle", func(t *testing.T) { testTicketLifecycle(t, newStore(t)) })
	t.Run("UserLifecycle", func(t *testing.T) { testUserLifecycle(t, newStore(t)) })
	t.Run("ChatMessages", func(t *testing.T) { testChatMessages(t, newStore(t)) })
}

// separate guarantees distinct creation timestamps for ordering assertions,
// since both backends stamp with millisecond precision.
func separate() {
	time.Sleep(2 * time.Millisecond)
}

func strp(s string) *string { return &s }

func testFAQLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()

	created, err := s.CreateFAQ(ctx, models.FAQInput{
		Title:    "How do I request a new laptop?",
		Content:  "Open a hardware ticket and your manager will be asked to approve it.",
		Category: models.FAQCategoryHardware,
		Tags:     nil,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.NotNil(t, created.Tags, "tags must serialize as an empty list, not null")
	assert.Empty(t, created.Tags)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())

	separate()

	updated, err := s.UpdateFAQ(ctx, created.ID, models.FAQPatch{
		Content: strp("Open a hardware ticket; approvals route to your manager automatically."),
		Tags:    &[]string{"laptop", "hardware"},
	})
	require.NoError(t, err)
	assert.Equal(t, created.Title, updated.Title, "unset patch fields must be preserved")
	assert.Equal(t, created.Category, updated.Category)
	assert.Equal(t, []string{"laptop", "hardware"}, updated.Tags)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updated_at must strictly advance")
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = s.UpdateFAQ(ctx, "no-such-id", models.FAQPatch{Title: strp("x")})
	assert.True(t, contextutils.IsError(err, contextutils.ErrRecordNotFound))

	// Ids are opaque strings; an id in another backend's format must miss
	// cleanly, not surface as a storage error.
	missed, err := s.DeleteFAQ(ctx, "1692307200000-0c9d8e7f6")
	require.NoError(t, err)
	assert.False(t, missed)

	deleted, err := s.DeleteFAQ(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteFAQ(ctx, created.ID)
	require.NoError(t, err, "repeated delete must not error")
	assert.False(t, deleted)

	faqs, err := s.ListFAQs(ctx)
	require.NoError(t, err)
	assert.NotNil(t, faqs)
	assert.Empty(t, faqs)
}

func testFAQOrdering(t *testing.T, s store.Store) {
	ctx := context.Background()

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		_, err := s.CreateFAQ(ctx, models.FAQInput{
			Title:    title,
			Content:  "content",
			Category: models.FAQCategoryPolicies,
		})
		require.NoError(t, err)
		separate()
	}

	faqs, err := s.ListFAQs(ctx)
	require.NoError(t, err)
	require.Len(t, faqs, 3)
	assert.Equal(t, "third", faqs[0].Title, "lists are ordered newest first")
	assert.Equal(t, "second", faqs[1].Title)
	assert.Equal(t, "first", faqs[2].Title)
}

func testAnnouncementLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()
	validity := time.Now().UTC().Add(14 * 24 * time.Hour).Truncate(time.Millisecond)

	created, err := s.CreateAnnouncement(ctx, models.AnnouncementInput{
		Title:          "VPN certificate rollover",
		Description:    "New VPN certificates will be pushed on Friday evening.",
		Type:           models.AnnouncementAlert,
		TargetAudience: "All Employees",
		ValidityDate:   validity,
		IsActive:       true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.NotNil(t, created.Attachments)
	assert.True(t, created.IsActive)

	inactive := false
	updated, err := s.UpdateAnnouncement(ctx, created.ID, models.AnnouncementPatch{
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Description, updated.Description)

	deleted, err := s.DeleteAnnouncement(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func testSystemUpdateLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()

	created, err := s.CreateSystemUpdate(ctx, models.SystemUpdateInput{
		Title:          "Directory service upgrade",
		Description:    "LDAP servers will be upgraded during the maintenance window.",
		Type:           models.SystemUpdateMaintenance,
		Classification: models.ClassificationInternal,
		Severity:       models.SeverityMedium,
		Status:         models.SystemUpdateScheduled,
		Date:           time.Now().UTC().Add(48 * time.Hour).Truncate(time.Millisecond),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	resolved := models.SystemUpdateResolved
	updated, err := s.UpdateSystemUpdate(ctx, created.ID, models.SystemUpdatePatch{
		Status: &resolved,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SystemUpdateResolved, updated.Status)
	assert.Equal(t, created.Severity, updated.Severity)

	_, err = s.UpdateSystemUpdate(ctx, "missing", models.SystemUpdatePatch{Status: &resolved})
	assert.True(t, contextutils.IsError(err, contextutils.ErrRecordNotFound))

	deleted, err := s.DeleteSystemUpdate(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func testOtherDocumentLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()

	created, err := s.CreateOtherDocument(ctx, models.OtherDocumentInput{
		DocumentName: "Remote Work Policy",
		Description:  "Rules and expectations for remote work arrangements",
		FileURL:      "https://drive.example.com/remote-work-policy",
		CreatedBy:    "HR Department",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := s.UpdateOtherDocument(ctx, created.ID, models.OtherDocumentPatch{
		Description: strp("Updated for the 2026 hybrid schedule"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated for the 2026 hybrid schedule", updated.Description)
	assert.Equal(t, created.DocumentName, updated.DocumentName)
	assert.Equal(t, created.FileURL, updated.FileURL)

	deleted, err := s.DeleteOtherDocument(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func testTrainingMaterialLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()

	campaign, err := s.CreateTrainingMaterial(ctx, models.TrainingMaterialInput{
		Type:      models.TrainingAwarenessCampaign,
		Title:     "Clean Desk Policy",
		ImageURL:  "https://images.example.com/clean-desk.jpg",
		CreatedBy: "Security Team",
		IsActive:  true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, campaign.ID)

	video, err := s.CreateTrainingMaterial(ctx, models.TrainingMaterialInput{
		Type:             models.TrainingVideo,
		Category:         "Security",
		Level:            "Beginner",
		VideoTitle:       "Spotting Phishing Emails",
		VideoDescription: "Common red flags in fraudulent email",
		VideoURL:         "https://videos.example.com/phishing-101",
		CreatedBy:        "Security Team",
		IsActive:         true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TrainingVideo, video.Type)
	assert.Empty(t, video.Title, "video entries do not carry campaign fields")

	inactive := false
	updated, err := s.UpdateTrainingMaterial(ctx, campaign.ID, models.TrainingMaterialPatch{
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, campaign.Title, updated.Title)

	deleted, err := s.DeleteTrainingMaterial(ctx, video.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func testTicketLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()

	created, err := s.CreateTicket(ctx, models.TicketInput{
		Title:       "Monitor flickering",
		Category:    models.TicketITSupport,
		Priority:    models.PriorityMedium,
		Description: "External monitor flickers when docked.",
		CreatedBy:   "user-1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, models.TicketOpen, created.Status, "new tickets always open as open")
	assert.NotNil(t, created.Attachments)
	assert.Empty(t, created.AssignedTo)

	fetched, err := s.GetTicket(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	separate()

	inProgress := models.TicketInProgress
	updated, err := s.UpdateTicket(ctx, created.ID, models.TicketPatch{
		Status:     &inProgress,
		AssignedTo: strp("support-agent-1"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.TicketInProgress, updated.Status)
	assert.Equal(t, "support-agent-1", updated.AssignedTo)
	assert.Equal(t, created.Priority, updated.Priority)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	_, err = s.GetTicket(ctx, "missing")
	assert.True(t, contextutils.IsError(err, contextutils.ErrRecordNotFound))

	deleted, err := s.DeleteTicket(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteTicket(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func testUserLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()

	created, err := s.CreateUser(ctx, models.UserInput{
		Email:    "Jordan.Reyes@Example.com",
		Name:     "Jordan Reyes",
		Role:     models.RoleUser,
		Division: "Finance",
		IsActive: true,
	}, "hash-1")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "jordan.reyes@example.com", created.Email, "emails are stored lowercased")

	_, err = s.CreateUser(ctx, models.UserInput{
		Email:    "JORDAN.REYES@example.com",
		Name:     "Duplicate",
		Role:     models.RoleUser,
		IsActive: true,
	}, "hash-2")
	assert.True(t, contextutils.IsError(err, contextutils.ErrRecordExists))

	byEmail, err := s.GetUserByEmail(ctx, "JORDAN.REYES@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := s.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, byID.Email)
	assert.Equal(t, "hash-1", byID.PasswordHash, "stored credentials must survive the round trip")

	support := models.RoleSupport
	updated, err := s.UpdateUser(ctx, created.ID, models.UserPatch{Role: &support})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSupport, updated.Role)
	assert.Equal(t, created.Name, updated.Name)

	renamed, err := s.UpdateUser(ctx, created.ID, models.UserPatch{Email: strp("Jordan.R@Example.com")})
	require.NoError(t, err)
	assert.Equal(t, "jordan.r@example.com", renamed.Email, "patched emails are stored lowercased")
	assert.Equal(t, "hash-1", renamed.PasswordHash, "patching must not disturb credentials")

	byEmail, err = s.GetUserByEmail(ctx, "JORDAN.R@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.True(t, contextutils.IsError(err, contextutils.ErrRecordNotFound))

	deleted, err := s.DeleteUser(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func testChatMessages(t *testing.T, s store.Store) {
	ctx := context.Background()

	// Conversation order, not newest-first.
	first, err := s.CreateChatMessage(ctx, "alice", models.ChatMessageInput{Content: "My VPN keeps dropping"})
	require.NoError(t, err)
	separate()
	_, err = s.CreateChatMessage(ctx, "alice", models.ChatMessageInput{Content: "Have you tried reconnecting?", IsBot: true})
	require.NoError(t, err)
	separate()
	_, err = s.CreateChatMessage(ctx, "bob", models.ChatMessageInput{Content: "Printer is jammed again"})
	require.NoError(t, err)

	aliceMsgs, err := s.ListChatMessages(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, aliceMsgs, 2)
	assert.Equal(t, first.ID, aliceMsgs[0].ID)
	assert.Equal(t, "My VPN keeps dropping", aliceMsgs[0].Content)
	assert.False(t, aliceMsgs[0].IsBot)
	assert.True(t, aliceMsgs[1].IsBot)

	bobMsgs, err := s.ListChatMessages(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bobMsgs, 1, "chat history is partitioned per user")

	require.NoError(t, s.ClearChatMessages(ctx, "alice"))

	aliceMsgs, err = s.ListChatMessages(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, aliceMsgs)

	bobMsgs, err = s.ListChatMessages(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, bobMsgs, 1, "clearing one user's history must not touch another's")
}

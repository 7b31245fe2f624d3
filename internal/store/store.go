// Package store defines the persistence contract for the portal and selects
// the concrete backend at startup. Two implementations exist: an embedded
// key-value store for demo mode and a hosted Postgres database. Both must be
// observationally equivalent; handlers and services never branch on which
// one is in use.
package store

import (
	"context"

	"github.com/nami21/support-portal/internal/models"
)

// Backend names reported by Store.Backend.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// Store is the persistence facade for all portal entities.
//
// List results are ordered newest-first by creation time, except chat
// messages which are returned in conversation order (oldest first). Updates
// merge only the fields set in the patch and return ErrRecordNotFound for
// unknown ids. Deletes are idempotent and report whether a record was
// removed.
type Store interface {
	// Backend identifies the active implementation (local or remote).
	Backend() string

	// Initialize prepares the backend for first use. The local store seeds
	// demo data exactly once; the remote store is a no-op beyond the
	// migrations applied at connection time.
	Initialize(ctx context.Context) error

	Close() error

	// Users
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, input models.UserInput, passwordHash string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id string) (bool, error)

	// FAQs
	ListFAQs(ctx context.Context) ([]models.FAQ, error)
	CreateFAQ(ctx context.Context, input models.FAQInput) (*models.FAQ, error)
	UpdateFAQ(ctx context.Context, id string, patch models.FAQPatch) (*models.FAQ, error)
	DeleteFAQ(ctx context.Context, id string) (bool, error)

	// Announcements
	ListAnnouncements(ctx context.Context) ([]models.Announcement, error)
	CreateAnnouncement(ctx context.Context, input models.AnnouncementInput) (*models.Announcement, error)
	UpdateAnnouncement(ctx context.Context, id string, patch models.AnnouncementPatch) (*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id string) (bool, error)

	// System updates
	ListSystemUpdates(ctx context.Context) ([]models.SystemUpdate, error)
	CreateSystemUpdate(ctx context.Context, input models.SystemUpdateInput) (*models.SystemUpdate, error)
	UpdateSystemUpdate(ctx context.Context, id string, patch models.SystemUpdatePatch) (*models.SystemUpdate, error)
	DeleteSystemUpdate(ctx context.Context, id string) (bool, error)

	// Other documents
	ListOtherDocuments(ctx context.Context) ([]models.OtherDocument, error)
	CreateOtherDocument(ctx context.Context, input models.OtherDocumentInput) (*models.OtherDocument, error)
	UpdateOtherDocument(ctx context.Context, id string, patch models.OtherDocumentPatch) (*models.OtherDocument, error)
	DeleteOtherDocument(ctx context.Context, id string) (bool, error)

	// Training materials
	ListTrainingMaterials(ctx context.Context) ([]models.TrainingMaterial, error)
	CreateTrainingMaterial(ctx context.Context, input models.TrainingMaterialInput) (*models.TrainingMaterial, error)
	UpdateTrainingMaterial(ctx context.Context, id string, patch models.TrainingMaterialPatch) (*models.TrainingMaterial, error)
	DeleteTrainingMaterial(ctx context.Context, id string) (bool, error)

	// Tickets
	ListTickets(ctx context.Context) ([]models.Ticket, error)
	GetTicket(ctx context.Context, id string) (*models.Ticket, error)
	CreateTicket(ctx context.Context, input models.TicketInput) (*models.Ticket, error)
	UpdateTicket(ctx context.Context, id string, patch models.TicketPatch) (*models.Ticket, error)
	DeleteTicket(ctx context.Context, id string) (bool, error)

	// Chat messages, partitioned per owning user.
	ListChatMessages(ctx context.Context, userID string) ([]models.ChatMessage, error)
	CreateChatMessage(ctx context.Context, userID string, input models.ChatMessageInput) (*models.ChatMessage, error)
	ClearChatMessages(ctx context.Context, userID string) error
}

// Package localstore implements portal persistence on an embedded BadgerDB
// database. Each entity kind lives under a single key holding a JSON-encoded
// collection; chat histories are partitioned with one key per owning user.
// This is the demo-mode backend used when no remote database is configured.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/observability"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

// Collection keys. The naming is shared with the portal frontend's original
// demo-mode storage, which keeps exported data recognizable.
const (
	keyUsers             = "support_hub_users"
	keyFAQs              = "support_hub_faqs"
	keyAnnouncements     = "support_hub_announcements"
	keySystemUpdates     = "support_hub_system_updates"
	keyTickets           = "support_hub_tickets"
	keyOtherDocuments    = "support_hub_other_documents"
	keyTrainingMaterials = "support_hub_training_materials"
	keyChatPrefix        = "support_hub_chat_messages_"
	keyInitialized       = "support_hub_initialized"
)

// Store is the BadgerDB-backed implementation of the portal persistence
// facade.
type Store struct {
	db     *badger.DB
	logger *observability.Logger

	mu         sync.Mutex
	lastCreate time.Time
}

// New opens (or creates) the Badger database under dataDir.
func New(dataDir string, logger *observability.Logger) (*Store, error) {
	if logger == nil {
		panic("logger cannot be nil")
	}

	opts := badger.DefaultOptions(dataDir)
	opts.Logger = nil // Badger's own logger is too chatty for production use

	db, err := badger.Open(opts)
	if err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrStorageConnection, "failed to open local store at %s: %w", dataDir, err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Backend identifies this implementation.
func (s *Store) Backend() string { return "local" }

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// newID generates a local record identifier: millisecond timestamp plus a
// short random suffix. Lexically meaningless, but sortable enough for
// debugging and unique enough for a single-node store.
func newID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix)
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// nextUpdateTime returns a timestamp strictly after prev so repeated updates
// within the same clock tick still advance updatedAt.
func nextUpdateTime(prev time.Time) time.Time {
	t := now()
	if !t.After(prev) {
		t = prev.Add(time.Millisecond)
	}
	return t
}

// createTime returns a strictly increasing creation timestamp. Timestamps
// carry millisecond precision, so two records created on the same clock tick
// would otherwise tie and make newest-first ordering nondeterministic.
func (s *Store) createTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := now()
	if !t.After(s.lastCreate) {
		t = s.lastCreate.Add(time.Millisecond)
	}
	s.lastCreate = t
	return t
}

func getCollection[T any](txn *badger.Txn, key string) ([]T, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrStorageQuery, "failed to read %s: %w", key, err)
	}

	var out []T
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &out)
	}); err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrStorageQuery, "failed to decode %s: %w", key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func putCollection[T any](txn *badger.Txn, key string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return contextutils.WrapErrorf(contextutils.ErrStorageQuery, "failed to encode %s: %w", key, err)
	}
	if err := txn.Set([]byte(key), data); err != nil {
		return contextutils.WrapErrorf(contextutils.ErrStorageQuery, "failed to write %s: %w", key, err)
	}
	return nil
}

func listIn[T any](s *Store, key string) ([]T, error) {
	var out []T
	err := s.db.View(func(txn *badger.Txn) error {
		items, err := getCollection[T](txn, key)
		if err != nil {
			return err
		}
		out = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func appendIn[T any](s *Store, key string, item T) error {
	return s.db.Update(func(txn *badger.Txn) error {
		items, err := getCollection[T](txn, key)
		if err != nil {
			return err
		}
		items = append(items, item)
		return putCollection(txn, key, items)
	})
}

func updateIn[T any](s *Store, key string, match func(*T) bool, mutate func(*T)) (*T, error) {
	var updated *T
	err := s.db.Update(func(txn *badger.Txn) error {
		items, err := getCollection[T](txn, key)
		if err != nil {
			return err
		}
		for i := range items {
			if match(&items[i]) {
				mutate(&items[i])
				cp := items[i]
				updated = &cp
				return putCollection(txn, key, items)
			}
		}
		return contextutils.ErrRecordNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func deleteIn[T any](s *Store, key string, match func(*T) bool) (bool, error) {
	removed := false
	err := s.db.Update(func(txn *badger.Txn) error {
		items, err := getCollection[T](txn, key)
		if err != nil {
			return err
		}
		kept := make([]T, 0, len(items))
		for i := range items {
			if match(&items[i]) {
				removed = true
				continue
			}
			kept = append(kept, items[i])
		}
		if !removed {
			return nil
		}
		return putCollection(txn, key, kept)
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// sortNewestFirst orders a collection by creation time descending, ids as a
// tiebreaker so ordering stays deterministic within one clock tick.
func sortNewestFirst[T any](items []T, createdAt func(*T) time.Time, id func(*T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := createdAt(&items[i]), createdAt(&items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return id(&items[i]) > id(&items[j])
	})
}

// Users

// userRecord is the stored shape of a user. models.User hides the password
// hash from JSON output, so persisting it directly would silently drop the
// hash on every write; the stored record carries it explicitly, under the
// same field name the remote schema uses.
type userRecord struct {
	models.User
	StoredPasswordHash string `json:"password_hash"`
}

func toUserRecord(u models.User) userRecord {
	return userRecord{User: u, StoredPasswordHash: u.PasswordHash}
}

func (r *userRecord) user() models.User {
	u := r.User
	u.PasswordHash = r.StoredPasswordHash
	return u
}

func toUserRecords(users []models.User) []userRecord {
	records := make([]userRecord, len(users))
	for i := range users {
		records[i] = toUserRecord(users[i])
	}
	return records
}

func (s *Store) ListUsers(ctx context.Context) (result []models.User, err error) {
	_, span := observability.TraceStoreFunction(ctx, "ListUsers", observability.AttributeBackend(s.Backend()))
	defer observability.FinishSpan(span, &err)

	records, err := listIn[userRecord](s, keyUsers)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, len(records))
	for i := range records {
		users[i] = records[i].user()
	}
	sortNewestFirst(users, func(u *models.User) time.Time { return u.CreatedAt }, func(u *models.User) string { return u.ID })
	return users, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (result *models.User, err error) {
	_, span := observability.TraceStoreFunction(ctx, "GetUser", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	records, err := listIn[userRecord](s, keyUsers)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			u := records[i].user()
			return &u, nil
		}
	}
	return nil, contextutils.ErrRecordNotFound
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (result *models.User, err error) {
	_, span := observability.TraceStoreFunction(ctx, "GetUserByEmail")
	defer observability.FinishSpan(span, &err)

	records, err := listIn[userRecord](s, keyUsers)
	if err != nil {
		return nil, err
	}
	normalized := strings.ToLower(strings.TrimSpace(email))
	for i := range records {
		if strings.ToLower(records[i].Email) == normalized {
			u := records[i].user()
			return &u, nil
		}
	}
	return nil, contextutils.ErrRecordNotFound
}

func (s *Store) CreateUser(ctx context.Context, input models.UserInput, passwordHash string) (result *models.User, err error) {
	_, span := observability.TraceStoreFunction(ctx, "CreateUser")
	defer observability.FinishSpan(span, &err)

	if existing, lookupErr := s.GetUserByEmail(ctx, input.Email); lookupErr == nil && existing != nil {
		return nil, contextutils.ErrRecordExists
	}

	user := models.User{
		ID:           newID(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Name:         input.Name,
		Role:         input.Role,
		Division:     input.Division,
		IsActive:     input.IsActive,
		PasswordHash: passwordHash,
		CreatedAt:    s.createTime(),
	}
	if err := appendIn(s, keyUsers, toUserRecord(user)); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (result *models.User, err error) {
	_, span := observability.TraceStoreFunction(ctx, "UpdateUser", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		patch.Email = &email
	}
	record, err := updateIn(s, keyUsers,
		func(r *userRecord) bool { return r.ID == id },
		func(r *userRecord) { patch.Apply(&r.User) })
	if err != nil {
		return nil, err
	}
	u := record.user()
	return &u, nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) (result bool, err error) {
	_, span := observability.TraceStoreFunction(ctx, "DeleteUser", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	return deleteIn(s, keyUsers, func(r *userRecord) bool { return r.ID == id })
}

// FAQs

func (s *Store) ListFAQs(ctx context.Context) (result []models.FAQ, err error) {
	_, span := observability.TraceStoreFunction(ctx, "ListFAQs", observability.AttributeBackend(s.Backend()))
	defer observability.FinishSpan(span, &err)

	faqs, err := listIn[models.FAQ](s, keyFAQs)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(faqs, func(f *models.FAQ) time.Time { return f.CreatedAt }, func(f *models.FAQ) string { return f.ID })
	return faqs, nil
}

func (s *Store) CreateFAQ(ctx context.Context, input models.FAQInput) (result *models.FAQ, err error) {
	_, span := observability.TraceStoreFunction(ctx, "CreateFAQ")
	defer observability.FinishSpan(span, &err)

	ts := s.createTime()
	faq := models.FAQ{
		ID:        newID(),
		Title:     input.Title,
		Content:   input.Content,
		Category:  input.Category,
		Tags:      models.NormalizeTags(input.Tags),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := appendIn(s, keyFAQs, faq); err != nil {
		return nil, err
	}
	return &faq, nil
}

func (s *Store) UpdateFAQ(ctx context.Context, id string, patch models.FAQPatch) (result *models.FAQ, err error) {
	_, span := observability.TraceStoreFunction(ctx, "UpdateFAQ", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	return updateIn(s, keyFAQs,
		func(f *models.FAQ) bool { return f.ID == id },
		func(f *models.FAQ) {
			patch.Apply(f)
			f.UpdatedAt = nextUpdateTime(f.UpdatedAt)
		})
}

func (s *Store) DeleteFAQ(ctx context.Context, id string) (result bool, err error) {
	_, span := observability.TraceStoreFunction(ctx, "DeleteFAQ", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	return deleteIn(s, keyFAQs, func(f *models.FAQ) bool { return f.ID == id })
}

// Announcements

func (s *Store) ListAnnouncements(ctx context.Context) (result []models.Announcement, err error) {
	_, span := observability.TraceStoreFunction(ctx, "ListAnnouncements", observability.AttributeBackend(s.Backend()))
	defer observability.FinishSpan(span, &err)

	items, err := listIn[models.Announcement](s, keyAnnouncements)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items, func(a *models.Announcement) time.Time { return a.CreatedAt }, func(a *models.Announcement) string { return a.ID })
	return items, nil
}

func (s *Store) CreateAnnouncement(ctx context.Context, input models.AnnouncementInput) (result *models.Announcement, err error) {
	_, span := observability.TraceStoreFunction(ctx, "CreateAnnouncement")
	defer observability.FinishSpan(span, &err)

	a := models.Announcement{
		ID:             newID(),
		Title:          input.Title,
		Description:    input.Description,
		Type:           input.Type,
		TargetAudience: input.TargetAudience,
		ValidityDate:   input.ValidityDate,
		Attachments:    models.NormalizeTags(input.Attachments),
		IsActive:       input.IsActive,
		CreatedAt:      s.createTime(),
	}
	if err := appendIn(s, keyAnnouncements, a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) UpdateAnnouncement(ctx context.Context, id string, patch models.AnnouncementPatch) (result *models.Announcement, err error) {
	_, span := observability.TraceStoreFunction(ctx, "UpdateAnnouncement", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	return updateIn(s, keyAnnouncements,
		func(a *models.Announcement) bool { return a.ID == id },
		func(a *models.Announcement) { patch.Apply(a) })
}

func (s *Store) DeleteAnnouncement(ctx context.Context, id string) (result bool, err error) {
	_, span := observability.TraceStoreFunction(ctx, "DeleteAnnouncement", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	return deleteIn(s, keyAnnouncements, func(a *models.Announcement) bool { return a.ID == id })
}

// System updates

func (s *Store) ListSystemUpdates(ctx context.Context) (result []models.SystemUpdate, err error) {
	_, span := observability.TraceStoreFunction(ctx, "ListSystemUpdates", observability.AttributeBackend(s.Backend()))
	defer observability.FinishSpan(span, &err)

	items, err := listIn[models.SystemUpdate](s, keySystemUpdates)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items, func(u *models.SystemUpdate) time.Time { return u.CreatedAt }, func(u *models.SystemUpdate) string { return u.ID })
	return items, nil
}

func (s *Store) CreateSystemUpdate(ctx context.Context, input models.SystemUpdateInput) (result *models.SystemUpdate, err error) {
	_, span := observability.TraceStoreFunction(ctx, "CreateSystemUpdate")
	defer observability.FinishSpan(span, &err)

	u := models.SystemUpdate{
		ID:             newID(),
		Title:          input.Title,
		Description:    input.Description,
		Type:           input.Type,
		Classification: input.Classification,
		Severity:       input.Severity,
		Status:         input.Status,
		Date:           input.Date,
		ImageURL:       input.ImageURL,
		CreatedAt:      s.createTime(),
	}
	if err := appendIn(s, keySystemUpdates, u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) UpdateSystemUpdate(ctx context.Context, id string, patch models.SystemUpdatePatch) (result *models.SystemUpdate, err error) {
	_, span := observability.TraceStoreFunction(ctx, "UpdateSystemUpdate", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	return updateIn(s, keySystemUpdates,
		func(u *models.SystemUpdate) bool { return u.ID == id },
		func(u *models.SystemUpdate) { patch.Apply(u) })
}

func (s *Store) DeleteSystemUpdate(ctx context.Context, id string) (result bool, err error) {
	_, span := observability.TraceStoreFunction(ctx, "DeleteSystemUpdate", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	return deleteIn(s, keySystemUpdates, func(u *models.SystemUpdate) bool { return u.ID == id })
}

// Other documents

func (s *Store) ListOtherDocuments(ctx context.Context) (result []models.OtherDocument, err error) {
	_, span := observability.TraceStoreFunction(ctx, "ListOtherDocuments", observability.AttributeBackend(s.Backend()))
	defer observability.FinishSpan(span, &err)

	items, err := listIn[models.OtherDocument](s, keyOtherDocuments)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items, func(d *models.OtherDocument) time.Time { return d.CreatedAt }, func(d *models.OtherDocument) string { return d.ID })
	return items, nil
}

func (s *Store) CreateOtherDocument(ctx context.Context, input models.OtherDocumentInput) (result *models.OtherDocument, err error) {
	_, span := observability.TraceStoreFunction(ctx, "CreateOtherDocument")
	defer observability.FinishSpan(span, &err)

	d := models.OtherDocument{
		ID:           newID(),
		DocumentName: input.DocumentName,
		Description:  input.Description,
		FileURL:      input.FileURL,
		CreatedBy:    input.CreatedBy,
		CreatedAt:    s.createTime(),
	}
	if err := appendIn(s, keyOtherDocuments, d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) UpdateOtherDocument(ctx context.Context, id string, patch models.OtherDocumentPatch) (result *models.OtherDocument, err error) {
	_, span := observability.TraceStoreFunction(ctx, "UpdateOtherDocument", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	return updateIn(s, keyOtherDocuments,
		func(d *models.OtherDocument) bool { return d.ID == id },
		func(d *models.OtherDocument) { patch.Apply(d) })
}

func (s *Store) DeleteOtherDocument(ctx context.Context, id string) (result bool, err error) {
	_, span := observability.TraceStoreFunction(ctx, "DeleteOtherDocument", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	return deleteIn(s, keyOtherDocuments, func(d *models.OtherDocument) bool { return d.ID == id })
}

// Training materials

func (s *Store) ListTrainingMaterials(ctx context.Context) (result []models.TrainingMaterial, err error) {
	_, span := observability.TraceStoreFunction(ctx, "ListTrainingMaterials", observability.AttributeBackend(s.Backend()))
	defer observability.FinishSpan(span, &err)

	items, err := listIn[models.TrainingMaterial](s, keyTrainingMaterials)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items, func(m *models.TrainingMaterial) time.Time { return m.CreatedAt }, func(m *models.TrainingMaterial) string { return m.ID })
	return items, nil
}

func (s *Store) CreateTrainingMaterial(ctx context.Context, input models.TrainingMaterialInput) (result *models.TrainingMaterial, err error) {
	_, span := observability.TraceStoreFunction(ctx, "CreateTrainingMaterial")
	defer observability.FinishSpan(span, &err)

	m := models.TrainingMaterial{
		ID:               newID(),
		Type:             input.Type,
		Title:            input.Title,
		ImageURL:         input.ImageURL,
		Category:         input.Category,
		Level:            input.Level,
		VideoTitle:       input.VideoTitle,
		VideoDescription: input.VideoDescription,
		VideoURL:         input.VideoURL,
		ThumbnailURL:     input.ThumbnailURL,
		CreatedBy:        input.CreatedBy,
		IsActive:         input.IsActive,
		CreatedAt:        s.createTime(),
	}
	if err := appendIn(s, keyTrainingMaterials, m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) UpdateTrainingMaterial(ctx context.Context, id string, patch models.TrainingMaterialPatch) (result *models.TrainingMaterial, err error) {
	_, span := observability.TraceStoreFunction(ctx, "UpdateTrainingMaterial", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	return updateIn(s, keyTrainingMaterials,
		func(m *models.TrainingMaterial) bool { return m.ID == id },
		func(m *models.TrainingMaterial) { patch.Apply(m) })
}

func (s *Store) DeleteTrainingMaterial(ctx context.Context, id string) (result bool, err error) {
	_, span := observability.TraceStoreFunction(ctx, "DeleteTrainingMaterial", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	return deleteIn(s, keyTrainingMaterials, func(m *models.TrainingMaterial) bool { return m.ID == id })
}

// Tickets

func (s *Store) ListTickets(ctx context.Context) (result []models.Ticket, err error) {
	_, span := observability.TraceStoreFunction(ctx, "ListTickets", observability.AttributeBackend(s.Backend()))
	defer observability.FinishSpan(span, &err)

	items, err := listIn[models.Ticket](s, keyTickets)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items, func(t *models.Ticket) time.Time { return t.CreatedAt }, func(t *models.Ticket) string { return t.ID })
	return items, nil
}

func (s *Store) GetTicket(ctx context.Context, id string) (result *models.Ticket, err error) {
	_, span := observability.TraceStoreFunction(ctx, "GetTicket", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	items, err := listIn[models.Ticket](s, keyTickets)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, contextutils.ErrRecordNotFound
}

func (s *Store) CreateTicket(ctx context.Context, input models.TicketInput) (result *models.Ticket, err error) {
	_, span := observability.TraceStoreFunction(ctx, "CreateTicket")
	defer observability.FinishSpan(span, &err)

	ts := s.createTime()
	t := models.Ticket{
		ID:          newID(),
		Title:       input.Title,
		Category:    input.Category,
		Priority:    input.Priority,
		Description: input.Description,
		Attachments: models.NormalizeTags(input.Attachments),
		Status:      models.TicketOpen,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := appendIn(s, keyTickets, t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) UpdateTicket(ctx context.Context, id string, patch models.TicketPatch) (result *models.Ticket, err error) {
	_, span := observability.TraceStoreFunction(ctx, "UpdateTicket", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	return updateIn(s, keyTickets,
		func(t *models.Ticket) bool { return t.ID == id },
		func(t *models.Ticket) {
			patch.Apply(t)
			t.UpdatedAt = nextUpdateTime(t.UpdatedAt)
		})
}

func (s *Store) DeleteTicket(ctx context.Context, id string) (result bool, err error) {
	_, span := observability.TraceStoreFunction(ctx, "DeleteTicket", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	return deleteIn(s, keyTickets, func(t *models.Ticket) bool { return t.ID == id })
}

// Chat messages

func chatKey(userID string) string {
	return keyChatPrefix + userID
}

func (s *Store) ListChatMessages(ctx context.Context, userID string) (result []models.ChatMessage, err error) {
	_, span := observability.TraceStoreFunction(ctx, "ListChatMessages", observability.AttributeUserID(userID))
	defer observability.FinishSpan(span, &err)

	// Stored in append order, which is already conversation order.
	return listIn[models.ChatMessage](s, chatKey(userID))
}

func (s *Store) CreateChatMessage(ctx context.Context, userID string, input models.ChatMessageInput) (result *models.ChatMessage, err error) {
	_, span := observability.TraceStoreFunction(ctx, "CreateChatMessage", observability.AttributeUserID(userID))
	defer observability.FinishSpan(span, &err)

	msg := models.ChatMessage{
		ID:        newID(),
		Content:   input.Content,
		IsBot:     input.IsBot,
		Timestamp: s.createTime(),
	}
	if err := appendIn(s, chatKey(userID), msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *Store) ClearChatMessages(ctx context.Context, userID string) (err error) {
	_, span := observability.TraceStoreFunction(ctx, "ClearChatMessages", observability.AttributeUserID(userID))
	defer observability.FinishSpan(span, &err)

	return s.db.Update(func(txn *badger.Txn) error {
		return putCollection(txn, chatKey(userID), []models.ChatMessage{})
	})
}

// Package remotestore implements portal persistence on a hosted PostgreSQL
// database. It is selected when both the remote URL and service key are
// configured, and must behave identically to the embedded local store.
package remotestore

import (
	"context"
	"database/sql"
	"errors"
	"net/url"

	"github.com/lib/pq"

	"github.com/nami21/support-portal/internal/config"
	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/observability"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

// Store is the Postgres-backed implementation of the portal persistence
// facade.
type Store struct {
	db     *sql.DB
	logger *observability.Logger
}

// New connects to the remote database, applies pending migrations, and
// returns the store. The service key is injected as the DSN password when
// the DSN does not already carry one.
func New(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Store, error) {
	if logger == nil {
		panic("logger cannot be nil")
	}

	remote := cfg.Remote
	remote.URL = dsnWithServiceKey(remote.URL, remote.ServiceKey)

	db, err := openDB(ctx, remote, logger)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, remote.URL, logger); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error(ctx, "Failed to close database after migration failure", closeErr)
		}
		return nil, err
	}

	return &Store{db: db, logger: logger}, nil
}

// dsnWithServiceKey sets the service key as the DSN password unless the DSN
// already includes one.
func dsnWithServiceKey(dsn, serviceKey string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		return dsn
	}
	u.User = url.UserPassword(u.User.Username(), serviceKey)
	return u.String()
}

// Backend identifies this implementation.
func (s *Store) Backend() string { return "remote" }

// Close releases the database connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize is a no-op for the remote backend; the schema is applied via
// migrations at connection time and data is never seeded into the hosted
// database.
func (s *Store) Initialize(ctx context.Context) (err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "Initialize", observability.AttributeBackend(s.Backend()))
	defer observability.FinishSpan(span, &err)

	s.logger.Debug(ctx, "Remote backend requires no seeding")
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func wrapQueryErr(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return contextutils.ErrRecordNotFound
	}
	return contextutils.WrapErrorf(contextutils.ErrStorageQuery, "%s failed: %w", op, err)
}

func strPtr[T ~string](p *T) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

func rowsAffected(res sql.Result, op string) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, wrapQueryErr(err, op)
	}
	return n > 0, nil
}

// Users

const userColumns = "id, email, name, role, division, is_active, password_hash, created_at"

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Division, &u.IsActive, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) (result []models.User, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "ListUsers", observability.AttributeBackend(s.Backend()))
	defer observability.FinishSpan(span, &err)

	rows, err := s.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, wrapQueryErr(err, "list users")
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrapQueryErr(err, "scan user")
		}
		users = append(users, *u)
	}
	return users, wrapRowsErr(rows, "list users")
}

func wrapRowsErr(rows *sql.Rows, op string) error {
	if err := rows.Err(); err != nil {
		return wrapQueryErr(err, op)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (result *models.User, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "GetUser", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	u, err := scanUser(s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if err != nil {
		return nil, wrapQueryErr(err, "get user")
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (result *models.User, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "GetUserByEmail")
	defer observability.FinishSpan(span, &err)

	u, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE lower(email) = lower($1)", email))
	if err != nil {
		return nil, wrapQueryErr(err, "get user by email")
	}
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, input models.UserInput, passwordHash string) (result *models.User, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "CreateUser")
	defer observability.FinishSpan(span, &err)

	u, err := scanUser(s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, name, role, division, is_active, password_hash)
		VALUES (lower($1), $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		input.Email, input.Name, input.Role, input.Division, input.IsActive, passwordHash))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, contextutils.ErrRecordExists
		}
		return nil, wrapQueryErr(err, "create user")
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (result *models.User, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "UpdateUser", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	u, err := scanUser(s.db.QueryRowContext(ctx, `
		UPDATE users SET
			email = COALESCE(lower($2), email),
			name = COALESCE($3, name),
			role = COALESCE($4, role),
			division = COALESCE($5, division),
			is_active = COALESCE($6, is_active)
		WHERE id = $1
		RETURNING `+userColumns,
		id, patch.Email, patch.Name, strPtr(patch.Role), patch.Division, patch.IsActive))
	if err != nil {
		return nil, wrapQueryErr(err, "update user")
	}
	return u, nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) (result bool, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "DeleteUser", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return false, wrapQueryErr(err, "delete user")
	}
	return rowsAffected(res, "delete user")
}

// FAQs

const faqColumns = "id, title, content, category, tags, created_at, updated_at"

func scanFAQ(row rowScanner) (*models.FAQ, error) {
	var f models.FAQ
	if err := row.Scan(&f.ID, &f.Title, &f.Content, &f.Category, pq.Array(&f.Tags), &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	f.Tags = models.NormalizeTags(f.Tags)
	return &f, nil
}

func (s *Store) ListFAQs(ctx context.Context) (result []models.FAQ, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "ListFAQs", observability.AttributeBackend(s.Backend()))
	defer observability.FinishSpan(span, &err)

	rows, err := s.db.QueryContext(ctx, "SELECT "+faqColumns+" FROM faqs ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, wrapQueryErr(err, "list faqs")
	}
	defer rows.Close()

	faqs := []models.FAQ{}
	for rows.Next() {
		f, err := scanFAQ(rows)
		if err != nil {
			return nil, wrapQueryErr(err, "scan faq")
		}
		faqs = append(faqs, *f)
	}
	return faqs, wrapRowsErr(rows, "list faqs")
}

func (s *Store) CreateFAQ(ctx context.Context, input models.FAQInput) (result *models.FAQ, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "CreateFAQ")
	defer observability.FinishSpan(span, &err)

	f, err := scanFAQ(s.db.QueryRowContext(ctx, `
		INSERT INTO faqs (title, content, category, tags)
		VALUES ($1, $2, $3, $4)
		RETURNING `+faqColumns,
		input.Title, input.Content, input.Category, pq.Array(models.NormalizeTags(input.Tags))))
	if err != nil {
		return nil, wrapQueryErr(err, "create faq")
	}
	return f, nil
}

func (s *Store) UpdateFAQ(ctx context.Context, id string, patch models.FAQPatch) (result *models.FAQ, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "UpdateFAQ", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	var tags interface{}
	if patch.Tags != nil {
		tags = pq.Array(models.NormalizeTags(*patch.Tags))
	}

	f, err := scanFAQ(s.db.QueryRowContext(ctx, `
		UPDATE faqs SET
			title = COALESCE($2, title),
			content = COALESCE($3, content),
			category = COALESCE($4, category),
			tags = COALESCE($5::text[], tags),
			updated_at = GREATEST(now(), updated_at + interval '1 millisecond')
		WHERE id = $1
		RETURNING `+faqColumns,
		id, patch.Title, patch.Content, strPtr(patch.Category), tags))
	if err != nil {
		return nil, wrapQueryErr(err, "update faq")
	}
	return f, nil
}

func (s *Store) DeleteFAQ(ctx context.Context, id string) (result bool, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "DeleteFAQ", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	res, err := s.db.ExecContext(ctx, "DELETE FROM faqs WHERE id = $1", id)
	if err != nil {
		return false, wrapQueryErr(err, "delete faq")
	}
	return rowsAffected(res, "delete faq")
}

// Announcements

const announcementColumns = "id, title, description, type, target_audience, validity_date, attachments, is_active, created_at"

func scanAnnouncement(row rowScanner) (*models.Announcement, error) {
	var a models.Announcement
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Type, &a.TargetAudience, &a.ValidityDate,
		pq.Array(&a.Attachments), &a.IsActive, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Attachments = models.NormalizeTags(a.Attachments)
	return &a, nil
}

func (s *Store) ListAnnouncements(ctx context.Context) (result []models.Announcement, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "ListAnnouncements", observability.AttributeBackend(s.Backend()))
	defer observability.FinishSpan(span, &err)

	rows, err := s.db.QueryContext(ctx, "SELECT "+announcementColumns+" FROM announcements ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, wrapQueryErr(err, "list announcements")
	}
	defer rows.Close()

	items := []models.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, wrapQueryErr(err, "scan announcement")
		}
		items = append(items, *a)
	}
	return items, wrapRowsErr(rows, "list announcements")
}

func (s *Store) CreateAnnouncement(ctx context.Context, input models.AnnouncementInput) (result *models.Announcement, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "CreateAnnouncement")
	defer observability.FinishSpan(span, &err)

	a, err := scanAnnouncement(s.db.QueryRowContext(ctx, `
		INSERT INTO announcements (title, description, type, target_audience, validity_date, attachments, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+announcementColumns,
		input.Title, input.Description, input.Type, input.TargetAudience, input.ValidityDate,
		pq.Array(models.NormalizeTags(input.Attachments)), input.IsActive))
	if err != nil {
		return nil, wrapQueryErr(err, "create announcement")
	}
	return a, nil
}

func (s *Store) UpdateAnnouncement(ctx context.Context, id string, patch models.AnnouncementPatch) (result *models.Announcement, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "UpdateAnnouncement", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	var attachments interface{}
	if patch.Attachments != nil {
		attachments = pq.Array(models.NormalizeTags(*patch.Attachments))
	}

	a, err := scanAnnouncement(s.db.QueryRowContext(ctx, `
		UPDATE announcements SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			type = COALESCE($4, type),
			target_audience = COALESCE($5, target_audience),
			validity_date = COALESCE($6, validity_date),
			attachments = COALESCE($7::text[], attachments),
			is_active = COALESCE($8, is_active)
		WHERE id = $1
		RETURNING `+announcementColumns,
		id, patch.Title, patch.Description, strPtr(patch.Type), patch.TargetAudience,
		patch.ValidityDate, attachments, patch.IsActive))
	if err != nil {
		return nil, wrapQueryErr(err, "update announcement")
	}
	return a, nil
}

func (s *Store) DeleteAnnouncement(ctx context.Context, id string) (result bool, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "DeleteAnnouncement", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	res, err := s.db.ExecContext(ctx, "DELETE FROM announcements WHERE id = $1", id)
	if err != nil {
		return false, wrapQueryErr(err, "delete announcement")
	}
	return rowsAffected(res, "delete announcement")
}

// System updates

const systemUpdateColumns = "id, title, description, type, classification, severity, status, date, image_url, created_at"

func scanSystemUpdate(row rowScanner) (*models.SystemUpdate, error) {
	var u models.SystemUpdate
	if err := row.Scan(&u.ID, &u.Title, &u.Description, &u.Type, &u.Classification, &u.Severity,
		&u.Status, &u.Date, &u.ImageURL, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) ListSystemUpdates(ctx context.Context) (result []models.SystemUpdate, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "ListSystemUpdates", observability.AttributeBackend(s.Backend()))
	defer observability.FinishSpan(span, &err)

	rows, err := s.db.QueryContext(ctx, "SELECT "+systemUpdateColumns+" FROM system_updates ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, wrapQueryErr(err, "list system updates")
	}
	defer rows.Close()

	items := []models.SystemUpdate{}
	for rows.Next() {
		u, err := scanSystemUpdate(rows)
		if err != nil {
			return nil, wrapQueryErr(err, "scan system update")
		}
		items = append(items, *u)
	}
	return items, wrapRowsErr(rows, "list system updates")
}

func (s *Store) CreateSystemUpdate(ctx context.Context, input models.SystemUpdateInput) (result *models.SystemUpdate, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "CreateSystemUpdate")
	defer observability.FinishSpan(span, &err)

	u, err := scanSystemUpdate(s.db.QueryRowContext(ctx, `
		INSERT INTO system_updates (title, description, type, classification, severity, status, date, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+systemUpdateColumns,
		input.Title, input.Description, input.Type, input.Classification, input.Severity,
		input.Status, input.Date, input.ImageURL))
	if err != nil {
		return nil, wrapQueryErr(err, "create system update")
	}
	return u, nil
}

func (s *Store) UpdateSystemUpdate(ctx context.Context, id string, patch models.SystemUpdatePatch) (result *models.SystemUpdate, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "UpdateSystemUpdate", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	u, err := scanSystemUpdate(s.db.QueryRowContext(ctx, `
		UPDATE system_updates SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			type = COALESCE($4, type),
			classification = COALESCE($5, classification),
			severity = COALESCE($6, severity),
			status = COALESCE($7, status),
			date = COALESCE($8, date),
			image_url = COALESCE($9, image_url)
		WHERE id = $1
		RETURNING `+systemUpdateColumns,
		id, patch.Title, patch.Description, strPtr(patch.Type), strPtr(patch.Classification),
		strPtr(patch.Severity), strPtr(patch.Status), patch.Date, patch.ImageURL))
	if err != nil {
		return nil, wrapQueryErr(err, "update system update")
	}
	return u, nil
}

func (s *Store) DeleteSystemUpdate(ctx context.Context, id string) (result bool, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "DeleteSystemUpdate", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	res, err := s.db.ExecContext(ctx, "DELETE FROM system_updates WHERE id = $1", id)
	if err != nil {
		return false, wrapQueryErr(err, "delete system update")
	}
	return rowsAffected(res, "delete system update")
}

// Other documents

const documentColumns = "id, document_name, description, file_url, created_by, created_at"

func scanDocument(row rowScanner) (*models.OtherDocument, error) {
	var d models.OtherDocument
	if err := row.Scan(&d.ID, &d.DocumentName, &d.Description, &d.FileURL, &d.CreatedBy, &d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) ListOtherDocuments(ctx context.Context) (result []models.OtherDocument, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "ListOtherDocuments", observability.AttributeBackend(s.Backend()))
	defer observability.FinishSpan(span, &err)

	rows, err := s.db.QueryContext(ctx, "SELECT "+documentColumns+" FROM other_documents ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, wrapQueryErr(err, "list documents")
	}
	defer rows.Close()

	items := []models.OtherDocument{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, wrapQueryErr(err, "scan document")
		}
		items = append(items, *d)
	}
	return items, wrapRowsErr(rows, "list documents")
}

func (s *Store) CreateOtherDocument(ctx context.Context, input models.OtherDocumentInput) (result *models.OtherDocument, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "CreateOtherDocument")
	defer observability.FinishSpan(span, &err)

	d, err := scanDocument(s.db.QueryRowContext(ctx, `
		INSERT INTO other_documents (document_name, description, file_url, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING `+documentColumns,
		input.DocumentName, input.Description, input.FileURL, input.CreatedBy))
	if err != nil {
		return nil, wrapQueryErr(err, "create document")
	}
	return d, nil
}

func (s *Store) UpdateOtherDocument(ctx context.Context, id string, patch models.OtherDocumentPatch) (result *models.OtherDocument, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "UpdateOtherDocument", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	d, err := scanDocument(s.db.QueryRowContext(ctx, `
		UPDATE other_documents SET
			document_name = COALESCE($2, document_name),
			description = COALESCE($3, description),
			file_url = COALESCE($4, file_url),
			created_by = COALESCE($5, created_by)
		WHERE id = $1
		RETURNING `+documentColumns,
		id, patch.DocumentName, patch.Description, patch.FileURL, patch.CreatedBy))
	if err != nil {
		return nil, wrapQueryErr(err, "update document")
	}
	return d, nil
}

func (s *Store) DeleteOtherDocument(ctx context.Context, id string) (result bool, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "DeleteOtherDocument", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	res, err := s.db.ExecContext(ctx, "DELETE FROM other_documents WHERE id = $1", id)
	if err != nil {
		return false, wrapQueryErr(err, "delete document")
	}
	return rowsAffected(res, "delete document")
}

// Training materials

const trainingColumns = "id, type, title, image_url, category, level, video_title, video_description, video_url, thumbnail_url, created_by, is_active, created_at"

func scanTraining(row rowScanner) (*models.TrainingMaterial, error) {
	var m models.TrainingMaterial
	if err := row.Scan(&m.ID, &m.Type, &m.Title, &m.ImageURL, &m.Category, &m.Level, &m.VideoTitle,
		&m.VideoDescription, &m.VideoURL, &m.ThumbnailURL, &m.CreatedBy, &m.IsActive, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) ListTrainingMaterials(ctx context.Context) (result []models.TrainingMaterial, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "ListTrainingMaterials", observability.AttributeBackend(s.Backend()))
	defer observability.FinishSpan(span, &err)

	rows, err := s.db.QueryContext(ctx, "SELECT "+trainingColumns+" FROM training_materials ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, wrapQueryErr(err, "list training materials")
	}
	defer rows.Close()

	items := []models.TrainingMaterial{}
	for rows.Next() {
		m, err := scanTraining(rows)
		if err != nil {
			return nil, wrapQueryErr(err, "scan training material")
		}
		items = append(items, *m)
	}
	return items, wrapRowsErr(rows, "list training materials")
}

func (s *Store) CreateTrainingMaterial(ctx context.Context, input models.TrainingMaterialInput) (result *models.TrainingMaterial, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "CreateTrainingMaterial")
	defer observability.FinishSpan(span, &err)

	m, err := scanTraining(s.db.QueryRowContext(ctx, `
		INSERT INTO training_materials (type, title, image_url, category, level, video_title, video_description, video_url, thumbnail_url, created_by, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+trainingColumns,
		input.Type, input.Title, input.ImageURL, input.Category, input.Level, input.VideoTitle,
		input.VideoDescription, input.VideoURL, input.ThumbnailURL, input.CreatedBy, input.IsActive))
	if err != nil {
		return nil, wrapQueryErr(err, "create training material")
	}
	return m, nil
}

func (s *Store) UpdateTrainingMaterial(ctx context.Context, id string, patch models.TrainingMaterialPatch) (result *models.TrainingMaterial, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "UpdateTrainingMaterial", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	m, err := scanTraining(s.db.QueryRowContext(ctx, `
		UPDATE training_materials SET
			type = COALESCE($2, type),
			title = COALESCE($3, title),
			image_url = COALESCE($4, image_url),
			category = COALESCE($5, category),
			level = COALESCE($6, level),
			video_title = COALESCE($7, video_title),
			video_description = COALESCE($8, video_description),
			video_url = COALESCE($9, video_url),
			thumbnail_url = COALESCE($10, thumbnail_url),
			created_by = COALESCE($11, created_by),
			is_active = COALESCE($12, is_active)
		WHERE id = $1
		RETURNING `+trainingColumns,
		id, strPtr(patch.Type), patch.Title, patch.ImageURL, patch.Category, patch.Level,
		patch.VideoTitle, patch.VideoDescription, patch.VideoURL, patch.ThumbnailURL,
		patch.CreatedBy, patch.IsActive))
	if err != nil {
		return nil, wrapQueryErr(err, "update training material")
	}
	return m, nil
}

func (s *Store) DeleteTrainingMaterial(ctx context.Context, id string) (result bool, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "DeleteTrainingMaterial", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	res, err := s.db.ExecContext(ctx, "DELETE FROM training_materials WHERE id = $1", id)
	if err != nil {
		return false, wrapQueryErr(err, "delete training material")
	}
	return rowsAffected(res, "delete training material")
}

// Tickets

const ticketColumns = "id, title, category, priority, description, attachments, status, created_by, assigned_to, created_at, updated_at"

func scanTicket(row rowScanner) (*models.Ticket, error) {
	var t models.Ticket
	if err := row.Scan(&t.ID, &t.Title, &t.Category, &t.Priority, &t.Description, pq.Array(&t.Attachments),
		&t.Status, &t.CreatedBy, &t.AssignedTo, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Attachments = models.NormalizeTags(t.Attachments)
	return &t, nil
}

func (s *Store) ListTickets(ctx context.Context) (result []models.Ticket, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "ListTickets", observability.AttributeBackend(s.Backend()))
	defer observability.FinishSpan(span, &err)

	rows, err := s.db.QueryContext(ctx, "SELECT "+ticketColumns+" FROM tickets ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, wrapQueryErr(err, "list tickets")
	}
	defer rows.Close()

	items := []models.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, wrapQueryErr(err, "scan ticket")
		}
		items = append(items, *t)
	}
	return items, wrapRowsErr(rows, "list tickets")
}

func (s *Store) GetTicket(ctx context.Context, id string) (result *models.Ticket, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "GetTicket", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	t, err := scanTicket(s.db.QueryRowContext(ctx, "SELECT "+ticketColumns+" FROM tickets WHERE id = $1", id))
	if err != nil {
		return nil, wrapQueryErr(err, "get ticket")
	}
	return t, nil
}

func (s *Store) CreateTicket(ctx context.Context, input models.TicketInput) (result *models.Ticket, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "CreateTicket")
	defer observability.FinishSpan(span, &err)

	t, err := scanTicket(s.db.QueryRowContext(ctx, `
		INSERT INTO tickets (title, category, priority, description, attachments, status, created_by)
		VALUES ($1, $2, $3, $4, $5, 'open', $6)
		RETURNING `+ticketColumns,
		input.Title, input.Category, input.Priority, input.Description,
		pq.Array(models.NormalizeTags(input.Attachments)), input.CreatedBy))
	if err != nil {
		return nil, wrapQueryErr(err, "create ticket")
	}
	return t, nil
}

func (s *Store) UpdateTicket(ctx context.Context, id string, patch models.TicketPatch) (result *models.Ticket, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "UpdateTicket", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	t, err := scanTicket(s.db.QueryRowContext(ctx, `
		UPDATE tickets SET
			status = COALESCE($2, status),
			priority = COALESCE($3, priority),
			assigned_to = COALESCE($4, assigned_to),
			updated_at = GREATEST(now(), updated_at + interval '1 millisecond')
		WHERE id = $1
		RETURNING `+ticketColumns,
		id, strPtr(patch.Status), strPtr(patch.Priority), patch.AssignedTo))
	if err != nil {
		return nil, wrapQueryErr(err, "update ticket")
	}
	return t, nil
}

func (s *Store) DeleteTicket(ctx context.Context, id string) (result bool, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "DeleteTicket", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	res, err := s.db.ExecContext(ctx, "DELETE FROM tickets WHERE id = $1", id)
	if err != nil {
		return false, wrapQueryErr(err, "delete ticket")
	}
	return rowsAffected(res, "delete ticket")
}

// Chat messages

func (s *Store) ListChatMessages(ctx context.Context, userID string) (result []models.ChatMessage, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "ListChatMessages", observability.AttributeUserID(userID))
	defer observability.FinishSpan(span, &err)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, is_bot, timestamp FROM chat_messages WHERE user_id = $1 ORDER BY timestamp ASC, id ASC`, userID)
	if err != nil {
		return nil, wrapQueryErr(err, "list chat messages")
	}
	defer rows.Close()

	items := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.Content, &m.IsBot, &m.Timestamp); err != nil {
			return nil, wrapQueryErr(err, "scan chat message")
		}
		items = append(items, m)
	}
	return items, wrapRowsErr(rows, "list chat messages")
}

func (s *Store) CreateChatMessage(ctx context.Context, userID string, input models.ChatMessageInput) (result *models.ChatMessage, err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "CreateChatMessage", observability.AttributeUserID(userID))
	defer observability.FinishSpan(span, &err)

	var m models.ChatMessage
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO chat_messages (user_id, content, is_bot)
		VALUES ($1, $2, $3)
		RETURNING id, content, is_bot, timestamp`,
		userID, input.Content, input.IsBot).Scan(&m.ID, &m.Content, &m.IsBot, &m.Timestamp)
	if err != nil {
		return nil, wrapQueryErr(err, "create chat message")
	}
	return &m, nil
}

func (s *Store) ClearChatMessages(ctx context.Context, userID string) (err error) {
	ctx, span := observability.TraceStoreFunction(ctx, "ClearChatMessages", observability.AttributeUserID(userID))
	defer observability.FinishSpan(span, &err)

	_, err = s.db.ExecContext(ctx, "DELETE FROM chat_messages WHERE user_id = $1", userID)
	if err != nil {
		return wrapQueryErr(err, "clear chat messages")
	}
	return nil
}

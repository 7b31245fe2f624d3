// Package models defines data structures used throughout the support portal.
package models

import "time"

// Role represents a user's portal role.
type Role string

// Portal roles.
const (
	RoleAdmin      Role = "admin"
	RoleSupport    Role = "support"
	RoleUser       Role = "user"
	RoleUnassigned Role = "unassigned"
)

// Valid reports whether the role is one of the known portal roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupport, RoleUser, RoleUnassigned:
		return true
	}
	return false
}

// User represents a portal account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Division     string    `json:"division,omitempty"`
	IsActive     bool      `json:"is_active"`
	PasswordHash string    `json:"-"` // Omit from JSON responses
	CreatedAt    time.Time `json:"created_at"`
}

// UserInput carries the caller-supplied fields for creating a user.
type UserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Role     Role   `json:"role" binding:"required,portalrole"`
	Division string `json:"division"`
	IsActive bool   `json:"is_active"`
	Password string `json:"password,omitempty"`
}

// UserPatch carries a partial update for a user; nil fields are left unchanged.
type UserPatch struct {
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Name     *string `json:"name,omitempty"`
	Role     *Role   `json:"role,omitempty" binding:"omitempty,portalrole"`
	Division *string `json:"division,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Apply merges the patch onto the user.
func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Division != nil {
		u.Division = *p.Division
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
}

// FAQCategory classifies an FAQ entry.
type FAQCategory string

// FAQ categories.
const (
	FAQCategoryPolicies  FAQCategory = "policies"
	FAQCategoryITSystems FAQCategory = "it-systems"
	FAQCategoryHardware  FAQCategory = "hardware"
	FAQCategoryNetwork   FAQCategory = "network"
)

// FAQ represents a frequently asked question.
type FAQ struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Category  FAQCategory `json:"category"`
	Tags      []string    `json:"tags"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// FAQInput carries the caller-supplied fields for creating an FAQ.
type FAQInput struct {
	Title    string      `json:"title" binding:"required"`
	Content  string      `json:"content" binding:"required"`
	Category FAQCategory `json:"category" binding:"required,oneof=policies it-systems hardware network"`
	Tags     []string    `json:"tags"`
}

// FAQPatch carries a partial update for an FAQ.
type FAQPatch struct {
	Title    *string      `json:"title,omitempty"`
	Content  *string      `json:"content,omitempty"`
	Category *FAQCategory `json:"category,omitempty" binding:"omitempty,oneof=policies it-systems hardware network"`
	Tags     *[]string    `json:"tags,omitempty"`
}

// Apply merges the patch onto the FAQ. The caller refreshes UpdatedAt.
func (p FAQPatch) Apply(f *FAQ) {
	if p.Title != nil {
		f.Title = *p.Title
	}
	if p.Content != nil {
		f.Content = *p.Content
	}
	if p.Category != nil {
		f.Category = *p.Category
	}
	if p.Tags != nil {
		f.Tags = NormalizeTags(*p.Tags)
	}
}

// AnnouncementType distinguishes alerts from memos.
type AnnouncementType string

// Announcement types.
const (
	AnnouncementAlert AnnouncementType = "alert"
	AnnouncementMemo  AnnouncementType = "memo"
)

// Announcement represents a company announcement.
type Announcement struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Type           AnnouncementType `json:"type"`
	TargetAudience string           `json:"target_audience"`
	ValidityDate   time.Time        `json:"validity_date"`
	Attachments    []string         `json:"attachments"`
	IsActive       bool             `json:"is_active"`
	CreatedAt      time.Time        `json:"created_at"`
}

// AnnouncementInput carries the caller-supplied fields for creating an announcement.
type AnnouncementInput struct {
	Title          string           `json:"title" binding:"required"`
	Description    string           `json:"description" binding:"required"`
	Type           AnnouncementType `json:"type" binding:"required,oneof=alert memo"`
	TargetAudience string           `json:"target_audience"`
	ValidityDate   time.Time        `json:"validity_date" binding:"required"`
	Attachments    []string         `json:"attachments"`
	IsActive       bool             `json:"is_active"`
}

// AnnouncementPatch carries a partial update for an announcement.
type AnnouncementPatch struct {
	Title          *string           `json:"title,omitempty"`
	Description    *string           `json:"description,omitempty"`
	Type           *AnnouncementType `json:"type,omitempty" binding:"omitempty,oneof=alert memo"`
	TargetAudience *string           `json:"target_audience,omitempty"`
	ValidityDate   *time.Time        `json:"validity_date,omitempty"`
	Attachments    *[]string         `json:"attachments,omitempty"`
	IsActive       *bool             `json:"is_active,omitempty"`
}

// Apply merges the patch onto the announcement.
func (p AnnouncementPatch) Apply(a *Announcement) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.TargetAudience != nil {
		a.TargetAudience = *p.TargetAudience
	}
	if p.ValidityDate != nil {
		a.ValidityDate = *p.ValidityDate
	}
	if p.Attachments != nil {
		a.Attachments = NormalizeTags(*p.Attachments)
	}
	if p.IsActive != nil {
		a.IsActive = *p.IsActive
	}
}

// SystemUpdateType classifies a system update notice.
type SystemUpdateType string

// System update types.
const (
	SystemUpdateInformation SystemUpdateType = "information"
	SystemUpdateAdvisory    SystemUpdateType = "advisory"
	SystemUpdateMaintenance SystemUpdateType = "maintenance"
	SystemUpdateSecurity    SystemUpdateType = "security"
)

// SystemUpdateClassification marks a notice as internal or external.
type SystemUpdateClassification string

// System update classifications.
const (
	ClassificationInternal SystemUpdateClassification = "internal"
	ClassificationExternal SystemUpdateClassification = "external"
)

// Severity indicates the impact level of a system update.
type Severity string

// Severity levels.
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// SystemUpdateStatus tracks the lifecycle state of a system update notice.
type SystemUpdateStatus string

// System update statuses.
const (
	SystemUpdateActive    SystemUpdateStatus = "active"
	SystemUpdateResolved  SystemUpdateStatus = "resolved"
	SystemUpdateScheduled SystemUpdateStatus = "scheduled"
)

// SystemUpdate represents a system maintenance or incident notice.
type SystemUpdate struct {
	ID             string                     `json:"id"`
	Title          string                     `json:"title"`
	Description    string                     `json:"description"`
	Type           SystemUpdateType           `json:"type"`
	Classification SystemUpdateClassification `json:"classification"`
	Severity       Severity                   `json:"severity"`
	Status         SystemUpdateStatus         `json:"status"`
	Date           time.Time                  `json:"date"`
	ImageURL       string                     `json:"image_url"`
	CreatedAt      time.Time                  `json:"created_at"`
}

// SystemUpdateInput carries the caller-supplied fields for creating a system update.
type SystemUpdateInput struct {
	Title          string                     `json:"title" binding:"required"`
	Description    string                     `json:"description" binding:"required"`
	Type           SystemUpdateType           `json:"type" binding:"required,oneof=information advisory maintenance security"`
	Classification SystemUpdateClassification `json:"classification" binding:"required,oneof=internal external"`
	Severity       Severity                   `json:"severity" binding:"required,oneof=high medium low"`
	Status         SystemUpdateStatus         `json:"status" binding:"required,oneof=active resolved scheduled"`
	Date           time.Time                  `json:"date" binding:"required"`
	ImageURL       string                     `json:"image_url"`
}

// SystemUpdatePatch carries a partial update for a system update.
type SystemUpdatePatch struct {
	Title          *string                     `json:"title,omitempty"`
	Description    *string                     `json:"description,omitempty"`
	Type           *SystemUpdateType           `json:"type,omitempty" binding:"omitempty,oneof=information advisory maintenance security"`
	Classification *SystemUpdateClassification `json:"classification,omitempty" binding:"omitempty,oneof=internal external"`
	Severity       *Severity                   `json:"severity,omitempty" binding:"omitempty,oneof=high medium low"`
	Status         *SystemUpdateStatus         `json:"status,omitempty" binding:"omitempty,oneof=active resolved scheduled"`
	Date           *time.Time                  `json:"date,omitempty"`
	ImageURL       *string                     `json:"image_url,omitempty"`
}

// Apply merges the patch onto the system update.
func (p SystemUpdatePatch) Apply(u *SystemUpdate) {
	if p.Title != nil {
		u.Title = *p.Title
	}
	if p.Description != nil {
		u.Description = *p.Description
	}
	if p.Type != nil {
		u.Type = *p.Type
	}
	if p.Classification != nil {
		u.Classification = *p.Classification
	}
	if p.Severity != nil {
		u.Severity = *p.Severity
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	if p.Date != nil {
		u.Date = *p.Date
	}
	if p.ImageURL != nil {
		u.ImageURL = *p.ImageURL
	}
}

// OtherDocument represents a shared reference document.
type OtherDocument struct {
	ID           string    `json:"id"`
	DocumentName string    `json:"document_name"`
	Description  string    `json:"description"`
	FileURL      string    `json:"file_url"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// OtherDocumentInput carries the caller-supplied fields for creating a document.
type OtherDocumentInput struct {
	DocumentName string `json:"document_name" binding:"required"`
	Description  string `json:"description"`
	FileURL      string `json:"file_url" binding:"required,url"`
	CreatedBy    string `json:"created_by"`
}

// OtherDocumentPatch carries a partial update for a document.
type OtherDocumentPatch struct {
	DocumentName *string `json:"document_name,omitempty"`
	Description  *string `json:"description,omitempty"`
	FileURL      *string `json:"file_url,omitempty" binding:"omitempty,url"`
	CreatedBy    *string `json:"created_by,omitempty"`
}

// Apply merges the patch onto the document.
func (p OtherDocumentPatch) Apply(d *OtherDocument) {
	if p.DocumentName != nil {
		d.DocumentName = *p.DocumentName
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.FileURL != nil {
		d.FileURL = *p.FileURL
	}
	if p.CreatedBy != nil {
		d.CreatedBy = *p.CreatedBy
	}
}

// TrainingMaterialType distinguishes awareness campaigns from training videos.
type TrainingMaterialType string

// Training material types.
const (
	TrainingAwarenessCampaign TrainingMaterialType = "awareness-campaign"
	TrainingVideo             TrainingMaterialType = "training-video"
)

// TrainingMaterial represents an awareness campaign or a training video.
// Campaign entries use Title/ImageURL; video entries use the Video* fields.
type TrainingMaterial struct {
	ID               string               `json:"id"`
	Type             TrainingMaterialType `json:"type"`
	Title            string               `json:"title,omitempty"`
	ImageURL         string               `json:"image_url,omitempty"`
	Category         string               `json:"category,omitempty"`
	Level            string               `json:"level,omitempty"`
	VideoTitle       string               `json:"video_title,omitempty"`
	VideoDescription string               `json:"video_description,omitempty"`
	VideoURL         string               `json:"video_url,omitempty"`
	ThumbnailURL     string               `json:"thumbnail_url,omitempty"`
	CreatedBy        string               `json:"created_by"`
	IsActive         bool                 `json:"is_active"`
	CreatedAt        time.Time            `json:"created_at"`
}

// TrainingMaterialInput carries the caller-supplied fields for creating a training material.
type TrainingMaterialInput struct {
	Type             TrainingMaterialType `json:"type" binding:"required,oneof=awareness-campaign training-video"`
	Title            string               `json:"title"`
	ImageURL         string               `json:"image_url"`
	Category         string               `json:"category"`
	Level            string               `json:"level" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	VideoTitle       string               `json:"video_title"`
	VideoDescription string               `json:"video_description"`
	VideoURL         string               `json:"video_url"`
	ThumbnailURL     string               `json:"thumbnail_url"`
	CreatedBy        string               `json:"created_by"`
	IsActive         bool                 `json:"is_active"`
}

// TrainingMaterialPatch carries a partial update for a training material.
type TrainingMaterialPatch struct {
	Type             *TrainingMaterialType `json:"type,omitempty" binding:"omitempty,oneof=awareness-campaign training-video"`
	Title            *string               `json:"title,omitempty"`
	ImageURL         *string               `json:"image_url,omitempty"`
	Category         *string               `json:"category,omitempty"`
	Level            *string               `json:"level,omitempty" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	VideoTitle       *string               `json:"video_title,omitempty"`
	VideoDescription *string               `json:"video_description,omitempty"`
	VideoURL         *string               `json:"video_url,omitempty"`
	ThumbnailURL     *string               `json:"thumbnail_url,omitempty"`
	CreatedBy        *string               `json:"created_by,omitempty"`
	IsActive         *bool                 `json:"is_active,omitempty"`
}

// Apply merges the patch onto the training material.
func (p TrainingMaterialPatch) Apply(m *TrainingMaterial) {
	if p.Type != nil {
		m.Type = *p.Type
	}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.ImageURL != nil {
		m.ImageURL = *p.ImageURL
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.Level != nil {
		m.Level = *p.Level
	}
	if p.VideoTitle != nil {
		m.VideoTitle = *p.VideoTitle
	}
	if p.VideoDescription != nil {
		m.VideoDescription = *p.VideoDescription
	}
	if p.VideoURL != nil {
		m.VideoURL = *p.VideoURL
	}
	if p.ThumbnailURL != nil {
		m.ThumbnailURL = *p.ThumbnailURL
	}
	if p.CreatedBy != nil {
		m.CreatedBy = *p.CreatedBy
	}
	if p.IsActive != nil {
		m.IsActive = *p.IsActive
	}
}

// TicketCategory classifies a support ticket.
type TicketCategory string

// Ticket categories.
const (
	TicketITSupport  TicketCategory = "it-support"
	TicketHR         TicketCategory = "hr"
	TicketFacilities TicketCategory = "facilities"
	TicketOther      TicketCategory = "other"
)

// TicketPriority indicates how urgent a ticket is.
type TicketPriority string

// Ticket priorities.
const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

// TicketStatus tracks a ticket through its lifecycle.
type TicketStatus string

// Ticket statuses.
const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in-progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

// Ticket represents a support request.
type Ticket struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Category    TicketCategory `json:"category"`
	Priority    TicketPriority `json:"priority"`
	Description string         `json:"description"`
	Attachments []string       `json:"attachments"`
	Status      TicketStatus   `json:"status"`
	CreatedBy   string         `json:"created_by"`
	AssignedTo  string         `json:"assigned_to,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TicketInput carries the caller-supplied fields for creating a ticket.
// Status is not accepted from the caller; new tickets always open as "open".
type TicketInput struct {
	Title       string         `json:"title" binding:"required"`
	Category    TicketCategory `json:"category" binding:"required,oneof=it-support hr facilities other"`
	Priority    TicketPriority `json:"priority" binding:"required,oneof=low medium high urgent"`
	Description string         `json:"description" binding:"required"`
	Attachments []string       `json:"attachments"`
	CreatedBy   string         `json:"-"`
}

// TicketPatch carries a partial update for a ticket (status / assignment).
type TicketPatch struct {
	Status     *TicketStatus   `json:"status,omitempty" binding:"omitempty,oneof=open in-progress resolved closed"`
	Priority   *TicketPriority `json:"priority,omitempty" binding:"omitempty,oneof=low medium high urgent"`
	AssignedTo *string         `json:"assigned_to,omitempty"`
}

// Apply merges the patch onto the ticket. The caller refreshes UpdatedAt.
func (p TicketPatch) Apply(t *Ticket) {
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.AssignedTo != nil {
		t.AssignedTo = *p.AssignedTo
	}
}

// ChatMessage represents one message in a user's support chat history.
// Collections are partitioned per owning user; there is no cross-user access.
type ChatMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsBot     bool      `json:"is_bot"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatMessageInput carries the caller-supplied fields for a chat message.
type ChatMessageInput struct {
	Content string `json:"content" binding:"required"`
	IsBot   bool   `json:"is_bot"`
}

// NormalizeTags returns a non-nil copy of the slice. Ordered string
// collections (tags, attachments) are always stored and serialized as empty
// sequences, never null.
func NormalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

// Package authz holds the static role policy for portal operations. It is a
// pure lookup with no I/O; services consult it before touching storage.
package authz

import (
	"github.com/nami21/support-portal/internal/models"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

// Action is an operation class on an entity kind.
type Action string

// Actions.
const (
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// EntityKind names a portal entity class for policy lookup.
type EntityKind string

// Entity kinds.
const (
	KindFAQ              EntityKind = "faq"
	KindAnnouncement     EntityKind = "announcement"
	KindSystemUpdate     EntityKind = "system_update"
	KindOtherDocument    EntityKind = "other_document"
	KindTrainingMaterial EntityKind = "training_material"
	KindTicket           EntityKind = "ticket"
	KindChatMessage      EntityKind = "chat_message"
	KindUser             EntityKind = "user"
)

// contentKinds are the published-content entities that share one policy:
// anyone authenticated may list, only admin and support staff may mutate.
var contentKinds = map[EntityKind]bool{
	KindFAQ:              true,
	KindAnnouncement:     true,
	KindSystemUpdate:     true,
	KindOtherDocument:    true,
	KindTrainingMaterial: true,
}

// Authorize reports whether role may perform action on the given entity
// kind. A nil return means permitted. Unknown roles and the unassigned role
// are permitted nothing.
func Authorize(role models.Role, action Action, kind EntityKind) error {
	if !role.Valid() || role == models.RoleUnassigned {
		return contextutils.ErrForbidden
	}

	if contentKinds[kind] {
		if action == ActionList {
			return nil
		}
		if role == models.RoleAdmin || role == models.RoleSupport {
			return nil
		}
		return contextutils.ErrForbidden
	}

	switch kind {
	case KindTicket:
		switch action {
		case ActionList, ActionCreate:
			return nil
		case ActionUpdate, ActionDelete:
			// Status and assignment changes are staff operations.
			if role == models.RoleAdmin || role == models.RoleSupport {
				return nil
			}
			return contextutils.ErrForbidden
		}
	case KindChatMessage:
		// Chat collections are owner-scoped; the service restricts access to
		// the acting user's own history, so any functional role passes here.
		return nil
	case KindUser:
		if role == models.RoleAdmin {
			return nil
		}
		return contextutils.ErrForbidden
	}

	return contextutils.ErrForbidden
}

// CanManageContent reports whether the role may mutate published content
// (FAQs, announcements, system updates, documents, training materials).
func CanManageContent(role models.Role) bool {
	return Authorize(role, ActionCreate, KindFAQ) == nil
}

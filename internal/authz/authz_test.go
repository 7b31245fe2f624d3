package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nami21/support-portal/internal/models"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

func TestAuthorize_ContentKinds(t *testing.T) {
	kinds := []EntityKind{KindFAQ, KindAnnouncement, KindSystemUpdate, KindOtherDocument, KindTrainingMaterial}

	for _, kind := range kinds {
		// Any functional role may list.
		assert.NoError(t, Authorize(models.RoleAdmin, ActionList, kind))
		assert.NoError(t, Authorize(models.RoleSupport, ActionList, kind))
		assert.NoError(t, Authorize(models.RoleUser, ActionList, kind))

		// Only staff may mutate.
		for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
			assert.NoError(t, Authorize(models.RoleAdmin, action, kind))
			assert.NoError(t, Authorize(models.RoleSupport, action, kind))
			assert.Error(t, Authorize(models.RoleUser, action, kind), "user should not %s %s", action, kind)
		}
	}
}

func TestAuthorize_Tickets(t *testing.T) {
	tests := []struct {
		name    string
		role    models.Role
		action  Action
		wantErr bool
	}{
		{"user can create", models.RoleUser, ActionCreate, false},
		{"user can list", models.RoleUser, ActionList, false},
		{"user cannot update", models.RoleUser, ActionUpdate, true},
		{"support can update", models.RoleSupport, ActionUpdate, false},
		{"admin can update", models.RoleAdmin, ActionUpdate, false},
		{"user cannot delete", models.RoleUser, ActionDelete, true},
		{"admin can delete", models.RoleAdmin, ActionDelete, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.role, tt.action, KindTicket)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthorize_Users(t *testing.T) {
	for _, action := range []Action{ActionList, ActionCreate, ActionUpdate, ActionDelete} {
		assert.NoError(t, Authorize(models.RoleAdmin, action, KindUser))
		assert.Error(t, Authorize(models.RoleSupport, action, KindUser))
		assert.Error(t, Authorize(models.RoleUser, action, KindUser))
	}
}

func TestAuthorize_UnassignedDeniedEverything(t *testing.T) {
	kinds := []EntityKind{
		KindFAQ, KindAnnouncement, KindSystemUpdate, KindOtherDocument,
		KindTrainingMaterial, KindTicket, KindChatMessage, KindUser,
	}
	for _, kind := range kinds {
		for _, action := range []Action{ActionList, ActionCreate, ActionUpdate, ActionDelete} {
			assert.Error(t, Authorize(models.RoleUnassigned, action, kind), "unassigned should not %s %s", action, kind)
		}
	}
}

func TestAuthorize_UnknownRoleDenied(t *testing.T) {
	assert.Error(t, Authorize(models.Role("superuser"), ActionList, KindFAQ))
	assert.Error(t, Authorize(models.Role(""), ActionCreate, KindTicket))
}

func TestAuthorize_ForbiddenErrorCode(t *testing.T) {
	err := Authorize(models.RoleUser, ActionCreate, KindFAQ)
	assert.True(t, contextutils.IsError(err, contextutils.ErrForbidden))
}

func TestCanManageContent(t *testing.T) {
	assert.True(t, CanManageContent(models.RoleAdmin))
	assert.True(t, CanManageContent(models.RoleSupport))
	assert.False(t, CanManageContent(models.RoleUser))
	assert.False(t, CanManageContent(models.RoleUnassigned))
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleSupport, RoleUser, RoleUnassigned} {
		assert.True(t, r.Valid(), "role %q", r)
	}
	assert.False(t, Role("superadmin").Valid())
	assert.False(t, Role("").Valid())
}

func TestUserPatchApply(t *testing.T) {
	u := User{
		Email:    "old@company.com",
		Name:     "Old Name",
		Role:     RoleUser,
		Division: "IT",
		IsActive: true,
	}

	name := "New Name"
	inactive := false
	UserPatch{Name: &name, IsActive: &inactive}.Apply(&u)

	assert.Equal(t, "New Name", u.Name)
	assert.False(t, u.IsActive)
	// Fields the patch left nil keep their values.
	assert.Equal(t, "old@company.com", u.Email)
	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, "IT", u.Division)
}

func TestFAQPatchApplyNormalizesTags(t *testing.T) {
	f := FAQ{Title: "VPN setup", Tags: []string{"vpn"}}

	var empty []string
	FAQPatch{Tags: &empty}.Apply(&f)

	assert.NotNil(t, f.Tags, "a nil tag slice must come back as an empty one")
	assert.Empty(t, f.Tags)
	assert.Equal(t, "VPN setup", f.Title)
}

func TestTicketPatchApply(t *testing.T) {
	tk := Ticket{
		Title:    "Laptop broken",
		Status:   TicketOpen,
		Priority: PriorityLow,
	}

	status := TicketInProgress
	assignee := "support-1"
	TicketPatch{Status: &status, AssignedTo: &assignee}.Apply(&tk)

	assert.Equal(t, TicketInProgress, tk.Status)
	assert.Equal(t, "support-1", tk.AssignedTo)
	assert.Equal(t, PriorityLow, tk.Priority)
	assert.Equal(t, "Laptop broken", tk.Title)
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{}, NormalizeTags(nil))

	src := []string{"a", "b"}
	out := NormalizeTags(src)
	assert.Equal(t, src, out)

	// The copy must not alias the source.
	out[0] = "changed"
	assert.Equal(t, "a", src[0])
}

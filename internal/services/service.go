// Package services implements the portal's business logic: role gating,
// identity scoping, and orchestration between handlers and storage. Services
// never branch on which storage backend is active.
package services

import (
	"context"

	"github.com/nami21/support-portal/internal/models"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

// actingRole returns the authenticated caller's role from the request
// context. Missing identity yields an invalid role, which the policy denies.
func actingRole(ctx context.Context) models.Role {
	return models.Role(contextutils.GetUserRoleFromContext(ctx))
}

// actingUserID returns the authenticated caller's id from the request
// context, or "" when unauthenticated.
func actingUserID(ctx context.Context) string {
	return contextutils.GetUserIDFromContext(ctx)
}

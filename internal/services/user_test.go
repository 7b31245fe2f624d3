package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nami21/support-portal/internal/config"
	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/services"
	"github.com/nami21/support-portal/internal/store"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

func newUserService(t *testing.T, cfg *config.Config) (*services.UserService, store.Store) {
	t.Helper()

	if cfg == nil {
		cfg = &config.Config{}
	}
	st := newTestStore(t)
	return services.NewUserService(st, testLogger(), cfg), st
}

func TestUserService_AuthenticateWithHash(t *testing.T) {
	svc, st := newUserService(t, nil)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = st.CreateUser(ctx, models.UserInput{
		Email:    "casey@example.com",
		Name:     "Casey",
		Role:     models.RoleUser,
		IsActive: true,
	}, string(hash))
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "Casey@Example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "casey@example.com", user.Email)

	_, err = svc.Authenticate(ctx, "casey@example.com", "wrong")
	assert.True(t, contextutils.IsError(err, contextutils.ErrInvalidCredentials))

	_, err = svc.Authenticate(ctx, "nobody@example.com", "s3cret")
	assert.True(t, contextutils.IsError(err, contextutils.ErrInvalidCredentials),
		"unknown accounts and bad passwords are indistinguishable")
}

func TestUserService_AuthenticateDemoPassword(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.DemoPassword = "demo123"
	svc, st := newUserService(t, cfg)
	ctx := context.Background()

	_, err := st.CreateUser(ctx, models.UserInput{
		Email:    "demo@company.com",
		Name:     "Demo User",
		Role:     models.RoleUser,
		IsActive: true,
	}, "")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "demo@company.com", "demo123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)

	_, err = svc.Authenticate(ctx, "demo@company.com", "not-the-demo-password")
	assert.True(t, contextutils.IsError(err, contextutils.ErrInvalidCredentials))
}

func TestUserService_AuthenticateInactiveAccount(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.DemoPassword = "demo123"
	svc, st := newUserService(t, cfg)
	ctx := context.Background()

	_, err := st.CreateUser(ctx, models.UserInput{
		Email:    "gone@company.com",
		Name:     "Former Employee",
		Role:     models.RoleUser,
		IsActive: false,
	}, "")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "gone@company.com", "demo123")
	assert.True(t, contextutils.IsError(err, contextutils.ErrAccountInactive))
}

func TestUserService_EnsureAdminUser(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.AdminEmail = "root@company.com"
	cfg.Server.AdminPassword = "changeme"
	svc, _ := newUserService(t, cfg)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdminUser(ctx))

	admin, err := svc.Authenticate(ctx, "root@company.com", "changeme")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	// Second call must not fail or duplicate the account.
	require.NoError(t, svc.EnsureAdminUser(ctx))

	users, err := svc.List(ctxAs(admin.ID, models.RoleAdmin))
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserService_AdminOnlyAccess(t *testing.T) {
	svc, _ := newUserService(t, nil)

	input := models.UserInput{
		Email:    "new@company.com",
		Name:     "New Hire",
		Role:     models.RoleUser,
		IsActive: true,
	}

	for _, role := range []models.Role{models.RoleSupport, models.RoleUser, models.RoleUnassigned} {
		_, err := svc.Create(ctxAs("u1", role), input)
		assert.True(t, contextutils.IsError(err, contextutils.ErrForbidden), "role %s must not manage users", role)

		_, err = svc.List(ctxAs("u1", role))
		assert.True(t, contextutils.IsError(err, contextutils.ErrForbidden))
	}

	created, err := svc.Create(ctxAs("admin-1", models.RoleAdmin), input)
	require.NoError(t, err)

	_, err = svc.Create(ctxAs("admin-1", models.RoleAdmin), input)
	assert.True(t, contextutils.IsError(err, contextutils.ErrRecordExists))

	support := models.RoleSupport
	updated, err := svc.Update(ctxAs("admin-1", models.RoleAdmin), created.ID, models.UserPatch{Role: &support})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSupport, updated.Role)

	badRole := models.Role("superuser")
	_, err = svc.Update(ctxAs("admin-1", models.RoleAdmin), created.ID, models.UserPatch{Role: &badRole})
	assert.True(t, contextutils.IsError(err, contextutils.ErrValidationFailed))
}

func TestUserService_DeleteGuardsOwnAccount(t *testing.T) {
	svc, st := newUserService(t, nil)
	ctx := context.Background()

	admin, err := st.CreateUser(ctx, models.UserInput{
		Email:    "admin@company.com",
		Name:     "Admin",
		Role:     models.RoleAdmin,
		IsActive: true,
	}, "")
	require.NoError(t, err)

	other, err := st.CreateUser(ctx, models.UserInput{
		Email:    "other@company.com",
		Name:     "Other",
		Role:     models.RoleUser,
		IsActive: true,
	}, "")
	require.NoError(t, err)

	_, err = svc.Delete(ctxAs(admin.ID, models.RoleAdmin), admin.ID)
	assert.True(t, contextutils.IsError(err, contextutils.ErrConflict))

	deleted, err := svc.Delete(ctxAs(admin.ID, models.RoleAdmin), other.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

package services

import (
	"context"
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nami21/support-portal/internal/authz"
	"github.com/nami21/support-portal/internal/config"
	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/store"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

// UserService manages portal accounts and credential checks.
type UserService struct {
	store  store.Store
	logger *observability.Logger
	cfg    *config.Config
}

// NewUserService creates a new UserService.
func NewUserService(st store.Store, logger *observability.Logger, cfg *config.Config) *UserService {
	if st == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if cfg == nil {
		panic("config cannot be nil")
	}
	return &UserService{store: st, logger: logger, cfg: cfg}
}

// Authenticate verifies credentials and returns the matching account.
// Accounts with a stored hash are checked against it; demo accounts without
// one accept the configured shared demo password. Inactive accounts are
// rejected regardless of credentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (result *models.User, err error) {
	ctx, span := observability.TraceAuthFunction(ctx, "UserService.Authenticate")
	defer observability.FinishSpan(span, &err)

	user, err := s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if contextutils.IsError(err, contextutils.ErrRecordNotFound) {
			return nil, contextutils.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, contextutils.ErrAccountInactive
	}

	if user.PasswordHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return nil, contextutils.ErrInvalidCredentials
		}
		return user, nil
	}

	demo := s.cfg.Server.DemoPassword
	if demo == "" || subtle.ConstantTimeCompare([]byte(password), []byte(demo)) != 1 {
		return nil, contextutils.ErrInvalidCredentials
	}
	return user, nil
}

// EnsureAdminUser creates the bootstrap admin account from configuration if
// it does not already exist. Called at startup; a no-op when no admin email
// is configured.
func (s *UserService) EnsureAdminUser(ctx context.Context) (err error) {
	ctx, span := observability.TraceAuthFunction(ctx, "UserService.EnsureAdminUser")
	defer observability.FinishSpan(span, &err)

	email := strings.ToLower(strings.TrimSpace(s.cfg.Server.AdminEmail))
	if email == "" {
		return nil
	}

	_, err = s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !contextutils.IsError(err, contextutils.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Server.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return contextutils.WrapError(err, "failed to hash admin password")
	}

	created, err := s.store.CreateUser(ctx, models.UserInput{
		Email:    email,
		Name:     "Administrator",
		Role:     models.RoleAdmin,
		IsActive: true,
	}, string(hash))
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "Bootstrap admin account created", map[string]interface{}{"user_id": created.ID})
	return nil
}

// Profile returns the acting user's own account. Any authenticated caller
// may read their own record; there is no role gate here.
func (s *UserService) Profile(ctx context.Context) (result *models.User, err error) {
	ctx, span := observability.TraceUserFunction(ctx, "UserService.Profile")
	defer observability.FinishSpan(span, &err)

	userID := actingUserID(ctx)
	if userID == "" {
		return nil, contextutils.ErrUnauthorized
	}
	return s.store.GetUser(ctx, userID)
}

// List returns all accounts. Admin only.
func (s *UserService) List(ctx context.Context) (result []models.User, err error) {
	ctx, span := observability.TraceUserFunction(ctx, "UserService.List")
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionList, authz.KindUser); err != nil {
		return nil, err
	}
	return s.store.ListUsers(ctx)
}

// Get returns a single account by id. Admin only.
func (s *UserService) Get(ctx context.Context, id string) (result *models.User, err error) {
	ctx, span := observability.TraceUserFunction(ctx, "UserService.Get", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionList, authz.KindUser); err != nil {
		return nil, err
	}
	return s.store.GetUser(ctx, id)
}

// Create provisions a new account. Admin only. A supplied password is
// hashed; without one the account falls back to the shared demo password in
// demo mode.
func (s *UserService) Create(ctx context.Context, input models.UserInput) (result *models.User, err error) {
	ctx, span := observability.TraceUserFunction(ctx, "UserService.Create")
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionCreate, authz.KindUser); err != nil {
		return nil, err
	}
	if !input.Role.Valid() {
		return nil, contextutils.WrapErrorf(contextutils.ErrValidationFailed, "unknown role %q", input.Role)
	}

	var hash string
	if input.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, contextutils.WrapError(err, "failed to hash password")
		}
		hash = string(h)
	}
	input.Password = ""

	created, err := s.store.CreateUser(ctx, input, hash)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "User created", map[string]interface{}{
		"user_id": created.ID,
		"role":    string(created.Role),
	})
	return created, nil
}

// Update applies a partial update to an account. Admin only.
func (s *UserService) Update(ctx context.Context, id string, patch models.UserPatch) (result *models.User, err error) {
	ctx, span := observability.TraceUserFunction(ctx, "UserService.Update", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionUpdate, authz.KindUser); err != nil {
		return nil, err
	}
	if patch.Role != nil && !patch.Role.Valid() {
		return nil, contextutils.WrapErrorf(contextutils.ErrValidationFailed, "unknown role %q", *patch.Role)
	}
	return s.store.UpdateUser(ctx, id, patch)
}

// Delete removes an account, reporting whether one existed. Admin only. The
// acting admin cannot delete their own account.
func (s *UserService) Delete(ctx context.Context, id string) (result bool, err error) {
	ctx, span := observability.TraceUserFunction(ctx, "UserService.Delete", observability.AttributeEntityID(id))
	defer observability.FinishSpan(span, &err)

	if err = authz.Authorize(actingRole(ctx), authz.ActionDelete, authz.KindUser); err != nil {
		return false, err
	}
	if id == actingUserID(ctx) {
		return false, contextutils.WrapError(contextutils.ErrConflict, "cannot delete the account you are signed in with")
	}
	return s.store.DeleteUser(ctx, id)
}

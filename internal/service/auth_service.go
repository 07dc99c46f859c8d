package service

import (
	"context"
	"errors"
	"time"

	"github.com/travault/crm-service/internal/auth"
	"github.com/travault/crm-service/internal/config"
	"github.com/travault/crm-service/internal/domain"
	"github.com/travault/crm-service/internal/repository"
	"github.com/travault/crm-service/pkg/util"
)

// AuthService coordinates login and account creation.
type AuthService struct {
	store      repository.Store
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, store repository.Store) *AuthService {
	return &AuthService{
		store:      store,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login authenticates an agency user by username and password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.CustomUser, string, time.Time, error) {
	user, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, util.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, util.MapError(err)
	}
	if !user.Active {
		return nil, "", time.Time{}, util.NewUnauthorized("account disabled")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, util.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.AgencyID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, util.MapError(err)
	}
	return user, token, exp, nil
}

// CreateUser registers a new agency member. Admin only.
func (s *AuthService) CreateUser(ctx context.Context, actor *domain.CustomUser, input UserCreateInput) (*domain.CustomUser, error) {
	if !actor.IsAdmin() {
		return nil, util.NewPermissionDenied("only admin users can create accounts")
	}
	if !domain.Contains(domain.RoleChoices, string(input.Role)) {
		return nil, util.NewValidationError("invalid role", map[string]any{"value": string(input.Role)})
	}
	if _, err := s.store.Users().GetByUsername(ctx, input.Username); err == nil {
		return nil, util.NewConflict("username already taken", map[string]any{"username": input.Username})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, util.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, util.MapError(err)
	}
	user := &domain.CustomUser{
		AgencyID:     actor.AgencyID,
		Username:     input.Username,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, util.MapError(err)
	}
	return user, nil
}

// UserCreateInput describes a new account.
type UserCreateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Role      domain.UserRole
	Password  string
}

// ListAgencyUsers returns the actor's agency roster, for owner and
// assignee pickers.
func (s *AuthService) ListAgencyUsers(ctx context.Context, actor *domain.CustomUser) ([]domain.CustomUser, error) {
	users, err := s.store.Users().ListByAgency(ctx, actor.AgencyID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return users, nil
}

// TokenManager exposes the underlying token manager for middleware
// usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

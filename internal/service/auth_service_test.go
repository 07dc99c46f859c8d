package service_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/travault/crm-service/internal/auth"
	"github.com/travault/crm-service/internal/config"
	"github.com/travault/crm-service/internal/domain"
	"github.com/travault/crm-service/internal/service"
)

func newAuthEnv(t *testing.T) (*env, *service.AuthService) {
	t.Helper()
	e := newEnv(t)
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}}
	return e, service.NewAuthService(cfg, e.store)
}

func TestLoginHappyPath(t *testing.T) {
	e, svc := newAuthEnv(t)
	ctx := context.Background()

	hash, err := auth.HashPassword("correct horse", 4)
	gt.NoError(t, err).Required()
	e.agent.PasswordHash = hash
	gt.NoError(t, e.store.Users().Create(ctx, e.agent)).Required()

	user, token, _, err := svc.Login(ctx, "agent", "correct horse")
	gt.NoError(t, err).Required()
	gt.Value(t, user.ID).Equal(e.agent.ID)
	gt.Value(t, token).NotEqual("")

	claims, err := svc.TokenManager().ParseToken(token)
	gt.NoError(t, err).Required()
	gt.Value(t, claims.AgencyID).Equal(e.agent.AgencyID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	e, svc := newAuthEnv(t)
	ctx := context.Background()

	hash, err := auth.HashPassword("correct horse", 4)
	gt.NoError(t, err).Required()
	e.agent.PasswordHash = hash
	gt.NoError(t, e.store.Users().Create(ctx, e.agent)).Required()

	_, _, _, err = svc.Login(ctx, "agent", "wrong password")
	gt.Value(t, errCode(err)).Equal("unauthorized")

	_, _, _, err = svc.Login(ctx, "nobody", "whatever")
	gt.Value(t, errCode(err)).Equal("unauthorized")
}

func TestCreateUserAdminOnly(t *testing.T) {
	e, svc := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, e.agent, service.UserCreateInput{
		Username: "newbie",
		Email:    "newbie@example.com",
		Role:     domain.RoleAgent,
		Password: "long enough pw",
	})
	gt.Value(t, errCode(err)).Equal("permission_denied")

	user, err := svc.CreateUser(ctx, e.admin, service.UserCreateInput{
		Username:  "newbie",
		Email:     "newbie@example.com",
		FirstName: "New",
		LastName:  "Bie",
		Role:      domain.RoleAgent,
		Password:  "long enough pw",
	})
	gt.NoError(t, err).Required()
	gt.Value(t, user.AgencyID).Equal(e.admin.AgencyID)
	gt.Bool(t, user.Active).True()

	_, err = svc.CreateUser(ctx, e.admin, service.UserCreateInput{
		Username: "newbie",
		Email:    "dup@example.com",
		Role:     domain.RoleAgent,
		Password: "long enough pw",
	})
	gt.Value(t, errCode(err)).Equal("conflict")
}

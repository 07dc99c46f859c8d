package auth_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/travault/crm-service/internal/auth"
	"github.com/travault/crm-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.GenerateToken("u1", "a1", domain.RoleAgent)
	gt.NoError(t, err).Required()
	gt.Bool(t, expiresAt.IsZero()).False()

	claims, err := tm.ParseToken(token)
	gt.NoError(t, err).Required()
	gt.Value(t, claims.UserID).Equal("u1")
	gt.Value(t, claims.AgencyID).Equal("a1")
	gt.Value(t, claims.Role).Equal(domain.RoleAgent)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 60)
	token, _, err := tm.GenerateToken("u1", "a1", domain.RoleAdmin)
	gt.NoError(t, err).Required()

	other := auth.NewTokenManager("different-secret", 60)
	_, err = other.ParseToken(token)
	gt.Error(t, err)
}

func TestPasswordHashAndCompare(t *testing.T) {
	hash, err := auth.HashPassword("hunter22", 4)
	gt.NoError(t, err).Required()
	gt.Value(t, hash).NotEqual("hunter22")

	gt.NoError(t, auth.ComparePassword(hash, "hunter22"))
	gt.Error(t, auth.ComparePassword(hash, "wrong"))
}

package jwtauth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestAuth() *Auth {
	return New(Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	})
}

func TestGeneratePairAndValidate(t *testing.T) {
	a := newTestAuth()
	userID := uuid.New()

	access, refresh, err := a.GeneratePair(userID, "asha@example.com", "Asha", "Employee")
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := a.ValidateAccess(access)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, "Employee", claims.Role)

	rc, err := a.ValidateRefresh(refresh)
	assert.NoError(t, err)
	assert.Equal(t, userID, rc.UserID)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	a := newTestAuth()

	access, refresh, err := a.GeneratePair(uuid.New(), "asha@example.com", "Asha", "Employee")
	assert.NoError(t, err)

	_, err = a.ValidateAccess(refresh)
	assert.Error(t, err)

	_, err = a.ValidateRefresh(access)
	assert.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	a := newTestAuth()
	other := New(Config{
		AccessSecret:  "different-secret",
		RefreshSecret: "different-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    time.Hour,
	})

	access, _, err := a.GeneratePair(uuid.New(), "asha@example.com", "Asha", "Employee")
	assert.NoError(t, err)

	_, err = other.ValidateAccess(access)
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	a := New(Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     -time.Minute,
		RefreshTTL:    -time.Minute,
	})

	access, refresh, err := a.GeneratePair(uuid.New(), "asha@example.com", "Asha", "Employee")
	assert.NoError(t, err)

	_, err = a.ValidateAccess(access)
	assert.Error(t, err)

	_, err = a.ValidateRefresh(refresh)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	a := newTestAuth()

	_, err := a.ValidateAccess("not-a-jwt")
	assert.Error(t, err)
}

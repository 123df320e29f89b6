package auth

import (
	"testing"
	"time"

	"campuscare-admin/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityChecker(t *testing.T) {
	checker, err := NewIdentityChecker("admin@campuscare.com", "admin123", true)
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		want     models.AdminIdentity
		wantErr  bool
	}{
		{"configured admin", "admin@campuscare.com", "admin123", models.AdminIdentity{Name: "Admin User", Email: "admin@campuscare.com", Role: "admin"}, false},
		{"configured admin wrong password", "admin@campuscare.com", "letmein99", models.AdminIdentity{}, true},
		{"demo login", "warden@sharda.ac.in", "secret1", models.AdminIdentity{Name: "warden", Email: "warden@sharda.ac.in", Role: "admin"}, false},
		{"demo password too short", "warden@sharda.ac.in", "abc", models.AdminIdentity{}, true},
		{"missing email", "", "secret1", models.AdminIdentity{}, true},
		{"missing password", "warden@sharda.ac.in", "", models.AdminIdentity{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.Check(tt.email, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdentityChecker_DemoLoginDisabled(t *testing.T) {
	checker, err := NewIdentityChecker("admin@campuscare.com", "admin123", false)
	require.NoError(t, err)

	_, err = checker.Check("warden@sharda.ac.in", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = checker.Check("Admin@CampusCare.com", "admin123")
	assert.NoError(t, err)
}

func TestTokens_RoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	admin := models.AdminIdentity{Name: "Admin User", Email: "admin@campuscare.com", Role: models.RoleAdmin}

	signed, err := tokens.Issue(admin)
	require.NoError(t, err)

	got, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, admin, got)
}

func TestTokens_Rejects(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	admin := models.AdminIdentity{Name: "a", Email: "a@b.c", Role: models.RoleAdmin}

	other, err := NewTokens("other-secret", time.Hour).Issue(admin)
	require.NoError(t, err)
	_, err = tokens.Parse(other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokens("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Issue(admin)
	require.NoError(t, err)
	_, err = tokens.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"email": "a@b.c", "role": "admin"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tokens.Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package auth

import (
	"errors"
	"strings"

	"campuscare-admin/internal/models"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const minDemoPasswordLength = 6

// IdentityChecker verifies admin sign-ins. The configured admin password is
// only kept as a bcrypt hash.
type IdentityChecker struct {
	adminEmail   string
	passwordHash []byte
	demoLogin    bool
}

// NewIdentityChecker hashes the configured admin password. With demoLogin any
// e-mail with a password of at least six characters is accepted as well.
func NewIdentityChecker(adminEmail, adminPassword string, demoLogin bool) (*IdentityChecker, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &IdentityChecker{
		adminEmail:   strings.ToLower(strings.TrimSpace(adminEmail)),
		passwordHash: hash,
		demoLogin:    demoLogin,
	}, nil
}

func (c *IdentityChecker) Check(email, password string) (models.AdminIdentity, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.AdminIdentity{}, ErrInvalidCredentials
	}

	if strings.EqualFold(email, c.adminEmail) {
		if bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)) == nil {
			return models.AdminIdentity{Name: "Admin User", Email: email, Role: models.RoleAdmin}, nil
		}
		return models.AdminIdentity{}, ErrInvalidCredentials
	}

	if c.demoLogin && len(password) >= minDemoPasswordLength {
		name, _, _ := strings.Cut(email, "@")
		return models.AdminIdentity{Name: name, Email: email, Role: models.RoleAdmin}, nil
	}
	return models.AdminIdentity{}, ErrInvalidCredentials
}

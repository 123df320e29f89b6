package auth

import (
	"errors"
	"fmt"
	"time"

	"campuscare-admin/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Tokens signs and verifies admin session JWTs.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *Tokens) Issue(admin models.AdminIdentity) (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"jti":   uuid.NewString(),
		"sub":   admin.Email,
		"name":  admin.Name,
		"email": admin.Email,
		"role":  admin.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(t.ttl).Unix(),
	})
	return token.SignedString(t.secret)
}

func (t *Tokens) Parse(tokenString string) (models.AdminIdentity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return models.AdminIdentity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.AdminIdentity{}, ErrInvalidToken
	}
	admin := models.AdminIdentity{
		Name:  stringClaim(claims, "name"),
		Email: stringClaim(claims, "email"),
		Role:  stringClaim(claims, "role"),
	}
	if admin.Email == "" || admin.Role != models.RoleAdmin {
		return models.AdminIdentity{}, ErrInvalidToken
	}
	return admin, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}

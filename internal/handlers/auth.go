package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"campuscare-admin/internal/auth"
	"campuscare-admin/internal/middleware"
	"campuscare-admin/internal/models"

	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	checker *auth.IdentityChecker
	tokens  *auth.Tokens
	log     *logrus.Logger
}

func NewAuthHandler(checker *auth.IdentityChecker, tokens *auth.Tokens, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		checker: checker,
		tokens:  tokens,
		log:     log,
	}
}

// --- Request / Response types ---

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string               `json:"token"`
	Admin models.AdminIdentity `json:"admin"`
}

// --- POST /auth/login ---

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	admin, err := h.checker.Check(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials. Try admin@campuscare.com / admin123")
			return
		}
		h.log.WithError(err).Error("error checking credentials")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := h.tokens.Issue(admin)
	if err != nil {
		h.log.WithError(err).Error("error signing JWT")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.log.WithField("email", admin.Email).Info("admin signed in")
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, Admin: admin})
}

// --- GET /auth/me ---

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.GetAdmin(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, admin)
}

package apiserver

import (
	"encoding/json"
	"net/http"

	"github.com/puscasale/MAP-SocialNetwork/internal/auth"
	"github.com/puscasale/MAP-SocialNetwork/internal/config"
	"github.com/puscasale/MAP-SocialNetwork/internal/models"
	"github.com/puscasale/MAP-SocialNetwork/internal/services"
	"github.com/puscasale/MAP-SocialNetwork/pkg/logger"
)

// AuthHandler handles sign-up and login.
type AuthHandler struct {
	service services.SocialService
	authCfg config.AuthConfig
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.SocialService, authCfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{service: service, authCfg: authCfg}
}

// SignUpRequest is the body for POST /auth/signup.
type SignUpRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token string                `json:"token"`
	User  *models.UserBasicInfo `json:"user"`
}

// SignUp handles POST /auth/signup. Signing up does not log the
// user in; the client follows with a login call.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.service.AddUser(r.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, user.BasicInfo())
}

// Login handles POST /auth/login and issues a JWT on success.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email, h.authCfg)
	if err != nil {
		logger.Error("issuing token", "userId", user.ID, "error", err)
		writeJSONError(w, "login failed", http.StatusInternalServerError)
		return
	}
	writeJSONResponse(w, http.StatusOK, LoginResponse{Token: token, User: user.BasicInfo()})
}

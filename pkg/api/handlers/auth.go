package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/registryops/eppproxy/internal/logger"
	"github.com/registryops/eppproxy/pkg/api/auth"
)

// AuthHandler serves token issuance.
type AuthHandler struct {
	users *auth.UserStore
	jwt   *auth.JWTService
}

// NewAuthHandler creates the handler.
func NewAuthHandler(users *auth.UserStore, jwt *auth.JWTService) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates an API account and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		BadRequest(w, "username and password are required")
		return
	}

	if err := h.users.Authenticate(req.Username, req.Password); err != nil {
		logger.Warn("api login rejected", "username", req.Username, "remote", r.RemoteAddr)
		Unauthorized(w, "invalid username or password")
		return
	}

	token, err := h.jwt.GenerateToken(req.Username)
	if err != nil {
		logger.Error("token generation failed", "error", err)
		InternalServerError(w, "failed to issue token")
		return
	}

	logger.Info("api login", "username", req.Username)
	writeJSON(w, http.StatusOK, token)
}

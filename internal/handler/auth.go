package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/robocafe/api/internal/auth"
	"github.com/robocafe/api/internal/enum"
	"github.com/robocafe/api/internal/logger"
)

// AuthHandler exchanges chef access keys for session tokens. Customer
// identity comes from the external provider and never passes through here.
type AuthHandler struct {
	keys      *auth.ChefKeyTable
	jwtSecret string
	log       *logger.Logger
}

func NewAuthHandler(keys *auth.ChefKeyTable, jwtSecret string, log *logger.Logger) *AuthHandler {
	return &AuthHandler{keys: keys, jwtSecret: jwtSecret, log: log}
}

type chefLoginRequest struct {
	AccessKey string `json:"accessKey"`
}

type chefLoginResponse struct {
	Token    string `json:"token"`
	ChefName string `json:"chefName"`
}

// ChefLogin handles POST /api/auth/chef.
func (h *AuthHandler) ChefLogin(w http.ResponseWriter, r *http.Request) {
	var req chefLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.AccessKey == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "accessKey is required"})
		return
	}

	name, ok := h.keys.Verify(req.AccessKey)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid access key"})
		return
	}

	sess := auth.Session{
		UID:  uuid.NewString(),
		Name: name,
		Role: enum.RoleChef,
	}
	token, err := auth.GenerateToken(h.jwtSecret, sess)
	if err != nil {
		h.log.Error("chef_login", "token generation failed", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.log.Info("chef_login", "chef "+name+" logged in")
	writeJSON(w, http.StatusOK, chefLoginResponse{Token: token, ChefName: name})
}

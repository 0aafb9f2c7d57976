package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/happychat/chat-service/internal/auth"
)

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

type AuthHandler struct {
	service auth.Service
}

func NewAuthHandler(service auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterRoutes(router chi.Router) {
	router.Post("/auth/login", h.handleLogin)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input auth.LoginInput

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Warn().Err(err).Msg("Failed to decode login request")
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
		})
		return
	}

	token, err := h.service.Login(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, LoginResponse{AccessToken: token})
}

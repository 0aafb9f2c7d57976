package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/happychat/chat-service/internal/user"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(router chi.Router) {
	router.Post("/user/create", h.handleCreateUser)
}

func (h *UserHandler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var input user.CreateUserInput

	// Unknown fields are dropped, not rejected: the payload is a
	// whitelist of the fields CreateUserInput declares.
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Warn().Err(err).Msg("Failed to decode create user request")
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
		})
		return
	}

	log.Info().Str("email", input.Email).Msg("Creating user")

	if _, err := h.service.Register(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, StatusResponse{
		StatusCode: http.StatusCreated,
		Message:    "User created successfully.",
	})
}

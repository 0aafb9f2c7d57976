package http

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// StatusResponse is the body of simple status-plus-message replies.
type StatusResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// respondWithJSON writes payload as JSON with the given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"statusCode":500,"message":"Internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

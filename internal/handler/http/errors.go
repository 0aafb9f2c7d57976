package http

import (
	"errors"
	"net/http"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/happychat/chat-service/internal/apperror"
)

// ErrorResponse is the one wire shape every failure is reduced to.
// Errors holds {field, message} objects for storage-level violations
// and plain strings for request-schema violations; the two shapes are
// part of the public contract and are not unified.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Errors     []any  `json:"errors,omitempty"`
}

// normalize maps any failure escaping the pipelines to its wire shape.
// It is the sole translation point and must never itself fail.
func normalize(err error) ErrorResponse {
	var storageErr *apperror.StorageValidation
	if errors.As(err, &storageErr) {
		fieldErrors := make([]any, 0, len(storageErr.Fields))
		for _, fe := range storageErr.Fields {
			fieldErrors = append(fieldErrors, fe)
		}
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "Validation error",
			Errors:     fieldErrors,
		}
	}

	var requestErr *apperror.RequestValidation
	if errors.As(err, &requestErr) {
		messages := make([]any, 0, len(requestErr.Messages))
		for _, m := range requestErr.Messages {
			messages = append(messages, m)
		}
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "Validation error",
			Errors:     messages,
		}
	}

	var authErr *apperror.Authentication
	if errors.As(err, &authErr) {
		return ErrorResponse{
			StatusCode: http.StatusUnauthorized,
			Message:    authErr.Reason,
		}
	}

	var badRequestErr *apperror.BadRequest
	if errors.As(err, &badRequestErr) {
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    badRequestErr.Msg,
		}
	}

	if err != nil && strings.Contains(strings.ToLower(err.Error()), "validation") {
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "Validation failed",
		}
	}

	message := "Internal server error"
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return ErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Message:    message,
	}
}

// writeError normalizes err, logs it at a severity matching the
// resulting status and writes the response.
func writeError(w http.ResponseWriter, err error) {
	response := normalize(err)

	if response.StatusCode >= http.StatusInternalServerError {
		// Errors reaching 500 were wrapped with plain fmt and carry no
		// stack of their own; capture one here, at the last line of
		// defense, so the error-level entry always has it.
		log.Error().Stack().Err(pkgerrors.WithStack(err)).Int("status", response.StatusCode).Msg("Request failed")
	} else {
		log.Warn().Int("status", response.StatusCode).Msg(response.Message)
	}

	respondWithJSON(w, response.StatusCode, response)
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akolanti/cogcompanion/internal/adapter"
	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
)

const maxJSONBodyBytes = 1 << 20

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, sessionId string, message string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(sessionId, message, httpCode, httpCode >= http.StatusInternalServerError))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, into any) bool {
	defer func() {
		if err := r.Body.Close(); err != nil {
			logRH.Error("Couldn't close the request body", "error", err)
		}
	}()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)).Decode(into); err != nil {
		logRH.Warn("Bad request body", "path", r.URL.Path, "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
		return false
	}
	return true
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		logRH.WithContext(ctx, config.TRACE_ID_KEY).Warn("context error", "error", ctx.Err())
		return false
	}
	return true
}

// writeServiceError maps service errors to a status code. File rejections are
// kept apart from one another so a client can tell size from type from content.
func writeServiceError(w http.ResponseWriter, r *http.Request, sessionId string, err error) {
	status, message := statusFor(err)
	log := logRH.WithContext(r.Context(), config.TRACE_ID_KEY)
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "path", r.URL.Path, "error", err)
	} else {
		log.Warn("Request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	WriteErrorResponse(w, status, sessionId, message)
}

func statusFor(err error) (int, string) {
	var fileFailure *commonModels.FileProcessingFailure
	switch {
	case errors.Is(err, commonModels.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "File too large"
	case errors.Is(err, commonModels.ErrUnsupportedFileType):
		return http.StatusUnsupportedMediaType, "Unsupported file type"
	case errors.As(err, &fileFailure):
		return http.StatusBadRequest, "Unable to process file"
	case errors.Is(err, commonModels.ErrEmptyQuery):
		return http.StatusBadRequest, "query is required"
	case errors.Is(err, commonModels.ErrInvalidSessionId):
		return http.StatusBadRequest, "invalid session id"
	case errors.Is(err, commonModels.ErrSessionNotFound):
		return http.StatusNotFound, "Session not found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "Request timed out"
	}
	var embedding *commonModels.EmbeddingFailure
	if errors.As(err, &embedding) {
		return http.StatusBadGateway, "Knowledge base search is unavailable"
	}
	return http.StatusInternalServerError, "Internal Server Error"
}

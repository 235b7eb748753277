package handlers

import (
	"net/http"

	"github.com/akolanti/cogcompanion/internal/adapter"
	"github.com/akolanti/cogcompanion/internal/adapter/utils"
	"github.com/akolanti/cogcompanion/internal/api"
)

func GetHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetHistory godoc
// @Summary      Session history and uploads
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  api.SessionResponse
// @Failure      404  {object}  api.ErrorResponse  "Session not found"
// @Router       /sessions/{id}/history [get]
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	id := utils.GetChiURLParam(r, "id")
	snapshot, err := h.service.Session(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, id, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToSessionResponse(snapshot))
}

// ClearHistory godoc
// @Summary      Clear the conversation and its persisted record
// @Tags         Sessions
// @Param        id   path      string  true  "Session ID"
// @Success      204
// @Router       /sessions/{id}/history [delete]
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	id := utils.GetChiURLParam(r, "id")
	if err := h.service.ClearHistory(r.Context(), id); err != nil {
		writeServiceError(w, r, id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearFiles godoc
// @Summary      Drop every uploaded file from the session
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  api.ClearFilesResponse
// @Router       /sessions/{id}/files [delete]
func (h *Handler) ClearFiles(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	id := utils.GetChiURLParam(r, "id")
	removed, err := h.service.ClearFiles(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, id, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, api.ClearFilesResponse{SessionId: id, Removed: removed})
}

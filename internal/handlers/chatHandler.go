package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/akolanti/cogcompanion/internal/adapter"
	"github.com/akolanti/cogcompanion/internal/api"
	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/rag"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
)

// multipart framing on top of the file itself
const uploadOverheadBytes = 1 << 20

var logRH = logger_i.NewLogger("RequestHandler")

type Handler struct {
	service          rag.Service
	defaultThreshold float32
}

func NewHandler(service rag.Service, defaultThreshold float32) *Handler {
	return &Handler{service: service, defaultThreshold: defaultThreshold}
}

// Chat godoc
// @Summary      Answer one chat turn
// @Description  Routes the message by intent, optionally against uploaded report text, and returns the reply.
// @Tags         Messaging
// @Accept       json
// @Produce      json
// @Param        request  body      api.ChatRequest   true  "Message with optional session id, history and file context"
// @Success      200      {object}  api.ChatResponse  "Reply, possibly flagged off_topic or degraded"
// @Failure      400      {object}  api.ErrorResponse "Empty message or bad session id"
// @Router       /chat [post]
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	var requestData api.ChatRequest
	if !decodeJSON(w, r, &requestData) {
		return
	}
	if requestData.Message == "" {
		WriteErrorResponse(w, http.StatusBadRequest, requestData.SessionId, "message is required")
		return
	}

	turn, err := h.service.Chat(r.Context(), adapter.ToChatRequest(requestData))
	if err != nil {
		writeServiceError(w, r, requestData.SessionId, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(turn))
}

// Upload godoc
// @Summary      Upload a report or data file
// @Description  Extracts text from the file and attaches it to the session. PDF reports are summarized.
// @Tags         Files
// @Accept       multipart/form-data
// @Produce      json
// @Param        file        formData  file    true   "txt, csv, json, pdf, xlsx, xls, docx, odt or rtf"
// @Param        session_id  formData  string  false  "Session to attach the file to"
// @Success      200  {object}  api.UploadResponse
// @Failure      400  {object}  api.ErrorResponse "Unreadable file"
// @Failure      413  {object}  api.ErrorResponse "File too large"
// @Failure      415  {object}  api.ErrorResponse "Unsupported file type"
// @Router       /upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes+uploadOverheadBytes)
	if err := r.ParseMultipartForm(config.MaxUploadBytes + uploadOverheadBytes); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			WriteErrorResponse(w, http.StatusRequestEntityTooLarge, "", "File too large")
			return
		}
		WriteErrorResponse(w, http.StatusBadRequest, "", "Expected a multipart form with a file field")
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			logRH.Warn("Couldn't remove multipart temp files", "error", err)
		}
	}()

	sessionId := r.FormValue("session_id")
	fileReader, fileMetadata, err := r.FormFile("file")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, sessionId, "Could not retrieve file")
		return
	}
	defer func(f io.Closer) {
		if err := f.Close(); err != nil {
			logRH.Error("Couldn't close the upload reader", "error", err)
		}
	}(fileReader)

	result, err := h.service.Upload(r.Context(), sessionId, fileMetadata.Filename, fileReader)
	if err != nil {
		writeServiceError(w, r, result.SessionId, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToUploadResponse(result))
}

// Search godoc
// @Summary      Search the knowledge base
// @Tags         Knowledge
// @Accept       json
// @Produce      json
// @Param        request  body      api.SearchRequest  true  "Query, k and optional threshold"
// @Success      200      {object}  api.SearchResponse
// @Failure      400      {object}  api.ErrorResponse
// @Router       /search [post]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	var requestData api.SearchRequest
	if !decodeJSON(w, r, &requestData) {
		return
	}
	k := requestData.K
	if k == 0 {
		k = config.DefaultSearchK
	}
	threshold := h.defaultThreshold
	if requestData.Threshold != nil {
		threshold = *requestData.Threshold
	}
	if requestData.Query == "" || k < 1 || threshold < 0 || threshold > 1 {
		WriteErrorResponse(w, http.StatusBadRequest, "", "query is required, k must be positive and threshold in [0,1]")
		return
	}

	results, err := h.service.Search(r.Context(), requestData.Query, k, threshold)
	if err != nil {
		writeServiceError(w, r, "", err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToSearchResponse(results))
}

// Recommendations godoc
// @Summary      Knowledge-base evidence for a risk profile
// @Tags         Knowledge
// @Accept       json
// @Produce      json
// @Param        request  body      api.RecommendationsRequest  true  "Risk flags"
// @Success      200      {object}  api.SearchResponse
// @Router       /recommendations [post]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	var requestData api.RecommendationsRequest
	if !decodeJSON(w, r, &requestData) {
		return
	}
	results := h.service.Recommendations(r.Context(), adapter.ToProfile(requestData))
	writeJsonResponse(w, http.StatusOK, adapter.ToSearchResponse(results))
}

package api

import "time"

type OutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Unsupported file type"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type ErrorResponse struct {
	SessionId string        `json:"session_id,omitempty"`
	Error     OutgoingError `json:"error"`
}

type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatResponse struct {
	Reply     string         `json:"reply"`
	SessionId string         `json:"session_id"`
	TurnId    string         `json:"turn_id"`
	Intent    string         `json:"intent"`
	OffTopic  bool           `json:"off_topic,omitempty"`
	Degraded  bool           `json:"degraded,omitempty"`
	Error     *OutgoingError `json:"error,omitempty"`
}

type UploadResponse struct {
	SessionId      string   `json:"session_id"`
	Filename       string   `json:"filename"`
	FileType       string   `json:"file_type"`
	Content        string   `json:"content"`
	SizeBytes      int64    `json:"size_bytes"`
	ChunkSummaries []string `json:"chunk_summaries,omitempty"`
	Duplicate      bool     `json:"duplicate,omitempty"`
}

type SearchHit struct {
	Id         uint64  `json:"id"`
	Content    string  `json:"content"`
	Domain     string  `json:"domain"`
	Source     string  `json:"source"`
	Key        string  `json:"key"`
	Similarity float32 `json:"similarity"`
}

type SearchResponse struct {
	Results []SearchHit `json:"results"`
}

type FileInfo struct {
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type SessionResponse struct {
	SessionId string     `json:"session_id"`
	History   []Turn     `json:"history"`
	Files     []FileInfo `json:"files"`
}

type ClearFilesResponse struct {
	SessionId string `json:"session_id"`
	Removed   int    `json:"removed"`
}

// requests---------------------

// ChatRequest carries optional client-held state. When ConversationHistory is
// absent the session's history is used; when FileContext is empty the session's
// uploads are.
type ChatRequest struct {
	Message             string `json:"message" validate:"required"`
	SessionId           string `json:"session_id,omitempty"`
	ConversationHistory []Turn `json:"conversation_history,omitempty"`
	FileContext         string `json:"file_context,omitempty"`
}

type SearchRequest struct {
	Query     string   `json:"query" validate:"required"`
	K         int      `json:"k,omitempty"`
	Threshold *float32 `json:"threshold,omitempty"`
}

type RecommendationsRequest struct {
	ProcessingSpeedLow bool `json:"processing_speed_low"`
	Hypertension       bool `json:"hypertension"`
	HighCholesterol    bool `json:"high_cholesterol"`
	Diabetes           bool `json:"diabetes"`
	Sedentary          bool `json:"sedentary"`
	PoorSleep          bool `json:"poor_sleep"`
}

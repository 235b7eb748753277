package adapter

import (
	"github.com/akolanti/cogcompanion/internal/api"
	"github.com/akolanti/cogcompanion/internal/domain/chatModel"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/internal/rag"
	"github.com/akolanti/cogcompanion/internal/rag/retriever"
)

func ToChatResponse(turn chatModel.Turn) api.ChatResponse {
	var errorPtr *api.OutgoingError
	if turn.Error.Message != "" || turn.Error.Code != 0 {
		errorPtr = &api.OutgoingError{
			Code:    turn.Error.Code,
			Message: turn.Error.Message,
			Retry:   turn.Error.Retry,
		}
	}

	return api.ChatResponse{
		Reply:     turn.Reply,
		SessionId: turn.SessionId,
		TurnId:    turn.Id,
		Intent:    string(turn.Intent),
		OffTopic:  turn.OffTopic,
		Degraded:  turn.Degraded,
		Error:     errorPtr,
	}
}

// ToChatRequest maps the wire request. A missing conversation_history stays nil
// so the session's own history is used.
func ToChatRequest(req api.ChatRequest) rag.ChatRequest {
	var history []commonModels.ConversationTurn
	if req.ConversationHistory != nil {
		history = make([]commonModels.ConversationTurn, len(req.ConversationHistory))
		for i, t := range req.ConversationHistory {
			history[i] = commonModels.ConversationTurn{Role: commonModels.Role(t.Role), Content: t.Content}
		}
	}
	return rag.ChatRequest{
		SessionId:   req.SessionId,
		Message:     req.Message,
		History:     history,
		FileContext: req.FileContext,
	}
}

func ToUploadResponse(result rag.UploadResult) api.UploadResponse {
	return api.UploadResponse{
		SessionId:      result.SessionId,
		Filename:       result.File.Name,
		FileType:       string(result.File.Type),
		Content:        result.File.Content,
		SizeBytes:      result.File.SizeBytes,
		ChunkSummaries: result.File.ChunkSummaries,
		Duplicate:      result.Duplicate,
	}
}

func ToSearchResponse(results []commonModels.SearchResult) api.SearchResponse {
	hits := make([]api.SearchHit, len(results))
	for i, r := range results {
		hits[i] = api.SearchHit{
			Id:         r.Id,
			Content:    r.Content,
			Domain:     r.Metadata.Domain,
			Source:     r.Metadata.Source,
			Key:        r.Metadata.Key,
			Similarity: r.Similarity,
		}
	}
	return api.SearchResponse{Results: hits}
}

func ToProfile(req api.RecommendationsRequest) retriever.Profile {
	return retriever.Profile{
		ProcessingSpeedLow: req.ProcessingSpeedLow,
		Hypertension:       req.Hypertension,
		HighCholesterol:    req.HighCholesterol,
		Diabetes:           req.Diabetes,
		Sedentary:          req.Sedentary,
		PoorSleep:          req.PoorSleep,
	}
}

func ToSessionResponse(s chatModel.SessionContext) api.SessionResponse {
	history := make([]api.Turn, len(s.History))
	for i, t := range s.History {
		history[i] = api.Turn{Role: string(t.Role), Content: t.Content}
	}
	files := make([]api.FileInfo, len(s.Files))
	for i, f := range s.Files {
		files[i] = api.FileInfo{
			Filename:   f.Name,
			FileType:   string(f.Type),
			SizeBytes:  f.SizeBytes,
			UploadedAt: f.UploadedAt,
		}
	}
	return api.SessionResponse{SessionId: s.Id, History: history, Files: files}
}

func BadRequest(sessionId string, message string, code int, retry bool) api.ErrorResponse {
	return api.ErrorResponse{
		SessionId: sessionId,
		Error: api.OutgoingError{
			Code:    code,
			Message: message,
			Retry:   retry,
		},
	}
}

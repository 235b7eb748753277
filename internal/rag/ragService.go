package rag

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/akolanti/cogcompanion/internal/adapter/utils"
	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/domain/chatModel"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/internal/fileProcessor"
	"github.com/akolanti/cogcompanion/internal/metrics"
	"github.com/akolanti/cogcompanion/internal/rag/llm"
	"github.com/akolanti/cogcompanion/internal/rag/prompt"
	"github.com/akolanti/cogcompanion/internal/rag/retriever"
	"github.com/akolanti/cogcompanion/internal/rag/summarizer"
	"github.com/akolanti/cogcompanion/internal/session"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
)

/*
Service is the only thing the handlers, the CLI and the MCP server talk to.
The private service struct holds the retriever, the chat model, the summarizer
and the session registry; none of them leak past this package boundary, so
tests swap them for mocks without touching the callers.
*/

type Service interface {
	Chat(ctx context.Context, req ChatRequest) (chatModel.Turn, error)
	Upload(ctx context.Context, sessionId, filename string, body io.Reader) (UploadResult, error)
	Summarize(ctx context.Context, filename string, body io.Reader) (commonModels.UploadedFile, error)
	Search(ctx context.Context, query string, k int, threshold float32) ([]commonModels.SearchResult, error)
	Recommendations(ctx context.Context, profile retriever.Profile) []commonModels.SearchResult
	Session(ctx context.Context, sessionId string) (chatModel.SessionContext, error)
	ClearHistory(ctx context.Context, sessionId string) error
	ClearFiles(ctx context.Context, sessionId string) (int, error)
}

// ChatRequest is one user turn. A nil History or empty FileContext means the
// session's own state is used.
type ChatRequest struct {
	SessionId   string
	Message     string
	History     []commonModels.ConversationTurn
	FileContext string
}

type UploadResult struct {
	SessionId string
	File      commonModels.UploadedFile
	// Duplicate is set when a file of the same name was already attached and
	// the earlier upload was kept.
	Duplicate bool
}

type service struct {
	retriever  *retriever.Retriever
	llm        llm.Provider
	summarizer *summarizer.Summarizer
	sessions   *session.Manager
	logger     *logger_i.Logger
}

func NewService(r *retriever.Retriever, provider llm.Provider, sessions *session.Manager) Service {
	return &service{
		retriever:  r,
		llm:        provider,
		summarizer: summarizer.New(provider),
		sessions:   sessions,
		logger:     logger_i.NewLogger("rag_service"),
	}
}

// Chat runs one turn through the pipeline. Failures of the model itself never
// surface as errors; they come back as a degraded turn carrying an apology.
func (s *service) Chat(ctx context.Context, req ChatRequest) (chatModel.Turn, error) {
	if strings.TrimSpace(req.Message) == "" {
		return chatModel.Turn{}, commonModels.ErrEmptyQuery
	}
	start := time.Now()

	var turn chatModel.Turn
	id, err := s.sessions.Do(ctx, req.SessionId, func(sess *session.Session) error {
		ctx := context.WithValue(ctx, config.SESSION_ID_KEY, sess.Id())
		turn = newTurn(ctx, sess.Id(), req.Message)
		log := s.logger.WithContext(ctx, config.TRACE_ID_KEY, config.SESSION_ID_KEY).With("turnId", turn.Id)

		in := prompt.Input{Query: req.Message, FileContext: req.FileContext, History: req.History}
		if in.History == nil {
			in.History = sess.History()
		}
		if strings.TrimSpace(in.FileContext) == "" {
			in.Files = sess.Files()
		}

		if err := s.runTurn(ctx, log, &turn, in); err != nil {
			return err
		}
		err := sess.Record(ctx,
			commonModels.ConversationTurn{Role: commonModels.RoleUser, Content: req.Message},
			commonModels.ConversationTurn{Role: commonModels.RoleAssistant, Content: turn.Reply},
		)
		if err != nil {
			return err
		}
		// recorded, the session is ready for its next question
		return turn.Advance(chatModel.Idle)
	})
	turn.SessionId = id

	status := "ok"
	switch {
	case err != nil:
		status = "error"
	case turn.Degraded:
		status = "degraded"
	}
	metrics.CaptureTurnMetrics(status, time.Since(start))
	if err != nil {
		return turn, err
	}
	metrics.CaptureIntent(string(turn.Intent))
	return turn, nil
}

func (s *service) runTurn(ctx context.Context, log *logger_i.Logger, turn *chatModel.Turn, in prompt.Input) error {
	if err := turn.Advance(chatModel.AwaitingQuery); err != nil {
		return err
	}
	if err := turn.Advance(chatModel.RoutingIntent); err != nil {
		return err
	}

	// off-topic is a routing verdict, only reachable without file context
	hasFile := in.HasFileContext()
	if !hasFile && !s.retriever.CheckRelevance(ctx, in.Query) {
		log.Info("Question is outside the cognitive health domain")
		turn.Intent = chatModel.IntentOffTopic
		turn.OffTopic = true
		return respond(turn, prompt.OffTopicReply)
	}

	rule := prompt.Route(in.Query)
	in.KnowledgeContext = s.executeRetrievalStep(ctx, in.Query)

	var p prompt.Prompt
	if !hasFile || rule.Intent == chatModel.IntentConcept {
		p = prompt.DomainPrompt(in)
	} else {
		p = prompt.ReportPrompt(rule, in)
	}
	turn.Intent = p.Intent
	if hasFile && rule.Intent == chatModel.IntentConcept {
		turn.Intent = chatModel.IntentConcept
	}
	log.Debug("Routed turn", "intent", turn.Intent, "history", len(in.History), "kbChars", len(in.KnowledgeContext))

	if err := turn.Advance(chatModel.PromptAssembled); err != nil {
		return err
	}
	if err := turn.Advance(chatModel.AwaitingLLM); err != nil {
		return err
	}
	reply, err := s.executeLLMStep(ctx, p)
	if err != nil {
		s.llmError(log, turn, err)
		return respond(turn, prompt.FailureReply)
	}
	if reply == "" {
		log.Warn("Model returned an empty reply")
		return respond(turn, prompt.EmptyReply)
	}
	if p.Intent != chatModel.IntentDomain {
		reply = prompt.FormatReportReply(reply)
	}
	return respond(turn, reply)
}

// Upload processes a file into the session. A second upload with a name the
// session already holds is not read; the first one is returned instead.
func (s *service) Upload(ctx context.Context, sessionId, filename string, body io.Reader) (UploadResult, error) {
	var result UploadResult
	id, err := s.sessions.Do(ctx, sessionId, func(sess *session.Session) error {
		ctx := context.WithValue(ctx, config.SESSION_ID_KEY, sess.Id())
		if existing, ok := sess.File(filename); ok {
			s.logger.WithContext(ctx, config.TRACE_ID_KEY, config.SESSION_ID_KEY).Info("File already uploaded, keeping the first copy", "filename", filename)
			metrics.CaptureUpload(string(existing.Type), "duplicate")
			result = UploadResult{File: existing, Duplicate: true}
			return nil
		}

		f, err := s.Summarize(ctx, filename, body)
		if err != nil {
			return err
		}
		sess.AddFile(f)
		result = UploadResult{File: f}
		return nil
	})
	result.SessionId = id
	return result, err
}

// Summarize extracts a file and, for PDF reports, replaces the content with
// the chunked summary while keeping the extracted text.
func (s *service) Summarize(ctx context.Context, filename string, body io.Reader) (commonModels.UploadedFile, error) {
	f, err := fileProcessor.Process(ctx, filename, body)
	if err != nil {
		fileType, typeErr := fileProcessor.TypeOf(filename)
		if typeErr != nil {
			fileType = "unknown"
		}
		metrics.CaptureUpload(string(fileType), "rejected")
		return f, err
	}
	if f.Type == commonModels.PDF {
		s.summarizeReport(ctx, &f)
	}
	metrics.CaptureUpload(string(f.Type), "accepted")
	return f, nil
}

func (s *service) Search(ctx context.Context, query string, k int, threshold float32) ([]commonModels.SearchResult, error) {
	return s.retriever.Search(ctx, query, k, threshold)
}

func (s *service) Recommendations(ctx context.Context, profile retriever.Profile) []commonModels.SearchResult {
	return s.retriever.Recommendations(ctx, profile)
}

func (s *service) Session(ctx context.Context, sessionId string) (chatModel.SessionContext, error) {
	return s.sessions.Snapshot(ctx, sessionId)
}

func (s *service) ClearHistory(ctx context.Context, sessionId string) error {
	_, err := s.sessions.Do(ctx, sessionId, func(sess *session.Session) error {
		return sess.ClearHistory(ctx)
	})
	return err
}

func (s *service) ClearFiles(ctx context.Context, sessionId string) (int, error) {
	var removed int
	_, err := s.sessions.Do(ctx, sessionId, func(sess *session.Session) error {
		removed = sess.ClearFiles()
		return nil
	})
	return removed, err
}

func newTurn(ctx context.Context, sessionId, query string) chatModel.Turn {
	traceId, _ := ctx.Value(config.TRACE_ID_KEY).(string)
	return chatModel.Turn{
		Id:        utils.GetNewUUID(),
		SessionId: sessionId,
		TraceId:   traceId,
		Query:     query,
		State:     chatModel.Idle,
		Started:   time.Now().UTC(),
	}
}

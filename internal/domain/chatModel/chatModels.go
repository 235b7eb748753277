package chatModel

import (
	"context"
	"fmt"
	"time"

	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
)

type TurnState string

type Intent string

const (
	Idle            TurnState = "Idle"
	AwaitingQuery   TurnState = "AwaitingQuery"
	RoutingIntent   TurnState = "RoutingIntent"
	PromptAssembled TurnState = "PromptAssembled"
	AwaitingLLM     TurnState = "AwaitingLLM"
	Responded       TurnState = "Responded"

	IntentConcept         Intent = "concept"
	IntentScores          Intent = "scores"
	IntentPersonalization Intent = "personalization"
	IntentFullPlan        Intent = "full_plan"
	IntentFocused         Intent = "focused"
	IntentDomain          Intent = "domain"
	IntentOffTopic        Intent = "off_topic"
)

// Every turn passes through RoutingIntent. The only short cut is an off-topic
// verdict reached while routing, which answers without a model call.
var transitions = map[TurnState][]TurnState{
	Idle:            {AwaitingQuery},
	AwaitingQuery:   {RoutingIntent},
	RoutingIntent:   {PromptAssembled, Responded},
	PromptAssembled: {AwaitingLLM},
	AwaitingLLM:     {Responded},
	Responded:       {Idle},
}

// Turn is the record of one question/answer exchange inside a session.
type Turn struct {
	Id        string    `json:"id"`
	SessionId string    `json:"session_id"`
	TraceId   string    `json:"trace_id"`
	Query     string    `json:"query"`
	Intent    Intent    `json:"intent,omitempty"`
	Reply     string    `json:"reply,omitempty"`
	Degraded  bool      `json:"degraded,omitempty"`
	OffTopic  bool      `json:"off_topic,omitempty"`
	Error     TurnError `json:"error,omitempty"`
	State     TurnState `json:"state"`
	Started   time.Time `json:"started"`
	Finished  time.Time `json:"finished,omitempty"`

	// Path lists every state the turn entered, in order.
	Path []TurnState `json:"-"`
}

type TurnError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

// Advance moves the turn to next, rejecting transitions the turn lifecycle does not allow.
func (t *Turn) Advance(next TurnState) error {
	for _, allowed := range transitions[t.State] {
		if allowed == next {
			t.State = next
			t.Path = append(t.Path, next)
			return nil
		}
	}
	return fmt.Errorf("invalid turn transition %s -> %s", t.State, next)
}

// SessionContext is the per-session conversation state. It is owned by one session
// and never shared between sessions.
type SessionContext struct {
	Id      string                          `json:"id"`
	History []commonModels.ConversationTurn `json:"history"`
	Files   []commonModels.UploadedFile     `json:"files"`
}

// HasFile reports whether an upload with the same name is already attached.
func (s *SessionContext) HasFile(name string) bool {
	for _, f := range s.Files {
		if f.Name == name {
			return true
		}
	}
	return false
}

// ConversationStore persists session history. Append is write-through: a turn is
// durable once Append returns.
type ConversationStore interface {
	Exists(ctx context.Context, sessionId string) (bool, error)
	Load(ctx context.Context, sessionId string) ([]commonModels.ConversationTurn, error)
	Append(ctx context.Context, sessionId string, turns ...commonModels.ConversationTurn) error
	Clear(ctx context.Context, sessionId string) error
}

package prompt

import (
	"strings"

	"github.com/akolanti/cogcompanion/internal/adapter/utils"
	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/domain/chatModel"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/internal/fileProcessor"
	"github.com/akolanti/cogcompanion/internal/rag/llm"
	"github.com/akolanti/cogcompanion/internal/rag/retriever"
)

const (
	knowledgeBegin = "[KNOWLEDGE BASE CONTEXT (background only, not for scores)]"
	knowledgeEnd   = "[END OF KNOWLEDGE BASE CONTEXT]"
	reportBegin    = "[REPORT TEXT (from uploaded file)]"
	reportEnd      = "[END OF REPORT TEXT]"
	questionBegin  = "[USER QUESTION]"
	questionEnd    = "[END OF USER QUESTION]"
)

// Input is everything a turn may put in front of the model. Each field is capped
// again here whatever the caller already did.
type Input struct {
	Query string
	// Files are the session uploads; each one gets its own budget inside the block.
	Files []commonModels.UploadedFile
	// FileContext is caller-supplied text used in place of Files, capped as one file.
	FileContext      string
	KnowledgeContext string
	History          []commonModels.ConversationTurn
}

// HasFileContext reports whether the turn carries report text.
func (in Input) HasFileContext() bool {
	return strings.TrimSpace(in.FileContext) != "" || len(in.Files) > 0
}

func (in Input) fileBlock() string {
	if strings.TrimSpace(in.FileContext) != "" {
		return fileProcessor.CapContent(in.FileContext)
	}
	return fileProcessor.ContextBlock(in.Files)
}

// Prompt is a fully assembled model call.
type Prompt struct {
	Intent  chatModel.Intent
	System  string
	Turns   []commonModels.ConversationTurn
	Options llm.Options
}

// ReportPrompt builds the call for a question asked against an uploaded report.
// The rule's template is appended to the system content.
func ReportPrompt(rule Rule, in Input) Prompt {
	var b strings.Builder
	if kb := capKnowledge(in.KnowledgeContext); kb != "" {
		section(&b, knowledgeBegin, kb, knowledgeEnd)
	}
	section(&b, reportBegin, in.fileBlock(), reportEnd)
	section(&b, questionBegin, in.Query, questionEnd)

	return Prompt{
		Intent:  rule.Intent,
		System:  reportSystemPrompt + "\n\n" + rule.Template,
		Turns:   withHistory(in.History, strings.TrimRight(b.String(), "\n")),
		Options: chatOptions(),
	}
}

// DomainPrompt builds the plain knowledge-base question path. Report text is
// never included.
func DomainPrompt(in Input) Prompt {
	message := in.Query
	if kb := capKnowledge(in.KnowledgeContext); kb != "" {
		message = "Based on the following knowledge base information, please answer this question:\n\n" +
			"KNOWLEDGE BASE:\n" + kb + "\n\n" +
			"QUESTION: " + in.Query + "\n\n" +
			"Please provide a helpful, evidence-based answer that addresses the question directly."
	}
	return Prompt{
		Intent:  chatModel.IntentDomain,
		System:  domainSystemPrompt,
		Turns:   withHistory(in.History, message),
		Options: chatOptions(),
	}
}

// TrimHistory keeps the most recent turns and drops empty ones.
func TrimHistory(history []commonModels.ConversationTurn) []commonModels.ConversationTurn {
	recent := utils.LastN(history, config.MaxHistoryTurns)
	out := make([]commonModels.ConversationTurn, 0, len(recent))
	for _, turn := range recent {
		if turn.Content == "" {
			continue
		}
		if turn.Role != commonModels.RoleAssistant {
			turn.Role = commonModels.RoleUser
		}
		out = append(out, turn)
	}
	return out
}

func capKnowledge(kb string) string {
	return utils.Truncate(kb, config.MaxKnowledgeContextChars, retriever.TruncationMarker)
}

func withHistory(history []commonModels.ConversationTurn, message string) []commonModels.ConversationTurn {
	turns := TrimHistory(history)
	return append(turns, commonModels.ConversationTurn{Role: commonModels.RoleUser, Content: message})
}

func section(b *strings.Builder, begin, body, end string) {
	b.WriteString(begin)
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(end)
	b.WriteString("\n\n")
}

func chatOptions() llm.Options {
	return llm.Options{Temperature: config.ChatTemperature, MaxTokens: config.ChatMaxTokens}
}

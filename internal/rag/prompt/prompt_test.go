package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/domain/chatModel"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/internal/fileProcessor"
	"github.com/akolanti/cogcompanion/internal/rag/retriever"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		query string
		want  chatModel.Intent
	}{
		{"What is MCI?", chatModel.IntentConcept},
		{"Can you explain mild cognitive impairment and my scores?", chatModel.IntentConcept},
		{"what are my exact scores for each game", chatModel.IntentScores},
		{"Show me my scores", chatModel.IntentScores},
		{"what was my score on each game", chatModel.IntentScores},
		{"please personalize my plan", chatModel.IntentPersonalization},
		{"Ask me questions so the plan fits", chatModel.IntentPersonalization},
		{"create an action plan for me", chatModel.IntentFullPlan},
		{"What should I do next?", chatModel.IntentFullPlan},
		{"what does my processing speed score mean", chatModel.IntentFocused},
		{"how often should I retake the test", chatModel.IntentFocused},
		{"", chatModel.IntentFocused},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Route(tt.query).Intent)
		})
	}
}

func TestRoute_PrecedenceIsFirstMatch(t *testing.T) {
	// matches scores, personalization and full plan; scores is listed first
	q := "give me my scores, personalize my plan and list next steps"
	assert.Equal(t, chatModel.IntentScores, Route(q).Intent)

	// personalization beats full plan
	assert.Equal(t, chatModel.IntentPersonalization, Route("personalized plan with next steps").Intent)
}

func TestRules_Order(t *testing.T) {
	var got []chatModel.Intent
	for _, r := range Rules() {
		got = append(got, r.Intent)
	}
	assert.Equal(t, []chatModel.Intent{
		chatModel.IntentConcept,
		chatModel.IntentScores,
		chatModel.IntentPersonalization,
		chatModel.IntentFullPlan,
		chatModel.IntentFocused,
	}, got)
	assert.Empty(t, Rules()[0].Template)
}

func TestReportPrompt_ScoresTemplateInSystemContent(t *testing.T) {
	query := "what are my exact scores for each game"
	p := ReportPrompt(Route(query), Input{Query: query, FileContext: "Symbol Matching: 22/30"})

	assert.Equal(t, chatModel.IntentScores, p.Intent)
	assert.Contains(t, p.System, "ONLY list the scores and labels")
	assert.NotContains(t, p.System, "Understanding Your Results")
	assert.Equal(t, config.ChatTemperature, p.Options.Temperature)
	assert.Equal(t, config.ChatMaxTokens, p.Options.MaxTokens)
}

func TestReportPrompt_SectionsAreDelimited(t *testing.T) {
	p := ReportPrompt(Route("how am I doing"), Input{
		Query:            "how am I doing",
		FileContext:      "REPORT BODY",
		KnowledgeContext: "[sleep]: rest well",
	})

	require.Len(t, p.Turns, 1)
	msg := p.Turns[0].Content
	assert.Equal(t, commonModels.RoleUser, p.Turns[0].Role)

	kb := strings.Index(msg, knowledgeBegin)
	kbEnd := strings.Index(msg, knowledgeEnd)
	rep := strings.Index(msg, reportBegin)
	repEnd := strings.Index(msg, reportEnd)
	q := strings.Index(msg, questionBegin)
	require.True(t, kb >= 0 && kb < kbEnd && kbEnd < rep && rep < repEnd && repEnd < q, msg)
	assert.Contains(t, msg[kb:kbEnd], "[sleep]: rest well")
	assert.Contains(t, msg[rep:repEnd], "REPORT BODY")
	assert.Contains(t, msg[q:], "how am I doing")
}

func TestReportPrompt_NoKnowledgeSectionWhenEmpty(t *testing.T) {
	p := ReportPrompt(focusedRule, Input{Query: "q", FileContext: "r"})
	assert.NotContains(t, p.Turns[0].Content, knowledgeBegin)
}

func TestReportPrompt_EnforcesEveryBudget(t *testing.T) {
	var history []commonModels.ConversationTurn
	for i := 0; i < 10; i++ {
		role := commonModels.RoleUser
		if i%2 == 1 {
			role = commonModels.RoleAssistant
		}
		history = append(history, commonModels.ConversationTurn{Role: role, Content: fmt.Sprintf("turn %d", i)})
	}
	file := strings.Repeat("f", 10000)
	kb := strings.Repeat("k", 3000)

	p := ReportPrompt(focusedRule, Input{Query: "q", FileContext: file, KnowledgeContext: kb, History: history})

	require.Len(t, p.Turns, config.MaxHistoryTurns+1)
	assert.Equal(t, "turn 4", p.Turns[0].Content)
	msg := p.Turns[len(p.Turns)-1].Content
	assert.Contains(t, msg, strings.Repeat("f", config.MaxFileContentChars)+fileProcessor.TruncationMarker)
	assert.NotContains(t, msg, strings.Repeat("f", config.MaxFileContentChars+1))
	assert.Contains(t, msg, strings.Repeat("k", config.MaxKnowledgeContextChars)+retriever.TruncationMarker)
	assert.NotContains(t, msg, strings.Repeat("k", config.MaxKnowledgeContextChars+1))
}

func TestReportPrompt_EveryUploadKeepsItsOwnBudget(t *testing.T) {
	files := []commonModels.UploadedFile{
		{Name: "report.pdf", Type: commonModels.PDF, Content: strings.Repeat("r", 3900)},
		{Name: "notes.txt", Type: commonModels.TXT, Content: "SECOND FILE"},
		{Name: "big.txt", Type: commonModels.TXT, Content: strings.Repeat("b", 6000)},
	}
	in := Input{Query: "what stands out", Files: files}
	require.True(t, in.HasFileContext())

	msg := ReportPrompt(focusedRule, in).Turns[0].Content

	assert.Contains(t, msg, strings.Repeat("r", 3900)+"\n")
	assert.Contains(t, msg, "File: notes.txt (.txt)")
	assert.Contains(t, msg, "SECOND FILE")
	assert.Contains(t, msg, strings.Repeat("b", config.MaxFileContentChars)+fileProcessor.TruncationMarker)
	assert.NotContains(t, msg, strings.Repeat("b", config.MaxFileContentChars+1))
	assert.Contains(t, msg, fileProcessor.ContextEnd)
	assert.Less(t, strings.Index(msg, fileProcessor.ContextEnd), strings.Index(msg, reportEnd))
}

func TestReportPrompt_CallerTextWinsOverUploads(t *testing.T) {
	in := Input{
		Query:       "q",
		FileContext: "pasted report",
		Files:       []commonModels.UploadedFile{{Name: "a.txt", Type: commonModels.TXT, Content: "uploaded"}},
	}
	msg := ReportPrompt(focusedRule, in).Turns[0].Content
	assert.Contains(t, msg, "pasted report")
	assert.NotContains(t, msg, "uploaded")
	assert.False(t, Input{Query: "q", FileContext: "  "}.HasFileContext())
}

func TestDomainPrompt(t *testing.T) {
	p := DomainPrompt(Input{Query: "What is MCI?", KnowledgeContext: "[lifestyle]: walk daily", FileContext: "SECRET REPORT"})

	assert.Equal(t, chatModel.IntentDomain, p.Intent)
	assert.Contains(t, p.System, "vascular cognitive impairment (VCI)")
	msg := p.Turns[0].Content
	assert.Contains(t, msg, "KNOWLEDGE BASE:\n[lifestyle]: walk daily")
	assert.Contains(t, msg, "QUESTION: What is MCI?")
	assert.NotContains(t, msg, "SECRET REPORT")

	bare := DomainPrompt(Input{Query: "hello"})
	assert.Equal(t, "hello", bare.Turns[0].Content)
}

func TestTrimHistory(t *testing.T) {
	got := TrimHistory([]commonModels.ConversationTurn{
		{Role: commonModels.RoleUser, Content: ""},
		{Role: "system", Content: "odd"},
		{Role: commonModels.RoleAssistant, Content: "a"},
	})
	assert.Equal(t, []commonModels.ConversationTurn{
		{Role: commonModels.RoleUser, Content: "odd"},
		{Role: commonModels.RoleAssistant, Content: "a"},
	}, got)
}

func TestFormatReportReply(t *testing.T) {
	in := "Your Results by Game: • Speed: 28 – HIGH • Memory: 12 – LOW Next Steps: • walk"
	want := "Your Results by Game:\n\n• Speed: 28 – HIGH\n• Memory: 12 – LOW Next Steps:\n\n• walk"
	assert.Equal(t, want, FormatReportReply(in))
	assert.Equal(t, "", FormatReportReply(""))
	assert.Equal(t, "plain", FormatReportReply("  plain \n"))
}

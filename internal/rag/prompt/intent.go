package prompt

import (
	"strings"

	"github.com/akolanti/cogcompanion/internal/domain/chatModel"
)

// Rule pairs an intent predicate with the instruction template that shapes the
// answer. A rule with an empty Template hands the turn to the domain path.
type Rule struct {
	Intent   chatModel.Intent
	Matches  func(lowerQuery string) bool
	Template string
}

var conceptPhrases = []string{
	"what is mci",
	"what is mild cognitive impairment",
	"explain mci",
	"explain mild cognitive impairment",
	"what is dementia",
	"what is cognitive impairment",
}

var personalizationPhrases = []string{
	"personalize my plan",
	"personalise my plan",
	"personalized plan",
	"personalised plan",
	"ask me questions",
}

var fullPlanPhrases = []string{
	"action plan",
	"create a plan",
	"create an action plan",
	"personalized cognitive health plan",
	"personalised cognitive health plan",
	"give me personalized advice based on my report",
	"give me personalised advice based on my report",
	"overall plan",
	"next steps",
	"next action",
	"next actions",
	"what are my next actions",
	"what are my next steps",
	"what should i do next",
	"what should i do now",
}

// reportRules are evaluated in order and the first match wins.
var reportRules = []Rule{
	{Intent: chatModel.IntentConcept, Matches: containsAny(conceptPhrases)},
	{Intent: chatModel.IntentScores, Matches: wantsScoresOnly, Template: scoresTemplate},
	{Intent: chatModel.IntentPersonalization, Matches: containsAny(personalizationPhrases), Template: personalizationTemplate},
	{Intent: chatModel.IntentFullPlan, Matches: containsAny(fullPlanPhrases), Template: fullPlanTemplate},
}

var focusedRule = Rule{Intent: chatModel.IntentFocused, Template: focusedTemplate}

// Route classifies a question asked against an uploaded report.
func Route(query string) Rule {
	q := strings.ToLower(query)
	for _, r := range reportRules {
		if r.Matches(q) {
			return r
		}
	}
	return focusedRule
}

// Rules exposes the routing table in precedence order, default last.
func Rules() []Rule {
	out := make([]Rule, 0, len(reportRules)+1)
	out = append(out, reportRules...)
	return append(out, focusedRule)
}

func containsAny(phrases []string) func(string) bool {
	return func(q string) bool {
		for _, p := range phrases {
			if strings.Contains(q, p) {
				return true
			}
		}
		return false
	}
}

func wantsScoresOnly(q string) bool {
	return strings.Contains(q, "score") &&
		(strings.Contains(q, "each game") || strings.Contains(q, "exact score") || strings.Contains(q, "scores"))
}

package summarizer

import (
	"regexp"
	"strings"
)

var (
	fractionPattern = regexp.MustCompile(`\d+(?:\.\d+)?/\d+(?:\.\d+)?`)
	scorePattern    = regexp.MustCompile(`(?i)\b(?:your|average) score\s*:?\s*(\d+(?:\.\d+)?)`)
	labelPattern    = regexp.MustCompile(`\b(?:WEAK|AVERAGE|STRONG|ADEQUATE)\b`)
)

// scoreToken is a figure taken from a report section. value is what the
// summary has to contain, text is what gets appended when it does not.
type scoreToken struct {
	text  string
	value string
}

func scoreTokens(section string) []scoreToken {
	var tokens []scoreToken
	seen := map[string]bool{}
	add := func(text, value string) {
		if seen[text] {
			return
		}
		seen[text] = true
		tokens = append(tokens, scoreToken{text: text, value: value})
	}
	for _, m := range fractionPattern.FindAllString(section, -1) {
		add(m, m)
	}
	for _, m := range scorePattern.FindAllStringSubmatch(section, -1) {
		add(strings.Join(strings.Fields(m[0]), " "), m[1])
	}
	for _, m := range labelPattern.FindAllString(section, -1) {
		add(m, m)
	}
	return tokens
}

// keepScores appends, verbatim, every score or label of section that summary
// lost. Labels are matched case-sensitively so "average" does not stand in for
// AVERAGE.
func keepScores(section, summary string) string {
	var missing []string
	for _, tok := range scoreTokens(section) {
		if !strings.Contains(summary, tok.value) {
			missing = append(missing, tok.text)
		}
	}
	if len(missing) == 0 {
		return summary
	}
	line := "Scores: " + strings.Join(missing, ", ")
	if summary == "" {
		return line
	}
	return summary + "\n\n" + line
}

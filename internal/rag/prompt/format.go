package prompt

import "strings"

var replyHeaders = []string{"Your Results by Game:", "What This Means:", "Next Steps:"}

// FormatReportReply puts section headers and inline bullets on their own lines.
func FormatReportReply(text string) string {
	if text == "" {
		return text
	}
	for _, h := range replyHeaders {
		text = strings.ReplaceAll(text, h, h+"\n")
	}
	text = strings.ReplaceAll(text, " • ", "\n• ")
	text = strings.ReplaceAll(text, "Next Steps:\n•", "Next Steps:\n\n•")
	return strings.TrimSpace(text)
}

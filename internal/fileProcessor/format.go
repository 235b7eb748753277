package fileProcessor

import (
	"strings"

	"github.com/akolanti/cogcompanion/internal/adapter/utils"
	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
)

const (
	TruncationMarker = "\n\n[... file content truncated for length ...]"

	ContextBegin = "[CONTEXT FROM UPLOADED FILES]"
	ContextEnd   = "[END OF FILE CONTEXT]"
)

var rule = strings.Repeat("=", 60)

// CapContent applies the per-file prompt budget. It is safe to apply more than once.
func CapContent(content string) string {
	return utils.Truncate(content, config.MaxFileContentChars, TruncationMarker)
}

// FormatForPrompt renders one upload between rule lines with its name and type.
func FormatForPrompt(file commonModels.UploadedFile) string {
	var b strings.Builder
	b.WriteString("File: " + file.Name + " (" + string(file.Type) + ")\n")
	b.WriteString(rule + "\n")
	b.WriteString(CapContent(file.Content))
	b.WriteString("\n" + rule + "\n")
	return b.String()
}

// ContextBlock wraps every upload of a session in one delimited block, or returns
// "" when there are none.
func ContextBlock(files []commonModels.UploadedFile) string {
	if len(files) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(rule + "\n" + ContextBegin + "\n" + rule + "\n\n")
	for _, f := range files {
		b.WriteString(FormatForPrompt(f))
		b.WriteString("\n\n")
	}
	b.WriteString(rule + "\n" + ContextEnd + "\n" + rule)
	return b.String()
}

package summarizer

import (
	"strings"
	"unicode/utf8"
)

// ChunkText splits text on blank-line paragraph boundaries into at most
// targetChunks pieces. Paragraphs are accumulated greedily up to
// max(minChunkChars, total/targetChunks) characters; whatever remains once
// targetChunks-1 chunks are closed goes into the last chunk, which can therefore
// be much larger than the others.
func ChunkText(text string, targetChunks, minChunkChars int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if targetChunks < 1 {
		targetChunks = 1
	}

	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	if len(paragraphs) == 0 {
		return []string{text}
	}

	approx := max(minChunkChars, utf8.RuneCountInString(text)/targetChunks)

	var chunks []string
	var current []string
	currentLen := 0
	for _, para := range paragraphs {
		n := utf8.RuneCountInString(para)
		if len(current) > 0 && currentLen+n > approx && len(chunks) < targetChunks-1 {
			chunks = append(chunks, strings.Join(current, "\n\n"))
			current = []string{para}
			currentLen = n
			continue
		}
		current = append(current, para)
		currentLen += n
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, "\n\n"))
	}

	if len(chunks) > targetChunks {
		tail := strings.Join(chunks[targetChunks-1:], "\n\n")
		chunks = append(chunks[:targetChunks-1], tail)
	}
	return chunks
}

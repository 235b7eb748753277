package fileProcessor

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/akolanti/cogcompanion/internal/adapter/utils"
	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/lu4p/cat"
	"golang.org/x/text/encoding/charmap"
)

const jsonTruncationMarker = "\n\n[... content truncated ...]"

// extractText decodes utf-8 and falls back to latin-1.
func extractText(_ context.Context, data []byte) (string, error) {
	if utf8.Valid(data) {
		return strings.TrimSpace(string(data)), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode text: %w", err)
	}
	return strings.TrimSpace(string(decoded)), nil
}

// extractDocument reads .docx, .odt and .rtf files.
func extractDocument(_ context.Context, data []byte) (string, error) {
	text, err := cat.FromBytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to extract document: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func extractCSV(_ context.Context, data []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimSpace(data)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("CSV Data:\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	b.WriteString(strings.Join(rows[0], " | ") + "\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	body := rows[1:]
	for _, row := range utils.FirstN(body, config.MaxTabularRows) {
		b.WriteString(strings.Join(row, " | ") + "\n")
	}
	if len(body) > config.MaxTabularRows {
		fmt.Fprintf(&b, "\n... and %d more rows\n", len(body)-config.MaxTabularRows)
	}
	return strings.TrimSpace(b.String()), nil
}

// extractJSON pretty-prints the document, keeping its key order.
func extractJSON(_ context.Context, data []byte) (string, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(data), "", "  "); err != nil {
		return "", fmt.Errorf("failed to parse json: %w", err)
	}
	return utils.Truncate(out.String(), config.MaxJSONContentChars, jsonTruncationMarker), nil
}

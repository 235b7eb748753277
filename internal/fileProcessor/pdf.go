package fileProcessor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/cogcompanion/internal/adapter/utils"
	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/dslipak/pdf"
)

const pdfTruncationMarker = "\n\n[... PDF content truncated for internal processing ...]"

var errPageTimeout = errors.New("page extraction timed out")

type rawPage struct {
	Number  int
	Content string
}

// extractPDF reads every page so the summarizer sees the whole report. Pages that
// fail or time out are skipped.
func extractPDF(ctx context.Context, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []rawPage
	numPages := reader.NumPage()
	logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := protectExtract(ctx, page, config.PDFPageTimeout)
		if err != nil {
			logger.Warn("Error parsing page content", "page", i, "error", err)
			continue
		}
		pages = append(pages, rawPage{Number: i, Content: content})
	}
	return utils.Truncate(joinPages(pages), config.MaxPDFContentChars, pdfTruncationMarker), nil
}

func joinPages(pages []rawPage) string {
	var b strings.Builder
	for _, p := range pages {
		fmt.Fprintf(&b, "\n--- Page %d ---\n", p.Number)
		b.WriteString(p.Content)
	}
	return strings.TrimSpace(b.String())
}

// protectExtract bounds a single page's text extraction, which can hang or panic
// on broken content streams.
func protectExtract(ctx context.Context, page pdf.Page, timeout time.Duration) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{err: fmt.Errorf("page extraction panic: %v", r)}
			}
		}()
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-timer.C:
		return "", errPageTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

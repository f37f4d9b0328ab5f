// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docparse extracts bibliographic fields from patent PDF documents.
// Extraction is best-effort: a field the patterns cannot find is left empty
// rather than failing the record. Only a document with no obtainable text
// layer at all fails, with apperr.ErrUnreadable.
package docparse

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/patent-intake/internal/apperr"
	"github.com/pdiddy/patent-intake/pkg/types"
)

// minTextLen is the threshold below which the layout-aware first-page
// extraction is considered suspicious and the whole-document fallback is
// tried.
const minTextLen = 100

var (
	crlfReplacer     = strings.NewReplacer("\r\n", "\n")
	hyphenBreak      = regexp.MustCompile(`(\w)-\n(\w)`)
	horizontalRuns   = regexp.MustCompile(`[ \t]{2,}`)
	excessBlankLines = regexp.MustCompile(`\n{3,}`)
	listSeparators   = regexp.MustCompile(`[；;，,、]`)
)

// Extract parses a patent PDF and returns a best-effort record. The text
// layer is obtained with a layout-aware pass over the first page, falling
// back to whole-document plain text when the result is empty or suspiciously
// short.
func Extract(data []byte) (types.PatentRecord, error) {
	text, err := extractText(data)
	if err != nil {
		return types.PatentRecord{}, err
	}
	return parseText(text), nil
}

// extractText obtains the raw text layer, or apperr.ErrUnreadable when no
// method yields any text.
func extractText(data []byte) (text string, err error) {
	// The underlying parser panics on some malformed xref tables; treat
	// that the same as an unreadable document.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: parser failure: %v", apperr.ErrUnreadable, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrUnreadable, err)
	}

	text = firstPageText(reader)
	if len(text) < minTextLen {
		if whole := wholeDocumentText(reader); len(whole) > len(text) {
			text = whole
		}
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text layer found", apperr.ErrUnreadable)
	}
	return text, nil
}

// firstPageText runs the layout-aware row extraction over page 1.
func firstPageText(reader *pdf.Reader) string {
	if reader.NumPage() < 1 {
		return ""
	}
	page := reader.Page(1)
	if page.V.IsNull() {
		return ""
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}

	var b strings.Builder
	for _, row := range rows {
		for _, word := range row.Content {
			b.WriteString(word.S)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// wholeDocumentText is the simpler fallback extraction method.
func wholeDocumentText(reader *pdf.Reader) string {
	r, err := reader.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	return string(data)
}

// parseText applies preprocessing and the per-field pattern lists to an
// already-extracted text layer.
func parseText(text string) types.PatentRecord {
	text = preprocess(text)

	return types.PatentRecord{
		PatentNumber:        extractPatentNumber(text),
		TitleNative:         extractTitle(text),
		Applicants:          extractParties(text, applicantPatterns),
		Inventors:           extractParties(text, inventorPatterns),
		ApplicationDate:     extractDate(text, applicationDatePatterns),
		PublicationDate:     extractDate(text, publicationDatePatterns),
		ClassificationCodes: extractClassifications(text),
		AbstractNative:      extractAbstract(text),
		Source:              types.SourceDocumentParse,
		RetrievedAt:         time.Now().UTC(),
	}
}

// preprocess normalizes line endings, rejoins hyphen-broken words across
// line breaks, and collapses runs of horizontal whitespace.
func preprocess(text string) string {
	text = crlfReplacer.Replace(text)
	text = hyphenBreak.ReplaceAllString(text, "$1$2")
	return horizontalRuns.ReplaceAllString(text, " ")
}

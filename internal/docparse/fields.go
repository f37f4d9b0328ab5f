// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docparse

import (
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/patent-intake/internal/patnum"
)

// Each field carries an ordered pattern list tried most-specific-first:
// labeled CJK field markers before generic alphanumeric forms. The first
// matching pattern wins, so the order of these slices is load-bearing.

var patentNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:专利号|公开号|申请号)[：:\s]*([A-Z]{0,2}\d{6,}[A-Z]?\d?)`),
	regexp.MustCompile(`(?i)(?:Patent|Appl)[\w\s]*No[\.:\s]*([A-Z]{0,2}\d+[,/\d]*)`),
	regexp.MustCompile(`(?i)(EP|WO|PCT)\s*([A-Z]{0,2}\d+)`),
	regexp.MustCompile(`\b([A-Z]{2,3}\d{4,}[A-Z]?\d?)\b`),
}

var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`名称[：:\s]*(.+?)\n`),
	regexp.MustCompile(`Title[：:\s]*(.+?)\n`),
	regexp.MustCompile(`(?:发明名称|专利名称)[：:\s]*(.+?)\n`),
}

var applicantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`申请人[：:\s]*(.+?)\n`),
	regexp.MustCompile(`(?i)Applicants?[：:\s]*(.+?)\n`),
	regexp.MustCompile(`(?i)Assignees?[：:\s]*(.+?)\n`),
}

var inventorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`发明人[：:\s]*(.+?)\n`),
	regexp.MustCompile(`(?i)Inventors?[：:\s]*(.+?)\n`),
}

var applicationDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`申请日[：:\s]*(\d{4}[年\-\.]\d{1,2}[月\-\.]\d{1,2})`),
	regexp.MustCompile(`(?i)Filed[:\s]*(\w+\s\d{1,2},\s\d{4})`),
}

var publicationDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`公开日[：:\s]*(\d{4}[年\-\.]\d{1,2}[月\-\.]\d{1,2})`),
	regexp.MustCompile(`(?i)Published[:\s]*(\w+\s\d{1,2},\s\d{4})`),
}

var classificationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`IPC分类号[：:\s]*(.+?)\n`),
	regexp.MustCompile(`Int\. Cl\.\s*([A-Z]\d{2}[A-Z]\s*\d+/\d+)`),
}

var (
	abstractStartMarkers = []string{"摘要", "Abstract"}
	abstractEndMarkers   = []string{"权利要求", "Claims", "技术领域"}
)

// extractPatentNumber finds the first textual candidate that survives
// validation. A matched but invalid candidate is discarded, never coerced.
func extractPatentNumber(text string) string {
	for _, pattern := range patentNumberPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		// Join capture groups; multi-group patterns split prefix and digits.
		candidate := strings.Join(m[1:], "")
		if ok, normalized := patnum.Normalize(candidate); ok {
			return normalized
		}
	}
	return ""
}

func extractTitle(text string) string {
	for _, pattern := range titlePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// extractParties matches the first labeled line and splits it on CJK and
// Western list separators, dropping empty segments.
func extractParties(text string, patterns []*regexp.Regexp) []string {
	for _, pattern := range patterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		var names []string
		for _, segment := range listSeparators.Split(m[1], -1) {
			if trimmed := strings.TrimSpace(segment); trimmed != "" {
				names = append(names, trimmed)
			}
		}
		return names
	}
	return nil
}

// extractDate supports two literal styles: the CJK form (markers replaced
// with separators) and the English long form. Parse failures move on to the
// next pattern and ultimately yield the zero time, silently.
func extractDate(text string, patterns []*regexp.Regexp) time.Time {
	for _, pattern := range patterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if t, ok := parseDateLiteral(m[1]); ok {
			return t
		}
	}
	return time.Time{}
}

func parseDateLiteral(literal string) (time.Time, bool) {
	if strings.ContainsAny(literal, "年月日") {
		normalized := strings.NewReplacer("年", "-", "月", "-", "日", "").Replace(literal)
		normalized = strings.ReplaceAll(normalized, ".", "-")
		if t, err := time.Parse("2006-1-2", normalized); err == nil {
			return t, true
		}
		return time.Time{}, false
	}
	if t, err := time.Parse("January 2, 2006", literal); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func extractClassifications(text string) []string {
	for _, pattern := range classificationPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		var codes []string
		for _, segment := range listSeparators.Split(m[1], -1) {
			if trimmed := strings.TrimSpace(segment); trimmed != "" {
				codes = append(codes, trimmed)
			}
		}
		return codes
	}
	return nil
}

// extractAbstract locates the first recognized start marker and bounds the
// excerpt at the first end marker after it; without an end marker the
// remainder of the text is taken. Runs of three or more blank lines
// collapse to one.
func extractAbstract(text string) string {
	for _, marker := range abstractStartMarkers {
		idx := strings.Index(text, marker)
		if idx < 0 {
			continue
		}
		start := idx + len(marker)

		end := len(text)
		for _, endMarker := range abstractEndMarkers {
			if rel := strings.Index(text[start:], endMarker); rel >= 0 {
				end = start + rel
				break
			}
		}

		abstract := strings.TrimSpace(text[start:end])
		return excessBlankLines.ReplaceAllString(abstract, "\n\n")
	}
	return ""
}

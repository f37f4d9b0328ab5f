// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ops

import (
	"sort"
	"time"

	"github.com/pdiddy/patent-intake/internal/patnum"
	"github.com/pdiddy/patent-intake/pkg/types"
)

// The office does not guarantee a single response shape: any textual field
// may arrive as a plain string, a language-code map, or a list. The helpers
// in this file tolerate all three.

// normalizeBiblio flattens a raw bibliographic response into a
// PatentRecord. requestedNumber is the already-normalized number the query
// was built from; it is kept when the response carries no valid number of
// its own.
func normalizeBiblio(raw map[string]any, requestedNumber string) types.PatentRecord {
	rec := types.PatentRecord{
		PatentNumber: requestedNumber,
		Source:       types.SourceOfficeAPI,
		RetrievedAt:  time.Now().UTC(),
	}

	if num := textField(dig(raw, "publication", "document-id", "doc-number")); num != "" {
		if ok, normalized := patnum.Normalize(num); ok {
			rec.PatentNumber = normalized
		}
	}

	rec.TitleNative = textField(dig(raw, "bibliographic-data", "invention-title"))
	rec.AbstractNative = abstractText(raw)

	rec.ApplicationDate = compactDate(dig(raw, "bibliographic-data", "application-reference"))
	rec.PublicationDate = compactDate(dig(raw, "publication", "document-id"))

	parties := dig(raw, "bibliographic-data", "parties")
	rec.Applicants = partyNames(dig(parties, "applicants", "applicant"))
	rec.Inventors = partyNames(dig(parties, "inventors", "inventor"))

	rec.ClassificationCodes = classificationCodes(dig(raw, "bibliographic-data", "classifications-ipcr"))

	return rec
}

// dig walks nested map keys, returning nil as soon as a step is missing or
// not a map.
func dig(v any, keys ...string) any {
	for _, key := range keys {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = m[key]
	}
	return v
}

// textField extracts a string from the three documented shapes: a plain
// string, a language-code map (prefer "en", else the value of the smallest
// key for determinism), or a list (first element).
func textField(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if en, ok := val["en"].(string); ok {
			return en
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s := textField(val[k]); s != "" {
				return s
			}
		}
	case []any:
		if len(val) > 0 {
			return textField(val[0])
		}
	}
	return ""
}

// abstractText pulls the abstract out of a biblio response. The office
// nests it under "abstract", sometimes with a "p" paragraph wrapper.
func abstractText(raw map[string]any) string {
	abs := raw["abstract"]
	if abs == nil {
		return ""
	}
	if p := dig(abs, "p"); p != nil {
		if s := textField(p); s != "" {
			return s
		}
	}
	return textField(abs)
}

// compactDate parses the office's 8-digit YYYYMMDD date, accepting either a
// bare string or an object with a "date" member. Unparseable or absent
// dates map to the zero time, never a fabricated date.
func compactDate(v any) time.Time {
	var dateStr string
	switch val := v.(type) {
	case string:
		dateStr = val
	case map[string]any:
		dateStr, _ = val["date"].(string)
	default:
		return time.Time{}
	}

	t, err := time.Parse("20060102", dateStr)
	if err != nil {
		return time.Time{}
	}
	return t
}

// partyNames normalizes an applicant/inventor entry, which may be a single
// object or a sequence, into an ordered name list. Entries without a
// usable nested name are skipped.
func partyNames(v any) []string {
	var entries []any
	switch val := v.(type) {
	case map[string]any:
		entries = []any{val}
	case []any:
		entries = val
	default:
		return nil
	}

	var names []string
	for _, entry := range entries {
		if name := textField(dig(entry, "name", "name")); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// classificationCodes extracts IPC codes from classifications-ipcr, which
// wraps a single object or a sequence under "classification-ipcr".
func classificationCodes(v any) []string {
	inner := dig(v, "classification-ipcr")

	var entries []any
	switch val := inner.(type) {
	case map[string]any:
		entries = []any{val}
	case []any:
		entries = val
	default:
		return nil
	}

	var codes []string
	for _, entry := range entries {
		if text := textField(dig(entry, "text")); text != "" {
			codes = append(codes, text)
		}
	}
	return codes
}

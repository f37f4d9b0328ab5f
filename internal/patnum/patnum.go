// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package patnum validates and canonicalizes patent publication numbers.
// Every entry point that accepts a number (CLI args, API handlers, values
// extracted from documents) routes through Normalize before the number is
// trusted or persisted.
package patnum

import (
	"regexp"
	"strings"
)

// Two recognized families. Domestic numbers canonicalize to a "CN" prefix,
// international (PCT) numbers to "WO".
var (
	// domesticPattern: optional CN prefix, 8-12 digits, optional kind
	// letter and optional trailing digit (e.g. "CN109670517A", "CN202310001234A1").
	domesticPattern = regexp.MustCompile(`^(CN)?\d{8,12}[A-Z]?\d?$`)

	// internationalPattern: optional WO prefix, 4-digit year, 2 letters,
	// 5-7 digits (e.g. "WO2023CN12345").
	internationalPattern = regexp.MustCompile(`^(WO)?\d{4}[A-Z]{2}\d{5,7}$`)

	stripPattern = regexp.MustCompile(`[\s\-\.]`)
)

// Normalize strips whitespace, hyphens, and periods, upper-cases the
// remainder, and matches it against the recognized families. It returns the
// canonical form, or ok=false and an empty string for anything that does
// not match. Normalize is pure and idempotent on its own output.
func Normalize(raw string) (ok bool, normalized string) {
	if raw == "" {
		return false, ""
	}

	clean := stripPattern.ReplaceAllString(strings.ToUpper(raw), "")

	if domesticPattern.MatchString(clean) {
		return true, "CN" + strings.TrimPrefix(clean, "CN")
	}

	if internationalPattern.MatchString(clean) {
		return true, "WO" + strings.TrimPrefix(clean, "WO")
	}

	return false, ""
}

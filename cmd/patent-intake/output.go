// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/patent-intake/pkg/types"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printRecord writes a human-readable summary of one record.
func printRecord(w io.Writer, rec types.PatentRecord) {
	fmt.Fprintf(w, "Patent number:  %s\n", orDash(rec.PatentNumber))
	fmt.Fprintf(w, "Title:          %s\n", orDash(rec.TitleNative))
	if rec.TitleTranslated != "" {
		fmt.Fprintf(w, "Title (en):     %s\n", rec.TitleTranslated)
	}
	fmt.Fprintf(w, "Applicants:     %s\n", orDash(strings.Join(rec.Applicants, "; ")))
	fmt.Fprintf(w, "Inventors:      %s\n", orDash(strings.Join(rec.Inventors, "; ")))
	fmt.Fprintf(w, "Filed:          %s\n", dashDate(rec.ApplicationDate))
	fmt.Fprintf(w, "Published:      %s\n", dashDate(rec.PublicationDate))
	fmt.Fprintf(w, "Classification: %s\n", orDash(strings.Join(rec.ClassificationCodes, "; ")))
	fmt.Fprintf(w, "Source:         %s\n", rec.Source)
	if rec.AbstractNative != "" {
		fmt.Fprintf(w, "\nAbstract:\n%s\n", rec.AbstractNative)
	}
	if rec.AbstractTranslated != "" {
		fmt.Fprintf(w, "\nAbstract (en):\n%s\n", rec.AbstractTranslated)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func dashDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

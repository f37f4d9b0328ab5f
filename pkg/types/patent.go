// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared record and configuration types used
// across the intake pipeline stages.
package types

import "time"

// RecordSource identifies where a PatentRecord came from.
type RecordSource string

const (
	// SourceOfficeAPI marks records fetched from the patent office API.
	SourceOfficeAPI RecordSource = "office-api"

	// SourceDocumentParse marks records extracted from an uploaded document.
	SourceDocumentParse RecordSource = "document-parse"
)

// PatentRecord is the normalized bibliographic record produced by the
// office-API client and the document extractor. All fields except
// PatentNumber are best-effort: an extraction or parse miss leaves the
// field empty rather than failing the record.
//
// PatentNumber, when non-empty, is always the output of patnum.Normalize.
// A candidate that does not validate is dropped, never stored raw.
type PatentRecord struct {
	PatentNumber string `json:"patent_number,omitempty" yaml:"patent_number,omitempty"`

	TitleNative     string `json:"title_native,omitempty" yaml:"title_native,omitempty"`
	TitleTranslated string `json:"title_translated,omitempty" yaml:"title_translated,omitempty"`

	AbstractNative     string `json:"abstract_native,omitempty" yaml:"abstract_native,omitempty"`
	AbstractTranslated string `json:"abstract_translated,omitempty" yaml:"abstract_translated,omitempty"`

	Applicants []string `json:"applicants,omitempty" yaml:"applicants,omitempty"`
	Inventors  []string `json:"inventors,omitempty" yaml:"inventors,omitempty"`

	// ApplicationDate and PublicationDate use the zero time for "absent";
	// an unparseable upstream date is never coerced into a fabricated one.
	ApplicationDate time.Time `json:"application_date,omitzero" yaml:"application_date,omitempty"`
	PublicationDate time.Time `json:"publication_date,omitzero" yaml:"publication_date,omitempty"`

	ClassificationCodes []string `json:"classification_codes,omitempty" yaml:"classification_codes,omitempty"`

	Source RecordSource `json:"source" yaml:"source"`

	RetrievedAt time.Time `json:"retrieved_at,omitzero" yaml:"retrieved_at,omitempty"`
}

// TranslationSource identifies which rung of the fallback chain produced
// a translation.
type TranslationSource string

const (
	// SourceOfficial is a translation taken from the patent office's own
	// multi-lingual record.
	SourceOfficial TranslationSource = "official"

	// SourceMachine is a best-effort machine translation.
	SourceMachine TranslationSource = "machine"

	// SourceOriginal means no engine answered and the input text was
	// returned unmodified.
	SourceOriginal TranslationSource = "original"

	// SourceNone means there was nothing to translate.
	SourceNone TranslationSource = "none"
)

// Quality returns the deterministic quality score for a translation source.
func (s TranslationSource) Quality() float64 {
	switch s {
	case SourceOfficial:
		return 0.95
	case SourceMachine:
		return 0.75
	default:
		return 0.0
	}
}

// TranslationResult is the outcome of one pass through the fallback chain.
type TranslationResult struct {
	Text    string            `json:"text" yaml:"text"`
	Source  TranslationSource `json:"source" yaml:"source"`
	Quality float64           `json:"quality" yaml:"quality"`
}

// FieldTranslation is a stored translation of one named field of a
// submission ("title" or "abstract").
type FieldTranslation struct {
	Field             string `json:"field" yaml:"field"`
	TranslationResult `yaml:",inline"`
}

// Submission is a persisted intake record: a normalized PatentRecord plus
// provenance and any translations saved for it.
type Submission struct {
	ID           string             `json:"id" yaml:"id"`
	Record       PatentRecord       `json:"record" yaml:"record"`
	SourceFile   string             `json:"source_file,omitempty" yaml:"source_file,omitempty"`
	CreatedAt    time.Time          `json:"created_at" yaml:"created_at"`
	Translations []FieldTranslation `json:"translations,omitempty" yaml:"translations,omitempty"`
}

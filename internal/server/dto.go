// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"github.com/pdiddy/patent-intake/pkg/types"
)

// TranslateRequest is the request body for POST /api/translate.
type TranslateRequest struct {
	Text           string `json:"text"`
	PatentNumber   string `json:"patent_number,omitempty"`
	PreferOfficial bool   `json:"prefer_official,omitempty"`
}

// DocumentResponse is returned by POST /api/documents: the record
// extracted from the upload, plus the submission ID when it was saved.
type DocumentResponse struct {
	Record       types.PatentRecord `json:"record"`
	SubmissionID string             `json:"submission_id,omitempty"`
}

// SubmissionListResponse wraps submission listings.
type SubmissionListResponse struct {
	Submissions []types.Submission `json:"submissions"`
	Total       int                `json:"total"`
}

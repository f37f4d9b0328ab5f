// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docparse

import (
	"errors"
	"testing"
	"time"

	"github.com/pdiddy/patent-intake/internal/apperr"
	"github.com/pdiddy/patent-intake/pkg/types"
)

func TestExtract_GarbageBytesUnreadable(t *testing.T) {
	_, err := Extract([]byte("this is not a pdf"))
	if !errors.Is(err, apperr.ErrUnreadable) {
		t.Fatalf("err = %v, want apperr.ErrUnreadable", err)
	}
}

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"crlf normalized", "a\r\nb", "a\nb"},
		{"hyphen break rejoined", "exam-\nple text", "example text"},
		{"horizontal runs collapsed", "a  \t  b", "a b"},
		{"single spaces kept", "a b c", "a b c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preprocess(tt.in); got != tt.want {
				t.Errorf("preprocess(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractPatentNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"labeled chinese marker", "公开号：CN109670517A\n", "CN109670517A"},
		{"labeled without prefix", "申请号: 201810123456\n", "CN201810123456"},
		// The English label pattern captures the prefix and digits but not
		// a trailing kind letter.
		{"english patent no", "Patent No. CN109670517\n", "CN109670517"},
		{"invalid candidate discarded", "专利号：123456\n", ""},
		{"no number at all", "nothing to see here\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractPatentNumber(tt.text); got != tt.want {
				t.Errorf("extractPatentNumber() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTitle(t *testing.T) {
	text := "发明名称：一种专利文本处理方法\n申请人：张三\n"
	if got := extractTitle(text); got != "一种专利文本处理方法" {
		t.Errorf("extractTitle() = %q", got)
	}

	if got := extractTitle("Title: Patent text processing\nrest\n"); got != "Patent text processing" {
		t.Errorf("extractTitle() = %q", got)
	}

	if got := extractTitle("no labels here\n"); got != "" {
		t.Errorf("extractTitle() = %q, want empty", got)
	}
}

func TestExtractParties(t *testing.T) {
	tests := []struct {
		name string
		text string
		pats int // 0 applicants, 1 inventors
		want []string
	}{
		{"chinese applicants split on cjk separator", "申请人：张三；李四\n", 0, []string{"张三", "李四"}},
		{"mixed separators", "申请人：甲公司，乙公司、丙公司\n", 0, []string{"甲公司", "乙公司", "丙公司"}},
		{"english assignee", "Assignee: Acme Ltd; Beta Corp\n", 0, []string{"Acme Ltd", "Beta Corp"}},
		{"inventors", "发明人：张三,李四\n", 1, []string{"张三", "李四"}},
		{"empty segments dropped", "申请人：张三；；\n", 0, []string{"张三"}},
		{"absent", "no parties\n", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patterns := applicantPatterns
			if tt.pats == 1 {
				patterns = inventorPatterns
			}
			got := extractParties(tt.text, patterns)
			if len(got) != len(tt.want) {
				t.Fatalf("extractParties() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("extractParties()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		pats []int // index set unused; application patterns throughout
		want time.Time
	}{
		{"cjk literal", "申请日：2018年10月15日\n", nil, time.Date(2018, 10, 15, 0, 0, 0, 0, time.UTC)},
		{"cjk single digit month", "申请日：2018年1月5日\n", nil, time.Date(2018, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"english long form", "Filed: October 15, 2018\n", nil, time.Date(2018, 10, 15, 0, 0, 0, 0, time.UTC)},
		{"garbled yields zero silently", "申请日：2018年13月45日\n", nil, time.Time{}},
		{"absent yields zero", "no dates\n", nil, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractDate(tt.text, applicationDatePatterns); !got.Equal(tt.want) {
				t.Errorf("extractDate() = %v, want %v", got, tt.want)
			}
		})
	}

	pub := extractDate("公开日：2019年4月26日\n", publicationDatePatterns)
	if !pub.Equal(time.Date(2019, 4, 26, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("publication date = %v", pub)
	}
}

func TestExtractClassifications(t *testing.T) {
	got := extractClassifications("IPC分类号：G06F 40/58；G06F 16/35\n")
	want := []string{"G06F 40/58", "G06F 16/35"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("extractClassifications() = %v, want %v", got, want)
	}

	got = extractClassifications("Int. Cl. G06F 40/58\nother\n")
	if len(got) != 1 || got[0] != "G06F 40/58" {
		t.Errorf("extractClassifications() = %v", got)
	}
}

func TestExtractAbstract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"bounded by end marker",
			"摘要\n本发明公开了一种方法。\n权利要求\n1. 一种方法",
			"本发明公开了一种方法。",
		},
		{
			"no end marker takes remainder",
			"Abstract\nA method is disclosed.",
			"A method is disclosed.",
		},
		{
			"blank line runs collapsed",
			"摘要\n第一段。\n\n\n\n第二段。\n权利要求",
			"第一段。\n\n第二段。",
		},
		{
			"no start marker",
			"nothing recognizable here",
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractAbstract(tt.text); got != tt.want {
				t.Errorf("extractAbstract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseText_FullDocument(t *testing.T) {
	text := "发明名称：一种专利文本处理方法\n" +
		"公开号：CN109670517A\n" +
		"申请人：甲公司；乙公司\n" +
		"发明人：张三；李四\n" +
		"申请日：2018年10月15日\n" +
		"公开日：2019年4月26日\n" +
		"IPC分类号：G06F 40/58\n" +
		"摘要\n本发明公开了一种专利文本处理方法。\n" +
		"权利要求\n1. 一种方法，其特征在于……\n"

	rec := parseText(text)

	if rec.PatentNumber != "CN109670517A" {
		t.Errorf("PatentNumber = %q", rec.PatentNumber)
	}
	if rec.TitleNative != "一种专利文本处理方法" {
		t.Errorf("TitleNative = %q", rec.TitleNative)
	}
	if len(rec.Applicants) != 2 || rec.Applicants[0] != "甲公司" {
		t.Errorf("Applicants = %v", rec.Applicants)
	}
	if len(rec.Inventors) != 2 || rec.Inventors[1] != "李四" {
		t.Errorf("Inventors = %v", rec.Inventors)
	}
	if rec.ApplicationDate.IsZero() || rec.PublicationDate.IsZero() {
		t.Errorf("dates = %v / %v", rec.ApplicationDate, rec.PublicationDate)
	}
	if rec.AbstractNative != "本发明公开了一种专利文本处理方法。" {
		t.Errorf("AbstractNative = %q", rec.AbstractNative)
	}
	if rec.Source != types.SourceDocumentParse {
		t.Errorf("Source = %q", rec.Source)
	}
}

func TestParseText_MissingFieldsStayEmpty(t *testing.T) {
	rec := parseText("完全没有可识别字段的文本，但足够长以通过预处理。\n")
	if rec.PatentNumber != "" || rec.TitleNative != "" || rec.AbstractNative != "" {
		t.Errorf("expected empty fields, got %+v", rec)
	}
	if rec.Applicants != nil || rec.Inventors != nil {
		t.Errorf("expected nil party lists, got %v / %v", rec.Applicants, rec.Inventors)
	}
	if !rec.ApplicationDate.IsZero() {
		t.Errorf("ApplicationDate = %v", rec.ApplicationDate)
	}
}

package sanitize

import (
	"strings"
	"testing"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "spaces and parentheses",
			input:    "My Report (final).pdf",
			expected: "My-Report-final.pdf",
		},
		{
			name:     "already clean",
			input:    "report_v2.pdf",
			expected: "report_v2.pdf",
		},
		{
			name:     "leading and trailing whitespace",
			input:    "  notes.txt  ",
			expected: "notes.txt",
		},
		{
			name:     "unicode punctuation",
			input:    "résumé — draft.docx",
			expected: "r-sum-draft.docx",
		},
		{
			name:     "zero-width space removed",
			input:    "file\u200Bname.txt",
			expected: "filename.txt",
		},
		{
			name:     "byte order mark stripped",
			input:    "\uFEFFreport.pdf",
			expected: "report.pdf",
		},
		{
			name:     "no extension",
			input:    "Meeting Notes",
			expected: "Meeting-Notes",
		},
		{
			name:     "only invalid characters",
			input:    "???",
			expected: "file",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FileName(tt.input)
			if got != tt.expected {
				t.Errorf("FileName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFileNameProducesSafeKeys(t *testing.T) {
	inputs := []string{
		"My Report (final).pdf",
		"photo 2024-01-02 09.15.00.jpg",
		"weird\tname\nwith\rcontrol.chars",
	}

	for _, in := range inputs {
		got := FileName(in)
		if strings.ContainsAny(got, " \t\n\r()") {
			t.Errorf("FileName(%q) = %q contains unsafe characters", in, got)
		}
	}
}

func TestFileNamePreservesExtension(t *testing.T) {
	got := FileName("My Report (final).pdf")
	if !strings.HasSuffix(got, ".pdf") {
		t.Errorf("FileName lost extension: %q", got)
	}
}

package s3

import (
	"context"
	"testing"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		key      string
		expected string
	}{
		{
			name:     "aws virtual-hosted style",
			opts:     Options{Bucket: "fileforge-data", Region: "us-east-1"},
			key:      "uploads/abc_report.pdf",
			expected: "https://fileforge-data.s3.us-east-1.amazonaws.com/uploads/abc_report.pdf",
		},
		{
			name:     "custom endpoint uses path style",
			opts:     Options{Bucket: "fileforge-data", Region: "us-east-1", Endpoint: "http://localhost:9000"},
			key:      "uploads/abc_report.pdf",
			expected: "http://localhost:9000/fileforge-data/uploads/abc_report.pdf",
		},
		{
			name:     "endpoint trailing slash trimmed",
			opts:     Options{Bucket: "b", Endpoint: "http://localhost:9000/"},
			key:      "k",
			expected: "http://localhost:9000/b/k",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{opts: tt.opts}
			got, err := c.PublicURL(context.Background(), tt.key)
			if err != nil {
				t.Fatalf("PublicURL returned error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("PublicURL = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPublicURLEmptyKey(t *testing.T) {
	c := &Client{opts: Options{Bucket: "b", Region: "r"}}
	if _, err := c.PublicURL(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestEscapeKey(t *testing.T) {
	got := escapeKey("uploads/a b/c#d")
	expected := "uploads/a%20b/c%23d"
	if got != expected {
		t.Errorf("escapeKey = %q, want %q", got, expected)
	}
}

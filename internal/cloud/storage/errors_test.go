package storage

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNetworkError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"timeout", errors.New("i/o timeout"), true},
		{"unexpected EOF", errors.New("unexpected EOF"), true},
		{"broken pipe", errors.New("write: broken pipe"), true},
		{"wrapped network error", fmt.Errorf("upload failed: %w", errors.New("network unreachable")), true},
		{"unrelated error", errors.New("invalid argument"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNetworkError(tt.err); got != tt.expected {
				t.Errorf("IsNetworkError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestIsCredentialError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"forbidden", errors.New("StatusCode: 403, request forbidden"), true},
		{"unauthorized", errors.New("401 Unauthorized"), true},
		{"expired token", errors.New("ExpiredToken: the provided token has expired"), true},
		{"unrelated error", errors.New("no such bucket"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCredentialError(tt.err); got != tt.expected {
				t.Errorf("IsCredentialError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

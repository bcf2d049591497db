package storage

import (
	"errors"
	"strings"
)

// Common storage operation errors
var (
	// ErrEmptyKey indicates an upload was attempted with no object key
	ErrEmptyKey = errors.New("empty object key")
	// ErrNotConfigured indicates no storage backend has been configured
	ErrNotConfigured = errors.New("object storage not configured")
)

// IsNetworkError checks if an error is network-related
// Useful for determining if an operation should be retried
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	networkIndicators := []string{
		"connection",    // connection refused, connection reset, etc.
		"timeout",       // i/o timeout, dial timeout, etc.
		"network",       // network unreachable, network error, etc.
		"eof",           // unexpected EOF
		"broken pipe",   // broken pipe
		"tls handshake", // TLS handshake errors
	}

	for _, indicator := range networkIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}

// IsCredentialError checks if an error is authentication/authorization related
// Useful for determining if credentials need to be refreshed
func IsCredentialError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	credentialIndicators := []string{
		"403",           // HTTP Forbidden
		"unauthorized",  // HTTP Unauthorized
		"expired",       // expired token/credential
		"expiredtoken",  // AWS specific
		"invalid token", // invalid authentication
	}

	for _, indicator := range credentialIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}

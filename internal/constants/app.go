package constants

import "time"

// Application identity
const (
	// AppName is used for the data directory and user-facing messages
	AppName = "fileforge"

	// DataDirName - directory under the user home dir holding the local store
	// (~/.fileforge). Each key of the local store is one file inside it.
	DataDirName = ".fileforge"

	// ConfigFileName - INI configuration file inside the data directory
	ConfigFileName = "config.ini"
)

// Local store keys
const (
	// HierarchyKey - single key holding the {files, folders} snapshot
	HierarchyKey = "fileforge/hierarchy"

	// ViewStateKey - key holding persisted view preferences (mode/tab/theme)
	ViewStateKey = "fileforge/viewstate"

	// CursorKey - key holding the current folder cursor between invocations
	CursorKey = "fileforge/cursor"
)

// Upload limits and defaults
const (
	// UploadKeyPrefix - prefix for generated object storage keys
	UploadKeyPrefix = "uploads"

	// DefaultContentType - fallback when an upload carries no declared type
	DefaultContentType = "application/octet-stream"

	// MinMaxConcurrent / MaxMaxConcurrent - bounds for --max-concurrent
	MinMaxConcurrent = 1
	MaxMaxConcurrent = 10

	// DefaultMaxConcurrent - concurrent uploads when the flag is omitted
	DefaultMaxConcurrent = 3
)

// HTTP client tuning for the session checker and URL verification
const (
	// SessionCheckTimeout - per-request timeout for the auth endpoint probe
	SessionCheckTimeout = 10 * time.Second

	// HTTPRetryMax - retry attempts for session/URL requests
	HTTPRetryMax = 3

	// HTTPRetryWaitMin / HTTPRetryWaitMax - retry backoff bounds
	HTTPRetryWaitMin = 500 * time.Millisecond
	HTTPRetryWaitMax = 5 * time.Second
)

// Event bus sizing
const (
	// EventBusDefaultBuffer - default per-subscriber channel buffer
	EventBusDefaultBuffer = 256

	// EventBusMaxBuffer - cap on per-subscriber channel buffer
	EventBusMaxBuffer = 4096
)

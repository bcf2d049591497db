// Package upload moves user-selected content into the remote object store
// and registers the result in the hierarchy.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/fileforge/fileforge/internal/cloud/storage"
	"github.com/fileforge/fileforge/internal/constants"
	"github.com/fileforge/fileforge/internal/events"
	"github.com/fileforge/fileforge/internal/hierarchy"
	"github.com/fileforge/fileforge/internal/logging"
	"github.com/fileforge/fileforge/internal/models"
	"github.com/fileforge/fileforge/internal/notify"
	"github.com/fileforge/fileforge/internal/progress"
	"github.com/fileforge/fileforge/internal/session"
	"github.com/fileforge/fileforge/internal/util/sanitize"
)

// Upload error taxonomy. Callers distinguish auth failures from transfer
// failures so they can prompt for sign-in instead of a blind retry.
var (
	// ErrInvalidFile indicates the input had no name or no content source
	ErrInvalidFile = errors.New("invalid file input")
	// ErrAuthRequired indicates no active session at upload time
	ErrAuthRequired = errors.New("authentication required")
)

// State identifies where an upload invocation is in its lifecycle.
type State string

const (
	StateIdle           State = "idle"
	StateValidating     State = "validating"
	StateAuthenticating State = "authenticating"
	StateTransferring   State = "transferring"
	StateResolvingURL   State = "resolving_url"
	StateRegistering    State = "registering"
)

// Input describes one file to upload.
type Input struct {
	Name        string
	ContentType string // empty means application/octet-stream
	Size        int64
	Body        io.Reader

	// Progress, when set, receives transfer progress from 0.0 to 1.0.
	Progress storage.ProgressFunc
}

// Result pairs an input with its outcome. Used by UploadAll.
type Result struct {
	Name   string
	Record *models.FileRecord
	Err    error
}

// Pipeline runs the upload state machine:
//
//	Idle -> Validating -> Authenticating -> Transferring -> ResolvingURL -> Registering -> Idle
//
// A rejection or failure at any step returns to Idle. Every terminal
// outcome emits exactly one notification.
type Pipeline struct {
	store     storage.ObjectStore
	session   session.Checker
	hierarchy *hierarchy.Store
	notifier  *notify.Notifier
	eventBus  *events.EventBus
	logger    *logging.Logger

	newID func() string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithIDGenerator replaces the storage key disambiguator source.
func WithIDGenerator(fn func() string) Option {
	return func(p *Pipeline) {
		p.newID = fn
	}
}

// NewPipeline wires an upload pipeline. store, checker and h are required;
// notifier and bus may be nil.
func NewPipeline(store storage.ObjectStore, checker session.Checker, h *hierarchy.Store, notifier *notify.Notifier, bus *events.EventBus, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:     store,
		session:   checker,
		hierarchy: h,
		notifier:  notifier,
		eventBus:  bus,
		logger:    logging.NewLogger("upload"),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Upload runs one invocation of the state machine. On success the returned
// record is already registered under the current folder. Failures never
// touch the hierarchy.
func (p *Pipeline) Upload(ctx context.Context, in Input) (*models.FileRecord, error) {
	p.transition(StateValidating, in.Name)
	if in.Name == "" || in.Body == nil {
		p.logger.Warn().Str("name", in.Name).Msg("rejected invalid upload input")
		if p.notifier != nil {
			p.notifier.UploadInvalid("No file selected.")
		}
		p.publish(events.EventUploadFailed, in, "", 0, ErrInvalidFile)
		p.transition(StateIdle, in.Name)
		return nil, ErrInvalidFile
	}

	p.transition(StateAuthenticating, in.Name)
	active, err := p.session.Active(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("session check failed")
		if p.notifier != nil {
			p.notifier.AuthRequired()
		}
		p.publish(events.EventUploadFailed, in, "", 0, ErrAuthRequired)
		p.transition(StateIdle, in.Name)
		return nil, fmt.Errorf("%w: %v", ErrAuthRequired, err)
	}
	if !active {
		if p.notifier != nil {
			p.notifier.AuthRequired()
		}
		p.publish(events.EventUploadFailed, in, "", 0, ErrAuthRequired)
		p.transition(StateIdle, in.Name)
		return nil, ErrAuthRequired
	}

	key := p.objectKey(in.Name)
	contentType := in.ContentType
	if contentType == "" {
		contentType = constants.DefaultContentType
	}

	p.publish(events.EventUploadQueued, in, key, 0, nil)

	p.transition(StateTransferring, in.Name)
	if err := p.store.Upload(ctx, key, in.Body, in.Size, contentType, p.transferProgress(in, key)); err != nil {
		p.logger.Error().Err(err).Str("key", key).Msg("transfer failed")
		if p.notifier != nil {
			p.notifier.UploadFailed(in.Name, reason(err))
		}
		p.publish(events.EventUploadFailed, in, key, 0, err)
		p.transition(StateIdle, in.Name)
		return nil, fmt.Errorf("transfer failed: %w", err)
	}

	// A missing URL is a failure even though the bytes made it.
	p.transition(StateResolvingURL, in.Name)
	url, err := p.store.PublicURL(ctx, key)
	if err != nil {
		p.logger.Error().Err(err).Str("key", key).Msg("URL resolution failed")
		if p.notifier != nil {
			p.notifier.UploadFailed(in.Name, reason(err))
		}
		p.publish(events.EventUploadFailed, in, key, 1.0, err)
		p.transition(StateIdle, in.Name)
		return nil, fmt.Errorf("url resolution failed: %w", err)
	}

	p.transition(StateRegistering, in.Name)
	record := p.hierarchy.RegisterUpload(in.Name, models.TypeFromContentType(contentType), in.Size, url)
	if p.notifier != nil {
		p.notifier.FileUploaded(in.Name)
	}
	p.publish(events.EventUploadCompleted, in, key, 1.0, nil)

	p.logger.Info().
		Str("name", in.Name).
		Str("key", key).
		Int64("bytes", in.Size).
		Msg("upload complete")
	p.transition(StateIdle, in.Name)

	return &record, nil
}

func (p *Pipeline) transition(state State, name string) {
	p.logger.Debug().Str("state", string(state)).Str("name", name).Msg("upload state")
}

// transferProgress builds the callback handed to the object store.
// Transfer fractions go out on the bus as transferring events, and any
// caller-supplied callback still fires.
func (p *Pipeline) transferProgress(in Input, key string) storage.ProgressFunc {
	if p.eventBus == nil {
		return in.Progress
	}

	reporter := progress.NewBusProgress(p.eventBus, in.Name, key)
	reporter.Start(in.Size, in.Name)
	reporter.Update(0)

	forward := in.Progress
	return func(fraction float64) {
		reporter.Update(int64(fraction * float64(in.Size)))
		if forward != nil {
			forward(fraction)
		}
	}
}

// UploadAll runs the inputs as independent sequential invocations. A
// failure in one does not roll back or stop the others.
func (p *Pipeline) UploadAll(ctx context.Context, inputs []Input) []Result {
	results := make([]Result, 0, len(inputs))
	for _, in := range inputs {
		record, err := p.Upload(ctx, in)
		results = append(results, Result{Name: in.Name, Record: record, Err: err})
	}
	return results
}

// objectKey derives a collision-resistant storage key from the file name:
// a random disambiguator joined with the sanitized base name, extension
// preserved.
func (p *Pipeline) objectKey(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if base == "" {
		// Dotfiles: the whole name is the "extension".
		return fmt.Sprintf("%s/%s_%s", constants.UploadKeyPrefix, p.newID(), sanitize.FileName(name))
	}
	return fmt.Sprintf("%s/%s_%s%s", constants.UploadKeyPrefix, p.newID(), sanitize.FileName(base), sanitize.FileName(ext))
}

func (p *Pipeline) publish(eventType events.EventType, in Input, key string, progress float64, err error) {
	if p.eventBus == nil {
		return
	}
	p.eventBus.Publish(events.NewUploadEvent(eventType, in.Name, key, in.Size, progress, err))
}

// reason turns a transfer error into a user-presentable message.
// Credential and network failures get stable wording instead of raw
// SDK error text.
func reason(err error) string {
	switch {
	case err == nil:
		return "unknown error"
	case storage.IsCredentialError(err):
		return "the object store rejected the configured credentials"
	case storage.IsNetworkError(err):
		return "a network error interrupted the transfer"
	default:
		return err.Error()
	}
}

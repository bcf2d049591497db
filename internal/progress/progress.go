// Package progress provides progress reporting for uploads: a single
// progress bar for one file, an mpb-based UI for several.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/fileforge/fileforge/internal/events"
)

// Reporter is the interface for reporting transfer progress.
type Reporter interface {
	Start(total int64, description string)
	Update(current int64)
	Finish()
	Error(err error)
}

// CLIProgress renders a single progress bar on stderr.
type CLIProgress struct {
	bar *progressbar.ProgressBar
}

// NewCLIProgress creates a new CLI progress reporter.
func NewCLIProgress() *CLIProgress {
	return &CLIProgress{}
}

// Start initializes the progress bar with total size and description.
func (p *CLIProgress) Start(total int64, description string) {
	p.bar = progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Update updates the progress bar to the current position.
func (p *CLIProgress) Update(current int64) {
	if p.bar != nil {
		_ = p.bar.Set64(current)
	}
}

// Finish completes the progress bar.
func (p *CLIProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

// Error displays an error message.
func (p *CLIProgress) Error(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
	}
}

// BusProgress reports progress as upload events on the event bus.
type BusProgress struct {
	eventBus *events.EventBus
	name     string
	key      string
	total    int64
}

// NewBusProgress creates a reporter publishing for the named upload.
func NewBusProgress(eventBus *events.EventBus, name, key string) *BusProgress {
	return &BusProgress{eventBus: eventBus, name: name, key: key}
}

// Start records the total size.
func (p *BusProgress) Start(total int64, _ string) {
	p.total = total
}

// Update publishes a transferring event with the current fraction.
func (p *BusProgress) Update(current int64) {
	fraction := 0.0
	if p.total > 0 {
		fraction = float64(current) / float64(p.total)
	}
	p.eventBus.Publish(events.NewUploadEvent(events.EventUploadTransferring, p.name, p.key, p.total, fraction, nil))
}

// Finish publishes a final transferring event at 1.0.
func (p *BusProgress) Finish() {
	p.eventBus.Publish(events.NewUploadEvent(events.EventUploadTransferring, p.name, p.key, p.total, 1.0, nil))
}

// Error publishes a failed event.
func (p *BusProgress) Error(err error) {
	if err != nil {
		p.eventBus.Publish(events.NewUploadEvent(events.EventUploadFailed, p.name, p.key, p.total, 0, err))
	}
}

// Reader wraps an io.Reader to report bytes read.
type Reader struct {
	reader   io.Reader
	reporter Reporter
	current  int64
}

// NewReader creates a progress-reporting reader.
func NewReader(reader io.Reader, reporter Reporter) *Reader {
	return &Reader{reader: reader, reporter: reporter}
}

// Read implements io.Reader with progress reporting.
func (pr *Reader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	pr.current += int64(n)
	pr.reporter.Update(pr.current)
	return n, err
}

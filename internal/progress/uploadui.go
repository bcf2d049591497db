package progress

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/term"
)

// UploadUI manages multiple concurrent upload progress bars using mpb
type UploadUI struct {
	progress   *mpb.Progress
	bars       sync.Map // file name -> *FileBar
	isTerminal bool
	totalFiles int
	started    int32 // Atomic counter for file index (1, 2, 3, ...)
	completed  int32
}

// FileBar represents a single file upload progress bar
type FileBar struct {
	bar        *mpb.Bar
	ui         *UploadUI
	index      int
	name       string
	size       int64
	startTime  time.Time
	lastUpdate time.Time
	lastBytes  int64
}

// NewUploadUI creates a new upload UI with the given number of total files
func NewUploadUI(totalFiles int) *UploadUI {
	isTerminal := term.IsTerminal(int(os.Stderr.Fd()))

	var p *mpb.Progress
	if isTerminal {
		// Enable ANSI escape sequences on Windows for proper rendering
		enableANSIOnWindows(os.Stderr)

		p = mpb.New(
			mpb.WithOutput(os.Stderr),
			mpb.WithRefreshRate(300*time.Millisecond),
			mpb.WithWidth(100),
		)
	} else {
		// Non-TTY: disable progress bars, just use text output
		p = mpb.New(mpb.WithOutput(io.Discard))
	}

	return &UploadUI{
		progress:   p,
		isTerminal: isTerminal,
		totalFiles: totalFiles,
	}
}

// AddFileBar creates a new progress bar for a file upload
func (u *UploadUI) AddFileBar(name string, size int64) *FileBar {
	index := int(atomic.AddInt32(&u.started, 1))

	fb := &FileBar{
		ui:         u,
		index:      index,
		name:       name,
		size:       size,
		startTime:  time.Now(),
		lastUpdate: time.Now(),
	}

	if u.isTerminal {
		fb.bar = u.progress.New(size,
			mpb.BarStyle().
				Lbound("[").
				Filler("█").
				Tip("█").
				Padding("░").
				Rbound("]"),
			mpb.PrependDecorators(
				decor.Any(func(s decor.Statistics) string {
					return fmt.Sprintf("[%d/%d] %s (%.1f MiB)",
						fb.index, u.totalFiles,
						name,
						float64(size)/(1024*1024))
				}, decor.WCSyncSpace),
			),
			mpb.AppendDecorators(
				decor.CountersKibiByte("% .1f / % .1f", decor.WCSyncSpace),
				decor.Name("  "),
				decor.Percentage(decor.WCSyncSpace),
				decor.Name("  "),
				decor.EwmaSpeed(decor.SizeB1024(0), "% .1f", 30, decor.WCSyncSpace),
			),
			mpb.BarRemoveOnComplete(),
		)
	} else {
		fmt.Printf("Uploading [%d/%d]: %s (%.1f MiB)\n",
			fb.index, u.totalFiles, name, float64(size)/(1024*1024))
	}

	u.bars.Store(name, fb)
	return fb
}

// UpdateProgress updates the progress bar based on a fraction (0.0 to 1.0).
// Throttled to reduce visual noise; EwmaIncrBy must still be called
// periodically to keep speed calculation accurate.
func (f *FileBar) UpdateProgress(fraction float64) {
	if f.bar == nil {
		return
	}

	now := time.Now()
	elapsed := now.Sub(f.lastUpdate)

	currentBytes := int64(fraction * float64(f.size))
	bytesDelta := currentBytes - f.lastBytes

	const updateInterval = 300 * time.Millisecond
	if elapsed >= updateInterval {
		f.bar.EwmaIncrBy(int(bytesDelta), elapsed)
		f.lastBytes = currentBytes
		f.lastUpdate = now
	}
}

// Complete marks the upload as finished and prints a summary
func (f *FileBar) Complete(url string, err error) {
	elapsed := time.Since(f.startTime)

	if err == nil {
		if f.bar != nil {
			// Exact 100% completion, no rounding errors
			f.bar.SetCurrent(f.size)
			f.bar.SetTotal(f.size, true)
		}

		msg := fmt.Sprintf("✓ %s (%.1f MiB, %s)\n  %s\n",
			f.name,
			float64(f.size)/(1024*1024),
			elapsed.Round(time.Second),
			url)
		f.ui.write(msg)
	} else {
		if f.bar != nil {
			f.bar.Abort(false) // keep the bar visible to show the failure
		}
		f.ui.write(fmt.Sprintf("✗ %s: %v\n", f.name, err))
	}

	atomic.AddInt32(&f.ui.completed, 1)
}

// write prints above the progress bars without triggering a redraw.
func (u *UploadUI) write(msg string) {
	if u.isTerminal && u.progress != nil {
		u.progress.Write([]byte(msg))
	} else {
		fmt.Print(msg)
	}
}

// Wait blocks until all progress bars complete
func (u *UploadUI) Wait() {
	if u.progress != nil {
		u.progress.Wait()
	}
}

// Writer returns an io.Writer that safely prints above the progress bars
func (u *UploadUI) Writer() io.Writer {
	if u.progress != nil && u.isTerminal {
		return u.progress
	}
	return os.Stderr
}

// IsTerminal returns true if output is to a terminal.
func (u *UploadUI) IsTerminal() bool {
	return u.isTerminal
}

// enableANSIOnWindows enables Virtual Terminal processing on Windows for
// ANSI escape sequences. No-op elsewhere.
func enableANSIOnWindows(f *os.File) {
	if runtime.GOOS == "windows" {
		enableWindowsANSI(f)
	}
}

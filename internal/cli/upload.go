// Package cli: upload command.
package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"github.com/fileforge/fileforge/internal/constants"
	"github.com/fileforge/fileforge/internal/models"
	"github.com/fileforge/fileforge/internal/progress"
	"github.com/fileforge/fileforge/internal/upload"
)

// newUploadCmd creates the 'upload' command.
func newUploadCmd() *cobra.Command {
	var maxConcurrent int
	var contentType string

	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload local files to the object store",
		Long: `Upload one or more local files. Each file is transferred to the
configured object store and registered under the current folder with
its public URL.

Uploads are independent: a failure in one file does not roll back or
stop the others.

Example:
  fileforge upload report.pdf
  fileforge upload *.jpg --max-concurrent 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxConcurrent < constants.MinMaxConcurrent || maxConcurrent > constants.MaxMaxConcurrent {
				return fmt.Errorf("--max-concurrent must be between %d and %d, got %d",
					constants.MinMaxConcurrent, constants.MaxMaxConcurrent, maxConcurrent)
			}

			// Validate all paths before starting any transfer.
			for _, path := range args {
				info, err := os.Stat(path)
				if os.IsNotExist(err) {
					return fmt.Errorf("file not found: %s", path)
				}
				if err != nil {
					return fmt.Errorf("failed to stat %s: %w", path, err)
				}
				if info.IsDir() {
					return fmt.Errorf("%q is a directory, not a file", path)
				}
			}

			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			store, err := app.ObjectStore()
			if err != nil {
				return err
			}

			pipeline := upload.NewPipeline(store, app.SessionChecker(), app.Store, app.Notifier, app.Bus)

			if len(args) == 1 {
				return uploadSingle(cmd, pipeline, args[0], contentType)
			}
			return uploadMany(cmd, pipeline, args, contentType, maxConcurrent)
		},
	}

	cmd.Flags().IntVar(&maxConcurrent, "max-concurrent", constants.DefaultMaxConcurrent,
		fmt.Sprintf("Concurrent uploads (%d-%d)", constants.MinMaxConcurrent, constants.MaxMaxConcurrent))
	cmd.Flags().StringVar(&contentType, "content-type", "", "Content type override (default: inferred from extension)")

	return cmd
}

// uploadSingle uploads one file with a plain progress bar.
func uploadSingle(cmd *cobra.Command, pipeline *upload.Pipeline, path, contentType string) error {
	in, err := uploadInput(path, contentType)
	if err != nil {
		return err
	}
	defer in.close()

	bar := progress.NewCLIProgress()
	bar.Start(in.size, filepath.Base(path))
	// Byte-level progress as the SDK drains the stream, not just the
	// provider's coarse start/finish callbacks.
	in.input.Body = progress.NewReader(in.input.Body, bar)

	record, err := pipeline.Upload(GetContext(), in.input)
	if err != nil {
		bar.Error(err)
		return err
	}
	bar.Finish()

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Uploaded %s\n  ID: %s\n  URL: %s\n", record.Name, record.ID, record.URL)
	return nil
}

// uploadMany uploads several files concurrently under an mpb progress UI.
// Registration into the hierarchy stays serialized inside the store.
func uploadMany(cmd *cobra.Command, pipeline *upload.Pipeline, paths []string, contentType string, maxConcurrent int) error {
	ui := progress.NewUploadUI(len(paths))
	defer ui.Wait()

	semaphore := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup
	errChan := make(chan error, len(paths))

	for _, path := range paths {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			in, err := uploadInput(path, contentType)
			if err != nil {
				errChan <- err
				return
			}
			defer in.close()

			bar := ui.AddFileBar(filepath.Base(path), in.size)
			in.input.Progress = bar.UpdateProgress

			record, err := pipeline.Upload(GetContext(), in.input)
			if err != nil {
				bar.Complete("", err)
				errChan <- fmt.Errorf("failed to upload %s: %w", path, err)
				return
			}
			bar.Complete(record.URL, nil)
		}(path)
	}

	wg.Wait()
	close(errChan)

	var failed []error
	for err := range errChan {
		failed = append(failed, err)
	}

	fmt.Fprintf(ui.Writer(), "\n%d of %d uploads succeeded\n", len(paths)-len(failed), len(paths))
	if len(failed) > 0 {
		return fmt.Errorf("%d upload(s) failed; first error: %w", len(failed), failed[0])
	}
	return nil
}

// openInput bundles an upload input with its backing file handle.
type openInput struct {
	input upload.Input
	size  int64
	file  *os.File
}

func (o *openInput) close() {
	if o.file != nil {
		o.file.Close()
	}
}

func uploadInput(path, contentType string) (*openInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	name := filepath.Base(path)
	if contentType == "" {
		contentType = detectContentType(name)
	}

	return &openInput{
		input: upload.Input{
			Name:        name,
			ContentType: contentType,
			Size:        info.Size(),
			Body:        file,
		},
		size: info.Size(),
		file: file,
	}, nil
}

// detectContentType maps the extension through the platform MIME table,
// falling back on the file-type bucket for extensions it doesn't know.
func detectContentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	if models.TypeFromExtension(name) == models.TypeImage {
		return "image/*"
	}
	return constants.DefaultContentType
}

// Package notify emits the user-visible notifications the file manager
// produces: one short title + description pair per hierarchy mutation and
// per upload terminal state. Delivery is in-process via the event bus; the
// presentation layer decides how to display them.
package notify

import (
	"fmt"
	"sync"

	"github.com/fileforge/fileforge/internal/events"
	"github.com/fileforge/fileforge/internal/logging"
)

// Notifier publishes notification events.
type Notifier struct {
	logger   *logging.Logger
	eventBus *events.EventBus
	enabled  bool
	mu       sync.RWMutex
}

// NewNotifier creates a notifier publishing to the given bus.
func NewNotifier(eventBus *events.EventBus, logger *logging.Logger) *Notifier {
	return &Notifier{
		logger:   logger,
		eventBus: eventBus,
		enabled:  true,
	}
}

// SetEnabled enables or disables notifications.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.enabled
}

// Notify emits an informational notification.
func (n *Notifier) Notify(title, description string) {
	n.send(title, description, false)
}

// NotifyError emits an error notification.
func (n *Notifier) NotifyError(title, description string) {
	n.send(title, description, true)
}

// FileCreated announces a newly created file.
func (n *Notifier) FileCreated(name string) {
	n.Notify("File Created", fmt.Sprintf("File %q created successfully.", truncate(name, 60)))
}

// FolderCreated announces a newly created folder.
func (n *Notifier) FolderCreated(name string) {
	n.Notify("Folder Created", fmt.Sprintf("Folder %q created successfully.", truncate(name, 60)))
}

// FileDeleted announces a deleted file.
func (n *Notifier) FileDeleted() {
	n.Notify("File Deleted", "File deleted successfully.")
}

// FolderDeleted announces a deleted folder (including its subtree).
func (n *Notifier) FolderDeleted() {
	n.Notify("Folder Deleted", "Folder deleted successfully.")
}

// FileUpdated announces an updated file.
func (n *Notifier) FileUpdated(name string) {
	n.Notify("File Updated", fmt.Sprintf("File %q updated.", truncate(name, 60)))
}

// FileUploaded announces a completed upload.
func (n *Notifier) FileUploaded(name string) {
	n.Notify("File Uploaded", fmt.Sprintf("%s has been uploaded successfully.", truncate(name, 60)))
}

// UploadFailed announces a failed upload transfer.
func (n *Notifier) UploadFailed(name, reason string) {
	n.NotifyError("Upload Failed", fmt.Sprintf("%s: %s", truncate(name, 40), truncate(reason, 100)))
}

// UploadInvalid announces a rejected upload input.
func (n *Notifier) UploadInvalid(reason string) {
	n.NotifyError("Upload Error", truncate(reason, 100))
}

// AuthRequired announces that an upload needs an active session.
func (n *Notifier) AuthRequired() {
	n.NotifyError("Authentication Required", "Sign in to upload files.")
}

func (n *Notifier) send(title, description string, isError bool) {
	if !n.IsEnabled() {
		return
	}

	if n.eventBus != nil {
		n.eventBus.Publish(events.NewNotificationEvent(title, description, isError))
	}

	if n.logger != nil {
		if isError {
			n.logger.Warn().Str("title", title).Msg(description)
		} else {
			n.logger.Info().Str("title", title).Msg(description)
		}
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

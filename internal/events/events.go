package events

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/fileforge/fileforge/internal/constants"
)

// EventType defines the types of events that can be emitted
type EventType string

const (
	// Hierarchy events
	EventHierarchyChanged EventType = "hierarchy_changed" // Files/folders collection mutated
	EventCursorChanged    EventType = "cursor_changed"    // Current folder navigation
	EventViewStateChanged EventType = "view_state_changed"

	// Notification events (one per operation, per the notification contract)
	EventNotification EventType = "notification"

	// Upload pipeline events
	EventUploadQueued       EventType = "upload_queued"
	EventUploadTransferring EventType = "upload_transferring" // Bytes moving to the object store
	EventUploadCompleted    EventType = "upload_completed"
	EventUploadFailed       EventType = "upload_failed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventType EventType
	Time      time.Time
}

func (e BaseEvent) Type() EventType      { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }

// HierarchyChangedEvent is published after every Hierarchy Store mutation.
type HierarchyChangedEvent struct {
	BaseEvent
	Operation   string // "create_file", "create_folder", "delete", "update_file", ...
	ItemID      string
	FileCount   int
	FolderCount int
}

// CursorChangedEvent is published when the current folder changes.
// FolderID is empty for the root.
type CursorChangedEvent struct {
	BaseEvent
	FolderID string
}

// ViewStateChangedEvent is published when display preferences change.
type ViewStateChangedEvent struct {
	BaseEvent
	Mode      string
	ActiveTab string
	Theme     string
}

// NotificationEvent carries a user-visible title + description pair.
type NotificationEvent struct {
	BaseEvent
	Title       string
	Description string
	IsError     bool
}

// UploadEvent represents upload pipeline state transitions.
type UploadEvent struct {
	BaseEvent
	Name     string  // Original file name
	Key      string  // Object storage key (empty before key derivation)
	Size     int64   // Declared byte size
	Progress float64 // 0.0 to 1.0
	Error    error   // Set on EventUploadFailed
}

// NewHierarchyChangedEvent creates a HierarchyChangedEvent.
func NewHierarchyChangedEvent(operation, itemID string, fileCount, folderCount int) *HierarchyChangedEvent {
	return &HierarchyChangedEvent{
		BaseEvent:   BaseEvent{EventType: EventHierarchyChanged, Time: time.Now()},
		Operation:   operation,
		ItemID:      itemID,
		FileCount:   fileCount,
		FolderCount: folderCount,
	}
}

// NewCursorChangedEvent creates a CursorChangedEvent.
func NewCursorChangedEvent(folderID string) *CursorChangedEvent {
	return &CursorChangedEvent{
		BaseEvent: BaseEvent{EventType: EventCursorChanged, Time: time.Now()},
		FolderID:  folderID,
	}
}

// NewNotificationEvent creates a NotificationEvent.
func NewNotificationEvent(title, description string, isError bool) *NotificationEvent {
	return &NotificationEvent{
		BaseEvent:   BaseEvent{EventType: EventNotification, Time: time.Now()},
		Title:       title,
		Description: description,
		IsError:     isError,
	}
}

// NewUploadEvent creates an UploadEvent of the given type.
func NewUploadEvent(eventType EventType, name, key string, size int64, progress float64, err error) *UploadEvent {
	return &UploadEvent{
		BaseEvent: BaseEvent{EventType: eventType, Time: time.Now()},
		Name:      name,
		Key:       key,
		Size:      size,
		Progress:  progress,
		Error:     err,
	}
}

// EventBus manages event subscriptions and publishing
type EventBus struct {
	subscribers   map[EventType][]chan Event
	all           []chan Event // Subscribers to all events
	mu            sync.RWMutex
	bufferSize    int
	closed        bool
	droppedEvents atomic.Int64 // Count of dropped events due to full buffers
}

// NewEventBus creates a new event bus with the specified buffer size
func NewEventBus(bufferSize int) *EventBus {
	if bufferSize <= 0 {
		bufferSize = constants.EventBusDefaultBuffer
	}
	if bufferSize > constants.EventBusMaxBuffer {
		bufferSize = constants.EventBusMaxBuffer
	}
	return &EventBus{
		subscribers: make(map[EventType][]chan Event),
		all:         make([]chan Event, 0),
		bufferSize:  bufferSize,
	}
}

// Subscribe creates a subscription to a specific event type
func (eb *EventBus) Subscribe(eventType EventType) <-chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, eb.bufferSize)
	eb.subscribers[eventType] = append(eb.subscribers[eventType], ch)
	return ch
}

// SubscribeAll creates a subscription to all events
func (eb *EventBus) SubscribeAll() <-chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, eb.bufferSize)
	eb.all = append(eb.all, ch)
	return ch
}

// Publish sends an event to all subscribers. Non-blocking: events are
// dropped rather than stalling a publisher when a subscriber falls behind.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return
	}

	for _, ch := range eb.subscribers[event.Type()] {
		select {
		case ch <- event:
		default:
			eb.droppedEvents.Add(1)
		}
	}

	for _, ch := range eb.all {
		select {
		case ch <- event:
		default:
			eb.droppedEvents.Add(1)
		}
	}
}

// Unsubscribe removes a subscription channel from a specific event type
func (eb *EventBus) Unsubscribe(eventType EventType, ch <-chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}

	subscribers := eb.subscribers[eventType]
	for i, subCh := range subscribers {
		if subCh == ch {
			subscribers[i] = subscribers[len(subscribers)-1]
			eb.subscribers[eventType] = subscribers[:len(subscribers)-1]
			break
		}
	}
}

// DroppedEvents returns the number of events dropped due to full buffers
func (eb *EventBus) DroppedEvents() int64 {
	return eb.droppedEvents.Load()
}

// Close shuts down the event bus and closes all channels
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}

	eb.closed = true

	for _, channels := range eb.subscribers {
		for _, ch := range channels {
			close(ch)
		}
	}

	for _, ch := range eb.all {
		close(ch)
	}
}

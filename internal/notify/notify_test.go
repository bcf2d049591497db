package notify

import (
	"testing"
	"time"

	"github.com/fileforge/fileforge/internal/events"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10c", 10, "exactly10c"},
		{"this is a long string", 10, "this is..."},
		{"", 10, ""},
		{"abc", 3, "abc"},
		{"abcd", 3, "..."},
	}

	for _, tt := range tests {
		result := truncate(tt.input, tt.maxLen)
		if result != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, result, tt.expected)
		}
	}
}

func TestNotifier_PublishesEvent(t *testing.T) {
	bus := events.NewEventBus(10)
	defer bus.Close()
	ch := bus.Subscribe(events.EventNotification)

	n := NewNotifier(bus, nil)
	n.FileCreated("notes.txt")

	select {
	case received := <-ch:
		ev, ok := received.(*events.NotificationEvent)
		if !ok {
			t.Fatal("Expected NotificationEvent")
		}
		if ev.Title != "File Created" {
			t.Errorf("Expected title 'File Created', got %q", ev.Title)
		}
		if ev.IsError {
			t.Error("Expected IsError false for a create notification")
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for notification")
	}
}

func TestNotifier_ErrorFlag(t *testing.T) {
	bus := events.NewEventBus(10)
	defer bus.Close()
	ch := bus.Subscribe(events.EventNotification)

	n := NewNotifier(bus, nil)
	n.AuthRequired()

	select {
	case received := <-ch:
		ev := received.(*events.NotificationEvent)
		if !ev.IsError {
			t.Error("Expected IsError true for authentication notification")
		}
		if ev.Title != "Authentication Required" {
			t.Errorf("Unexpected title %q", ev.Title)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for notification")
	}
}

func TestNotifier_Disabled(t *testing.T) {
	bus := events.NewEventBus(10)
	defer bus.Close()
	ch := bus.Subscribe(events.EventNotification)

	n := NewNotifier(bus, nil)
	n.SetEnabled(false)
	n.FileDeleted()

	select {
	case ev := <-ch:
		t.Errorf("Expected no notification, got %v", ev)
	default:
	}
}

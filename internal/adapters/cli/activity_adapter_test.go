package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/sprintdesk/internal/ports/primary"
)

func TestActivityAdapter_History(t *testing.T) {
	mock := &mockActivityService{entries: []*primary.ActivityEntry{
		{ID: "b", Timestamp: "2024-06-15T10:05:00Z", ActorID: "1", EntityType: "task", EntityID: 7, Action: "update", Detail: "status: Completed"},
		{ID: "a", Timestamp: "2024-06-15T10:00:00Z", ActorID: "1", EntityType: "task", EntityID: 7, Action: "create"},
	}}
	var buf bytes.Buffer
	adapter := NewActivityAdapter(mock, &buf)

	filters := primary.ActivityFilters{EntityType: "task", EntityID: 7, Limit: 20}
	if err := adapter.History(context.Background(), filters); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.lastFilters != filters {
		t.Errorf("expected filters passed through, got %+v", mock.lastFilters)
	}

	output := buf.String()
	if !strings.Contains(output, "2024-06-15 10:00:00 | 1        | + create | task/7") {
		t.Errorf("unexpected create line:\n%s", output)
	}
	if !strings.Contains(output, "~ update | task/7 | status: Completed") {
		t.Errorf("unexpected update line:\n%s", output)
	}
	if strings.Index(output, "create") > strings.Index(output, "update") {
		t.Error("expected oldest entry first")
	}
}

func TestActivityAdapter_History_Empty(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewActivityAdapter(&mockActivityService{}, &buf)

	_ = adapter.History(context.Background(), primary.ActivityFilters{})
	if !strings.Contains(buf.String(), "No activity recorded.") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestActivityAdapter_Prune(t *testing.T) {
	mock := &mockActivityService{pruned: 3}
	var buf bytes.Buffer
	adapter := NewActivityAdapter(mock, &buf)

	if err := adapter.Prune(context.Background(), 30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.lastDays != 30 || !strings.Contains(buf.String(), "Pruned 3 entries older than 30 days") {
		t.Errorf("unexpected result: days=%d output=%q", mock.lastDays, buf.String())
	}

	mock.err = errors.New("days must not be negative")
	if err := adapter.Prune(context.Background(), -1); err == nil {
		t.Error("expected error, got nil")
	}
}

package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"isoformat naive", "2024-11-20T09:30:00", time.Date(2024, 11, 20, 9, 30, 0, 0, time.UTC)},
		{"isoformat with micros", "2024-11-20T09:30:00.123456", time.Date(2024, 11, 20, 9, 30, 0, 123456000, time.UTC)},
		{"rfc3339", "2024-11-20T09:30:00Z", time.Date(2024, 11, 20, 9, 30, 0, 0, time.UTC)},
		{"bare date", "2024-11-20", time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)},
		{"rfc1123", "Wed, 20 Nov 2024 09:30:00 GMT", time.Date(2024, 11, 20, 9, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if err != nil {
				t.Fatalf("ParseDate(%q) error: %v", tt.in, err)
			}
			if !got.Time.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got.Time, tt.want)
			}
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	if _, err := ParseDate("next tuesday"); err == nil {
		t.Error("expected error for unparseable date")
	}
}

func TestDate_NullRoundTrip(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"id":1,"due_date":null,"start_date":"2024-01-02T00:00:00"}`), &task); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if task.DueDate.Valid() {
		t.Error("expected null due date")
	}
	if !task.StartDate.Valid() {
		t.Error("expected start date to be set")
	}

	out, err := json.Marshal(task.DueDate)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != "null" {
		t.Errorf("expected null, got %s", out)
	}
}

func TestParseTaskStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    TaskStatus
		wantErr bool
	}{
		{"Completed", TaskStatusCompleted, false},
		{"completed", TaskStatusCompleted, false},
		{"in_progress", TaskStatusInProgress, false},
		{"NOT STARTED", TaskStatusNotStarted, false},
		{"Overdue", TaskStatusOverdue, false},
		{"done", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTaskStatus(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTaskStatus(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTaskStatus(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTaskStatus_UnmarshalNormalizesCase(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"id":1,"status":"completed"}`), &task); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !task.Status.IsCompleted() {
		t.Errorf("expected completed status, got %q", task.Status)
	}
}

func TestPriority_Label(t *testing.T) {
	tests := []struct {
		p    Priority
		want string
	}{
		{PriorityLow, "Low"},
		{PriorityMedium, "Medium"},
		{PriorityHigh, "High"},
		{Priority(-1), "Low"},
		{Priority(7), "High"},
	}

	for _, tt := range tests {
		if got := tt.p.Label(); got != tt.want {
			t.Errorf("Priority(%d).Label() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestPriority_UnmarshalLabel(t *testing.T) {
	var f Feature
	if err := json.Unmarshal([]byte(`{"id":3,"priority":"high","sprint_id":null}`), &f); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if f.Priority != PriorityHigh {
		t.Errorf("expected high priority, got %d", f.Priority)
	}
	if !f.InParkingLot() {
		t.Error("expected feature with null sprint_id to be in parking lot")
	}
}

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		user User
		want string
	}{
		{User{Username: "demo", FullName: "Demo User"}, "Demo User"},
		{User{Username: "demo", FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{User{Username: "demo"}, "demo"},
	}

	for _, tt := range tests {
		if got := tt.user.DisplayName(); got != tt.want {
			t.Errorf("DisplayName() = %q, want %q", got, tt.want)
		}
	}
}

func TestDate_FloatingSurvivesJSON(t *testing.T) {
	d, err := ParseDate("2025-01-02")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if !d.Floating() {
		t.Fatal("bare date should be floating")
	}

	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `"2025-01-02T00:00:00"` {
		t.Errorf("marshal = %s, want zoneless timestamp", out)
	}

	var back Date
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !back.Floating() || !back.Time.Equal(d.Time) {
		t.Errorf("round trip = %+v, want floating %v", back, d.Time)
	}

	zoned, _ := ParseDate("2025-01-02T00:00:00Z")
	if zoned.Floating() {
		t.Error("RFC 3339 timestamp should not be floating")
	}
}

func TestDate_AtKeepsWallClockForFloating(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	d, _ := ParseDate("2025-01-02T09:30:00")
	got := d.At(loc)
	if got.Day() != 2 || got.Hour() != 9 || got.Location() != loc {
		t.Errorf("At() = %v, want 2025-01-02 09:30 in %v", got, loc)
	}
}

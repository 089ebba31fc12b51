package internal

import (
	"strings"
	"testing"
)

func TestLoggerLevelFiltering(t *testing.T) {
	l := NewLogger(LogLevelWarn)
	l.Info("should be dropped")
	l.Warn("kept")
	l.Error("also kept")

	rendered := l.Render()
	if strings.Contains(rendered, "should be dropped") {
		t.Error("info record retained below threshold")
	}
	if !strings.Contains(rendered, "kept") {
		t.Error("warn record missing")
	}
}

func TestLoggerCountersAndRecentErrors(t *testing.T) {
	l := NewLogger(LogLevelInfo)
	if l.HasErrors() {
		t.Error("fresh logger should have no errors")
	}

	l.Info("manifest %s created", "MAN-001")
	l.Error("insert failed for %s", "AAAA0001")
	l.Error("insert failed for %s", "AAAA0002")

	if !l.HasErrors() {
		t.Error("expected HasErrors after logging errors")
	}
	recent := l.RecentErrors(1)
	if len(recent) != 1 {
		t.Fatalf("expected 1 recent error, got %d", len(recent))
	}
	if !strings.Contains(recent[0].Message, "AAAA0002") {
		t.Errorf("recent error should be the latest, got %q", recent[0].Message)
	}
}

func TestLoggerClear(t *testing.T) {
	l := NewLogger(LogLevelInfo)
	l.Error("boom")
	l.Clear()
	if l.HasErrors() {
		t.Error("Clear should reset counters")
	}
	if strings.Contains(l.Render(), "boom") {
		t.Error("Clear should drop records")
	}
}

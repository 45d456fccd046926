package ui

import (
	"fmt"
	"strings"
	"testing"

	"lintel/internal/driver"
)

func TestApplyEventTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("diag", []string{"a.cs", "b.cs"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.cs", Stage: driver.StageBind, Status: driver.StatusWorking})
	if label, _ := m.files[0].label(); label != "binding" {
		t.Fatalf("label = %q", label)
	}
	if got := m.percent(); got != 0.25 {
		t.Fatalf("percent = %v", got)
	}

	m.applyEvent(driver.Event{File: "a.cs", Stage: driver.StageDispatch, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.cs", Stage: driver.StageDispatch, Status: driver.StatusCached})
	m.applyEvent(driver.Event{File: "b.cs", Stage: driver.StageParse, Status: driver.StatusQueued})
	m.applyEvent(driver.Event{File: "unknown.cs", Stage: driver.StageParse, Status: driver.StatusWorking})
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v", got)
	}
	if view := m.View(); !strings.Contains(view, "diag 2/2 (1 cached, 0 failed)") || !strings.Contains(view, "cached") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestFixStageReopensFile(t *testing.T) {
	m := NewProgressModel("fix", []string{"a.cs"}, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "a.cs", Stage: driver.StageDispatch, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "a.cs", Stage: driver.StageFix, Status: driver.StatusWorking})
	if got := m.percent(); got != 0.9 {
		t.Fatalf("percent while fixing = %v", got)
	}
	m.applyEvent(driver.Event{File: "a.cs", Stage: driver.StageFix, Status: driver.StatusDone})
	if label, _ := m.files[0].label(); label != "fixed" {
		t.Fatalf("label = %q", label)
	}
}

func TestViewCapsLongRuns(t *testing.T) {
	files := make([]string, maxRows+5)
	for i := range files {
		files[i] = fmt.Sprintf("f%02d.cs", i)
	}
	m := NewProgressModel("diag", files, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "f03.cs", Stage: driver.StageParse, Status: driver.StatusWorking})
	view := m.View()
	if !strings.Contains(view, "f03.cs") || strings.Contains(view, "f04.cs") {
		t.Fatalf("only files in flight should be listed:\n%s", view)
	}
	if !strings.Contains(view, fmt.Sprintf("... %d more", len(files)-1)) {
		t.Fatalf("missing overflow line:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("src/very/long/path.cs", 10); got != "src/ver..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("日本語.cs", 3); got != "日" {
		t.Fatalf("got %q", got)
	}
}

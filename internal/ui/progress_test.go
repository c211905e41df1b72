package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"ranoc/internal/buildpipeline"
)

func newTestModel(files ...string) *progressModel {
	events := make(chan buildpipeline.Event)
	return NewProgressModel("build", files, events).(*progressModel)
}

func TestApplyEventTracksFiles(t *testing.T) {
	m := newTestModel("a.rano", "b.rano")

	m.applyEvent(buildpipeline.Event{File: "a.rano", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})
	if label, _ := rowLabel(m.rows[0]); label != "parsing" {
		t.Fatalf("want parsing, got %q", label)
	}
	if got := m.percent(); got != 0.2 {
		t.Fatalf("want 0.2, got %v", got)
	}

	m.applyEvent(buildpipeline.Event{File: "a.rano", Stage: buildpipeline.StageCodegen, Status: buildpipeline.StatusDone})
	m.applyEvent(buildpipeline.Event{File: "b.rano", Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusError, Err: errors.New("no such file")})
	if got := m.percent(); got != 1 {
		t.Fatalf("finished files count fully, got %v", got)
	}

	// ошибка не перетирается
	m.applyEvent(buildpipeline.Event{File: "b.rano", Stage: buildpipeline.StageEmit, Status: buildpipeline.StatusWorking})
	if m.rows[1].state != stateFailed || m.rows[1].reason != "no such file" {
		t.Fatalf("error must stick, got %+v", m.rows[1])
	}
	if done, failed := m.counts(); done != 1 || failed != 1 {
		t.Fatalf("counts = %d, %d", done, failed)
	}
}

func TestApplyEventIgnoresUnknownFile(t *testing.T) {
	m := newTestModel("a.rano")
	if cmd := m.applyEvent(buildpipeline.Event{File: "zzz.rano", Status: buildpipeline.StatusDone}); cmd != nil {
		t.Fatal("unknown file must not move the bar")
	}
	m.applyEvent(buildpipeline.Event{Stage: buildpipeline.StageLex, Status: buildpipeline.StatusWorking})
	if m.phase != "scanning" {
		t.Fatalf("pipeline-wide events set the header, got %q", m.phase)
	}
}

func TestViewListsFiles(t *testing.T) {
	m := newTestModel("a.rano", "lib/b.rano")
	m.applyEvent(buildpipeline.Event{File: "lib/b.rano", Status: buildpipeline.StatusError, Err: errors.New("boom")})
	m.closed = true
	view := m.View()
	for _, want := range []string{"finished build", "a.rano", "lib/b.rano", "queued", "boom", "1/2 files", "1 failed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view misses %q:\n%s", want, view)
		}
	}
}

func TestClosedChannelQuits(t *testing.T) {
	events := make(chan buildpipeline.Event)
	close(events)
	m := NewProgressModel("build", []string{"a.rano"}, events).(*progressModel)
	msg := m.next()()
	if _, ok := msg.(closedMsg); !ok {
		t.Fatalf("want closedMsg, got %T", msg)
	}
	_, cmd := m.Update(msg)
	if !m.closed || cmd == nil {
		t.Fatal("closed channel must finish the model")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.Quit")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"averyveryverylongname", 10, "averyve..."},
		{"abcdef", 3, "abc"},
		{"日本語のファイル", 9, "日本語..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

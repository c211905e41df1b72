package observ

import (
	"strings"
	"testing"
	"time"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	cur := time.Unix(0, 0)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func newTestTimer(step time.Duration) *Timer {
	t := NewTimer()
	t.now = fakeClock(step)
	return t
}

func TestTimerPhasesInOrder(t *testing.T) {
	tm := newTestTimer(time.Millisecond)
	lex := tm.Begin("lex")
	tm.End(lex, "12 tokens")
	done := tm.Track("parse")
	done("")

	phases := tm.Phases()
	if len(phases) != 2 {
		t.Fatalf("want 2 phases, got %d", len(phases))
	}
	if phases[0].Name != "lex" || phases[1].Name != "parse" {
		t.Fatalf("unexpected order: %+v", phases)
	}
	for _, p := range phases {
		if p.Dur != time.Millisecond {
			t.Errorf("%s: want 1ms, got %v", p.Name, p.Dur)
		}
	}
	if phases[0].Note != "12 tokens" {
		t.Errorf("note lost: %q", phases[0].Note)
	}
}

func TestTimerReport(t *testing.T) {
	tm := newTestTimer(2 * time.Millisecond)
	tm.End(tm.Begin("lex"), "")
	tm.End(tm.Begin("codegen"), "3 stmts")

	r := tm.Report()
	if r.TotalMS != 4 {
		t.Fatalf("total: want 4ms, got %v", r.TotalMS)
	}
	if len(r.Phases) != 2 || r.Phases[1].Note != "3 stmts" {
		t.Fatalf("unexpected report: %+v", r)
	}

	sum := tm.Summary()
	for _, want := range []string{"timings:", "lex", "codegen", "// 3 stmts", "total"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary misses %q:\n%s", want, sum)
		}
	}
}

func TestTimerIgnoresBadIndex(t *testing.T) {
	tm := NewTimer()
	tm.End(-1, "x")
	tm.End(5, "x")
	if got := tm.Report(); len(got.Phases) != 0 || got.TotalMS != 0 {
		t.Fatalf("empty timer must report nothing, got %+v", got)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	done := tm.Track("lex")
	done("")
	if tm.Phases() != nil {
		t.Fatal("nil timer has no phases")
	}
}

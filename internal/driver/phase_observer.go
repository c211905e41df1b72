package driver

import (
	"context"
	"fmt"
	"time"

	"ranoc/internal/trace"
)

// Phase names reported to observers, timers and traces.
const (
	PhaseLoad    = "load"
	PhaseCache   = "cache"
	PhaseLex     = "lex"
	PhaseParse   = "parse"
	PhaseCodegen = "codegen"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a compilation phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
	// PhaseFailed ends a phase that produced errors.
	PhaseFailed
)

func (s PhaseStatus) String() string {
	switch s {
	case PhaseStart:
		return "start"
	case PhaseEnd:
		return "end"
	case PhaseFailed:
		return "failed"
	}
	return fmt.Sprintf("PhaseStatus(%d)", int(s))
}

// PhaseEvent describes a phase boundary for one file.
type PhaseEvent struct {
	File    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during Compile.
type PhaseObserver func(PhaseEvent)

// phaseRun ties together the observer event, the timer entry and the trace
// span of one phase.
type phaseRun struct {
	file    string
	name    string
	started time.Time
	span    *trace.Span
	timer   int
	opts    *Options
}

func startPhase(ctx context.Context, opts *Options, file, name string) *phaseRun {
	p := &phaseRun{
		file:    file,
		name:    name,
		started: time.Now(),
		span:    trace.Begin(trace.FromContext(ctx), trace.ScopePass, name, trace.ParentID(ctx)),
		timer:   opts.Timer.Begin(name),
		opts:    opts,
	}
	if opts.Observer != nil {
		opts.Observer(PhaseEvent{File: file, Name: name, Status: PhaseStart})
	}
	return p
}

func (p *phaseRun) end(note string, failed bool) {
	elapsed := time.Since(p.started)
	p.span.End(note)
	timerNote := p.file
	if note != "" {
		timerNote += ": " + note
	}
	p.opts.Timer.End(p.timer, timerNote)
	if p.opts.Observer != nil {
		status := PhaseEnd
		if failed {
			status = PhaseFailed
		}
		p.opts.Observer(PhaseEvent{File: p.file, Name: p.name, Status: status, Elapsed: elapsed})
	}
}

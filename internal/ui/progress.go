// Package ui renders build progress in the terminal.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"ranoc/internal/buildpipeline"
)

// fileState is where a file is in the pipeline.
type fileState uint8

const (
	stateQueued fileState = iota
	stateWorking
	stateDone
	stateFailed
)

// Ширина колонки со статусом.
const labelWidth = 10

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	queuedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	workStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

type unitRow struct {
	name    string
	state   fileState
	stage   buildpipeline.Stage
	elapsed time.Duration
	// reason is the error of a failed event, if it carried one.
	reason string
}

type progressModel struct {
	title   string
	events  <-chan buildpipeline.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []unitRow
	byName  map[string]int
	// phase is the last pipeline-wide stage, shown in the header.
	phase  string
	width  int
	closed bool
}

type pipelineMsg buildpipeline.Event
type closedMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders build progress
// for files. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan buildpipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = workStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	rows := make([]unitRow, len(files))
	byName := make(map[string]int, len(files))
	for i, file := range files {
		rows[i] = unitRow{name: file}
		byName[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    rows,
		byName:  byName,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pipelineMsg:
		return m, tea.Batch(m.applyEvent(buildpipeline.Event(msg)), m.next())
	case closedMsg:
		m.closed = true
		return m, tea.Quit
	case tea.KeyMsg:
		// сборка продолжается, прячем только экран
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case spinner.TickMsg:
		if !m.closed {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return closedMsg{}
		}
		return pipelineMsg(ev)
	}
}

// applyEvent updates the row of ev.File; events without a file only change
// the header. A failed row stays failed.
func (m *progressModel) applyEvent(ev buildpipeline.Event) tea.Cmd {
	if ev.File == "" {
		if ev.Status == buildpipeline.StatusWorking {
			m.phase = stageVerb(ev.Stage)
		}
		return nil
	}
	idx, ok := m.byName[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[idx]
	if row.state == stateFailed {
		return nil
	}
	switch ev.Status {
	case buildpipeline.StatusQueued:
		row.state = stateQueued
	case buildpipeline.StatusWorking:
		row.state = stateWorking
		row.stage = ev.Stage
	case buildpipeline.StatusDone:
		row.state = stateDone
	case buildpipeline.StatusError:
		row.state = stateFailed
		if ev.Err != nil {
			row.reason = ev.Err.Error()
		}
	default:
		return nil
	}
	row.elapsed += ev.Elapsed
	return m.bar.SetPercent(m.percent())
}

// percent averages per-file progress; finished files count as 1.
func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	total := 0.0
	for _, row := range m.rows {
		switch row.state {
		case stateDone, stateFailed:
			total++
		case stateWorking:
			total += stageWeight(row.stage)
		}
	}
	return total / float64(len(m.rows))
}

func (m *progressModel) counts() (done, failed int) {
	for _, row := range m.rows {
		switch row.state {
		case stateDone:
			done++
		case stateFailed:
			failed++
		}
	}
	return done, failed
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder

	header := m.title
	if m.phase != "" && !m.closed {
		header += " · " + m.phase
	}
	if m.closed {
		header = "finished " + header
	} else {
		header = m.spinner.View() + " " + header
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-labelWidth-6, 20)
	for _, row := range m.rows {
		label, style := rowLabel(row)
		fmt.Fprintf(&b, "  %s %s", style.Render(fmt.Sprintf("%*s", labelWidth, label)), truncate(row.name, nameWidth))
		if row.state == stateDone && row.elapsed > 0 {
			b.WriteString(queuedStyle.Render(" " + row.elapsed.Round(time.Microsecond).String()))
		}
		if row.reason != "" {
			b.WriteString(failStyle.Render(": " + truncate(row.reason, max(nameWidth/2, 10))))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if m.closed {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	done, failed := m.counts()
	fmt.Fprintf(&b, "\n%d/%d files", done+failed, len(m.rows))
	if failed > 0 {
		b.WriteString(failStyle.Render(fmt.Sprintf(", %d failed", failed)))
	}
	b.WriteByte('\n')
	return b.String()
}

func rowLabel(row unitRow) (string, lipgloss.Style) {
	switch row.state {
	case stateDone:
		return "done", doneStyle
	case stateFailed:
		return "error", failStyle
	case stateWorking:
		return stageVerb(row.stage), workStyle
	default:
		return "queued", queuedStyle
	}
}

func stageWeight(stage buildpipeline.Stage) float64 {
	switch stage {
	case buildpipeline.StageLoad, buildpipeline.StageCache:
		return 0.1
	case buildpipeline.StageLex:
		return 0.2
	case buildpipeline.StageParse:
		return 0.4
	case buildpipeline.StageCodegen:
		return 0.7
	case buildpipeline.StageEmit:
		return 0.9
	}
	return 0
}

func stageVerb(stage buildpipeline.Stage) string {
	switch stage {
	case buildpipeline.StageLoad:
		return "loading"
	case buildpipeline.StageCache:
		return "cache"
	case buildpipeline.StageLex:
		return "scanning"
	case buildpipeline.StageParse:
		return "parsing"
	case buildpipeline.StageCodegen:
		return "lowering"
	case buildpipeline.StageEmit:
		return "emitting"
	}
	return string(stage)
}

// truncate cuts value to width display cells, marking the cut with "...".
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

// Package demo provides the BubbleTea playground for the scheduler. It runs
// an in-process scheduler against a terminal presenter so precedence and
// dismissal behavior can be explored without a Wayland session.
package demo

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marqueekit/marquee/internal/banner"
	"github.com/marqueekit/marquee/internal/entry"
	"github.com/marqueekit/marquee/internal/preview"
	"github.com/marqueekit/marquee/internal/scheduler"
)

type eventKind int

const (
	eventShown eventKind = iota
	eventExiting
	eventIdle
)

// surfaceEvent is a presenter callback turned into a BubbleTea message.
type surfaceEvent struct {
	kind eventKind
	e    *entry.Entry
}

// presenter feeds surface transitions into the TUI event channel.
type presenter struct {
	events   chan surfaceEvent
	exitFade time.Duration
}

func (p *presenter) PrepareSurface() (scheduler.Surface, error) {
	return struct{}{}, nil
}

func (p *presenter) Show(_ scheduler.Surface, e *entry.Entry) {
	p.events <- surfaceEvent{kind: eventShown, e: e}
}

func (p *presenter) AnimateOut(_ scheduler.Surface, e *entry.Entry, done func()) {
	p.events <- surfaceEvent{kind: eventExiting, e: e}
	if p.exitFade <= 0 {
		done()
		return
	}
	time.AfterFunc(p.exitFade, done)
}

func (p *presenter) TeardownSurface(_ scheduler.Surface) {
	p.events <- surfaceEvent{kind: eventIdle}
}

// model is the demo BubbleTea model.
type model struct {
	sched  *scheduler.Scheduler
	events chan surfaceEvent

	keys KeyMap
	help help.Model

	displayed *entry.Entry
	exiting   bool
	counter   int
	status    string
	width     int
}

func newModel(sched *scheduler.Scheduler, events chan surfaceEvent) model {
	return model{
		sched:  sched,
		events: events,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

func (m model) Init() tea.Cmd {
	return m.waitForEvent()
}

// waitForEvent blocks on the presenter channel and re-arms after each message.
func (m model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case surfaceEvent:
		switch msg.kind {
		case eventShown:
			m.displayed = msg.e
			m.exiting = false
		case eventExiting:
			m.exiting = true
		case eventIdle:
			m.displayed = nil
			m.exiting = false
		}
		return m, m.waitForEvent()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.SubmitLow):
		m.submit(entry.PriorityLow, entry.Enqueue())
	case key.Matches(msg, m.keys.SubmitNormal):
		m.submit(entry.PriorityNormal, entry.Enqueue())
	case key.Matches(msg, m.keys.SubmitHigh):
		m.submit(entry.PriorityHigh, entry.Enqueue())
	case key.Matches(msg, m.keys.SubmitMax):
		m.submit(entry.PriorityMax, entry.Enqueue())

	case key.Matches(msg, m.keys.Override):
		m.submit(entry.PriorityMax, entry.Override(false))
	case key.Matches(msg, m.keys.OverrideDrop):
		m.submit(entry.PriorityMax, entry.Override(true))

	case key.Matches(msg, m.keys.Dismiss):
		m.sched.Dismiss(entry.Displayed(), nil)
		m.status = "dismissed displayed"
	case key.Matches(msg, m.keys.DismissQueue):
		m.sched.Dismiss(entry.Enqueued(), nil)
		m.status = "cleared queue"
	case key.Matches(msg, m.keys.DismissAll):
		m.sched.Dismiss(entry.All(), nil)
		m.status = "dismissed everything"
	}

	return m, nil
}

func (m *model) submit(p entry.Priority, prec entry.Precedence) {
	m.counter++
	name := fmt.Sprintf("%s-%d", p.Band(), m.counter)

	_, err := m.sched.Submit(banner.Content{
		Title: fmt.Sprintf("Demo banner #%d", m.counter),
		Body:  fmt.Sprintf("Submitted as %s with precedence %s", p.Band(), prec),
	}, entry.Attributes{
		Name:       name,
		Priority:   p,
		Precedence: prec,
	})
	if err != nil {
		m.status = fmt.Sprintf("submit failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("submitted %s (%s)", name, prec)
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
	exitingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Faint(true)
)

func (m model) View() string {
	s := titleStyle.Render("marquee demo") + "\n\n"

	if m.displayed != nil {
		box := preview.Render(m.displayed)
		if m.exiting {
			box = exitingStyle.Render(box)
		}
		s += box + "\n"
	} else {
		s += dimStyle.Render("(surface idle)") + "\n"
	}

	st := m.sched.Snapshot()
	s += "\n" + dimStyle.Render(fmt.Sprintf("queued: %d", st.QueueLen))
	if m.status != "" {
		s += dimStyle.Render("  |  "+m.status)
	}

	s += "\n\n" + m.help.View(m.keys)
	return s
}

// Run launches the demo program and blocks until it exits.
func Run() error {
	events := make(chan surfaceEvent, 64)
	pres := &presenter{
		events:   events,
		exitFade: 400 * time.Millisecond,
	}

	sched := scheduler.New(pres)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	p := tea.NewProgram(newModel(sched, events), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Package viewer is terminal front end for the navigation engine. Engine is
// driven by the same commands script runner accepts, view is rebuilt from
// engine state after every command settles.
package viewer

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"storynav/host"
)

// terminal cell size in pixels used to turn window size into viewport
const (
	cellWidth  = 8
	cellHeight = 16
)

// maxEvents is number of event lines kept for display.
const maxEvents = 12

type doneMsg struct {
	cmd  string
	snap snapshot
	err  error
}

// Model is bubbletea model for a single story.
type Model struct {
	ctx    context.Context
	engine *host.Engine
	out    *bytes.Buffer

	busy       bool
	queue      []string
	snap       snapshot
	events     []string
	err        error
	attachment bool

	width, height int
}

// New returns model driving engine. Out must be the writer engine prints to,
// its content is moved into event log after every command. Story is started
// by Init.
func New(ctx context.Context, engine *host.Engine, out *bytes.Buffer) Model {
	return Model{ctx: ctx, engine: engine, out: out, busy: true}
}

func (m Model) Init() tea.Cmd {
	return m.exec("start")
}

// enqueue runs command right away when engine is idle, otherwise keeps it
// until running one completes. Engine is never touched from two goroutines.
func (m Model) enqueue(command string) (Model, tea.Cmd) {
	if m.busy {
		m.queue = append(m.queue, command)
		return m, nil
	}
	m.busy = true
	return m, m.exec(command)
}

func (m Model) exec(command string) tea.Cmd {
	ctx, e, out := m.ctx, m.engine, m.out
	return func() tea.Msg {
		err := e.Exec(ctx, command)
		return doneMsg{cmd: command, snap: takeSnapshot(e, out), err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if command := m.keyCommand(msg.String()); command != "" {
			return m.enqueue(command)
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m.enqueue(fmt.Sprintf("viewport %d %d", msg.Width*cellWidth, msg.Height*cellHeight))

	case doneMsg:
		m.busy = false
		m.snap, m.err = msg.snap, msg.err
		if msg.err == nil && strings.HasPrefix(msg.cmd, "attachment ") {
			m.attachment = msg.cmd == "attachment open"
		}
		m.events = append(m.events, msg.snap.output...)
		if n := len(m.events); n > maxEvents {
			m.events = m.events[n-maxEvents:]
		}
		if len(m.queue) > 0 {
			next := m.queue[0]
			m.queue = m.queue[1:]
			return m.enqueue(next)
		}
	}
	return m, nil
}

func (m Model) keyCommand(key string) string {
	switch key {
	case "right", "l", " ":
		return "next"
	case "left", "h":
		return "prev"
	case "a":
		return "auto"
	case "p":
		if m.snap.paused {
			return "resume"
		}
		return "pause"
	case "g":
		// authorize everything that was gated
		if len(m.snap.gated) > 0 {
			return "grant " + strings.Join(m.snap.gated, " ")
		}
	case "o":
		if m.attachment {
			return "attachment close"
		}
		return "attachment open"
	}
	return ""
}

func lines(out *bytes.Buffer) []string {
	var res []string
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		res = append(res, sc.Text())
	}
	out.Reset()
	return res
}

// Run shows story in the terminal until user quits or ctx is done.
func Run(ctx context.Context, engine *host.Engine, out *bytes.Buffer) error {
	p := tea.NewProgram(New(ctx, engine, out), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}

package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorMuted  = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"}
	colorAccent = lipgloss.AdaptiveColor{Light: "#005FAF", Dark: "#5FAFFF"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "#AF5F00", Dark: "#FFAF5F"}
	colorError  = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	activeStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	gatedStyle  = lipgloss.NewStyle().Foreground(colorWarn)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
)

const help = "←/h prev  →/l/space next  a auto  p pause  g grant  o attachment  q quit"

func (m Model) View() string {
	s := m.snap
	if s.story == "" {
		return mutedStyle.Render("loading...")
	}

	var b strings.Builder
	title := s.story
	if s.title != "" {
		title += " " + mutedStyle.Render(s.title)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteByte('\n')
	b.WriteString(m.status())
	b.WriteString("\n\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(m.pagesPanel()),
		panelStyle.Render(m.detailsPanel()),
	)
	b.WriteString(body)
	b.WriteByte('\n')

	if len(m.events) > 0 {
		b.WriteString(panelStyle.Render(strings.Join(m.events, "\n")))
		b.WriteByte('\n')
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteByte('\n')
	}
	b.WriteString(mutedStyle.Render(help))
	return b.String()
}

func (m Model) status() string {
	s := m.snap
	parts := []string{"layout " + s.layout, "engine " + s.state}
	if s.progress != "" {
		parts = append(parts, "progress "+s.progress)
	}
	if s.paused {
		parts = append(parts, "paused")
	}
	if s.pending != "" {
		parts = append(parts, gatedStyle.Render("waiting for access to "+s.pending))
	}
	if m.busy {
		parts = append(parts, "busy")
	}
	return mutedStyle.Render(strings.Join(parts, " | "))
}

func (m Model) pagesPanel() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Pages"))
	for _, p := range m.snap.pages {
		dist := "-"
		if p.known {
			dist = fmt.Sprint(p.distance)
		}
		mark := " "
		if p.visited {
			mark = "*"
		}
		line := fmt.Sprintf("%s %-16s %3s  %s", mark, p.id, dist, p.state)
		switch {
		case p.active:
			line = activeStyle.Render(line)
		case p.gated:
			line = gatedStyle.Render(line + " locked")
		case p.ad:
			line = mutedStyle.Render(line + " ad")
		}
		b.WriteByte('\n')
		b.WriteString(line)
	}
	return b.String()
}

func (m Model) detailsPanel() string {
	s := m.snap
	var b strings.Builder
	b.WriteString(titleStyle.Render("Path"))
	b.WriteByte('\n')
	b.WriteString(strings.Join(s.path, " → "))
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("Media loaded"))
	for _, id := range s.media {
		b.WriteByte('\n')
		b.WriteString(id)
	}
	if s.blur != "" {
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("backdrop from " + s.blur))
	}
	return b.String()
}

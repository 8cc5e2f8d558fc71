// ABOUTME: Terminal dashboard for the content synchronizer
// ABOUTME: Shows collection counts and cache freshness, and triggers pull/push
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ecommvert/siteadmin/cache"
	"github.com/ecommvert/siteadmin/syncer"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Underline(true)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(16)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	busyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// opCompleteMsg is sent when a pull or push finishes.
type opCompleteMsg struct {
	op  string
	err error
}

type Model struct {
	syncer *syncer.Syncer

	status   syncer.Status
	busy     string
	spinner  spinner.Model
	messages []string
}

func NewModel(s *syncer.Syncer) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = busyStyle
	return Model{
		syncer:  s,
		status:  s.CollectStatus(),
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "p":
			if m.busy == "" {
				m.busy = "pull"
				m.addMessage("Starting pull...")
				return m, m.runOp("pull")
			}
		case "u":
			if m.busy == "" {
				m.busy = "push"
				m.addMessage("Starting push...")
				return m, m.runOp("push")
			}
		case "r":
			m.status = m.syncer.CollectStatus()
		}

	case opCompleteMsg:
		m.busy = ""
		if msg.err != nil {
			m.addMessage(errStyle.Render(fmt.Sprintf("✗ %s failed: %v", msg.op, msg.err)))
		} else {
			m.addMessage(fmt.Sprintf("✓ %s completed", msg.op))
		}
		m.status = m.syncer.CollectStatus()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) runOp(op string) tea.Cmd {
	return func() tea.Msg {
		var err error
		switch op {
		case "pull":
			err = m.syncer.Pull(context.Background())
		case "push":
			err = m.syncer.Push(context.Background())
		}
		return opCompleteMsg{op: op, err: err}
	}
}

func (m *Model) addMessage(msg string) {
	timestamp := time.Now().Format("15:04:05")
	m.messages = append(m.messages, fmt.Sprintf("[%s] %s", timestamp, msg))
	if len(m.messages) > 5 {
		m.messages = m.messages[len(m.messages)-5:]
	}
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Site Content Sync"))
	s.WriteString("\n\n")

	s.WriteString(headerStyle.Render("Local Collections"))
	s.WriteString("\n\n")

	rows := []struct {
		label string
		count int
		ns    string
	}{
		{"Case studies", m.status.CaseStudies, cache.NSCaseStudies},
		{"Categories", m.status.Categories, cache.NSCategories},
		{"Testimonials", m.status.Testimonials, cache.NSTestimonials},
		{"Blog posts", m.status.BlogPosts, cache.NSBlogPosts},
		{"Extras", m.status.Extras, cache.NSExtras},
		{"Facets", m.status.Facets, cache.NSFacets},
	}
	for _, row := range rows {
		s.WriteString("  ")
		s.WriteString(labelStyle.Render(row.label))
		s.WriteString(okStyle.Render(fmt.Sprintf("%4d", row.count)))
		if t := m.status.LastWrites[row.ns]; t != nil {
			s.WriteString(mutedStyle.Render("  written " + formatTimeSince(*t)))
		}
		s.WriteString("\n")
	}
	s.WriteString("\n")

	if m.busy != "" {
		s.WriteString(m.spinner.View())
		s.WriteString(busyStyle.Render(fmt.Sprintf(" %s in progress...", m.busy)))
		s.WriteString("\n\n")
	}

	if len(m.messages) > 0 {
		s.WriteString(headerStyle.Render("Recent Activity"))
		s.WriteString("\n\n")
		for _, msg := range m.messages {
			s.WriteString(mutedStyle.Render("  " + msg))
			s.WriteString("\n")
		}
		s.WriteString("\n")
	}

	help := []string{
		"p: Pull from remote",
		"u: Push to remote",
		"r: Refresh",
		"q: Quit",
	}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))

	return s.String()
}

// Run starts the dashboard and blocks until quit.
func Run(s *syncer.Syncer) error {
	p := tea.NewProgram(NewModel(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// formatTimeSince formats a time duration in a human-readable way.
func formatTimeSince(t time.Time) string {
	duration := time.Since(t)

	if duration < time.Minute {
		return "just now"
	} else if duration < time.Hour {
		minutes := int(duration.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	} else if duration < 24*time.Hour {
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := int(duration.Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}

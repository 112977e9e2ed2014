package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func (m *model) View() string {
	m.refreshViewportIfDirty()
	return joinNonEmpty([]string{
		m.heroView(),
		m.inputPanel(),
		m.viewport.View(),
		m.statusBarView(),
		m.help.View(m.keys),
	})
}

func (m *model) heroView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		heroTitleStyle.Render(heroTitle),
		taglineStyle.Render(heroTagline),
	)
}

func (m *model) inputPanel() string {
	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		sectionHeaderStyle.Render("Your Paragraph"),
		"  ",
		wordCountStyle.Render(wordCountLabel(m.state.Paragraph.WordCount)),
	)
	return strings.Join([]string{header, m.input.View(), m.generateButtonView()}, "\n")
}

func (m *model) generateButtonView() string {
	switch {
	case m.state.Loading():
		return buttonBusyStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), loadingLabel))
	case m.state.CanSubmit():
		return buttonStyle.Render(generateLabel)
	default:
		return buttonDisabledStyle.Render(generateLabel)
	}
}

func (m *model) statusBarView() string {
	stats := []string{
		fmt.Sprintf("Status %s", m.state.Request.Status),
		fmt.Sprintf("Words %d", m.state.Paragraph.WordCount),
	}
	if m.config.Endpoint != "" {
		stats = append(stats, "Endpoint "+m.config.Endpoint)
	}
	if job := jobStatusLine(m.lastJob); job != "" {
		stats = append(stats, job)
	}
	return statusBarStyle.Render(strings.Join(stats, " • "))
}

func jobStatusLine(job *jobSnapshot) string {
	if job == nil {
		return ""
	}
	switch job.Status {
	case jobStatusRunning:
		return fmt.Sprintf("%s running", job.ID)
	case jobStatusFailed:
		return fmt.Sprintf("%s failed", job.ID)
	default:
		return fmt.Sprintf("%s done in %s", job.ID, job.Duration.Round(10*time.Millisecond))
	}
}

func wordCountLabel(n int) string {
	return fmt.Sprintf("%d words", n)
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

var (
	heroAccentColor        = lipgloss.Color("#7f5af0")
	heroSecondaryTextColor = lipgloss.Color("#a59fc7")

	heroTitleStyle      = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)
	taglineStyle        = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	sectionHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	helperStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	wordCountStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	spinnerStyle        = lipgloss.NewStyle().Foreground(heroAccentColor)
	buttonStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(heroAccentColor).Padding(0, 2)
	buttonBusyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4")).Background(lipgloss.Color("#56526e")).Padding(0, 2)
	buttonDisabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(lipgloss.Color("236")).Padding(0, 2)
	copyBadgeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	copiedBadgeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#a3be8c")).Padding(0, 1)
	statusBarStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
)

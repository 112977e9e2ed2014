package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/learnmaster/internal/session"
)

const (
	minInputHeight = 3
	maxInputHeight = 10
	minResultRows  = 6
)

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	viewportWidth  int
	viewportHeight int
	inputHeight    int
}

func newPageLayout() pageLayout {
	return pageLayout{
		viewportWidth:  80,
		viewportHeight: 12,
		inputHeight:    6,
	}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth
	// hero, input header, button, status bar, help and the gaps between them
	const chrome = 12
	usable := height - chrome
	l.inputHeight = usable / 3
	if l.inputHeight < minInputHeight {
		l.inputHeight = minInputHeight
	}
	if l.inputHeight > maxInputHeight {
		l.inputHeight = maxInputHeight
	}
	l.viewportHeight = usable - l.inputHeight
	if l.viewportHeight < minResultRows {
		l.viewportHeight = minResultRows
	}
}

type contentBuilder struct {
	builder strings.Builder
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
}

func (cb *contentBuilder) String() string {
	return cb.builder.String()
}

func (m *model) buildResultsContent() string {
	var cb contentBuilder
	if m.state.Loading() {
		cb.WriteString(helperStyle.Render(fmt.Sprintf("%s Generating…", m.spinner.View())))
		return cb.String()
	}
	summary, ok := m.state.Summary()
	if !ok {
		cb.WriteString(helperStyle.Render("Your summary and questions will appear here."))
		return cb.String()
	}
	width := m.wrapWidth(2)

	cb.WriteString(m.sectionRow("Summary", session.ArtifactSummary))
	cb.WriteRune('\n')
	if summary == "" {
		cb.WriteString(helperStyle.Render("No summary was returned."))
	} else {
		cb.WriteString(wordwrap.String(summary, width))
	}
	cb.WriteString("\n\n")

	cb.WriteString(m.sectionRow("Quiz Questions", session.ArtifactQuestions))
	questions := m.state.Questions()
	if len(questions) == 0 {
		cb.WriteRune('\n')
		cb.WriteString(helperStyle.Render("No questions were returned."))
	}
	for idx, question := range questions {
		cb.WriteRune('\n')
		cb.WriteString(wordwrap.String(fmt.Sprintf("%d. %s", idx+1, question), width))
	}
	return cb.String()
}

func (m *model) sectionRow(title string, artifact session.Artifact) string {
	badge := m.copyBadge(artifact)
	if badge == "" {
		return sectionHeaderStyle.Render(title)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, sectionHeaderStyle.Render(title), "  ", badge)
}

func (m *model) copyBadge(artifact session.Artifact) string {
	switch artifact {
	case session.ArtifactSummary:
		if summary, _ := m.state.Summary(); summary == "" {
			return ""
		}
	case session.ArtifactQuestions:
		if len(m.state.Questions()) == 0 {
			return ""
		}
	}
	if m.state.Copied(artifact) {
		return copiedBadgeStyle.Render("✓ " + copiedLabel)
	}
	return copyBadgeStyle.Render(copyLabel)
}

func (m *model) wrapWidth(padding int) int {
	width := m.layout.viewportWidth - padding
	if width < 20 {
		return 20
	}
	return width
}

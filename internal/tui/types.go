package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/csheth/learnmaster/internal/session"
	"github.com/csheth/learnmaster/internal/summarizer"
)

const (
	heroTitle   = "LearnMaster AI"
	heroTagline = "Transform any paragraph into concise summaries and insightful questions"

	inputPlaceholder = "Paste your paragraph here..."
	generateLabel    = "Generate Summary & Questions"
	loadingLabel     = "Generating Magic..."
	copyLabel        = "Copy"
	copiedLabel      = "Copied!"
)

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
)

type keyMap struct {
	Generate      key.Binding
	Clear         key.Binding
	CopySummary   key.Binding
	CopyQuestions key.Binding
	Paste         key.Binding
	Scroll        key.Binding
	Quit          key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Generate: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "generate"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear all"),
		),
		CopySummary: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy summary"),
		),
		CopyQuestions: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "copy questions"),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "paste"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("pgup", "pgdown"),
			key.WithHelp("pgup/pgdn", "scroll results"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.Clear, k.Paste, k.CopySummary, k.CopyQuestions, k.Scroll, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Generate, k.Clear, k.Paste},
		{k.CopySummary, k.CopyQuestions},
		{k.Scroll, k.Quit},
	}
}

// generateResultMsg carries the outcome of one summarization request.
type generateResultMsg struct {
	generation uint64
	result     summarizer.Result
	err        error
}

// copyResultMsg carries the outcome of one clipboard write.
type copyResultMsg struct {
	artifact session.Artifact
	err      error
}

// pasteResultMsg carries clipboard text read for the paragraph input.
type pasteResultMsg struct {
	text string
	err  error
}

// copyRevertMsg is delivered when a copy indicator's delay elapses.
type copyRevertMsg struct {
	artifact session.Artifact
	token    uint64
}

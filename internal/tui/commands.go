package tui

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/learnmaster/internal/session"
	"github.com/csheth/learnmaster/internal/summarizer"
)

var errNoSummarizer = errors.New("no summarizer configured")

// ClipboardWriter places text on the platform clipboard.
type ClipboardWriter interface {
	WriteAll(text string) error
}

// Clipboard is the platform clipboard: pasted into the paragraph, copied
// out of the results.
type Clipboard interface {
	ClipboardWriter
	ReadAll() (string, error)
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

func (systemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

func pasteCmd(reader Clipboard) tea.Cmd {
	return func() tea.Msg {
		text, err := reader.ReadAll()
		return pasteResultMsg{text: text, err: err}
	}
}

func generateJob(client summarizer.Client, generation uint64, paragraph string) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		if client == nil {
			return generateResultMsg{generation: generation, err: errNoSummarizer}, errNoSummarizer
		}
		result, err := client.Generate(ctx, paragraph)
		return generateResultMsg{generation: generation, result: result, err: err}, err
	}
}

func copyJob(writer ClipboardWriter, artifact session.Artifact, text string) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		err := writer.WriteAll(text)
		return copyResultMsg{artifact: artifact, err: err}, err
	}
}

func revertCmd(artifact session.Artifact, token uint64, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return copyRevertMsg{artifact: artifact, token: token}
	})
}

// runEffects turns the reducer's effects into commands for the runtime.
func (m *model) runEffects(effects []session.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, effect := range effects {
		switch effect := effect.(type) {
		case session.Summarize:
			cmds = append(cmds,
				m.jobs.Start(jobKindGenerate, generateJob(m.config.Summarizer, effect.Generation, effect.Paragraph)),
				m.spinner.Tick,
			)
		case session.WriteClipboard:
			cmds = append(cmds, m.jobs.Start(jobKindCopy, copyJob(m.config.Clipboard, effect.Artifact, effect.Text)))
		case session.ScheduleRevert:
			cmds = append(cmds, revertCmd(effect.Artifact, effect.Token, effect.Delay))
		}
	}
	return tea.Batch(cmds...)
}

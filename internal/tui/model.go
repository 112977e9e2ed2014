package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/csheth/learnmaster/internal/session"
	"github.com/csheth/learnmaster/internal/summarizer"
)

// Config wires the form to its collaborators.
type Config struct {
	Summarizer    summarizer.Client
	Clipboard     Clipboard
	Logger        *zap.Logger
	FeedbackDelay time.Duration
	Now           func() time.Time
	InitialText   string
	Endpoint      string
}

type model struct {
	config Config
	logger *zap.Logger
	now    func() time.Time

	state session.State

	input    textarea.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	layout   pageLayout

	jobs    *jobBus
	lastJob *jobSnapshot

	viewportDirty bool
}

// New returns the Bubble Tea model for the summarizer form.
func New(cfg Config) tea.Model {
	return newModel(cfg)
}

func newModel(cfg Config) *model {
	if cfg.Clipboard == nil {
		cfg.Clipboard = systemClipboard{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	input := textarea.New()
	input.Placeholder = inputPlaceholder
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.MaxHeight = 0
	input.KeyMap.Paste.SetEnabled(false)
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	layout := newPageLayout()
	m := &model{
		config:        cfg,
		logger:        cfg.Logger,
		now:           cfg.Now,
		state:         session.New(session.WithFeedbackDelay(cfg.FeedbackDelay)),
		input:         input,
		spinner:       sp,
		viewport:      viewport.New(layout.viewportWidth, layout.viewportHeight),
		help:          help.New(),
		keys:          newKeyMap(),
		layout:        layout,
		jobs:          newJobBus(cfg.Logger, cfg.Now),
		viewportDirty: true,
	}
	m.applyLayout()
	if cfg.InitialText != "" {
		m.input.SetValue(cfg.InitialText)
		m.dispatch(session.TextChanged{Text: m.input.Value()})
	}
	m.syncKeys()
	return m
}

func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.applyLayout()
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case spinner.TickMsg:
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.markViewportDirty()
		return m, cmd
	case jobSignalMsg:
		snapshot := msg.Snapshot
		m.lastJob = &snapshot
		return m, nil
	case jobResultEnvelope:
		snapshot := msg.Snapshot
		m.lastJob = &snapshot
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case generateResultMsg:
		return m, m.handleGenerateResult(msg)
	case copyResultMsg:
		return m, m.handleCopyResult(msg)
	case copyRevertMsg:
		return m, m.dispatch(session.CopyReverted{Artifact: msg.artifact, Token: msg.token})
	case pasteResultMsg:
		return m, m.handlePaste(msg)
	}

	return m, m.updateInput(msg)
}

// updateInput forwards msg to the textarea. Every path that can edit the
// paragraph goes through here or syncParagraph.
func (m *model) updateInput(msg tea.Msg) tea.Cmd {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return tea.Batch(cmd, m.syncParagraph(before))
}

func (m *model) syncParagraph(before string) tea.Cmd {
	after := m.input.Value()
	if after == before {
		return nil
	}
	return m.dispatch(session.TextChanged{Text: after})
}

func (m *model) handlePaste(msg pasteResultMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Warn("clipboard read failed", zap.Error(msg.err))
		return nil
	}
	before := m.input.Value()
	m.input.InsertString(msg.text)
	return m.syncParagraph(before)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Generate):
		return m.dispatch(session.SubmitRequested{})
	case key.Matches(msg, m.keys.Clear):
		m.input.Reset()
		m.viewport.GotoTop()
		return m.dispatch(session.ResetRequested{})
	case key.Matches(msg, m.keys.CopySummary):
		return m.dispatch(session.CopyRequested{Artifact: session.ArtifactSummary})
	case key.Matches(msg, m.keys.CopyQuestions):
		return m.dispatch(session.CopyRequested{Artifact: session.ArtifactQuestions})
	case key.Matches(msg, m.keys.Paste):
		return pasteCmd(m.config.Clipboard)
	case key.Matches(msg, m.keys.Scroll):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return m.updateInput(msg)
}

func (m *model) handleGenerateResult(msg generateResultMsg) tea.Cmd {
	if !m.state.Loading() || msg.generation != m.state.Request.Generation {
		m.logger.Debug("dropping stale summary response",
			zap.Uint64("generation", msg.generation),
			zap.Uint64("current", m.state.Request.Generation),
			zap.Error(msg.err))
		return nil
	}
	if msg.err != nil {
		m.logger.Warn("summary request failed",
			zap.Uint64("generation", msg.generation),
			zap.Error(msg.err))
		return m.dispatch(session.RequestFailed{Generation: msg.generation, Err: msg.err})
	}
	return m.dispatch(session.RequestSucceeded{
		Generation: msg.generation,
		Summary:    msg.result.Summary,
		Questions:  msg.result.Questions,
	})
}

func (m *model) handleCopyResult(msg copyResultMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Warn("clipboard write failed",
			zap.String("artifact", string(msg.artifact)),
			zap.Error(msg.err))
		return m.dispatch(session.CopyFailed{Artifact: msg.artifact, Err: msg.err})
	}
	return m.dispatch(session.CopySucceeded{Artifact: msg.artifact, At: m.now()})
}

// dispatch is the only place the session state changes.
func (m *model) dispatch(ev session.Event) tea.Cmd {
	var effects []session.Effect
	m.state, effects = session.Reduce(m.state, ev)
	m.syncKeys()
	m.markViewportDirty()
	return m.runEffects(effects)
}

func (m *model) syncKeys() {
	summary, _ := m.state.Summary()
	m.keys.Generate.SetEnabled(m.state.CanSubmit())
	m.keys.CopySummary.SetEnabled(summary != "")
	m.keys.CopyQuestions.SetEnabled(len(m.state.Questions()) > 0)
}

func (m *model) applyLayout() {
	m.input.SetWidth(m.layout.viewportWidth)
	m.input.SetHeight(m.layout.inputHeight)
	m.viewport.Width = m.layout.viewportWidth
	m.viewport.Height = m.layout.viewportHeight
	m.help.Width = m.layout.viewportWidth
	m.markViewportDirty()
}

func (m *model) markViewportDirty() {
	m.viewportDirty = true
}

func (m *model) refreshViewportIfDirty() {
	if !m.viewportDirty {
		return
	}
	m.viewport.SetContent(m.buildResultsContent())
	m.viewportDirty = false
}

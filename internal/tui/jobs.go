package tui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type jobKind string

type jobStatus string

const (
	jobKindGenerate jobKind = "generate"
	jobKindCopy     jobKind = "copy"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

// jobRunner performs one suspending operation. It runs exactly once and its
// payload is delivered back to Update inside a jobResultEnvelope.
type jobRunner func(context.Context) (tea.Msg, error)

type jobBus struct {
	counter int64
	logger  *zap.Logger
	now     func() time.Time
}

func newJobBus(logger *zap.Logger, now func() time.Time) *jobBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &jobBus{logger: logger, now: now}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	started := b.now()
	startSnapshot := jobSnapshot{ID: id, Kind: kind, Status: jobStatusRunning, StartedAt: started}
	startCmd := func() tea.Msg {
		return jobSignalMsg{Snapshot: startSnapshot}
	}
	runCmd := func() tea.Msg {
		return b.execute(context.Background(), startSnapshot, runner)
	}
	return tea.Sequence(startCmd, runCmd)
}

func (b *jobBus) execute(ctx context.Context, start jobSnapshot, runner jobRunner) jobResultEnvelope {
	payload, err := runner(ctx)
	snapshot := start
	snapshot.CompletedAt = b.now()
	if err != nil {
		snapshot.Status = jobStatusFailed
		snapshot.Err = err.Error()
	} else {
		snapshot.Status = jobStatusSucceeded
	}
	snapshot.Duration = snapshot.CompletedAt.Sub(start.StartedAt)
	b.logger.Debug("job finished",
		zap.String("id", snapshot.ID),
		zap.String("kind", string(snapshot.Kind)),
		zap.String("status", string(snapshot.Status)),
		zap.Duration("duration", snapshot.Duration),
		zap.Error(err))
	return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
}

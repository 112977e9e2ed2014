package session

import "time"

// Effect is work the caller performs on behalf of the state machine. The
// outcome comes back as a later Event.
type Effect interface {
	isEffect()
}

// Summarize issues exactly one request for Paragraph. The outcome must be
// reported as RequestSucceeded or RequestFailed carrying the same Generation.
type Summarize struct {
	Generation uint64
	Paragraph  string
}

// WriteClipboard places Text on the system clipboard, answered by
// CopySucceeded or CopyFailed.
type WriteClipboard struct {
	Artifact Artifact
	Text     string
}

// ScheduleRevert asks for CopyReverted{Artifact, Token} to be delivered after
// Delay, which lands at At on the clock that stamped the copy. Earlier
// reverts for the same artifact need not be cancelled; their tokens are stale.
type ScheduleRevert struct {
	Artifact Artifact
	Token    uint64
	Delay    time.Duration
	At       time.Time
}

func (Summarize) isEffect()      {}
func (WriteClipboard) isEffect() {}
func (ScheduleRevert) isEffect() {}

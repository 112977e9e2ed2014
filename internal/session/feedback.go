package session

import "time"

// DefaultFeedbackDelay is how long a "copied" indicator stays raised.
const DefaultFeedbackDelay = 2 * time.Second

// Artifact names one of the two copyable results.
type Artifact string

const (
	ArtifactSummary   Artifact = "summary"
	ArtifactQuestions Artifact = "questions"
)

// Artifacts lists every copyable artifact in display order.
var Artifacts = []Artifact{ArtifactSummary, ArtifactQuestions}

// Feedback is the timed "copied" indicator of a single artifact.
//
// Token identifies the live revert. Every successful copy bumps it, so a
// revert scheduled for an earlier copy no longer matches and is ignored.
type Feedback struct {
	Copied    bool
	ExpiresAt time.Time
	Token     uint64
}

// Clipboard holds one indicator per artifact.
type Clipboard struct {
	Summary   Feedback
	Questions Feedback
}

// Get returns the indicator for artifact.
func (c Clipboard) Get(artifact Artifact) Feedback {
	if artifact == ArtifactQuestions {
		return c.Questions
	}
	return c.Summary
}

func (c *Clipboard) set(artifact Artifact, fb Feedback) {
	if artifact == ArtifactQuestions {
		c.Questions = fb
		return
	}
	c.Summary = fb
}

func validArtifact(artifact Artifact) bool {
	return artifact == ArtifactSummary || artifact == ArtifactQuestions
}

// copyText returns the clipboard content for artifact, or false when the
// artifact has nothing to copy.
func (s State) copyText(artifact Artifact) (string, bool) {
	result := s.Request.Result
	if result == nil {
		return "", false
	}
	switch artifact {
	case ArtifactSummary:
		return result.Summary, result.Summary != ""
	case ArtifactQuestions:
		return result.JoinedQuestions(), len(result.Questions) > 0
	default:
		return "", false
	}
}

func (s State) requestCopy(ev CopyRequested) (State, []Effect) {
	text, ok := s.copyText(ev.Artifact)
	if !ok {
		return s, nil
	}
	return s, []Effect{WriteClipboard{Artifact: ev.Artifact, Text: text}}
}

func (s State) copied(ev CopySucceeded) (State, []Effect) {
	if !validArtifact(ev.Artifact) {
		return s, nil
	}
	delay := s.feedbackDelay()
	fb := s.Clipboard.Get(ev.Artifact)
	fb.Token++
	fb.Copied = true
	fb.ExpiresAt = ev.At.Add(delay)
	s.Clipboard.set(ev.Artifact, fb)
	return s, []Effect{ScheduleRevert{
		Artifact: ev.Artifact,
		Token:    fb.Token,
		Delay:    delay,
		At:       fb.ExpiresAt,
	}}
}

func (s State) revert(ev CopyReverted) (State, []Effect) {
	if !validArtifact(ev.Artifact) {
		return s, nil
	}
	fb := s.Clipboard.Get(ev.Artifact)
	if !fb.Copied || fb.Token != ev.Token {
		return s, nil
	}
	fb.Copied = false
	fb.ExpiresAt = time.Time{}
	s.Clipboard.set(ev.Artifact, fb)
	return s, nil
}

func (s State) feedbackDelay() time.Duration {
	if s.FeedbackDelay <= 0 {
		return DefaultFeedbackDelay
	}
	return s.FeedbackDelay
}

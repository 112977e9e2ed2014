package session

import "time"

// State is the complete state of one form session. It is a value: Reduce
// returns a new State and never mutates the one it was given.
type State struct {
	Paragraph     Paragraph
	Request       Request
	Clipboard     Clipboard
	FeedbackDelay time.Duration
}

// Option customises a new State.
type Option func(*State)

// WithFeedbackDelay overrides how long copy indicators stay raised.
func WithFeedbackDelay(d time.Duration) Option {
	return func(s *State) {
		if d > 0 {
			s.FeedbackDelay = d
		}
	}
}

// New returns an idle session with an empty paragraph.
func New(opts ...Option) State {
	s := State{FeedbackDelay: DefaultFeedbackDelay}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Reduce applies ev to s.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case TextChanged:
		s.Paragraph = TrackText(ev.Text)
		return s, nil
	case SubmitRequested:
		return s.submit()
	case RequestSucceeded:
		return s.succeed(ev)
	case RequestFailed:
		return s.fail(ev)
	case CopyRequested:
		return s.requestCopy(ev)
	case CopySucceeded:
		return s.copied(ev)
	case CopyFailed:
		return s, nil
	case CopyReverted:
		return s.revert(ev)
	case ResetRequested:
		return s.reset()
	default:
		return s, nil
	}
}

// CanSubmit gates the Generate action.
func (s State) CanSubmit() bool {
	return s.Request.Status != StatusLoading && s.Paragraph.Submittable()
}

// Loading reports whether a request is in flight.
func (s State) Loading() bool {
	return s.Request.Status == StatusLoading
}

// Summary returns the summary of a successful request.
func (s State) Summary() (string, bool) {
	if s.Request.Result == nil {
		return "", false
	}
	return s.Request.Result.Summary, true
}

// Questions returns the questions of a successful request in display order.
func (s State) Questions() []string {
	if s.Request.Result == nil {
		return nil
	}
	return s.Request.Result.Questions
}

// Copied reports whether the indicator for artifact is raised.
func (s State) Copied(artifact Artifact) bool {
	return s.Clipboard.Get(artifact).Copied
}

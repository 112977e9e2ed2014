package session

import "strings"

// Status is the lifecycle of the summarization request.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the payload of a successful request. Question order is display order.
type Result struct {
	Summary   string
	Questions []string
}

// JoinedQuestions renders the questions as one newline separated block.
func (r Result) JoinedQuestions() string {
	return strings.Join(r.Questions, "\n")
}

// Request is the state of the most recent summarization attempt.
//
// Generation increases on every accepted submission and on every reset.
// Responses tagged with an older generation are stale and get dropped.
type Request struct {
	Status     Status
	Generation uint64
	Result     *Result
}

func (s State) submit() (State, []Effect) {
	if s.Request.Status == StatusLoading || !s.Paragraph.Submittable() {
		return s, nil
	}
	s.Request.Generation++
	s.Request.Status = StatusLoading
	s.Request.Result = nil
	return s, []Effect{Summarize{
		Generation: s.Request.Generation,
		Paragraph:  s.Paragraph.Text,
	}}
}

func (s State) current(generation uint64) bool {
	return s.Request.Status == StatusLoading && s.Request.Generation == generation
}

func (s State) succeed(ev RequestSucceeded) (State, []Effect) {
	if !s.current(ev.Generation) {
		return s, nil
	}
	s.Request.Status = StatusSucceeded
	s.Request.Result = &Result{
		Summary:   ev.Summary,
		Questions: append([]string(nil), ev.Questions...),
	}
	return s, nil
}

func (s State) fail(ev RequestFailed) (State, []Effect) {
	if !s.current(ev.Generation) {
		return s, nil
	}
	s.Request.Status = StatusFailed
	s.Request.Result = nil
	return s, nil
}

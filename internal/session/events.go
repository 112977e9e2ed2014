package session

import "time"

// Event is one input to the state machine.
type Event interface {
	isEvent()
}

// TextChanged reports the full current contents of the paragraph input.
type TextChanged struct {
	Text string
}

// SubmitRequested asks for the paragraph to be summarized.
type SubmitRequested struct{}

// RequestSucceeded delivers the payload of the request with the given generation.
type RequestSucceeded struct {
	Generation uint64
	Summary    string
	Questions  []string
}

// RequestFailed reports a transport, status or decoding failure.
type RequestFailed struct {
	Generation uint64
	Err        error
}

// CopyRequested asks for an artifact to be placed on the clipboard.
type CopyRequested struct {
	Artifact Artifact
}

// CopySucceeded reports that the clipboard write finished at At.
type CopySucceeded struct {
	Artifact Artifact
	At       time.Time
}

// CopyFailed reports a clipboard write failure. It never changes state.
type CopyFailed struct {
	Artifact Artifact
	Err      error
}

// CopyReverted fires when the revert scheduled with Token elapses.
type CopyReverted struct {
	Artifact Artifact
	Token    uint64
}

// ResetRequested clears the paragraph and the request.
type ResetRequested struct{}

func (TextChanged) isEvent()      {}
func (SubmitRequested) isEvent()  {}
func (RequestSucceeded) isEvent() {}
func (RequestFailed) isEvent()    {}
func (CopyRequested) isEvent()    {}
func (CopySucceeded) isEvent()    {}
func (CopyFailed) isEvent()       {}
func (CopyReverted) isEvent()     {}
func (ResetRequested) isEvent()   {}

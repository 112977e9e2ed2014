package session

// reset clears the paragraph and the request. The generation moves forward so
// that a response still in flight is recognised as stale when it lands.
// Clipboard indicators keep running on their own timers.
func (s State) reset() (State, []Effect) {
	s.Paragraph = Paragraph{}
	s.Request = Request{
		Status:     StatusIdle,
		Generation: s.Request.Generation + 1,
	}
	return s, nil
}

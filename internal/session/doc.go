// Package session holds the interaction state machine behind the LearnMaster
// form: paragraph tracking, the single-flight summarization request, the two
// timed "copied" indicators and the Clear All reset.
//
// Every transition goes through Reduce, which takes the current State and one
// Event and returns the next State plus the Effects the caller must perform
// (issue the request, write the clipboard, schedule a revert). Reduce never
// performs I/O, never reads the wall clock and never starts goroutines, so the
// whole machine can be driven from tests with a logical clock.
package session

package session

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withText(text string) State {
	s, _ := Reduce(New(), TextChanged{Text: text})
	return s
}

func TestSubmitBlankParagraphIsNoop(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		s := withText(text)
		next, effects := Reduce(s, SubmitRequested{})
		assert.Empty(t, effects, "no request for %q", text)
		if diff := cmp.Diff(s, next); diff != "" {
			t.Fatalf("state changed for %q (-want +got):\n%s", text, diff)
		}
		assert.Equal(t, StatusIdle, next.Request.Status)
	}
}

func TestSubmitEmitsSingleRequest(t *testing.T) {
	s := withText("Cells divide by mitosis.")
	s, effects := Reduce(s, SubmitRequested{})

	require.Len(t, effects, 1)
	assert.Equal(t, Summarize{Generation: 1, Paragraph: "Cells divide by mitosis."}, effects[0])
	assert.Equal(t, StatusLoading, s.Request.Status)
	assert.True(t, s.Loading())
	assert.False(t, s.CanSubmit())
}

func TestSubmitWhileLoadingIsIgnored(t *testing.T) {
	s, _ := Reduce(withText("first"), SubmitRequested{})
	before := s
	s, effects := Reduce(s, SubmitRequested{})
	assert.Empty(t, effects)
	assert.Equal(t, before, s)
}

func TestSuccessfulRequestPopulatesResult(t *testing.T) {
	s, effects := Reduce(withText("The quick brown fox"), SubmitRequested{})
	require.Len(t, effects, 1)
	gen := effects[0].(Summarize).Generation

	questions := []string{"Why does it run?", "What color is it?", "Is it quick?"}
	s, effects = Reduce(s, RequestSucceeded{Generation: gen, Summary: "A fox runs.", Questions: questions})
	assert.Empty(t, effects)
	assert.Equal(t, StatusSucceeded, s.Request.Status)

	summary, ok := s.Summary()
	require.True(t, ok)
	assert.Equal(t, "A fox runs.", summary)
	assert.Equal(t, questions, s.Questions())

	questions[0] = "mutated"
	assert.Equal(t, "Why does it run?", s.Questions()[0], "result must not alias the event slice")
}

func TestFailedRequestLeavesNoResult(t *testing.T) {
	s, effects := Reduce(withText("Plate tectonics"), SubmitRequested{})
	gen := effects[0].(Summarize).Generation

	s, _ = Reduce(s, RequestFailed{Generation: gen, Err: errors.New("connection refused")})
	assert.Equal(t, StatusFailed, s.Request.Status)
	_, ok := s.Summary()
	assert.False(t, ok)
	assert.Empty(t, s.Questions())
	assert.True(t, s.CanSubmit(), "a failed request can be retried by hand")
}

func TestSubmitClearsPreviousResult(t *testing.T) {
	s, effects := Reduce(withText("alpha beta"), SubmitRequested{})
	s, _ = Reduce(s, RequestSucceeded{Generation: effects[0].(Summarize).Generation, Summary: "old", Questions: []string{"q"}})

	s, effects = Reduce(s, SubmitRequested{})
	require.Len(t, effects, 1)
	assert.Equal(t, uint64(2), effects[0].(Summarize).Generation)
	assert.Nil(t, s.Request.Result)

	s, _ = Reduce(s, RequestFailed{Generation: 2, Err: errors.New("502")})
	_, ok := s.Summary()
	assert.False(t, ok, "a failed retry must not resurrect the older result")
}

func TestStaleResponsesAreDiscarded(t *testing.T) {
	s, effects := Reduce(withText("first paragraph"), SubmitRequested{})
	stale := effects[0].(Summarize).Generation

	t.Run("after reset", func(t *testing.T) {
		cleared, _ := Reduce(s, ResetRequested{})
		got, _ := Reduce(cleared, RequestSucceeded{Generation: stale, Summary: "late", Questions: []string{"late?"}})
		assert.Equal(t, cleared, got)
		assert.Equal(t, StatusIdle, got.Request.Status)
	})

	t.Run("after a newer submission", func(t *testing.T) {
		failed, _ := Reduce(s, RequestFailed{Generation: stale, Err: errors.New("boom")})
		retried, effects := Reduce(failed, SubmitRequested{})
		fresh := effects[0].(Summarize).Generation
		require.NotEqual(t, stale, fresh)

		got, _ := Reduce(retried, RequestSucceeded{Generation: stale, Summary: "late"})
		assert.Equal(t, StatusLoading, got.Request.Status)

		got, _ = Reduce(got, RequestSucceeded{Generation: fresh, Summary: "fresh", Questions: []string{}})
		summary, _ := got.Summary()
		assert.Equal(t, "fresh", summary)
	})

	t.Run("duplicate delivery", func(t *testing.T) {
		done, _ := Reduce(s, RequestSucceeded{Generation: stale, Summary: "once"})
		again, _ := Reduce(done, RequestFailed{Generation: stale, Err: errors.New("late failure")})
		assert.Equal(t, StatusSucceeded, again.Request.Status)
	})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "succeeded", StatusSucceeded.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", Status(42).String())
}

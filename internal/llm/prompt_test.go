package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	completion string
	err        error
	prompts    []string
}

func (s *stubClient) Complete(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.completion, s.err
}

func (s *stubClient) Name() string { return "stub" }

func TestBuildStudyGuidePrompt(t *testing.T) {
	prompt := buildStudyGuidePrompt("Water boils at 100 degrees.")
	for _, want := range []string{
		"2 multiple choice questions (with options)",
		"2 short answer questions",
		"1 true/false question",
		"2 vocabulary or grammar-based questions",
		"\"\"\"\nWater boils at 100 degrees.\n\"\"\"",
		"Summary:\n[summary]",
		"Questions:\n1. [question]",
	} {
		assert.Contains(t, prompt, want)
	}
}

func TestParseStudyGuide(t *testing.T) {
	raw := "Here you go.\nSummary:\n  Water boils at 100C at sea level.  \n\nQuestions:\n1. At what temperature does water boil?\n\n2. True or false: altitude matters.\n   \n3. Define \"boil\".\n"
	guide, err := ParseStudyGuide(raw)
	require.NoError(t, err)
	assert.Equal(t, "Water boils at 100C at sea level.", guide.Summary)
	assert.Equal(t, []string{
		"1. At what temperature does water boil?",
		"2. True or false: altitude matters.",
		"3. Define \"boil\".",
	}, guide.Questions)
}

func TestParseStudyGuideQuestionsFirst(t *testing.T) {
	raw := "Questions:\n1. What boils?\n2. At what temperature?\n\nSummary:\nWater boils at 100C.\n"
	guide, err := ParseStudyGuide(raw)
	require.NoError(t, err)
	assert.Equal(t, "Water boils at 100C.", guide.Summary)
	assert.Equal(t, []string{"1. What boils?", "2. At what temperature?"}, guide.Questions)
}

func TestParseStudyGuideRepeatedQuestionsMarker(t *testing.T) {
	raw := "Summary:\nShort.\nQuestions:\n1. First?\nQuestions:\n1. Duplicate?\n"
	guide, err := ParseStudyGuide(raw)
	require.NoError(t, err)
	assert.Equal(t, "Short.", guide.Summary)
	assert.Equal(t, []string{"1. First?"}, guide.Questions)
}

func TestParseStudyGuideMissingMarkers(t *testing.T) {
	for _, raw := range []string{"no markers at all", "Summary: only a summary", "Questions:\n1. q"} {
		guide, err := ParseStudyGuide(raw)
		assert.ErrorIs(t, err, ErrUnparseable, raw)
		assert.Empty(t, guide.Summary)
		assert.NotNil(t, guide.Questions)
		assert.Empty(t, guide.Questions)
	}
}

func TestStudyGuideRejectsBlankParagraph(t *testing.T) {
	stub := &stubClient{}
	_, err := StudyGuide(context.Background(), stub, "   ")
	require.Error(t, err)
	assert.Empty(t, stub.prompts)
}

func TestStudyGuideClipsLongParagraphs(t *testing.T) {
	stub := &stubClient{completion: "Summary: s\nQuestions:\nq"}
	long := strings.Repeat("a", maxParagraphChars+100)
	_, err := StudyGuide(context.Background(), stub, long)
	require.NoError(t, err)
	require.Len(t, stub.prompts, 1)
	assert.NotContains(t, stub.prompts[0], strings.Repeat("a", maxParagraphChars+1))
}

func TestStudyGuidePropagatesClientError(t *testing.T) {
	stub := &stubClient{err: errors.New("rate limited")}
	_, err := StudyGuide(context.Background(), stub, "text")
	assert.EqualError(t, err, "rate limited")
}

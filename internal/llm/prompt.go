package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	summaryMarker   = "Summary:"
	questionsMarker = "Questions:"
)

// ErrUnparseable marks a completion that does not follow the
// Summary:/Questions: layout requested by the prompt.
var ErrUnparseable = errors.New("completion lacks Summary/Questions sections")

// Guide is a summary plus the questions generated for a paragraph.
type Guide struct {
	Summary   string
	Questions []string
}

// StudyGuide prompts client for a summary and questions about paragraph.
func StudyGuide(ctx context.Context, client Client, paragraph string) (Guide, error) {
	text := clipText(paragraph, maxParagraphChars)
	if text == "" {
		return Guide{}, fmt.Errorf("paragraph empty; cannot build study guide")
	}
	raw, err := client.Complete(ctx, buildStudyGuidePrompt(text))
	if err != nil {
		return Guide{}, err
	}
	return ParseStudyGuide(raw)
}

func clipText(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 || len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func buildStudyGuidePrompt(paragraph string) string {
	var b strings.Builder
	b.WriteString("Summarise the following paragraph clearly and generate contextual questions:\n")
	b.WriteString("- 2 multiple choice questions (with options)\n")
	b.WriteString("- 2 short answer questions\n")
	b.WriteString("- 1 true/false question\n")
	b.WriteString("- 2 vocabulary or grammar-based questions\n\n")
	b.WriteString("Paragraph:\n\"\"\"\n")
	b.WriteString(paragraph)
	b.WriteString("\n\"\"\"\n\n")
	b.WriteString("Output in this format:\n")
	b.WriteString(summaryMarker + "\n[summary]\n\n")
	b.WriteString(questionsMarker + "\n1. [question]\n2. [question]\n...\n")
	return b.String()
}

// ParseStudyGuide splits a completion into its summary and question lines.
// The summary runs from the Summary marker to the next Questions marker; the
// questions are every non-blank line after the first Questions marker, up to
// a repeated marker or a Summary that follows it. The markers may come in
// either order. When either marker is
// missing the returned Guide is empty and the error wraps ErrUnparseable.
func ParseStudyGuide(raw string) (Guide, error) {
	_, afterSummary, ok := strings.Cut(raw, summaryMarker)
	if !ok {
		return Guide{Questions: []string{}}, fmt.Errorf("%w: no %q marker", ErrUnparseable, summaryMarker)
	}
	_, afterQuestions, ok := strings.Cut(raw, questionsMarker)
	if !ok {
		return Guide{Questions: []string{}}, fmt.Errorf("%w: no %q marker", ErrUnparseable, questionsMarker)
	}
	summary, _, _ := strings.Cut(afterSummary, questionsMarker)
	questionBlock, _, _ := strings.Cut(afterQuestions, questionsMarker)
	questionBlock, _, _ = strings.Cut(questionBlock, summaryMarker)
	questions := []string{}
	for _, line := range strings.Split(questionBlock, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			questions = append(questions, line)
		}
	}
	return Guide{Summary: strings.TrimSpace(summary), Questions: questions}, nil
}

package session

import "strings"

// Paragraph is the text currently held by the input plus its derived word count.
type Paragraph struct {
	Text      string
	WordCount int
}

// TrackText derives the paragraph state for raw input. WordCount is the number
// of maximal non-whitespace runs, so it is zero exactly when the trimmed text
// is empty.
func TrackText(raw string) Paragraph {
	return Paragraph{Text: raw, WordCount: CountWords(raw)}
}

// CountWords counts whitespace separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// Submittable reports whether the text may be sent for summarization.
func (p Paragraph) Submittable() bool {
	return strings.TrimSpace(p.Text) != ""
}

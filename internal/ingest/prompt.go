package ingest

import (
	"fmt"
	"strings"

	"studykit/internal/generation"
)

// DefaultCardCount is used when the caller omits the flashcard count or
// supplies a non-positive value. No upper bound is enforced; the backend
// is trusted to self-limit.
const DefaultCardCount = 10

const textPromptTemplate = `You are an expert tutor.
Summarize the following notes in 3 bullet points.
Then generate %d flashcards in this format:

Q: question
A: answer

TEXT:
%s`

const imagePromptTemplate = `You are an expert tutor.
This image contains handwritten study notes.
Summarize the notes in 3 bullet points.
Then generate %d flashcards in this format:

Q: question
A: answer`

// NormalizeCardCount substitutes the default for omitted or non-positive counts.
func NormalizeCardCount(count int) int {
	if count < 1 {
		return DefaultCardCount
	}
	return count
}

// BuildTextPrompt composes the instruction for text-bearing submissions,
// embedding the extracted or raw text verbatim after the TEXT marker.
// Blank text fails rather than producing a degenerate backend request.
func BuildTextPrompt(text string, count int) (generation.Request, error) {
	if strings.TrimSpace(text) == "" {
		return generation.Request{}, ErrEmptyContent
	}

	return generation.Request{
		Instruction: fmt.Sprintf(textPromptTemplate, NormalizeCardCount(count), text),
	}, nil
}

// BuildImagePrompt composes the instruction for photographed notes,
// attaching the image payload inline with its declared media type.
func BuildImagePrompt(mediaType string, data []byte, count int) generation.Request {
	return generation.Request{
		Instruction: fmt.Sprintf(imagePromptTemplate, NormalizeCardCount(count)),
		Media: &generation.InlineMedia{
			MIMEType: mediaType,
			Data:     data,
		},
	}
}

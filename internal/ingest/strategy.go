// Package ingest implements the study-material pipeline: classifying a
// submitted artifact, extracting its text, composing the generation
// instruction, invoking the backend, and normalizing the reply — with the
// transient upload released on every exit path.
package ingest

import "mime"

// Strategy is the classifier's decision of how to handle an artifact's
// content type.
type Strategy string

const (
	StrategyText        Strategy = "text"
	StrategyPDF         Strategy = "pdf"
	StrategyDOCX        Strategy = "docx"
	StrategyImage       Strategy = "image"
	StrategyUnsupported Strategy = "unsupported"
)

const docxMediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Classify selects the handling strategy for a declared media type.
// An empty media type means the request carried inline text rather than a
// file. Unrecognized types classify as unsupported; that decision is
// terminal and never retried.
func Classify(mediaType string) Strategy {
	if mediaType == "" {
		return StrategyText
	}

	// Declared types may carry parameters (charset, boundary).
	parsed, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return StrategyUnsupported
	}

	switch parsed {
	case "text/plain":
		return StrategyText
	case "application/pdf":
		return StrategyPDF
	case docxMediaType:
		return StrategyDOCX
	case "image/jpeg", "image/png":
		return StrategyImage
	default:
		return StrategyUnsupported
	}
}

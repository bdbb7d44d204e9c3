package generation

// FallbackText is returned by Normalize when no textual payload can be
// found in a backend response. It is a valid result, not an error.
const FallbackText = "No response"

// Candidate is one generation alternative returned by the backend.
type Candidate struct {
	Content Content
}

// Content holds the textual parts of a candidate.
type Content struct {
	Parts []string
}

// Response is the backend's raw structured reply. Backends differ in shape:
// some expose a direct text accessor, others only the nested
// candidates/content/parts structure, and a response may carry neither.
type Response struct {
	Text       string
	Candidates []Candidate
}

// Normalize extracts the best-effort human-readable text from the response.
// Preference order: the direct text accessor, then the first candidate's
// first content part. When both are absent it returns FallbackText.
func (r *Response) Normalize() string {
	if r == nil {
		return FallbackText
	}
	if r.Text != "" {
		return r.Text
	}
	for _, c := range r.Candidates {
		for _, p := range c.Content.Parts {
			if p != "" {
				return p
			}
		}
	}
	return FallbackText
}

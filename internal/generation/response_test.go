package generation_test

import (
	"testing"

	"studykit/internal/generation"
)

func TestResponse_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		response *generation.Response
		want     string
	}{
		{
			"direct text preferred",
			&generation.Response{Text: "direct"},
			"direct",
		},
		{
			"direct text wins over candidates",
			&generation.Response{
				Text: "direct",
				Candidates: []generation.Candidate{
					{Content: generation.Content{Parts: []string{"nested"}}},
				},
			},
			"direct",
		},
		{
			"first candidate part when text absent",
			&generation.Response{
				Candidates: []generation.Candidate{
					{Content: generation.Content{Parts: []string{"nested"}}},
				},
			},
			"nested",
		},
		{
			"empty parts skipped",
			&generation.Response{
				Candidates: []generation.Candidate{
					{Content: generation.Content{Parts: []string{"", ""}}},
					{Content: generation.Content{Parts: []string{"", "second"}}},
				},
			},
			"second",
		},
		{
			"empty response falls back",
			&generation.Response{},
			generation.FallbackText,
		},
		{
			"candidates without parts fall back",
			&generation.Response{
				Candidates: []generation.Candidate{
					{Content: generation.Content{}},
				},
			},
			generation.FallbackText,
		},
		{
			"nil response falls back",
			nil,
			generation.FallbackText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.response.Normalize()
			if got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}

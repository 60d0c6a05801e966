package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayloadMatchesType(t *testing.T) {
	tests := []struct {
		name     string
		block    ContentBlock
		expected bool
	}{
		{
			name:     "text block with text",
			block:    ContentBlock{Type: ContentText, Text: "hello"},
			expected: true,
		},
		{
			name:     "code block with code",
			block:    ContentBlock{Type: ContentCode, Code: "var x int"},
			expected: true,
		},
		{
			name:     "math block with math",
			block:    ContentBlock{Type: ContentMath, Math: `\frac{1}{2}`},
			expected: true,
		},
		{
			name:     "graph block with graph",
			block:    ContentBlock{Type: ContentGraph, Graph: &GraphSpec{Title: "growth"}},
			expected: true,
		},
		{
			name:     "no payload",
			block:    ContentBlock{Type: ContentText},
			expected: false,
		},
		{
			name:     "two payloads",
			block:    ContentBlock{Type: ContentText, Text: "hello", Code: "x"},
			expected: false,
		},
		{
			name:     "payload does not match type",
			block:    ContentBlock{Type: ContentMath, Text: "not math"},
			expected: false,
		},
		{
			name:     "unknown type",
			block:    ContentBlock{Type: "VIDEO", Text: "hello"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.block.PayloadMatchesType())
		})
	}
}

func TestGenerationRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     GenerationRequest
		wantErr bool
	}{
		{
			name:    "valid minimal request",
			req:     GenerationRequest{Topic: "Go", UserID: "user-1"},
			wantErr: false,
		},
		{
			name: "valid with personalization",
			req: GenerationRequest{
				Topic: "Go", UserID: "user-1",
				Personalization: &Personalization{Level: "beginner"},
			},
			wantErr: false,
		},
		{
			name:    "missing topic",
			req:     GenerationRequest{UserID: "user-1"},
			wantErr: true,
		},
		{
			name:    "missing user id",
			req:     GenerationRequest{Topic: "Go"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				var validationErr *ValidationError
				assert.ErrorAs(t, err, &validationErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSolution(t *testing.T) {
	raw := "```json\n{\"solution\":\"x = 4\",\"explanation\":\"subtract 3\",\"steps\":[{\"title\":\"Isolate\",\"content\":\"2x = 8\"}],\"confidence\":1.4}\n```"

	sol, err := parseSolution(raw)
	require.NoError(t, err)
	assert.Equal(t, "x = 4", sol.Solution)
	assert.Len(t, sol.Steps, 1)
	assert.Equal(t, 1.0, sol.Confidence)
}

func TestParseSolution_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "the answer is 4"},
		{"empty solution", `{"solution":"  ","confidence":0.5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSolution(tt.raw)
			var inv *ErrInvalidResponse
			assert.True(t, errors.As(err, &inv))
		})
	}
}

func TestUserContent_AppendsAttachment(t *testing.T) {
	got := userContent(SolveRequest{Prompt: "Solve this", InputType: "voice", InputURL: "https://cdn.test/a.mp3"})
	assert.Equal(t, "Solve this\n\nAttached voice: https://cdn.test/a.mp3", got)

	got = userContent(SolveRequest{Prompt: "Solve https://cdn.test/a.png", InputURL: "https://cdn.test/a.png"})
	assert.Equal(t, "Solve https://cdn.test/a.png", got)
}

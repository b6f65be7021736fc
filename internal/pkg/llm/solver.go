package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Solver produces a worked solution for a submission.
type Solver interface {
	Solve(ctx context.Context, req SolveRequest) (*Solution, error)
	ModelID() string
}

type SolveRequest struct {
	// Prompt is the fully rendered instruction text.
	Prompt      string
	InputText   string
	InputURL    string
	InputType   string // text, image, voice
	MaxTokens   int
	Temperature float64
}

type Step struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Solution struct {
	Solution    string  `json:"solution"`
	Explanation string  `json:"explanation"`
	Steps       []Step  `json:"steps"`
	Confidence  float64 `json:"confidence"`
	Model       string  `json:"-"`
}

const systemInstruction = `You are a tutoring assistant. Answer strictly as a JSON object with the keys:
"solution" (string, the final answer),
"explanation" (string, why the answer is right),
"steps" (array of {"title": string, "content": string}, in order),
"confidence" (number between 0 and 1).
Do not wrap the JSON in markdown.`

// userContent joins the rendered prompt with the raw input reference when the
// prompt itself does not already carry it.
func userContent(req SolveRequest) string {
	var b strings.Builder
	b.WriteString(req.Prompt)
	if req.InputURL != "" && !strings.Contains(req.Prompt, req.InputURL) {
		b.WriteString("\n\nAttached ")
		b.WriteString(req.InputType)
		b.WriteString(": ")
		b.WriteString(req.InputURL)
	}
	return b.String()
}

// parseSolution decodes the model output into a Solution.
func parseSolution(raw string) (*Solution, error) {
	cleaned := cleanJSON(raw)

	var sol Solution
	if err := json.Unmarshal([]byte(cleaned), &sol); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("decode solution: %w", err)}
	}
	if strings.TrimSpace(sol.Solution) == "" {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("solution is empty")}
	}

	switch {
	case sol.Confidence < 0:
		sol.Confidence = 0
	case sol.Confidence > 1:
		sol.Confidence = 1
	}
	return &sol, nil
}

// cleanJSON buang markdown fence kalau model tetap membungkus JSON
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

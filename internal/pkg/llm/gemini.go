package llm

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path"

	"google.golang.org/genai"
)

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey string, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) ModelID() string {
	return c.model
}

func (c *GeminiClient) Solve(ctx context.Context, req SolveRequest) (*Solution, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: geminiParts(req),
	}}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	sol, err := parseSolution(result.Text())
	if err != nil {
		return nil, err
	}
	sol.Model = c.model
	return sol, nil
}

func geminiParts(req SolveRequest) []*genai.Part {
	if req.InputURL == "" || req.InputType == "text" {
		return []*genai.Part{{Text: userContent(req)}}
	}
	return []*genai.Part{
		{Text: req.Prompt},
		genai.NewPartFromURI(req.InputURL, guessMIME(req.InputURL, req.InputType)),
	}
}

func guessMIME(url, inputType string) string {
	if t := mime.TypeByExtension(path.Ext(url)); t != "" {
		return t
	}
	if inputType == "voice" {
		return "audio/mpeg"
	}
	return "image/jpeg"
}

func mapGeminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case apiErr.Code >= 500:
			return &ErrUnavailable{Err: err}
		case apiErr.Code >= 400:
			return &ErrBadRequest{Err: err}
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &ErrUnavailable{Err: err}
}

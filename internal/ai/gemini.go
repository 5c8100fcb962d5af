package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiSummarizer implements Summarizer using Google's Gemini models.
type GeminiSummarizer struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiSummarizer initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiSummarizer(ctx context.Context, apiKey string) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Use Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")
	model.SetTemperature(0.4)

	return &GeminiSummarizer{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiSummarizer) Close() {
	p.client.Close()
}

// SummarizeDay turns one day's recorded visits into a short diary-style
// paragraph for the timeline screen.
func (p *GeminiSummarizer) SummarizeDay(ctx context.Context, date string, visits []Visit) (string, error) {
	payload, err := json.Marshal(visits)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Role: You write the daily digest for a personal location diary app.
The user visited the following places on %s (JSON, chronological, category "%s" means they were on the move):

%s

Write 2-3 sentences in Japanese summarizing the day's movements. Mention notable
stops by name, skip repeated entries for the same place, and keep a warm,
diary-like tone. Output plain text only, no markdown.`, date, "移動中", string(payload))

	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			out.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(out.String()), nil
}

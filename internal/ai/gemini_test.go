package ai

import (
	"context"
	"os"
	"testing"
)

func TestSummarizeDayIntegration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set; skipping gemini integration test")
	}

	ctx := context.Background()
	s, err := NewGeminiSummarizer(ctx, apiKey)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	visits := []Visit{
		{Time: "09:00", PlaceName: "佐賀大学", Category: "university"},
		{Time: "12:30", PlaceName: "不明な場所", Category: "移動中"},
		{Time: "13:00", PlaceName: "佐賀駅", Category: "train_station"},
	}
	out, err := s.SummarizeDay(ctx, "2025-09-01", visits)
	if err != nil {
		t.Fatal(err)
	}
	if out == "" {
		t.Fatal("expected a non-empty summary")
	}
	t.Logf("summary: %s", out)
}

package ai

import "context"

// Summarizer produces a short natural-language digest of a day of visits.
type Summarizer interface {
	SummarizeDay(ctx context.Context, date string, visits []Visit) (string, error)
	Close()
}

// Visit is one recorded stop handed to the summarizer.
type Visit struct {
	Time      string `json:"time"`
	PlaceName string `json:"place_name"`
	Category  string `json:"category"`
}

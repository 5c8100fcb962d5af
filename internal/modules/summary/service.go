// README: Day-summary service composing timeline records into an AI digest.
package summary

import (
	"context"
	"errors"
	"time"

	"github.com/kanta1129/navireco/internal/ai"
	"github.com/kanta1129/navireco/internal/modules/record"
)

var (
	ErrDisabled  = errors.New("summary generation disabled")
	ErrNoRecords = errors.New("no records for the requested day")
)

// Fetching a whole day never needs more than this; background sampling caps
// out at 48 records per day.
const dayFetchLimit = 200

type Service struct {
	records    record.Store
	summarizer ai.Summarizer
}

func NewService(records record.Store, summarizer ai.Summarizer) *Service {
	return &Service{records: records, summarizer: summarizer}
}

// SummarizeDay produces a natural-language digest of the given local day.
func (s *Service) SummarizeDay(ctx context.Context, userID string, day time.Time) (string, error) {
	if s.summarizer == nil {
		return "", ErrDisabled
	}

	recs, err := s.records.QueryRecent(ctx, userID, dayFetchLimit)
	if err != nil {
		return "", err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	// QueryRecent is newest-first; collect the day's records oldest-first.
	var visits []ai.Visit
	for i := len(recs) - 1; i >= 0; i-- {
		rec := recs[i]
		at := rec.RecordedAt.In(day.Location())
		if at.Before(dayStart) || !at.Before(dayEnd) {
			continue
		}
		visits = append(visits, ai.Visit{
			Time:      at.Format("15:04"),
			PlaceName: rec.PlaceName,
			Category:  rec.Category,
		})
	}
	if len(visits) == 0 {
		return "", ErrNoRecords
	}

	return s.summarizer.SummarizeDay(ctx, dayStart.Format("2006-01-02"), visits)
}

// README: Redis fix stage: latest device positions plus a pub/sub event feed.
package sampling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	fixGeoKey        = "fixes:geo"
	fixHashPrefix    = "fixes:last:%s"
	fixChannelPrefix = "fixes:events:%s"
	// Staged fixes are only useful for the next few activations.
	fixTTL = 24 * time.Hour
)

var ErrFixUnavailable = errors.New("location fix unavailable")

// Store stages the most recent raw fix pushed by each device and publishes an
// event per push, so a waiting sampler can pick up a fresh fix the moment it
// arrives.
type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

type stagedFix struct {
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	CapturedAt int64   `json:"captured_at_ms"`
	AccuracyM  float64 `json:"accuracy_m"`
}

// Publish stages a device-pushed fix and notifies any waiting sampler.
func (s *Store) Publish(ctx context.Context, userID string, fix Fix) error {
	payload, err := json.Marshal(stagedFix{
		Lat:        fix.Point.Lat,
		Lng:        fix.Point.Lng,
		CapturedAt: fix.CapturedAt.UnixMilli(),
		AccuracyM:  fix.AccuracyM,
	})
	if err != nil {
		return err
	}

	pipe := s.redis.Pipeline()
	pipe.GeoAdd(ctx, fixGeoKey, &redis.GeoLocation{
		Name:      userID,
		Longitude: fix.Point.Lng,
		Latitude:  fix.Point.Lat,
	})
	pipe.HSet(ctx, lastFixKey(userID), map[string]interface{}{
		"lat":            strconv.FormatFloat(fix.Point.Lat, 'f', -1, 64),
		"lng":            strconv.FormatFloat(fix.Point.Lng, 'f', -1, 64),
		"captured_at_ms": strconv.FormatInt(fix.CapturedAt.UnixMilli(), 10),
		"accuracy_m":     strconv.FormatFloat(fix.AccuracyM, 'f', -1, 64),
	})
	pipe.Expire(ctx, lastFixKey(userID), fixTTL)
	pipe.Publish(ctx, fixChannelKey(userID), payload)
	_, err = pipe.Exec(ctx)
	return err
}

// Latest returns the most recently staged fix for the user, if any.
func (s *Store) Latest(ctx context.Context, userID string) (Fix, bool, error) {
	vals, err := s.redis.HGetAll(ctx, lastFixKey(userID)).Result()
	if err != nil {
		return Fix{}, false, err
	}
	if len(vals) == 0 {
		return Fix{}, false, nil
	}
	lat, err := strconv.ParseFloat(vals["lat"], 64)
	if err != nil {
		return Fix{}, false, fmt.Errorf("corrupt staged fix for %s: %w", userID, err)
	}
	lng, err := strconv.ParseFloat(vals["lng"], 64)
	if err != nil {
		return Fix{}, false, fmt.Errorf("corrupt staged fix for %s: %w", userID, err)
	}
	ms, err := strconv.ParseInt(vals["captured_at_ms"], 10, 64)
	if err != nil {
		return Fix{}, false, fmt.Errorf("corrupt staged fix for %s: %w", userID, err)
	}
	acc, _ := strconv.ParseFloat(vals["accuracy_m"], 64)

	fix := Fix{CapturedAt: time.UnixMilli(ms), AccuracyM: acc}
	fix.Point.Lat = lat
	fix.Point.Lng = lng
	return fix, true, nil
}

func lastFixKey(userID string) string {
	return fmt.Sprintf(fixHashPrefix, userID)
}

func fixChannelKey(userID string) string {
	return fmt.Sprintf(fixChannelPrefix, userID)
}

// Provider adapts the fix stage into the single-shot fix boundary: one
// request yields one fix or an error, and cancelling the context stops the
// wait promptly.
type Provider struct {
	store  *Store
	userID string
	maxAge time.Duration
	now    func() time.Time
}

func NewProvider(store *Store, userID string, maxAge time.Duration) *Provider {
	return &Provider{store: store, userID: userID, maxAge: maxAge, now: time.Now}
}

// RequestFix returns the staged fix when it is fresh enough for the requested
// accuracy class, otherwise blocks until the device pushes a new one or ctx
// expires. The subscription is opened before the freshness check so a fix
// arriving in between is not lost.
func (p *Provider) RequestFix(ctx context.Context, req Request) (Fix, error) {
	sub := p.store.redis.Subscribe(ctx, fixChannelKey(p.userID))
	defer func() { _ = sub.Close() }()

	fix, ok, err := p.store.Latest(ctx, p.userID)
	if err != nil {
		return Fix{}, fmt.Errorf("%w: %v", ErrFixUnavailable, err)
	}
	if ok && p.now().Sub(fix.CapturedAt) <= p.maxAge {
		return fix, nil
	}

	ch := sub.Channel()
	select {
	case <-ctx.Done():
		return Fix{}, ctx.Err()
	case msg, open := <-ch:
		if !open {
			return Fix{}, fmt.Errorf("%w: fix feed closed", ErrFixUnavailable)
		}
		var staged stagedFix
		if err := json.Unmarshal([]byte(msg.Payload), &staged); err != nil {
			return Fix{}, fmt.Errorf("%w: %v", ErrFixUnavailable, err)
		}
		fresh := Fix{CapturedAt: time.UnixMilli(staged.CapturedAt), AccuracyM: staged.AccuracyM}
		fresh.Point.Lat = staged.Lat
		fresh.Point.Lng = staged.Lng
		return fresh, nil
	}
}

// README: Tracking settings service; owns the ScheduleConfig surface.
package settings

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/kanta1129/navireco/internal/modules/schedule"
)

const settingsKeyPrefix = "settings:%s"

// Service holds the user's tracking configuration, persisting it to Redis so
// a restart resumes with the same schedule. Changes are pushed to the
// registered listener (the planner) so the schedule reacts immediately.
type Service struct {
	redis    *redis.Client
	userID   string
	onChange func(schedule.Config)

	mu  sync.Mutex
	cfg schedule.Config
}

func NewService(redis *redis.Client, userID string) *Service {
	return &Service{
		redis:  redis,
		userID: userID,
		cfg:    schedule.Config{TrackingEnabled: false, FrequencyMinutes: 60},
	}
}

// OnChange registers the listener invoked after every successful update.
func (s *Service) OnChange(fn func(schedule.Config)) {
	s.onChange = fn
}

// Load restores persisted settings; missing keys keep the defaults.
func (s *Service) Load(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	vals, err := s.redis.HGetAll(ctx, s.key()).Result()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if len(vals) == 0 {
		return nil
	}
	cfg := schedule.Config{
		TrackingEnabled:  vals["tracking_enabled"] == "1",
		FrequencyMinutes: 60,
	}
	if n, err := strconv.Atoi(vals["frequency_minutes"]); err == nil {
		cfg.FrequencyMinutes = n
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("settings: persisted config invalid, keeping defaults: %v", err)
		return nil
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

// Current returns the live configuration; the planner re-reads it on every
// scheduling decision.
func (s *Service) Current() schedule.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Update validates, persists, and applies a new configuration.
func (s *Service) Update(ctx context.Context, cfg schedule.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if s.redis != nil {
		enabled := "0"
		if cfg.TrackingEnabled {
			enabled = "1"
		}
		err := s.redis.HSet(ctx, s.key(), map[string]interface{}{
			"tracking_enabled":  enabled,
			"frequency_minutes": strconv.Itoa(cfg.FrequencyMinutes),
		}).Err()
		if err != nil {
			return fmt.Errorf("persisting settings: %w", err)
		}
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	if s.onChange != nil {
		s.onChange(cfg)
	}
	return nil
}

func (s *Service) key() string {
	return fmt.Sprintf(settingsKeyPrefix, s.userID)
}

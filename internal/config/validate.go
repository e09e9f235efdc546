package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Scheduler.validate(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	if c.OpenAI.BaseURL == "" {
		return fmt.Errorf("openai: base_url must not be empty")
	}

	return nil
}

func (s *SchedulerConfig) validate() error {
	if s.NewItemsPerSelection <= 0 {
		return fmt.Errorf("new_items_per_selection must be > 0 (got %d)", s.NewItemsPerSelection)
	}

	if _, err := time.LoadLocation(s.ReferenceTimezone); err != nil {
		return fmt.Errorf("reference_timezone %q: %w", s.ReferenceTimezone, err)
	}

	rungs, err := ParseLadder(s.LadderRaw)
	if err != nil {
		return fmt.Errorf("ladder: %w", err)
	}
	// New schedule entries are created at checkpoint 0, so the ladder must
	// start there.
	if rungs[0].Checkpoint != 0 {
		return fmt.Errorf("ladder: first checkpoint must be 0 (got %d)", rungs[0].Checkpoint)
	}
	s.Ladder = rungs

	return nil
}

// ParseLadder parses a comma-separated list of "checkpoint:thresholdDays"
// pairs (e.g. "0:1,1:1,2:5,7:7,14:16") into ladder rungs. Checkpoints must be
// strictly ascending and thresholds positive.
func ParseLadder(raw string) ([]LadderRung, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("must not be empty")
	}

	parts := strings.Split(raw, ",")
	rungs := make([]LadderRung, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		cp, threshold, found := strings.Cut(part, ":")
		if !found {
			return nil, fmt.Errorf("entry %q: want checkpoint:thresholdDays", part)
		}

		checkpoint, err := strconv.Atoi(strings.TrimSpace(cp))
		if err != nil {
			return nil, fmt.Errorf("entry %q: invalid checkpoint: %w", part, err)
		}
		days, err := strconv.Atoi(strings.TrimSpace(threshold))
		if err != nil {
			return nil, fmt.Errorf("entry %q: invalid threshold: %w", part, err)
		}
		if days <= 0 {
			return nil, fmt.Errorf("entry %q: threshold must be positive", part)
		}
		if len(rungs) > 0 && rungs[len(rungs)-1].Checkpoint >= checkpoint {
			return nil, fmt.Errorf("entry %q: checkpoints must be strictly ascending", part)
		}

		rungs = append(rungs, LadderRung{Checkpoint: checkpoint, ThresholdDays: days})
	}

	return rungs, nil
}

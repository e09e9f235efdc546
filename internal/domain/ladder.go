package domain

import "fmt"

// Rung is one checkpoint on the spacing ladder. ThresholdDays is the maximum
// number of elapsed days since the last review before the item counts as
// missed at this checkpoint. Thresholds are configured per checkpoint and may
// exceed the gap to the next checkpoint; that slack is intentional.
type Rung struct {
	Checkpoint    int
	ThresholdDays int
}

// CheckpointLadder is the ordered, immutable spacing curve. Checkpoints are
// strictly ascending; every item's checkpoint must be a value on the ladder.
type CheckpointLadder struct {
	rungs []Rung
}

// DefaultLadder returns the reference spacing curve:
// checkpoints 0,1,2,7,14 with thresholds 1,1,5,7,16.
func DefaultLadder() *CheckpointLadder {
	l, _ := NewCheckpointLadder([]Rung{
		{Checkpoint: 0, ThresholdDays: 1},
		{Checkpoint: 1, ThresholdDays: 1},
		{Checkpoint: 2, ThresholdDays: 5},
		{Checkpoint: 7, ThresholdDays: 7},
		{Checkpoint: 14, ThresholdDays: 16},
	})
	return l
}

// NewCheckpointLadder validates and builds a ladder from the given rungs.
func NewCheckpointLadder(rungs []Rung) (*CheckpointLadder, error) {
	if len(rungs) == 0 {
		return nil, fmt.Errorf("ladder: %w", NewValidationError("rungs", "at least one rung required"))
	}
	for i, r := range rungs {
		if r.ThresholdDays <= 0 {
			return nil, fmt.Errorf("ladder: %w", NewValidationError("threshold_days", "must be positive"))
		}
		if i > 0 && rungs[i-1].Checkpoint >= r.Checkpoint {
			return nil, fmt.Errorf("ladder: %w", NewValidationError("checkpoint", "must be strictly ascending"))
		}
	}
	copied := make([]Rung, len(rungs))
	copy(copied, rungs)
	return &CheckpointLadder{rungs: copied}, nil
}

// Len returns the number of rungs.
func (l *CheckpointLadder) Len() int { return len(l.rungs) }

// At returns the rung at the given index.
func (l *CheckpointLadder) At(i int) Rung { return l.rungs[i] }

// First returns the checkpoint value new items start at.
func (l *CheckpointLadder) First() int { return l.rungs[0].Checkpoint }

// IndexOf returns the index of the given checkpoint value,
// or false if it is not on the ladder.
func (l *CheckpointLadder) IndexOf(checkpoint int) (int, bool) {
	for i, r := range l.rungs {
		if r.Checkpoint == checkpoint {
			return i, true
		}
	}
	return 0, false
}

// ThresholdFor returns the miss threshold in days for the given checkpoint
// value, or false if the checkpoint is not on the ladder.
func (l *CheckpointLadder) ThresholdFor(checkpoint int) (int, bool) {
	i, ok := l.IndexOf(checkpoint)
	if !ok {
		return 0, false
	}
	return l.rungs[i].ThresholdDays, true
}

// Previous returns the checkpoint value one rung below index, clamped at the
// first rung.
func (l *CheckpointLadder) Previous(index int) int {
	if index <= 0 {
		return l.rungs[0].Checkpoint
	}
	return l.rungs[index-1].Checkpoint
}

// Next returns the checkpoint value one rung above index, clamped at the
// last rung.
func (l *CheckpointLadder) Next(index int) int {
	if index >= len(l.rungs)-1 {
		return l.rungs[len(l.rungs)-1].Checkpoint
	}
	return l.rungs[index+1].Checkpoint
}

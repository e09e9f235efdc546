package domain

import "testing"

func TestDefaultLadder_Table(t *testing.T) {
	t.Parallel()

	l := DefaultLadder()

	wantCheckpoints := []int{0, 1, 2, 7, 14}
	wantThresholds := []int{1, 1, 5, 7, 16}

	if l.Len() != len(wantCheckpoints) {
		t.Fatalf("Len() = %d, want %d", l.Len(), len(wantCheckpoints))
	}
	for i := range wantCheckpoints {
		r := l.At(i)
		if r.Checkpoint != wantCheckpoints[i] {
			t.Errorf("At(%d).Checkpoint = %d, want %d", i, r.Checkpoint, wantCheckpoints[i])
		}
		if r.ThresholdDays != wantThresholds[i] {
			t.Errorf("At(%d).ThresholdDays = %d, want %d", i, r.ThresholdDays, wantThresholds[i])
		}
	}
}

func TestCheckpointLadder_IndexOf(t *testing.T) {
	t.Parallel()

	l := DefaultLadder()

	tests := []struct {
		checkpoint int
		wantIndex  int
		wantOK     bool
	}{
		{0, 0, true},
		{1, 1, true},
		{2, 2, true},
		{7, 3, true},
		{14, 4, true},
		{3, 0, false},
		{-1, 0, false},
		{100, 0, false},
	}
	for _, tt := range tests {
		idx, ok := l.IndexOf(tt.checkpoint)
		if ok != tt.wantOK || (ok && idx != tt.wantIndex) {
			t.Errorf("IndexOf(%d) = (%d, %v), want (%d, %v)",
				tt.checkpoint, idx, ok, tt.wantIndex, tt.wantOK)
		}
	}
}

func TestCheckpointLadder_ThresholdFor(t *testing.T) {
	t.Parallel()

	l := DefaultLadder()

	if d, ok := l.ThresholdFor(14); !ok || d != 16 {
		t.Errorf("ThresholdFor(14) = (%d, %v), want (16, true)", d, ok)
	}
	if _, ok := l.ThresholdFor(5); ok {
		t.Error("ThresholdFor(5) should not be found")
	}
}

func TestCheckpointLadder_PreviousNext_Clamped(t *testing.T) {
	t.Parallel()

	l := DefaultLadder()

	if got := l.Previous(0); got != 0 {
		t.Errorf("Previous(0) = %d, want 0 (clamped)", got)
	}
	if got := l.Previous(3); got != 2 {
		t.Errorf("Previous(3) = %d, want 2", got)
	}
	if got := l.Next(4); got != 14 {
		t.Errorf("Next(4) = %d, want 14 (clamped)", got)
	}
	if got := l.Next(2); got != 7 {
		t.Errorf("Next(2) = %d, want 7", got)
	}
}

func TestNewCheckpointLadder_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rungs []Rung
	}{
		{name: "empty", rungs: nil},
		{name: "zero threshold", rungs: []Rung{{Checkpoint: 0, ThresholdDays: 0}}},
		{name: "not ascending", rungs: []Rung{{Checkpoint: 2, ThresholdDays: 1}, {Checkpoint: 1, ThresholdDays: 1}}},
		{name: "duplicate checkpoint", rungs: []Rung{{Checkpoint: 1, ThresholdDays: 1}, {Checkpoint: 1, ThresholdDays: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewCheckpointLadder(tt.rungs); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

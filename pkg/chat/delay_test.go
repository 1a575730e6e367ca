package chat

import (
	"context"
	"testing"
	"time"
)

func TestRandomDelayBounds(t *testing.T) {
	source := RandomDelay(DefaultMinDelay, DefaultMaxDelay)

	for i := 0; i < 1000; i++ {
		d := source()
		if d < DefaultMinDelay || d >= DefaultMaxDelay {
			t.Fatalf("Delay %v outside [%v, %v)", d, DefaultMinDelay, DefaultMaxDelay)
		}
	}
}

func TestRandomDelayEmptySpan(t *testing.T) {
	source := RandomDelay(time.Second, time.Second)
	if d := source(); d != time.Second {
		t.Errorf("Expected 1s, got %v", d)
	}

	source = RandomDelay(time.Second, time.Millisecond)
	if d := source(); d != time.Second {
		t.Errorf("Expected min for inverted bounds, got %v", d)
	}
}

func TestPause(t *testing.T) {
	err := pause(context.Background(), 0)
	if err != nil {
		t.Errorf("Expected no error for zero pause, got %v", err)
	}

	err = pause(context.Background(), time.Millisecond)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = pause(ctx, time.Hour)
	if err == nil {
		t.Error("Expected error for cancelled context, got nil")
	}
}

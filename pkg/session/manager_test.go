package session

import (
	"context"
	"testing"
	"time"

	"github.com/nikogura/portfolio-chat/pkg/chat"
	"github.com/nikogura/portfolio-chat/pkg/logger"
	"github.com/nikogura/portfolio-chat/pkg/portfolio"
	"github.com/pkg/errors"
)

func testFactory() (factory Factory) {
	store := portfolio.NewStoreWithRecord(portfolio.Record{})
	factory = func() *chat.Controller {
		return chat.NewController(store, chat.WithDelay(chat.NoDelay()))
	}
	return factory
}

func TestCreateAndGet(t *testing.T) {
	m := NewManager(testFactory(), time.Minute, logger.Nop())

	s := m.Create()
	if s.Controller == nil {
		t.Fatal("Expected controller")
	}

	got, err := m.Get(s.ID.String())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got != s {
		t.Error("Expected the same session back")
	}

	if m.Len() != 1 {
		t.Errorf("Expected 1 session, got %d", m.Len())
	}
}

func TestGetUnknown(t *testing.T) {
	m := NewManager(testFactory(), time.Minute, logger.Nop())

	tests := []string{"not-a-uuid", "7d444840-9dc0-11d1-b245-5ffdce74fad2", ""}
	for _, id := range tests {
		_, err := m.Get(id)
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound for %q, got %v", id, err)
		}
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	m := NewManager(testFactory(), time.Minute, logger.Nop())

	a := m.Create()
	b := m.Create()

	_, err := a.Controller.Submit(context.Background(), "skills")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if len(b.Controller.Transcript()) != 0 {
		t.Error("Expected second session transcript to be untouched")
	}
}

func TestEnd(t *testing.T) {
	m := NewManager(testFactory(), time.Minute, logger.Nop())
	s := m.Create()

	err := m.End(s.ID.String())
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}

	_, err = m.Get(s.ID.String())
	if err == nil {
		t.Error("Expected ended session to be gone")
	}
}

func TestSweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManager(testFactory(), 10*time.Minute, logger.Nop())
	m.clock = func() time.Time { return now }

	stale := m.Create()
	now = now.Add(8 * time.Minute)
	fresh := m.Create()

	now = now.Add(5 * time.Minute)

	removed := m.Sweep()
	if removed != 1 {
		t.Errorf("Expected 1 removed, got %d", removed)
	}

	_, err := m.Get(stale.ID.String())
	if err == nil {
		t.Error("Expected stale session to be swept")
	}

	_, err = m.Get(fresh.ID.String())
	if err != nil {
		t.Errorf("Expected fresh session to survive, got %v", err)
	}
}

func TestSweepDisabled(t *testing.T) {
	m := NewManager(testFactory(), 0, logger.Nop())
	m.Create()

	if m.Sweep() != 0 {
		t.Error("Expected no sweeping with zero timeout")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	m := NewManager(testFactory(), time.Minute, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- m.Run(ctx, time.Millisecond)
	}()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected nil error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}

package portfolio

import (
	"context"
	"sync"

	"github.com/nikogura/portfolio-chat/pkg/logger"
)

// Store owns the loaded Record. It starts empty and is filled at most once;
// after that the Record never changes.
type Store struct {
	mu     sync.RWMutex
	record Record
	loaded bool
	once   sync.Once
	ready  chan struct{}
}

// NewStore creates an empty store awaiting Fill.
func NewStore() (store *Store) {
	store = &Store{
		ready: make(chan struct{}),
	}
	return store
}

// NewStoreWithRecord creates a store that is already loaded.
func NewStoreWithRecord(record Record) (store *Store) {
	store = NewStore()
	store.once.Do(func() {
		store.set(record, true)
	})
	return store
}

// Record returns the current record. Until a load succeeds this is the zero value.
func (s *Store) Record() (record Record) {
	s.mu.RLock()
	record = s.record
	s.mu.RUnlock()
	return record
}

// Loaded reports whether a document was successfully loaded.
func (s *Store) Loaded() (loaded bool) {
	s.mu.RLock()
	loaded = s.loaded
	s.mu.RUnlock()
	return loaded
}

// Ready is closed once the single load attempt has finished, successfully or not.
func (s *Store) Ready() (ready <-chan struct{}) {
	ready = s.ready
	return ready
}

// Fill performs the one-shot load from source. Failures are logged and swallowed,
// leaving the store at its zero value. Later calls are no-ops.
func (s *Store) Fill(ctx context.Context, source string, log *logger.Logger) {
	s.once.Do(func() {
		record, err := LoadWithContext(ctx, source)
		if err != nil {
			log.Error("portfolio data load failed", "source", source, "error", err)
			s.set(Record{}, false)
			return
		}

		missing := record.MissingSections()
		if len(missing) > 0 {
			log.Warn("portfolio data has empty sections", "source", source, "sections", missing)
		}
		log.Info("portfolio data loaded", "source", source, "name", record.Personal.Name)

		s.set(record, true)
	})
}

func (s *Store) set(record Record, loaded bool) {
	s.mu.Lock()
	s.record = record
	s.loaded = loaded
	s.mu.Unlock()

	close(s.ready)
}

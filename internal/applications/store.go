package applications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"internship-tracker/internal/shared/metrics"
	"internship-tracker/internal/shared/storage/kv"
	"internship-tracker/internal/shared/telemetry"
)

// DefaultKey is the storage key the collection is persisted under.
const DefaultKey = "internships"

// Store owns the ordered collection of applications and writes the full
// collection through to its key-value backend after every mutation.
type Store struct {
	mu    sync.Mutex
	kv    kv.Store
	key   string
	ids   *idGenerator
	items []Application
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if k := strings.TrimSpace(key); k != "" {
			s.key = k
		}
	}
}

// WithClock sets the clock used for creation-time ids.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) {
		s.ids = newIDGenerator(clock)
	}
}

// NewStore builds an empty store over backend. Call Load to restore persisted state.
func NewStore(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:    backend,
		key:   DefaultKey,
		items: []Application{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		s.ids = newIDGenerator(nil)
	}
	return s
}

// Key returns the storage key in use.
func (s *Store) Key() string { return s.key }

// Load replaces the in-memory collection with the persisted one. A missing key
// or an undecodable payload yields an empty collection and no error; only
// backend read failures are returned.
func (s *Store) Load(ctx context.Context) ([]Application, error) {
	data, err := s.kv.Get(ctx, s.key)
	var apps []Application
	switch {
	case errors.Is(err, kv.ErrNotFound):
		apps = []Application{}
	case err != nil:
		return nil, fmt.Errorf("load applications: %w", err)
	default:
		apps, err = DecodeSnapshot(data)
		if err != nil {
			metrics.SnapshotDecodeFailures.Inc()
			telemetry.Warn("applications.snapshot_decode_failed", map[string]any{
				"key":   s.key,
				"bytes": len(data),
				"error": err.Error(),
			})
			apps = []Application{}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, app := range apps {
		s.ids.Observe(app.ID)
	}
	s.items = apps
	s.recordGauges()
	return cloneAll(apps), nil
}

// Add appends a new application built from d. A draft with an empty name or
// deadline is skipped: ok is false and nothing is persisted. Values are stored
// as given.
func (s *Store) Add(ctx context.Context, d Draft) (Application, bool, error) {
	if d.Name == "" || d.Deadline == "" {
		metrics.ObserveMutation("add", metrics.OutcomeSkipped)
		return Application{}, false, nil
	}
	if d.ApplicationStatus == "" {
		d.ApplicationStatus = StatusNotStarted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	app := Application{
		ID:                s.ids.Next(),
		Name:              d.Name,
		Link:              d.Link,
		Deadline:          d.Deadline,
		ApplicationStatus: d.ApplicationStatus,
		ResultStatus:      d.ResultStatus,
	}
	next := make([]Application, 0, len(s.items)+1)
	next = append(next, s.items...)
	next = append(next, app)

	if err := s.commit(ctx, "add", next); err != nil {
		return Application{}, false, err
	}
	return app, true, nil
}

// Remove deletes the application with the given id. An unknown id is a no-op.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		metrics.ObserveMutation("remove", metrics.OutcomeSkipped)
		return false, nil
	}
	next := make([]Application, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)

	if err := s.commit(ctx, "remove", next); err != nil {
		return false, err
	}
	return true, nil
}

// Update applies every update in us, in order, to the application with the
// given id and persists the result with a single write. An unknown id is a
// no-op. Field values are stored as given.
func (s *Store) Update(ctx context.Context, id string, us ...Update) (bool, error) {
	if len(us) == 0 {
		return false, errors.New("update is required")
	}
	ops := make([]string, 0, len(us))
	for _, u := range us {
		if u == nil {
			return false, errors.New("update is required")
		}
		ops = append(ops, u.op())
	}
	op := strings.Join(ops, ",")

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		metrics.ObserveMutation(op, metrics.OutcomeSkipped)
		return false, nil
	}
	next := cloneAll(s.items)
	for _, u := range us {
		u.apply(&next[idx])
	}

	if err := s.commit(ctx, op, next); err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the application with the given id.
func (s *Store) Get(id string) (Application, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return Application{}, false
	}
	return s.items[idx], true
}

// All returns the whole collection in insertion order.
func (s *Store) All() []Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.items)
}

// Filter returns the records matching keep without touching the store.
func (s *Store) Filter(keep func(Application) bool) []Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Filter(s.items, keep)
}

// Active returns every application not yet Completed.
func (s *Store) Active() []Application { return s.Filter(IsActive) }

// Completed returns every Completed application.
func (s *Store) Completed() []Application { return s.Filter(IsCompleted) }

// View returns the records of the named view.
func (s *Store) View(v View) []Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	return v.Select(s.items)
}

// Counts sizes the three views.
func (s *Store) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CountViews(s.items)
}

// commit persists next and, on success, makes it the current collection.
// Callers hold s.mu.
func (s *Store) commit(ctx context.Context, op string, next []Application) error {
	data, err := EncodeSnapshot(next)
	if err != nil {
		metrics.ObserveMutation(op, metrics.OutcomeFailed)
		return err
	}

	start := time.Now()
	err = s.kv.Set(ctx, s.key, data)
	metrics.PersistDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ObserveMutation(op, metrics.OutcomeFailed)
		telemetry.Error("applications.persist_failed", map[string]any{
			"key":   s.key,
			"op":    op,
			"error": err.Error(),
		})
		return fmt.Errorf("persist applications: %w", err)
	}

	s.items = next
	metrics.ObserveMutation(op, metrics.OutcomeApplied)
	s.recordGauges()
	return nil
}

func (s *Store) recordGauges() {
	c := CountViews(s.items)
	metrics.SetViewSizes(c.All, c.Active, c.Completed)
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(apps []Application) []Application {
	out := make([]Application, len(apps))
	copy(out, apps)
	return out
}

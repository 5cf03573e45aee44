package applications

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship-tracker/internal/shared/storage/kv"
	"internship-tracker/internal/shared/telemetry"
)

const baseMillis = 1700000000000

type flakyKV struct {
	*kv.MemoryStore
	getErr error
	setErr error
	sets   int

	// failOnAttempt makes the n-th Set call (1-based) fail with setErr.
	failOnAttempt int
	attempts      int
}

func newFlakyKV() *flakyKV {
	return &flakyKV{MemoryStore: kv.NewMemoryStore()}
}

func (f *flakyKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	f.attempts++
	if f.failOnAttempt > 0 {
		if f.attempts == f.failOnAttempt {
			return f.setErr
		}
	} else if f.setErr != nil {
		return f.setErr
	}
	f.sets++
	return f.MemoryStore.Set(ctx, key, value)
}

func quietLogs(t *testing.T) {
	t.Helper()
	telemetry.Configure(io.Discard, "error")
	t.Cleanup(func() { telemetry.Configure(os.Stdout, "info") })
}

func fakeClock() clockwork.FakeClock {
	return clockwork.NewFakeClockAt(time.UnixMilli(baseMillis))
}

func acmeDraft() Draft {
	return Draft{
		Name:     "Acme / Backend Intern",
		Link:     "https://acme.example/apply",
		Deadline: "01/01/2030",
	}
}

func persisted(t *testing.T, backend kv.Store, key string) []Application {
	t.Helper()
	data, err := backend.Get(context.Background(), key)
	require.NoError(t, err)
	apps, err := DecodeSnapshot(data)
	require.NoError(t, err)
	return apps
}

func TestAddThenReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryStore()

	first := NewStore(backend, WithClock(fakeClock()))
	_, err := first.Load(ctx)
	require.NoError(t, err)

	added, ok, err := first.Add(ctx, acmeDraft())
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, added.ID)

	second := NewStore(backend)
	loaded, err := second.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, added.ID, got.ID)
	assert.Equal(t, "Acme / Backend Intern", got.Name)
	assert.Equal(t, "https://acme.example/apply", got.Link)
	assert.Equal(t, "01/01/2030", got.Deadline)
	assert.Equal(t, StatusNotStarted, got.ApplicationStatus)
	assert.Equal(t, ResultNone, got.ResultStatus)
}

func TestIDsAreCreationTimestamps(t *testing.T) {
	ctx := context.Background()
	clock := fakeClock()
	store := NewStore(kv.NewMemoryStore(), WithClock(clock))

	app, ok, err := store.Add(ctx, acmeDraft())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1700000000000", app.ID)

	clock.Advance(250 * time.Millisecond)
	app, _, err = store.Add(ctx, acmeDraft())
	require.NoError(t, err)
	assert.Equal(t, "1700000000250", app.ID)
}

func TestRapidAddsGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemoryStore(), WithClock(fakeClock()))

	a, _, err := store.Add(ctx, acmeDraft())
	require.NoError(t, err)
	b, _, err := store.Add(ctx, acmeDraft())
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "1700000000001", b.ID)
}

func TestConcurrentAddsStayUniqueAndPersisted(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryStore()
	store := NewStore(backend, WithClock(fakeClock()))

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := store.Add(ctx, acmeDraft())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, app := range store.All() {
		assert.False(t, seen[app.ID], "duplicate id %s", app.ID)
		seen[app.ID] = true
	}
	assert.Len(t, seen, n)
	assert.Len(t, persisted(t, backend, DefaultKey), n)
}

func TestAddRequiresNameAndDeadline(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyKV()
	store := NewStore(backend)

	drafts := []Draft{
		{Name: "", Deadline: "01/01/2030"},
		{Name: "Acme", Deadline: ""},
	}
	for _, d := range drafts {
		_, ok, err := store.Add(ctx, d)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	assert.Empty(t, store.All())
	assert.Zero(t, backend.sets)
	_, err := backend.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestAddAcceptsWhitespaceValuesVerbatim(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryStore()
	store := NewStore(backend, WithClock(fakeClock()))

	app, ok, err := store.Add(ctx, Draft{Name: "   ", Link: " https://acme.example ", Deadline: "01/01/2030"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "   ", app.Name)
	assert.Equal(t, " https://acme.example ", app.Link)
	assert.Equal(t, []Application{app}, persisted(t, backend, DefaultKey))
}

func TestAddKeepsProvidedStatuses(t *testing.T) {
	store := NewStore(kv.NewMemoryStore())
	d := acmeDraft()
	d.ApplicationStatus = StatusPending
	d.ResultStatus = ResultPending

	app, ok, err := store.Add(context.Background(), d)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StatusPending, app.ApplicationStatus)
	assert.Equal(t, ResultPending, app.ResultStatus)
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemoryStore(), WithClock(fakeClock()))
	for _, name := range []string{"Acme", "Globex", "Initech"} {
		_, _, err := store.Add(ctx, Draft{Name: name, Deadline: "01/01/2030"})
		require.NoError(t, err)
	}

	var names []string
	for _, app := range store.All() {
		names = append(names, app.Name)
	}
	assert.Equal(t, []string{"Acme", "Globex", "Initech"}, names)
}

func TestUpdateMovesRecordToCompletedView(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryStore()
	store := NewStore(backend, WithClock(fakeClock()))

	app, _, err := store.Add(ctx, acmeDraft())
	require.NoError(t, err)
	require.Len(t, store.Active(), 1)
	require.Empty(t, store.Completed())

	ok, err := store.Update(ctx, app.ID, SetApplicationStatus{Status: StatusCompleted})
	require.NoError(t, err)
	require.True(t, ok)

	assert.Empty(t, store.Active())
	completed := store.Completed()
	require.Len(t, completed, 1)
	moved := completed[0]
	assert.Equal(t, app.ID, moved.ID)
	assert.Equal(t, app.Name, moved.Name)
	assert.Equal(t, app.Link, moved.Link)
	assert.Equal(t, app.Deadline, moved.Deadline)

	assert.Equal(t, StatusCompleted, persisted(t, backend, DefaultKey)[0].ApplicationStatus)
}

func TestUpdateResultStatusStoresValueVerbatim(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemoryStore())
	app, _, err := store.Add(ctx, acmeDraft())
	require.NoError(t, err)

	ok, err := store.Update(ctx, app.ID, SetResultStatus{Result: "anything"})
	require.NoError(t, err)
	require.True(t, ok)

	got, found := store.Get(app.ID)
	require.True(t, found)
	assert.Equal(t, ResultStatus("anything"), got.ResultStatus)
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	backend := newFlakyKV()
	store := NewStore(backend)

	ok, err := store.Update(context.Background(), "missing", SetResultStatus{Result: ResultSelected})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, backend.sets)
}

func TestUpdateRequiresOperation(t *testing.T) {
	store := NewStore(kv.NewMemoryStore())
	_, err := store.Update(context.Background(), "1", nil)
	assert.Error(t, err)
	_, err = store.Update(context.Background(), "1")
	assert.Error(t, err)
}

func TestUpdateAppliesSeveralChangesInOneWrite(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyKV()
	store := NewStore(backend, WithClock(fakeClock()))
	app, _, err := store.Add(ctx, acmeDraft())
	require.NoError(t, err)
	require.Equal(t, 1, backend.sets)

	ok, err := store.Update(ctx, app.ID,
		SetApplicationStatus{Status: StatusCompleted},
		SetResultStatus{Result: ResultSelected},
	)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, backend.sets)

	stored := persisted(t, backend, DefaultKey)
	require.Len(t, stored, 1)
	assert.Equal(t, StatusCompleted, stored[0].ApplicationStatus)
	assert.Equal(t, ResultSelected, stored[0].ResultStatus)
}

func TestUpdateWithSeveralChangesIsAllOrNothing(t *testing.T) {
	quietLogs(t)
	ctx := context.Background()
	backend := newFlakyKV()
	store := NewStore(backend, WithClock(fakeClock()))
	app, _, err := store.Add(ctx, acmeDraft())
	require.NoError(t, err)

	backend.setErr = errors.New("disk full")
	backend.failOnAttempt = 2
	_, err = store.Update(ctx, app.ID,
		SetApplicationStatus{Status: StatusCompleted},
		SetResultStatus{Result: ResultSelected},
	)
	require.Error(t, err)

	got, found := store.Get(app.ID)
	require.True(t, found)
	assert.Equal(t, app, got)
	assert.Equal(t, []Application{app}, persisted(t, backend, DefaultKey))
}

func TestRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	backend := newFlakyKV()
	store := NewStore(backend, WithClock(fakeClock()))

	keep, _, err := store.Add(ctx, Draft{Name: "Keep", Deadline: "01/01/2030"})
	require.NoError(t, err)
	drop, _, err := store.Add(ctx, Draft{Name: "Drop", Deadline: "02/01/2030"})
	require.NoError(t, err)

	removed, err := store.Remove(ctx, drop.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	setsAfterFirst := backend.sets

	removed, err = store.Remove(ctx, drop.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, setsAfterFirst, backend.sets)

	all := store.All()
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)
	assert.Equal(t, all, persisted(t, backend, DefaultKey))
}

func TestLoadMissingKeyIsEmpty(t *testing.T) {
	store := NewStore(kv.NewMemoryStore())
	apps, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, apps)
	assert.Equal(t, Counts{}, store.Counts())
}

func TestLoadMalformedPayloadIsTreatedAsEmpty(t *testing.T) {
	quietLogs(t)
	ctx := context.Background()
	backend := kv.NewMemoryStore()
	require.NoError(t, backend.Set(ctx, DefaultKey, []byte("{not json")))

	store := NewStore(backend)
	apps, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestLoadBackendErrorIsReturned(t *testing.T) {
	backend := newFlakyKV()
	backend.getErr = errors.New("network down")

	store := NewStore(backend)
	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, backend.getErr)
}

func TestLoadSeedsIDGenerator(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryStore()
	existing, err := EncodeSnapshot([]Application{
		{ID: "1700000000005", Name: "Old", Deadline: "01/01/2030", ApplicationStatus: StatusPending},
		{ID: "legacy-id", Name: "Older", Deadline: "01/01/2029", ApplicationStatus: StatusCompleted},
	})
	require.NoError(t, err)
	require.NoError(t, backend.Set(ctx, DefaultKey, existing))

	store := NewStore(backend, WithClock(fakeClock()))
	_, err = store.Load(ctx)
	require.NoError(t, err)

	app, _, err := store.Add(ctx, acmeDraft())
	require.NoError(t, err)
	assert.Equal(t, "1700000000006", app.ID)
	assert.Equal(t, Counts{All: 3, Active: 2, Completed: 1}, store.Counts())
}

func TestPersistFailureRollsBack(t *testing.T) {
	quietLogs(t)
	ctx := context.Background()
	backend := newFlakyKV()
	store := NewStore(backend, WithClock(fakeClock()))

	app, _, err := store.Add(ctx, acmeDraft())
	require.NoError(t, err)

	backend.setErr = errors.New("disk full")

	_, ok, err := store.Add(ctx, Draft{Name: "Globex", Deadline: "02/02/2030"})
	assert.ErrorIs(t, err, backend.setErr)
	assert.False(t, ok)

	_, err = store.Update(ctx, app.ID, SetApplicationStatus{Status: StatusCompleted})
	assert.ErrorIs(t, err, backend.setErr)

	_, err = store.Remove(ctx, app.ID)
	assert.ErrorIs(t, err, backend.setErr)

	all := store.All()
	require.Len(t, all, 1)
	assert.Equal(t, app, all[0])
	assert.Equal(t, all, persisted(t, backend, DefaultKey))
}

func TestWithKeyPersistsUnderCustomKey(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryStore()
	store := NewStore(backend, WithKey("summer-2030"))

	_, _, err := store.Add(ctx, acmeDraft())
	require.NoError(t, err)

	assert.Equal(t, "summer-2030", store.Key())
	assert.Len(t, persisted(t, backend, "summer-2030"), 1)
	_, err = backend.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestReadsReturnCopies(t *testing.T) {
	store := NewStore(kv.NewMemoryStore())
	_, _, err := store.Add(context.Background(), acmeDraft())
	require.NoError(t, err)

	all := store.All()
	all[0].Name = "mutated"
	assert.Equal(t, "Acme / Backend Intern", store.All()[0].Name)
}

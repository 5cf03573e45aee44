package applications

import (
	"strconv"
	"sync"

	"github.com/jonboulle/clockwork"
)

// idGenerator issues creation-time ids: Unix milliseconds in decimal. Two ids
// requested within the same millisecond are bumped so each one stays unique.
type idGenerator struct {
	mu    sync.Mutex
	clock clockwork.Clock
	last  int64
}

func newIDGenerator(clock clockwork.Clock) *idGenerator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &idGenerator{clock: clock}
}

func (g *idGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.clock.Now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// Observe raises the floor so later ids sort after an existing numeric id.
// Non-numeric ids are ignored.
func (g *idGenerator) Observe(id string) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return
	}
	g.mu.Lock()
	if n > g.last {
		g.last = n
	}
	g.mu.Unlock()
}

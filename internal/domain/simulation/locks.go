package simulation

import (
	"sync"
	"time"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
)

// Locks serializes player commands against in-flight tick processing.
// Each planet and each player has an independent lock; acquisition waits a
// bounded time and fails with a Busy error rather than blocking
// indefinitely.
type Locks struct {
	mu   sync.Mutex
	sems map[string]chan struct{}
}

// NewLocks creates an empty lock table
func NewLocks() *Locks {
	return &Locks{sems: make(map[string]chan struct{})}
}

func (l *Locks) sem(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	sem, ok := l.sems[key]
	if !ok {
		sem = make(chan struct{}, 1)
		l.sems[key] = sem
	}
	return sem
}

// acquire waits up to timeout for the keyed lock and returns a release
// function, or a Busy error if the wait expires
func (l *Locks) acquire(key, what string, timeout time.Duration) (func(), error) {
	sem := l.sem(key)
	select {
	case sem <- struct{}{}:
		return func() { <-sem }, nil
	case <-time.After(timeout):
		return nil, shared.NewBusyError(what)
	}
}

// AcquirePlanet locks a planet for a command or a tick pass
func (l *Locks) AcquirePlanet(id shared.PlanetID, timeout time.Duration) (func(), error) {
	return l.acquire("planet:"+id.String(), "planet "+id.String(), timeout)
}

// AcquirePlayer locks a player's research state
func (l *Locks) AcquirePlayer(id shared.PlayerID, timeout time.Duration) (func(), error) {
	return l.acquire("player:"+id.String(), "player "+id.String(), timeout)
}

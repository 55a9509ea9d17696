package helpers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/colony"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/research"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/simulation"
)

// MemoryPlanetRepository is an in-memory colony.PlanetRepository for tests
type MemoryPlanetRepository struct {
	mu      sync.Mutex
	planets map[int]*colony.Planet
	nextID  int
}

// NewMemoryPlanetRepository creates an empty repository
func NewMemoryPlanetRepository() *MemoryPlanetRepository {
	return &MemoryPlanetRepository{planets: make(map[int]*colony.Planet), nextID: 1}
}

// Put seeds a planet directly
func (r *MemoryPlanetRepository) Put(planet *colony.Planet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.planets[planet.ID().Value()] = planet
	if planet.ID().Value() >= r.nextID {
		r.nextID = planet.ID().Value() + 1
	}
}

func (r *MemoryPlanetRepository) FindByID(_ context.Context, id shared.PlanetID) (*colony.Planet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	planet, ok := r.planets[id.Value()]
	if !ok {
		return nil, shared.NewPlanetNotFoundError(id)
	}
	return planet, nil
}

func (r *MemoryPlanetRepository) FindByOwner(_ context.Context, ownerID shared.PlayerID) ([]*colony.Planet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*colony.Planet
	for _, p := range r.planets {
		if p.OwnerID().Equals(ownerID) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID().Value() < out[j].ID().Value() })
	return out, nil
}

func (r *MemoryPlanetRepository) AllIDs(_ context.Context) ([]shared.PlanetID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]shared.PlanetID, 0, len(r.planets))
	for id := range r.planets {
		ids = append(ids, shared.MustNewPlanetID(id))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Value() < ids[j].Value() })
	return ids, nil
}

func (r *MemoryPlanetRepository) NextIdentity(_ context.Context) (shared.PlanetID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := shared.MustNewPlanetID(r.nextID)
	r.nextID++
	return id, nil
}

func (r *MemoryPlanetRepository) Save(_ context.Context, planet *colony.Planet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.planets[planet.ID().Value()] = planet
	return nil
}

// MemoryProgressRepository is an in-memory research.ProgressRepository
type MemoryProgressRepository struct {
	mu   sync.Mutex
	rows map[int]map[string]*research.Progress
}

// NewMemoryProgressRepository creates an empty repository
func NewMemoryProgressRepository() *MemoryProgressRepository {
	return &MemoryProgressRepository{rows: make(map[int]map[string]*research.Progress)}
}

func (r *MemoryProgressRepository) FindInProgress(_ context.Context, playerID shared.PlayerID) (*research.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows[playerID.Value()] {
		if row.IsInProgress() {
			return row, nil
		}
	}
	return nil, nil
}

func (r *MemoryProgressRepository) FindByPlayer(_ context.Context, playerID shared.PlayerID) ([]*research.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*research.Progress
	for _, row := range r.rows[playerID.Value()] {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TypeKey() < out[j].TypeKey() })
	return out, nil
}

func (r *MemoryProgressRepository) ListInProgress(_ context.Context) ([]*research.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*research.Progress
	for _, byType := range r.rows {
		for _, row := range byType {
			if row.IsInProgress() {
				out = append(out, row)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PlayerID().Value() != out[j].PlayerID().Value() {
			return out[i].PlayerID().Value() < out[j].PlayerID().Value()
		}
		return out[i].TypeKey() < out[j].TypeKey()
	})
	return out, nil
}

func (r *MemoryProgressRepository) CompletedKeys(_ context.Context, playerID shared.PlayerID) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	completed := make(map[string]bool)
	for key, row := range r.rows[playerID.Value()] {
		if row.State() == research.ProgressCompleted {
			completed[key] = true
		}
	}
	return completed, nil
}

func (r *MemoryProgressRepository) Save(_ context.Context, progress *research.Progress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byType, ok := r.rows[progress.PlayerID().Value()]
	if !ok {
		byType = make(map[string]*research.Progress)
		r.rows[progress.PlayerID().Value()] = byType
	}
	byType[progress.TypeKey()] = progress
	return nil
}

func (r *MemoryProgressRepository) Delete(_ context.Context, playerID shared.PlayerID, typeKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows[playerID.Value()], typeKey)
	return nil
}

// MemoryTickLog is an in-memory simulation.TickLog
type MemoryTickLog struct {
	mu      sync.Mutex
	begun   map[int64]bool
	records []simulation.TickRecord
}

// NewMemoryTickLog creates an empty tick log
func NewMemoryTickLog() *MemoryTickLog {
	return &MemoryTickLog{begun: make(map[int64]bool)}
}

func (l *MemoryTickLog) Begin(_ context.Context, slot time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := slot.UTC().Unix()
	if l.begun[key] {
		return shared.NewTickAlreadyRanError(slot.UTC().Format(time.RFC3339))
	}
	l.begun[key] = true
	return nil
}

func (l *MemoryTickLog) Complete(_ context.Context, record simulation.TickRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
	return nil
}

func (l *MemoryTickLog) LastCompleted(_ context.Context) (*simulation.TickRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.records) == 0 {
		return nil, nil
	}
	record := l.records[len(l.records)-1]
	return &record, nil
}

// Records returns all completed tick records
func (l *MemoryTickLog) Records() []simulation.TickRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]simulation.TickRecord(nil), l.records...)
}

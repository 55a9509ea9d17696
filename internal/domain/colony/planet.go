package colony

import (
	"fmt"
	"sort"
	"time"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/resource"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
)

// Planet is the aggregate root owning a resource stockpile and the building
// instances on its grid fields. All mutation goes through the aggregate so
// the capacity and state invariants hold after every command and tick.
type Planet struct {
	id            shared.PlanetID
	ownerID       shared.PlayerID
	name          string
	fieldCount    int
	baseStorage   int64
	baseEnergyCap int64
	stockpile     *resource.Stockpile
	buildings     map[int]*Building
	commissionSeq int64
}

// NewPlanet creates a freshly colonized planet with the given base
// capacities and starter balances
func NewPlanet(id shared.PlanetID, ownerID shared.PlayerID, name string, fieldCount int, baseStorage, baseEnergyCap int64, starter resource.Amounts) *Planet {
	p := &Planet{
		id:            id,
		ownerID:       ownerID,
		name:          name,
		fieldCount:    fieldCount,
		baseStorage:   baseStorage,
		baseEnergyCap: baseEnergyCap,
		stockpile:     resource.NewStockpile(baseStorage, baseEnergyCap),
		buildings:     make(map[int]*Building),
	}
	p.stockpile.CreditAll(starter)
	return p
}

// ReconstructPlanet restores a planet from persistence. The catalog is
// needed so storage bonuses are in place before balances are restored;
// otherwise a full depot-backed stockpile would be clamped to the base
// capacity on load.
func ReconstructPlanet(
	id shared.PlanetID,
	ownerID shared.PlayerID,
	name string,
	fieldCount int,
	baseStorage, baseEnergyCap int64,
	balances resource.Amounts,
	energy int64,
	commissionSeq int64,
	buildings []*Building,
	catalog Catalog,
) *Planet {
	p := &Planet{
		id:            id,
		ownerID:       ownerID,
		name:          name,
		fieldCount:    fieldCount,
		baseStorage:   baseStorage,
		baseEnergyCap: baseEnergyCap,
		commissionSeq: commissionSeq,
		buildings:     make(map[int]*Building),
	}
	for _, b := range buildings {
		if b.State() != StateDemolished {
			p.buildings[b.Field()] = b
		}
	}
	// Capacities depend on storage buildings, so the stockpile is rebuilt
	// only after the building set is known.
	p.stockpile = resource.NewStockpile(baseStorage, baseEnergyCap)
	p.RecomputeCapacities(catalog)
	p.stockpile = resource.ReconstructStockpile(p.stockpile.StorageCapacity(), p.stockpile.EnergyCapacity(), balances, energy)
	return p
}

// Getters

func (p *Planet) ID() shared.PlanetID            { return p.id }
func (p *Planet) OwnerID() shared.PlayerID       { return p.ownerID }
func (p *Planet) Name() string                   { return p.name }
func (p *Planet) FieldCount() int                { return p.fieldCount }
func (p *Planet) BaseStorage() int64             { return p.baseStorage }
func (p *Planet) BaseEnergyCapacity() int64      { return p.baseEnergyCap }
func (p *Planet) Stockpile() *resource.Stockpile { return p.stockpile }
func (p *Planet) CommissionSeq() int64           { return p.commissionSeq }

// BuildingAt returns the building occupying a field, or nil
func (p *Planet) BuildingAt(field int) *Building {
	return p.buildings[field]
}

// Buildings returns all non-demolished buildings ordered by commission
// sequence, oldest first
func (p *Planet) Buildings() []*Building {
	out := make([]*Building, 0, len(p.buildings))
	for _, b := range p.buildings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CommissionSeq() < out[j].CommissionSeq() })
	return out
}

// FindBuilding returns the building with the given instance ID
func (p *Planet) FindBuilding(buildingID string) (*Building, error) {
	for _, b := range p.buildings {
		if b.ID() == buildingID {
			return b, nil
		}
	}
	return nil, shared.NewBuildingNotFoundError(buildingID)
}

// hasBuildingOfType reports whether any live instance of the type exists
func (p *Planet) hasBuildingOfType(typeKey string) bool {
	for _, b := range p.buildings {
		if b.TypeKey() == typeKey {
			return true
		}
	}
	return false
}

// Commission starts construction of a new building. Preconditions, in
// order: the field must exist and be vacant, the single-instance rule must
// hold, and the stockpile must cover both the material cost and the
// one-time energy reservation. All checks run before any debit, so a
// rejected command leaves the ledger untouched.
func (p *Planet) Commission(bt *BuildingType, field int, now time.Time) (*Building, error) {
	if field < 0 || field >= p.fieldCount {
		return nil, fmt.Errorf("field %d out of range [0,%d)", field, p.fieldCount)
	}
	if _, occupied := p.buildings[field]; occupied {
		return nil, shared.NewFieldOccupiedError(field)
	}
	if bt.SingleInstance && p.hasBuildingOfType(bt.Key) {
		return nil, shared.NewSingleInstanceViolationError(bt.Key)
	}
	if p.stockpile.Energy() < bt.EnergyCostToBuild {
		return nil, shared.NewInsufficientEnergyError(bt.EnergyCostToBuild, p.stockpile.Energy())
	}
	if err := p.stockpile.DebitAll(bt.BuildCost); err != nil {
		return nil, err
	}
	if err := p.stockpile.DebitEnergy(bt.EnergyCostToBuild); err != nil {
		// Unreachable given the check above; kept so a future reordering
		// cannot silently leak materials.
		refund := bt.BuildCost.Clone()
		p.stockpile.CreditAll(refund)
		return nil, err
	}

	p.commissionSeq++
	b := NewBuilding(p.id, field, bt.Key, p.commissionSeq, now)
	p.buildings[field] = b
	return b, nil
}

// CommissionUpgrade starts a level upgrade on an existing building, with
// the same cost and energy gating as a fresh commission
func (p *Planet) CommissionUpgrade(bt *BuildingType, buildingID string, now time.Time) (*Building, error) {
	b, err := p.FindBuilding(buildingID)
	if err != nil {
		return nil, err
	}
	if b.TypeKey() != bt.Key {
		return nil, fmt.Errorf("building %s is a %s, not a %s", buildingID, b.TypeKey(), bt.Key)
	}
	cost := bt.UpgradeCost(b.Level() + 1)
	if p.stockpile.Energy() < bt.EnergyCostToBuild {
		return nil, shared.NewInsufficientEnergyError(bt.EnergyCostToBuild, p.stockpile.Energy())
	}
	if err := p.stockpile.DebitAll(cost); err != nil {
		return nil, err
	}
	if err := b.StartUpgrade(now); err != nil {
		p.stockpile.CreditAll(cost)
		return nil, err
	}
	if err := p.stockpile.DebitEnergy(bt.EnergyCostToBuild); err != nil {
		return nil, err
	}
	return b, nil
}

// Demolish removes a building, refunding 50% of the original material cost.
// The energy-to-build reservation is not refunded. The refund rate is the
// same whether the building was under construction or active.
func (p *Planet) Demolish(catalog Catalog, buildingID string) (resource.Amounts, error) {
	b, err := p.FindBuilding(buildingID)
	if err != nil {
		return nil, err
	}
	bt, err := catalog.Get(b.TypeKey())
	if err != nil {
		return nil, err
	}
	if err := b.Demolish(); err != nil {
		return nil, err
	}
	delete(p.buildings, b.Field())

	refund := bt.BuildCost.Scale(1, 2)
	p.RecomputeCapacities(catalog)
	p.stockpile.CreditAll(refund)
	return refund, nil
}

// CompleteDueConstruction fires pending UnderConstruction → Active
// transitions and returns the buildings completed this tick
func (p *Planet) CompleteDueConstruction(catalog Catalog, now time.Time) ([]*Building, error) {
	var completed []*Building
	for _, b := range p.Buildings() {
		bt, err := catalog.Get(b.TypeKey())
		if err != nil {
			return nil, err
		}
		if b.CompleteIfDue(now, bt.BuildTime) {
			completed = append(completed, b)
		}
	}
	if len(completed) > 0 {
		p.RecomputeCapacities(catalog)
	}
	return completed, nil
}

// RecomputeCapacities derives the storage and energy capacities from the
// base values plus the bonuses of active storage buildings. A nil catalog
// is accepted during reconstruction, before bonuses can be resolved, and
// applies base capacities only.
func (p *Planet) RecomputeCapacities(catalog Catalog) {
	storage := p.baseStorage
	energyCap := p.baseEnergyCap
	if catalog != nil {
		for _, b := range p.buildings {
			if !b.IsActive() {
				continue
			}
			bt, err := catalog.Get(b.TypeKey())
			if err != nil {
				continue
			}
			storage += bt.StorageBonus * int64(b.Level())
			energyCap += bt.EnergyStorageBonus * int64(b.Level())
		}
	}
	p.stockpile.SetStorageCapacity(storage)
	p.stockpile.SetEnergyCapacity(energyCap)
}

// ProductionPerTick sums the material output of all online buildings
func (p *Planet) ProductionPerTick(catalog Catalog) (resource.Amounts, error) {
	total := make(resource.Amounts)
	for _, b := range p.buildings {
		if !b.IsOnline() {
			continue
		}
		bt, err := catalog.Get(b.TypeKey())
		if err != nil {
			return nil, err
		}
		for t, rate := range bt.Production {
			total[t] += rate * int64(b.Level())
		}
	}
	return total, nil
}

// ResearchPointsPerTick sums the research point output of online labs
func (p *Planet) ResearchPointsPerTick(catalog Catalog) (int64, error) {
	var total int64
	for _, b := range p.buildings {
		if !b.IsOnline() {
			continue
		}
		bt, err := catalog.Get(b.TypeKey())
		if err != nil {
			return 0, err
		}
		total += bt.ResearchPointsPerTick * int64(b.Level())
	}
	return total, nil
}

// LabCount returns the number of online Research-category buildings
func (p *Planet) LabCount(catalog Catalog) (int, error) {
	count := 0
	for _, b := range p.buildings {
		if !b.IsOnline() {
			continue
		}
		bt, err := catalog.Get(b.TypeKey())
		if err != nil {
			return 0, err
		}
		if bt.Category == CategoryResearch {
			count++
		}
	}
	return count, nil
}

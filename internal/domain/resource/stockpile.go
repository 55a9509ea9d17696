package resource

import (
	"fmt"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
)

// Amounts is a set of resource quantities keyed by type, used for build
// costs, production deltas, and refunds
type Amounts map[Type]int64

// Clone returns a deep copy of the amount set
func (a Amounts) Clone() Amounts {
	out := make(Amounts, len(a))
	for t, v := range a {
		out[t] = v
	}
	return out
}

// Scale returns a copy with every amount multiplied by num/den, rounding
// down. Used for the 50% demolition refund and level-scaled upgrade costs.
func (a Amounts) Scale(num, den int64) Amounts {
	out := make(Amounts, len(a))
	for t, v := range a {
		out[t] = v * num / den
	}
	return out
}

// StringMap converts the amounts to a string-keyed map for event payloads
func (a Amounts) StringMap() map[string]int64 {
	out := make(map[string]int64, len(a))
	for t, v := range a {
		out[t.String()] = v
	}
	return out
}

// Stockpile is a planet's resource ledger: material balances sharing one
// storage pool, and an energy store with its own capacity and its own
// credit/debit path.
//
// Invariants:
// - no balance is ever negative
// - sum of material balances never exceeds the storage capacity
// - energy never exceeds the energy storage capacity
type Stockpile struct {
	balances   Amounts
	energy     int64
	storageCap int64
	energyCap  int64
}

// NewStockpile creates an empty stockpile with the given capacities
func NewStockpile(storageCapacity, energyCapacity int64) *Stockpile {
	return &Stockpile{
		balances:   make(Amounts),
		storageCap: storageCapacity,
		energyCap:  energyCapacity,
	}
}

// ReconstructStockpile restores a stockpile from persisted balances.
// Balances exceeding capacity are clamped rather than rejected, so a
// capacity downgrade between restarts cannot corrupt the ledger.
func ReconstructStockpile(storageCapacity, energyCapacity int64, balances Amounts, energy int64) *Stockpile {
	s := NewStockpile(storageCapacity, energyCapacity)
	for _, t := range MaterialTypes() {
		if amount, ok := balances[t]; ok && amount > 0 {
			s.Credit(t, amount)
		}
	}
	if energy > 0 {
		s.CreditEnergy(energy)
	}
	return s
}

// StorageCapacity returns the shared cap across all material balances
func (s *Stockpile) StorageCapacity() int64 {
	return s.storageCap
}

// EnergyCapacity returns the cap of the energy store
func (s *Stockpile) EnergyCapacity() int64 {
	return s.energyCap
}

// SetStorageCapacity adjusts the shared material cap. Existing balances are
// not reduced; the new cap only constrains future credits.
func (s *Stockpile) SetStorageCapacity(capacity int64) {
	s.storageCap = capacity
}

// SetEnergyCapacity adjusts the energy cap, clamping the current store
func (s *Stockpile) SetEnergyCapacity(capacity int64) {
	s.energyCap = capacity
	if s.energy > capacity {
		s.energy = capacity
	}
}

// Balance returns the current amount of a single material resource
func (s *Stockpile) Balance(t Type) int64 {
	return s.balances[t]
}

// Energy returns the current energy store
func (s *Stockpile) Energy() int64 {
	return s.energy
}

// Total returns the summed material balances counted against the shared cap
func (s *Stockpile) Total() int64 {
	var total int64
	for _, v := range s.balances {
		total += v
	}
	return total
}

// FreeCapacity returns the remaining room in the shared storage pool
func (s *Stockpile) FreeCapacity() int64 {
	free := s.storageCap - s.Total()
	if free < 0 {
		return 0
	}
	return free
}

// Credit adds amount of a material resource, clamped against the shared
// storage pool. Overflow is dropped, not queued ("use it or lose it").
// Returns the amount actually credited.
func (s *Stockpile) Credit(t Type, amount int64) int64 {
	if !t.IsMaterial() || amount <= 0 {
		return 0
	}
	credited := amount
	if free := s.FreeCapacity(); credited > free {
		credited = free
	}
	if credited > 0 {
		s.balances[t] += credited
	}
	return credited
}

// CreditAll applies a set of production deltas in the fixed catalog order,
// so the overflow distribution across simultaneous credits is deterministic.
// Returns the per-type amounts actually credited.
func (s *Stockpile) CreditAll(production Amounts) Amounts {
	credited := make(Amounts)
	for _, t := range MaterialTypes() {
		if amount, ok := production[t]; ok && amount > 0 {
			if got := s.Credit(t, amount); got > 0 {
				credited[t] = got
			}
		}
	}
	return credited
}

// Debit removes amount of a material resource. The debit is atomic: if the
// balance is insufficient the stockpile is left untouched and an
// InsufficientResourcesError is returned. Callers must treat the failure as
// a definitive refusal, not a retry signal.
func (s *Stockpile) Debit(t Type, amount int64) error {
	if !t.IsMaterial() {
		return fmt.Errorf("cannot debit non-material resource %s", t)
	}
	if amount < 0 {
		return fmt.Errorf("debit amount must be non-negative, got %d", amount)
	}
	if s.balances[t] < amount {
		return shared.NewInsufficientResourcesError(t.String(), amount, s.balances[t])
	}
	s.balances[t] -= amount
	return nil
}

// DebitAll removes a full cost atomically: every balance is checked before
// any is touched, so a failed debit leaves the ledger byte-for-byte intact.
func (s *Stockpile) DebitAll(cost Amounts) error {
	for _, t := range MaterialTypes() {
		if amount, ok := cost[t]; ok && s.balances[t] < amount {
			return shared.NewInsufficientResourcesError(t.String(), amount, s.balances[t])
		}
	}
	for t, amount := range cost {
		if amount > 0 {
			s.balances[t] -= amount
		}
	}
	return nil
}

// CreditEnergy adds to the energy store, clamped at the energy capacity.
// Returns the amount actually stored.
func (s *Stockpile) CreditEnergy(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	credited := amount
	if s.energy+credited > s.energyCap {
		credited = s.energyCap - s.energy
	}
	if credited > 0 {
		s.energy += credited
	}
	return credited
}

// DebitEnergy removes from the energy store, failing atomically when the
// store is insufficient
func (s *Stockpile) DebitEnergy(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("energy debit must be non-negative, got %d", amount)
	}
	if s.energy < amount {
		return shared.NewInsufficientEnergyError(amount, s.energy)
	}
	s.energy -= amount
	return nil
}

// Snapshot returns a defensive copy of the material balances
func (s *Stockpile) Snapshot() Amounts {
	return s.balances.Clone()
}

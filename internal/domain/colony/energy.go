package colony

import "sort"

// EnergyBalance is a planet's energy picture for one tick
type EnergyBalance struct {
	Production  int64
	Consumption int64
}

// Net returns production minus consumption
func (e EnergyBalance) Net() int64 {
	return e.Production - e.Consumption
}

// ComputeEnergyBalance sums production and consumption over all online
// buildings. Buildings still under construction contribute neither.
func ComputeEnergyBalance(p *Planet, catalog Catalog) (EnergyBalance, error) {
	var balance EnergyBalance
	for _, b := range p.Buildings() {
		if !b.IsOnline() {
			continue
		}
		bt, err := catalog.Get(b.TypeKey())
		if err != nil {
			return EnergyBalance{}, err
		}
		balance.Production += bt.EnergyProduction * int64(b.Level())
		balance.Consumption += bt.EnergyPerTick * int64(b.Level())
	}
	return balance, nil
}

// ApplyEnergyTick decides which active buildings are online this tick and
// applies the net energy delta to the planet's energy store.
//
// The pass first brings every active building online, then sheds consuming
// buildings newest-commission-first while the projected store would go
// negative. The shedding order is a deliberate deterministic policy: the
// newest additions are the first to lose power. Pure energy producers are
// never shed.
func ApplyEnergyTick(p *Planet, catalog Catalog) (EnergyBalance, error) {
	type poweredBuilding struct {
		building    *Building
		production  int64
		consumption int64
	}

	var consumers []poweredBuilding
	var balance EnergyBalance

	for _, b := range p.Buildings() {
		if !b.IsActive() {
			b.SetOnline(false)
			continue
		}
		bt, err := catalog.Get(b.TypeKey())
		if err != nil {
			return EnergyBalance{}, err
		}
		b.SetOnline(true)
		production := bt.EnergyProduction * int64(b.Level())
		consumption := bt.EnergyPerTick * int64(b.Level())
		balance.Production += production
		balance.Consumption += consumption
		if consumption > production {
			consumers = append(consumers, poweredBuilding{building: b, production: production, consumption: consumption})
		}
	}

	// Shed newest-first until the store can cover the deficit
	sort.Slice(consumers, func(i, j int) bool {
		return consumers[i].building.CommissionSeq() > consumers[j].building.CommissionSeq()
	})
	for _, c := range consumers {
		deficit := -balance.Net()
		if deficit <= p.Stockpile().Energy() {
			break
		}
		c.building.SetOnline(false)
		balance.Production -= c.production
		balance.Consumption -= c.consumption
	}

	net := balance.Net()
	if net >= 0 {
		p.Stockpile().CreditEnergy(net)
	} else {
		if err := p.Stockpile().DebitEnergy(-net); err != nil {
			return EnergyBalance{}, err
		}
	}
	return balance, nil
}

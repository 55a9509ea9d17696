package resource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/resource"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
)

func TestStockpile_CreditWithinCapacity(t *testing.T) {
	s := resource.NewStockpile(1000, 500)

	credited := s.Credit(resource.TypeDurastahl, 300)

	assert.Equal(t, int64(300), credited)
	assert.Equal(t, int64(300), s.Balance(resource.TypeDurastahl))
}

func TestStockpile_CreditClampsAtSharedCapacity(t *testing.T) {
	s := resource.NewStockpile(1000, 500)

	s.Credit(resource.TypeCredits, 700)
	credited := s.Credit(resource.TypeDurastahl, 500)

	// Only 300 units of room remain in the shared pool
	assert.Equal(t, int64(300), credited)
	assert.Equal(t, int64(300), s.Balance(resource.TypeDurastahl))
	assert.Equal(t, int64(1000), s.Total())
}

func TestStockpile_CreditAllAppliesCatalogOrder(t *testing.T) {
	s := resource.NewStockpile(100, 500)

	credited := s.CreditAll(resource.Amounts{
		resource.TypeCrystal: 80,
		resource.TypeCredits: 50,
	})

	// Credits come before Crystal in the catalog order, so Crystal absorbs
	// the shortfall
	assert.Equal(t, int64(50), credited[resource.TypeCredits])
	assert.Equal(t, int64(50), credited[resource.TypeCrystal])
	assert.Equal(t, int64(100), s.Total())
}

func TestStockpile_CapacityInvariantHoldsOverManyTicks(t *testing.T) {
	s := resource.NewStockpile(5000, 200)

	for i := 0; i < 1000; i++ {
		s.CreditAll(resource.Amounts{
			resource.TypeCredits:   40,
			resource.TypeDurastahl: 30,
			resource.TypeCrystal:   20,
		})
		s.CreditEnergy(37)
		assert.LessOrEqual(t, s.Total(), int64(5000))
		assert.LessOrEqual(t, s.Energy(), int64(200))
	}
}

func TestStockpile_DebitSuccess(t *testing.T) {
	s := resource.NewStockpile(1000, 500)
	s.Credit(resource.TypeCredits, 600)

	err := s.Debit(resource.TypeCredits, 400)

	require.NoError(t, err)
	assert.Equal(t, int64(200), s.Balance(resource.TypeCredits))
}

func TestStockpile_DebitAtomicOnInsufficientBalance(t *testing.T) {
	s := resource.NewStockpile(1000, 500)
	s.Credit(resource.TypeCredits, 100)

	err := s.Debit(resource.TypeCredits, 400)

	require.Error(t, err)
	var insufficientErr *shared.InsufficientResourcesError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, int64(400), insufficientErr.Required)
	assert.Equal(t, int64(100), insufficientErr.Available)
	assert.Equal(t, int64(100), s.Balance(resource.TypeCredits))
}

func TestStockpile_DebitAllChecksBeforeApplying(t *testing.T) {
	s := resource.NewStockpile(2000, 500)
	s.Credit(resource.TypeCredits, 600)
	s.Credit(resource.TypeDurastahl, 100)

	err := s.DebitAll(resource.Amounts{
		resource.TypeCredits:   500,
		resource.TypeDurastahl: 300,
	})

	// Durastahl is short, so nothing is deducted
	require.Error(t, err)
	assert.Equal(t, int64(600), s.Balance(resource.TypeCredits))
	assert.Equal(t, int64(100), s.Balance(resource.TypeDurastahl))
}

func TestStockpile_DebitAllSuccess(t *testing.T) {
	s := resource.NewStockpile(2000, 500)
	s.Credit(resource.TypeCredits, 600)
	s.Credit(resource.TypeDurastahl, 500)
	s.Credit(resource.TypeCrystal, 100)

	err := s.DebitAll(resource.Amounts{
		resource.TypeCredits:   600,
		resource.TypeDurastahl: 500,
		resource.TypeCrystal:   100,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(0), s.Total())
}

func TestStockpile_EnergyClampsAtEnergyCapacity(t *testing.T) {
	s := resource.NewStockpile(1000, 300)

	credited := s.CreditEnergy(500)

	assert.Equal(t, int64(300), credited)
	assert.Equal(t, int64(300), s.Energy())
}

func TestStockpile_EnergyDebitAtomic(t *testing.T) {
	s := resource.NewStockpile(1000, 300)
	s.CreditEnergy(100)

	err := s.DebitEnergy(150)

	require.Error(t, err)
	var energyErr *shared.InsufficientEnergyError
	require.ErrorAs(t, err, &energyErr)
	assert.Equal(t, int64(100), s.Energy())
}

func TestStockpile_EnergySeparateFromMaterialPool(t *testing.T) {
	s := resource.NewStockpile(100, 1000)

	s.Credit(resource.TypeCredits, 100)
	credited := s.CreditEnergy(800)

	// The material pool is full but energy has its own capacity
	assert.Equal(t, int64(800), credited)
	assert.Equal(t, int64(800), s.Energy())
}

func TestStockpile_NoNegativeBalances(t *testing.T) {
	s := resource.NewStockpile(1000, 500)
	s.Credit(resource.TypeFood, 50)

	_ = s.Debit(resource.TypeFood, 50)
	err := s.Debit(resource.TypeFood, 1)

	require.Error(t, err)
	assert.Equal(t, int64(0), s.Balance(resource.TypeFood))
}

func TestStockpile_SnapshotIsDefensiveCopy(t *testing.T) {
	s := resource.NewStockpile(1000, 500)
	s.Credit(resource.TypeVorium, 200)

	snap := s.Snapshot()
	snap[resource.TypeVorium] = 999999

	assert.Equal(t, int64(200), s.Balance(resource.TypeVorium))
}

func TestStockpile_ReconstructClampsExcessBalances(t *testing.T) {
	s := resource.ReconstructStockpile(100, 50, resource.Amounts{
		resource.TypeCredits: 500,
	}, 200)

	assert.Equal(t, int64(100), s.Balance(resource.TypeCredits))
	assert.Equal(t, int64(50), s.Energy())
}

func TestAmounts_ScaleHalvesForRefund(t *testing.T) {
	cost := resource.Amounts{
		resource.TypeCredits:   600,
		resource.TypeDurastahl: 500,
		resource.TypeCrystal:   100,
	}

	refund := cost.Scale(1, 2)

	assert.Equal(t, int64(300), refund[resource.TypeCredits])
	assert.Equal(t, int64(250), refund[resource.TypeDurastahl])
	assert.Equal(t, int64(50), refund[resource.TypeCrystal])
}

package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/galaxycolony-go/internal/domain/colony"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/resource"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/shared"
)

// GormPlanetRepository implements colony.PlanetRepository using GORM
type GormPlanetRepository struct {
	db      *gorm.DB
	catalog colony.Catalog
}

// NewGormPlanetRepository creates a new GORM planet repository. The catalog
// is needed to restore storage bonuses before balances are loaded.
func NewGormPlanetRepository(db *gorm.DB, catalog colony.Catalog) *GormPlanetRepository {
	return &GormPlanetRepository{db: db, catalog: catalog}
}

// FindByID retrieves a planet with its buildings
func (r *GormPlanetRepository) FindByID(ctx context.Context, planetID shared.PlanetID) (*colony.Planet, error) {
	var model PlanetModel
	result := r.db.WithContext(ctx).Preload("Buildings").Where("id = ?", planetID.Value()).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, shared.NewPlanetNotFoundError(planetID)
		}
		return nil, fmt.Errorf("failed to find planet: %w", result.Error)
	}
	return r.modelToPlanet(&model)
}

// FindByOwner retrieves all planets owned by a player
func (r *GormPlanetRepository) FindByOwner(ctx context.Context, ownerID shared.PlayerID) ([]*colony.Planet, error) {
	var models []PlanetModel
	result := r.db.WithContext(ctx).Preload("Buildings").Where("owner_id = ?", ownerID.Value()).Order("id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list planets for owner: %w", result.Error)
	}

	planets := make([]*colony.Planet, 0, len(models))
	for i := range models {
		p, err := r.modelToPlanet(&models[i])
		if err != nil {
			return nil, err
		}
		planets = append(planets, p)
	}
	return planets, nil
}

// AllIDs returns the IDs of every planet, ordered for deterministic ticks
func (r *GormPlanetRepository) AllIDs(ctx context.Context) ([]shared.PlanetID, error) {
	var ids []int
	result := r.db.WithContext(ctx).Model(&PlanetModel{}).Order("id").Pluck("id", &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list planet IDs: %w", result.Error)
	}

	out := make([]shared.PlanetID, 0, len(ids))
	for _, id := range ids {
		planetID, err := shared.NewPlanetID(id)
		if err != nil {
			return nil, fmt.Errorf("invalid planet ID in database: %w", err)
		}
		out = append(out, planetID)
	}
	return out, nil
}

// NextIdentity reserves a new planet ID by inserting a placeholder row
func (r *GormPlanetRepository) NextIdentity(ctx context.Context) (shared.PlanetID, error) {
	model := PlanetModel{Name: "", Balances: "{}"}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return shared.PlanetID{}, fmt.Errorf("failed to reserve planet identity: %w", err)
	}
	return shared.NewPlanetID(model.ID)
}

// Save upserts a planet and replaces its building rows
func (r *GormPlanetRepository) Save(ctx context.Context, planet *colony.Planet) error {
	model, err := r.planetToModel(planet)
	if err != nil {
		return fmt.Errorf("failed to convert planet to model: %w", err)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Omit("Buildings").Create(&model).Error; err != nil {
			return fmt.Errorf("failed to save planet: %w", err)
		}
		// Demolished buildings disappear from the aggregate, so stale rows
		// are removed rather than updated in place.
		if err := tx.Where("planet_id = ?", model.ID).Delete(&BuildingModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear building rows: %w", err)
		}
		if len(model.Buildings) > 0 {
			if err := tx.Create(&model.Buildings).Error; err != nil {
				return fmt.Errorf("failed to save buildings: %w", err)
			}
		}
		return nil
	})
}

func (r *GormPlanetRepository) modelToPlanet(model *PlanetModel) (*colony.Planet, error) {
	planetID, err := shared.NewPlanetID(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid planet ID in database: %w", err)
	}
	ownerID, err := shared.NewPlayerID(model.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner ID in database: %w", err)
	}

	balances, err := unmarshalAmounts(model.Balances)
	if err != nil {
		return nil, fmt.Errorf("invalid balances for planet %d: %w", model.ID, err)
	}

	buildings := make([]*colony.Building, 0, len(model.Buildings))
	for _, b := range model.Buildings {
		buildings = append(buildings, colony.ReconstructBuilding(
			b.ID,
			planetID,
			b.Field,
			b.TypeKey,
			b.Level,
			b.PendingLevel,
			colony.ConstructionState(b.State),
			b.CommissionSeq,
			b.StartedAt,
			b.CompletedAt,
			b.Online,
		))
	}

	return colony.ReconstructPlanet(
		planetID,
		ownerID,
		model.Name,
		model.FieldCount,
		model.BaseStorage,
		model.BaseEnergyCap,
		balances,
		model.Energy,
		model.CommissionSeq,
		buildings,
		r.catalog,
	), nil
}

func (r *GormPlanetRepository) planetToModel(planet *colony.Planet) (*PlanetModel, error) {
	balancesJSON, err := marshalAmounts(planet.Stockpile().Snapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal balances: %w", err)
	}

	model := &PlanetModel{
		ID:            planet.ID().Value(),
		OwnerID:       planet.OwnerID().Value(),
		Name:          planet.Name(),
		FieldCount:    planet.FieldCount(),
		BaseStorage:   planet.BaseStorage(),
		BaseEnergyCap: planet.BaseEnergyCapacity(),
		Balances:      balancesJSON,
		Energy:        planet.Stockpile().Energy(),
		CommissionSeq: planet.CommissionSeq(),
	}
	for _, b := range planet.Buildings() {
		model.Buildings = append(model.Buildings, BuildingModel{
			ID:            b.ID(),
			PlanetID:      planet.ID().Value(),
			Field:         b.Field(),
			TypeKey:       b.TypeKey(),
			Level:         b.Level(),
			PendingLevel:  b.PendingLevel(),
			State:         b.State().String(),
			CommissionSeq: b.CommissionSeq(),
			StartedAt:     b.ConstructionStartedAt(),
			CompletedAt:   b.CompletedAt(),
			Online:        b.IsOnline(),
		})
	}
	return model, nil
}

func marshalAmounts(amounts resource.Amounts) (string, error) {
	bytes, err := json.Marshal(amounts.StringMap())
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func unmarshalAmounts(raw string) (resource.Amounts, error) {
	out := make(resource.Amounts)
	if raw == "" {
		return out, nil
	}
	var byName map[string]int64
	if err := json.Unmarshal([]byte(raw), &byName); err != nil {
		return nil, err
	}
	for name, v := range byName {
		t, err := resource.ParseType(name)
		if err != nil {
			return nil, err
		}
		out[t] = v
	}
	return out, nil
}

package steps

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/galaxycolony-go/internal/application/construction/commands"
	"github.com/andrescamacho/galaxycolony-go/internal/domain/resource"
)

// InitializeConstructionScenario registers the construction lifecycle steps
func InitializeConstructionScenario(sc *godog.ScenarioContext, w *world) {
	sc.Step(`^a colonized planet with (\d+) credits, (\d+) durastahl and (\d+) crystal$`, w.aColonizedPlanet)
	sc.Step(`^an active "([^"]*)" on field (\d+)$`, w.anActiveBuildingOnField)
	sc.Step(`^I commission a "([^"]*)" on field (\d+)$`, w.iCommissionABuilding)
	sc.Step(`^the command fails$`, w.theCommandFails)
	sc.Step(`^the planet holds (\d+) credits$`, w.thePlanetHoldsCredits)
	sc.Step(`^field (\d+) holds a "([^"]*)" in state "([^"]*)"$`, w.fieldHoldsBuildingInState)
	sc.Step(`^field (\d+) is empty$`, w.fieldIsEmpty)
	sc.Step(`^(\d+) hours pass and a tick runs$`, w.hoursPassAndATickRuns)
	sc.Step(`^I demolish the building on field (\d+)$`, w.iDemolishTheBuildingOnField)
	sc.Step(`^the refund includes (\d+) credits$`, w.theRefundIncludesCredits)
	sc.Step(`^the planet stockpile holds:$`, w.thePlanetStockpileHolds)
}

func (w *world) aColonizedPlanet(credits, durastahl, crystal int64) error {
	w.seedPlanet(credits, durastahl, crystal)
	return nil
}

func (w *world) anActiveBuildingOnField(typeKey string, field int) error {
	return w.buildActive(typeKey, field)
}

func (w *world) iCommissionABuilding(typeKey string, field int) error {
	handler := commands.NewStartConstructionHandler(
		w.planets, w.progress, w.buildingCatalog, w.locks, lockTimeout, w.clock)
	_, w.lastErr = handler.Handle(context.Background(), &commands.StartConstructionCommand{
		PlanetID:     w.planetID.Value(),
		BuildingType: typeKey,
		Field:        field,
	})
	return nil
}

func (w *world) theCommandFails() error {
	if w.lastErr == nil {
		return fmt.Errorf("expected the command to fail, but it succeeded")
	}
	return nil
}

func (w *world) thePlanetHoldsCredits(expected int64) error {
	p, err := w.planets.FindByID(context.Background(), w.planetID)
	if err != nil {
		return err
	}
	actual := p.Stockpile().Balance(resource.TypeCredits)
	if actual != expected {
		return fmt.Errorf("expected %d credits, got %d", expected, actual)
	}
	return nil
}

func (w *world) fieldHoldsBuildingInState(field int, typeKey, state string) error {
	p, err := w.planets.FindByID(context.Background(), w.planetID)
	if err != nil {
		return err
	}
	b := p.BuildingAt(field)
	if b == nil {
		return fmt.Errorf("field %d is empty", field)
	}
	if b.TypeKey() != typeKey {
		return fmt.Errorf("field %d holds %s, expected %s", field, b.TypeKey(), typeKey)
	}
	if string(b.State()) != state {
		return fmt.Errorf("building on field %d is %s, expected %s", field, b.State(), state)
	}
	return nil
}

func (w *world) fieldIsEmpty(field int) error {
	p, err := w.planets.FindByID(context.Background(), w.planetID)
	if err != nil {
		return err
	}
	if b := p.BuildingAt(field); b != nil {
		return fmt.Errorf("field %d holds %s, expected it to be empty", field, b.TypeKey())
	}
	return nil
}

func (w *world) hoursPassAndATickRuns(hours int) error {
	return w.runTick(hours)
}

func (w *world) iDemolishTheBuildingOnField(field int) error {
	p, err := w.planets.FindByID(context.Background(), w.planetID)
	if err != nil {
		return err
	}
	b := p.BuildingAt(field)
	if b == nil {
		return fmt.Errorf("field %d is empty", field)
	}

	handler := commands.NewDemolishBuildingHandler(
		w.planets, w.buildingCatalog, w.locks, lockTimeout)
	response, err := handler.Handle(context.Background(), &commands.DemolishBuildingCommand{
		PlanetID:   w.planetID.Value(),
		BuildingID: b.ID(),
	})
	w.lastErr = err
	if err == nil {
		w.refund = response.(*commands.DemolishBuildingResponse).Refund
	}
	return nil
}

func (w *world) thePlanetStockpileHolds(table *messages.PickleTable) error {
	p, err := w.planets.FindByID(context.Background(), w.planetID)
	if err != nil {
		return err
	}
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		rt, err := resource.ParseType(row.Cells[0].Value)
		if err != nil {
			return err
		}
		expected, err := strconv.ParseInt(row.Cells[1].Value, 10, 64)
		if err != nil {
			return err
		}
		if actual := p.Stockpile().Balance(rt); actual != expected {
			return fmt.Errorf("expected %d %s, got %d", expected, rt, actual)
		}
	}
	return nil
}

func (w *world) theRefundIncludesCredits(expected int64) error {
	if w.refund == nil {
		return fmt.Errorf("no refund was recorded")
	}
	if actual := w.refund[resource.TypeCredits.String()]; actual != expected {
		return fmt.Errorf("expected refund of %d credits, got %d", expected, actual)
	}
	return nil
}

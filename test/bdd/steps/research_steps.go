package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/galaxycolony-go/internal/application/research/commands"
)

// InitializeResearchScenario registers the research progression steps
func InitializeResearchScenario(sc *godog.ScenarioContext, w *world) {
	sc.Step(`^a colonized planet with an active research lab$`, w.aPlanetWithAnActiveLab)
	sc.Step(`^I start research "([^"]*)"$`, w.iStartResearch)
	sc.Step(`^research "([^"]*)" is in progress$`, w.researchIsInProgress)
	sc.Step(`^(\d+) ticks run$`, w.ticksRun)
	sc.Step(`^the research has accumulated (\d+) points$`, w.researchHasAccumulated)
	sc.Step(`^I cancel the research$`, w.iCancelTheResearch)
	sc.Step(`^no research is in progress$`, w.noResearchIsInProgress)
	sc.Step(`^(\d+) points were forfeited$`, w.pointsWereForfeited)
}

func (w *world) aPlanetWithAnActiveLab() error {
	w.seedPlanet(20000, 10000, 5000)
	if err := w.buildActive("SOLAR_ARRAY", 0); err != nil {
		return err
	}
	return w.buildActive("RESEARCH_LAB", 1)
}

func (w *world) iStartResearch(typeKey string) error {
	handler := commands.NewStartResearchHandler(
		w.planets, w.progress, w.buildingCatalog, w.researchCatalog,
		w.locks, lockTimeout, w.clock)
	_, w.lastErr = handler.Handle(context.Background(), &commands.StartResearchCommand{
		PlayerID:     w.playerID.Value(),
		ResearchType: typeKey,
	})
	return nil
}

func (w *world) researchIsInProgress(typeKey string) error {
	row, err := w.progress.FindInProgress(context.Background(), w.playerID)
	if err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("no research is in progress")
	}
	if row.TypeKey() != typeKey {
		return fmt.Errorf("research %s is in progress, expected %s", row.TypeKey(), typeKey)
	}
	return nil
}

func (w *world) ticksRun(count int) error {
	for i := 0; i < count; i++ {
		if err := w.runTick(3); err != nil {
			return err
		}
	}
	return nil
}

func (w *world) researchHasAccumulated(expected int64) error {
	row, err := w.progress.FindInProgress(context.Background(), w.playerID)
	if err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("no research is in progress")
	}
	if row.Accumulated() != expected {
		return fmt.Errorf("expected %d accumulated points, got %d", expected, row.Accumulated())
	}
	return nil
}

func (w *world) iCancelTheResearch() error {
	handler := commands.NewCancelResearchHandler(w.progress, w.locks, lockTimeout)
	response, err := handler.Handle(context.Background(), &commands.CancelResearchCommand{
		PlayerID: w.playerID.Value(),
	})
	w.lastErr = err
	if err == nil {
		w.forfeited = response.(*commands.CancelResearchResponse).Forfeited
	}
	return nil
}

func (w *world) noResearchIsInProgress() error {
	row, err := w.progress.FindInProgress(context.Background(), w.playerID)
	if err != nil {
		return err
	}
	if row != nil {
		return fmt.Errorf("research %s is still in progress", row.TypeKey())
	}
	return nil
}

func (w *world) pointsWereForfeited(expected int64) error {
	if w.forfeited != expected {
		return fmt.Errorf("expected %d forfeited points, got %d", expected, w.forfeited)
	}
	return nil
}

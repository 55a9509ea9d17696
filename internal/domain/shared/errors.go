package shared

import "fmt"

// DomainError is the base error type for all domain errors.
// Every rejection in the taxonomy below is a synchronous, recoverable
// refusal of a single command: handlers translate them to user-facing
// messages and no ledger state is mutated when one is returned.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Resource ledger errors

type InsufficientResourcesError struct {
	*DomainError
	Resource  string
	Required  int64
	Available int64
}

func NewInsufficientResourcesError(resource string, required, available int64) *InsufficientResourcesError {
	return &InsufficientResourcesError{
		DomainError: &DomainError{Message: fmt.Sprintf("insufficient %s: need %d, have %d", resource, required, available)},
		Resource:    resource,
		Required:    required,
		Available:   available,
	}
}

type InsufficientEnergyError struct {
	*DomainError
	Required  int64
	Available int64
}

func NewInsufficientEnergyError(required, available int64) *InsufficientEnergyError {
	return &InsufficientEnergyError{
		DomainError: &DomainError{Message: fmt.Sprintf("insufficient energy: need %d, have %d", required, available)},
		Required:    required,
		Available:   available,
	}
}

// Construction errors

type FieldOccupiedError struct {
	*DomainError
	Field int
}

func NewFieldOccupiedError(field int) *FieldOccupiedError {
	return &FieldOccupiedError{
		DomainError: &DomainError{Message: fmt.Sprintf("field %d is already occupied", field)},
		Field:       field,
	}
}

type SingleInstanceViolationError struct {
	*DomainError
	BuildingType string
}

func NewSingleInstanceViolationError(buildingType string) *SingleInstanceViolationError {
	return &SingleInstanceViolationError{
		DomainError:  &DomainError{Message: fmt.Sprintf("building %s already exists on this planet and allows a single instance", buildingType)},
		BuildingType: buildingType,
	}
}

type BuildingNotFoundError struct {
	*DomainError
	BuildingID string
}

func NewBuildingNotFoundError(buildingID string) *BuildingNotFoundError {
	return &BuildingNotFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("building %s not found", buildingID)},
		BuildingID:  buildingID,
	}
}

// Research errors

type ResearchPrerequisiteUnmetError struct {
	*DomainError
	ResearchType string
	Prerequisite string
}

func NewResearchPrerequisiteUnmetError(researchType, prerequisite string) *ResearchPrerequisiteUnmetError {
	return &ResearchPrerequisiteUnmetError{
		DomainError:  &DomainError{Message: fmt.Sprintf("research %s requires %s to be completed first", researchType, prerequisite)},
		ResearchType: researchType,
		Prerequisite: prerequisite,
	}
}

type InsufficientLabsError struct {
	*DomainError
	Required  int
	Available int
}

func NewInsufficientLabsError(required, available int) *InsufficientLabsError {
	return &InsufficientLabsError{
		DomainError: &DomainError{Message: fmt.Sprintf("insufficient research labs: need %d, have %d", required, available)},
		Required:    required,
		Available:   available,
	}
}

type ResearchAlreadyInProgressError struct {
	*DomainError
	ResearchType string
}

func NewResearchAlreadyInProgressError(researchType string) *ResearchAlreadyInProgressError {
	return &ResearchAlreadyInProgressError{
		DomainError:  &DomainError{Message: fmt.Sprintf("research %s is already in progress", researchType)},
		ResearchType: researchType,
	}
}

type InsufficientProductionError struct {
	*DomainError
	Resource string
	Required int64
	Current  int64
}

func NewInsufficientProductionError(resource string, required, current int64) *InsufficientProductionError {
	return &InsufficientProductionError{
		DomainError: &DomainError{Message: fmt.Sprintf("insufficient %s production: need %d per tick, producing %d", resource, required, current)},
		Resource:    resource,
		Required:    required,
		Current:     current,
	}
}

// Simulation errors

type TickAlreadyRanError struct {
	*DomainError
	Slot string
}

func NewTickAlreadyRanError(slot string) *TickAlreadyRanError {
	return &TickAlreadyRanError{
		DomainError: &DomainError{Message: fmt.Sprintf("tick for slot %s has already run", slot)},
		Slot:        slot,
	}
}

type BusyError struct {
	*DomainError
}

func NewBusyError(what string) *BusyError {
	return &BusyError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s is busy processing a tick, retry shortly", what)},
	}
}

type PlanetNotFoundError struct {
	*DomainError
	PlanetID PlanetID
}

func NewPlanetNotFoundError(planetID PlanetID) *PlanetNotFoundError {
	return &PlanetNotFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("planet %s not found", planetID)},
		PlanetID:    planetID,
	}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

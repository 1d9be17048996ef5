package gamedata

import (
	"errors"
	"fmt"
	"strings"
)

// BuildingRegistry holds validated building definitions and provides lookups.
type BuildingRegistry struct {
	buildings []BuildingDef
	byID      map[string]*BuildingDef
}

// NewBuildingRegistry validates the definitions against the known resource
// names and builds a registry. Any invalid or duplicate entry fails the load.
func NewBuildingRegistry(buildings []BuildingDef, resources []string) (*BuildingRegistry, error) {
	if len(buildings) == 0 {
		return nil, errors.New("no buildings defined")
	}

	registry := &BuildingRegistry{
		buildings: buildings,
		byID:      make(map[string]*BuildingDef, len(buildings)),
	}
	names := make(map[string]bool, len(buildings))

	for i := range buildings {
		def := &buildings[i]
		if err := def.Validate(resources); err != nil {
			return nil, err
		}
		id := strings.ToLower(def.ID)
		if registry.byID[id] != nil {
			return nil, fmt.Errorf("duplicate building id %q", def.ID)
		}
		name := strings.ToLower(def.Name)
		if names[name] {
			return nil, fmt.Errorf("duplicate building name %q", def.Name)
		}
		names[name] = true
		registry.byID[id] = def
	}

	return registry, nil
}

// LoadBuildingRegistry loads and validates the embedded buildings.yaml.
func LoadBuildingRegistry(resources []string) (*BuildingRegistry, error) {
	buildings, err := LoadBuildings()
	if err != nil {
		return nil, err
	}
	registry, err := NewBuildingRegistry(buildings, resources)
	if err != nil {
		return nil, fmt.Errorf("invalid buildings.yaml: %w", err)
	}
	return registry, nil
}

// MustLoadBuildingRegistry loads a registry, panicking on error.
func MustLoadBuildingRegistry(resources []string) *BuildingRegistry {
	registry, err := LoadBuildingRegistry(resources)
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the building with the given ID, ignoring case, or nil if not found.
func (r *BuildingRegistry) GetByID(id string) *BuildingDef {
	return r.byID[strings.ToLower(id)]
}

// GetByName returns the building whose name matches, ignoring case, or nil.
func (r *BuildingRegistry) GetByName(name string) *BuildingDef {
	for i := range r.buildings {
		if strings.EqualFold(r.buildings[i].Name, name) {
			return &r.buildings[i]
		}
	}
	return nil
}

// All returns all building definitions in catalog order.
func (r *BuildingRegistry) All() []BuildingDef {
	return r.buildings
}

// Count returns the number of building types in the registry.
func (r *BuildingRegistry) Count() int {
	return len(r.buildings)
}

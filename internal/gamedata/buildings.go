package gamedata

import (
	"errors"
	"fmt"
	"strings"
)

// BuildingDef defines a building type loaded from buildings.yaml.
// Definitions are never mutated after loading; keys hold pointers into the registry.
type BuildingDef struct {
	ID           string   `yaml:"id"`           // Unique identifier (e.g., "hut")
	Name         string   `yaml:"name"`         // Display name, typed to construct (e.g., "Hut")
	Symbol       string   `yaml:"symbol"`       // Drawn on the key face
	Cost         int      `yaml:"cost"`         // Money needed to construct
	Output       string   `yaml:"output"`       // Resource produced
	OutputAmount int      `yaml:"outputAmount"` // Amount produced at 100% accuracy
	Input        string   `yaml:"input"`        // Resource consumed per harvest, empty for none
	InputAmount  int      `yaml:"inputAmount"`  // Amount consumed per harvest
	Texts        []string `yaml:"texts"`        // Prompt pool for typing challenges
}

// HasInput returns true if harvesting consumes a resource.
func (b *BuildingDef) HasInput() bool {
	return b.Input != ""
}

// Validate checks the definition against the set of known resource names.
func (b *BuildingDef) Validate(resources []string) error {
	if b.ID == "" {
		return errors.New("building has no id")
	}
	if b.Name == "" {
		return fmt.Errorf("building %s: empty name", b.ID)
	}
	if b.Cost < 0 {
		return fmt.Errorf("building %s: negative cost %d", b.ID, b.Cost)
	}
	if b.OutputAmount < 0 {
		return fmt.Errorf("building %s: negative output amount %d", b.ID, b.OutputAmount)
	}
	if !knownResource(resources, b.Output) {
		return fmt.Errorf("building %s: unknown output resource %q", b.ID, b.Output)
	}
	if b.HasInput() {
		if !knownResource(resources, b.Input) {
			return fmt.Errorf("building %s: unknown input resource %q", b.ID, b.Input)
		}
		if b.InputAmount <= 0 {
			return fmt.Errorf("building %s: input %q needs a positive amount", b.ID, b.Input)
		}
	} else if b.InputAmount != 0 {
		return fmt.Errorf("building %s: input amount %d without input resource", b.ID, b.InputAmount)
	}
	if len(b.Texts) == 0 {
		return fmt.Errorf("building %s: no prompt texts", b.ID)
	}
	for i, text := range b.Texts {
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("building %s: prompt text %d is blank", b.ID, i)
		}
	}
	return nil
}

func knownResource(resources []string, name string) bool {
	for _, r := range resources {
		if strings.EqualFold(r, name) {
			return true
		}
	}
	return false
}

// BuildingsFile represents the structure of buildings.yaml.
type BuildingsFile struct {
	Buildings []BuildingDef `yaml:"buildings"`
}

// LoadBuildings loads building definitions from the embedded buildings.yaml file.
func LoadBuildings() ([]BuildingDef, error) {
	file, err := Load[BuildingsFile]("buildings.yaml")
	if err != nil {
		return nil, err
	}
	return file.Buildings, nil
}

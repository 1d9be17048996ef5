package gamedata

// ThemeDef holds the hex colors used by the renderer, loaded from theme.json.
type ThemeDef struct {
	Text         string            `json:"text"`
	Dim          string            `json:"dim"`
	Background   string            `json:"background"`
	Success      string            `json:"success"`
	Warning      string            `json:"warning"`
	Error        string            `json:"error"`
	KeyFace      string            `json:"keyFace"`
	KeyLocked    string            `json:"keyLocked"`
	KeyPressed   string            `json:"keyPressed"`
	KeyHarvested string            `json:"keyHarvested"`
	Shadow       string            `json:"shadow"`
	Phases       map[string]string `json:"phases"` // Border color per phase, keyed by lowercase phase name
}

// LoadTheme loads the color theme from the embedded theme.json file.
func LoadTheme() (ThemeDef, error) {
	return Load[ThemeDef]("theme.json")
}

package types

// Category groups applications for desktop placement
type Category string

const (
	CategoryGame     Category = "game"
	CategoryUtility  Category = "utility"
	CategoryCreative Category = "creative"
	CategoryDev      Category = "dev"
	CategorySystem   Category = "system"
)

// AppDefinition describes an installed application in the static registry
type AppDefinition struct {
	ID          string   `json:"id" yaml:"id" toml:"id"`
	Name        string   `json:"name" yaml:"name" toml:"name"`
	Icon        string   `json:"icon,omitempty" yaml:"icon" toml:"icon"`
	Category    Category `json:"category,omitempty" yaml:"category" toml:"category"`
	DefaultSize Size     `json:"defaultSize" yaml:"defaultSize" toml:"defaultSize"`

	// Hidden marks internal window types (sticky notes) that get no desktop shortcut
	Hidden bool `json:"hidden,omitempty" yaml:"hidden" toml:"hidden"`
}

// RegistryStats contains registry statistics
type RegistryStats struct {
	TotalApps  int              `json:"totalApps"`
	HiddenApps int              `json:"hiddenApps"`
	Categories map[Category]int `json:"categories"`
}

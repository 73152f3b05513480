// internal/defs/types.go
package defs

// DamageTypeDefinition describes a damage type. It is informational only:
// the numbers live in the armor table.
type DamageTypeDefinition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ArmorDefinition maps damage types onto damage multipliers for one armor type.
type ArmorDefinition struct {
	Name            string             `yaml:"-"`
	DamageModifiers map[string]float64 `yaml:"damage_modifiers"`
}

// Modifier returns the multiplier for a damage type, 1.0 when unlisted.
func (a ArmorDefinition) Modifier(damageType string) float64 {
	if m, ok := a.DamageModifiers[damageType]; ok {
		return m
	}
	return 1.0
}

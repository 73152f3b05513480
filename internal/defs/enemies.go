// internal/defs/enemies.go
package defs

import "go-grid-defense/internal/types"

// EnemyDefinition holds all the static data for a specific type of adversary.
type EnemyDefinition struct {
	ID         string         `yaml:"-"`
	Name       string         `yaml:"name"`
	Health     float64        `yaml:"health"`
	Speed      float64        `yaml:"speed"` // pixels per second
	Value      int            `yaml:"value"` // gold granted on kill
	ArmorValue float64        `yaml:"armor_value"`
	ArmorType  string         `yaml:"armor_type"`
	Type       types.UnitType `yaml:"type"`
	LivesCost  int            `yaml:"lives_cost"` // lives lost on reaching the objective, 1 when unset
}

// Lives returns how many lives the adversary costs on objective-reach.
func (d EnemyDefinition) Lives() int {
	if d.LivesCost <= 0 {
		return 1
	}
	return d.LivesCost
}

// internal/app/command.go
package app

import (
	"fmt"

	"go-grid-defense/pkg/grid"
)

// CommandKind — вид внешней команды хоста.
type CommandKind string

const (
	CmdPlaceTower      CommandKind = "place_tower"
	CmdSellTower       CommandKind = "sell_tower"
	CmdStartWaves      CommandKind = "start_waves"
	CmdSpawnDebugEnemy CommandKind = "spawn_debug_enemy"
)

// Command — одна команда, применяемая в начале тика.
type Command struct {
	Kind  CommandKind `yaml:"command"`
	Cell  grid.Cell   `yaml:"cell"`
	Race  string      `yaml:"race"`
	Tower string      `yaml:"tower"`
	Enemy string      `yaml:"enemy"`
}

func PlaceTowerCmd(center grid.Cell, race, tower string) Command {
	return Command{Kind: CmdPlaceTower, Cell: center, Race: race, Tower: tower}
}

func SellTowerCmd(cell grid.Cell) Command {
	return Command{Kind: CmdSellTower, Cell: cell}
}

func StartWavesCmd() Command {
	return Command{Kind: CmdStartWaves}
}

func SpawnDebugEnemyCmd(enemy string) Command {
	return Command{Kind: CmdSpawnDebugEnemy, Enemy: enemy}
}

func (c Command) String() string {
	switch c.Kind {
	case CmdPlaceTower:
		return fmt.Sprintf("%s %s/%s at (%d,%d)", c.Kind, c.Race, c.Tower, c.Cell.X, c.Cell.Y)
	case CmdSellTower:
		return fmt.Sprintf("%s at (%d,%d)", c.Kind, c.Cell.X, c.Cell.Y)
	case CmdSpawnDebugEnemy:
		return fmt.Sprintf("%s %s", c.Kind, c.Enemy)
	}
	return string(c.Kind)
}

package system

import (
	"io"
	"testing"
	"testing/fstest"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/internal/utils"
	"go-grid-defense/pkg/grid"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

const testDamageTypes = `
normal: {description: plain}
pierce: {description: arrows}
magic: {description: arcane}
fire: {description: burning}
`

const testArmor = `
light:
  damage_modifiers: {normal: 1.0, pierce: 2.0}
heavy:
  damage_modifiers: {normal: 1.0, magic: 0.5}
`

const testEnemies = `
village_peasant: {health: 150, speed: 40, value: 1, armor_value: 1, armor_type: light, type: ground}
dummy: {health: 1000, speed: 0, value: 2, armor_value: 0, armor_type: light, type: ground}
plated: {health: 1000, speed: 0, value: 2, armor_value: 5, armor_type: heavy, type: ground}
dust_mite: {health: 10, speed: 30, value: 1, armor_value: 0, armor_type: light, type: ground}
bat: {health: 40, speed: 60, value: 1, armor_value: 0, armor_type: light, type: air}
`

const testTowers = `
test:
  gun:
    cost: 10
    attack_type: projectile
    attack_interval: 1
    damage_min: 20
    range: 2000
    projectile_speed: 600
  arc:
    cost: 20
    attack_type: projectile
    attack_interval: 2
    damage_min: 5
    range: 900
    special: {effect: chain, chain_link_radius: 800, damage_per_tower: 30}
  bouncer:
    attack_type: projectile
    attack_interval: 100
    damage_min: 50
    range: 2000
    projectile_speed: 600
    special: {effect: bounce, count: 2, range: 600, falloff: 0.5}
  frost:
    attack_type: projectile
    attack_interval: 1
    damage_min: 1
    range: 2000
    special: {effect: slow, slow_percent: 40, duration: 2}
  deep_frost:
    attack_type: projectile
    attack_interval: 1
    damage_min: 1
    range: 2000
    special: {effect: slow, slow_percent: 60, duration: 2}
  stunner:
    attack_type: projectile
    attack_interval: 1
    range: 2000
    special: {effect: stun, duration: 1}
  burner:
    attack_type: projectile
    attack_interval: 1
    range: 2000
    special: {effect: burn, damage: 10, interval: 1, duration: 5, damage_type: fire}
  shredder:
    attack_type: projectile
    attack_interval: 1
    range: 2000
    armor_penetration: 100
    special: {effect: armor_shred, amount: 50}
  amplifier:
    attack_type: none
    special: {effect: dot_amplification_aura, radius: 600, multiplier: 1.5, duration: 2}
  drum:
    attack_type: none
    special: {effect: adjacency_damage_buff, multiplier: 1.5}
  banner:
    attack_type: none
    special:
      - {effect: damage_buff_aura, radius: 600, multiplier: 1.2}
      - {effect: attack_speed_aura, radius: 600, multiplier: 2}
  pulser:
    attack_type: aura
    special: {effect: damage_pulse_aura, radius: 600, interval: 1, damage: 25}
  orbit:
    attack_type: none
    special: {effect: orbiting_damager, orb_count: 1, orbit_radius: 200, angular_speed: 0, collision_radius: 50, damage: 10, hit_cooldown: 0.5}
  comet:
    attack_type: projectile
    attack_interval: 100
    range: 2000
    special:
      effect: pass_through_exploder
      speed: 320
      max_distance: 1000
      width: 20
      pass_damage: 5
      explosion_radius: 300
      explosion_damage: 40
      zone_duration: 1
      zone_damage: 10
      zone_interval: 0.5
  weakener:
    attack_type: none
    special: {effect: enemy_armor_reduction_aura, radius: 600, reduction_amount: 3}
  weakener_strong:
    attack_type: none
    special: {effect: enemy_armor_reduction_aura, radius: 600, reduction_amount: 4}
  miner:
    attack_type: none
    special: {effect: gold_generation, amount: 3, interval: 2}
  reaper:
    attack_type: projectile
    attack_interval: 1
    damage_min: 500
    range: 2000
    projectile_speed: 2000
    special:
      - {effect: gold_on_kill, chance_percent: 100, gold_amount: 4}
      - {effect: bounty_on_kill, gold_penalty: 1}
  trap:
    traversable: true
    trigger_on_walkover: true
    attack_type: none
    targets: [ground]
    special: {effect: ground_spike_dot, damage: 10, interval: 1, duration: 3}
  splasher:
    attack_type: projectile
    attack_interval: 100
    damage_min: 40
    critical_multiplier: 1.5
    range: 2000
    projectile_speed: 2000
    special: {effect: splash, radius: 300, crit_splash_multiplier: 2}
  piercer:
    attack_type: projectile
    attack_interval: 100
    damage_min: 40
    range: 2000
    projectile_speed: 600
    special: {effect: pierce_adjacent, count: 2, falloff: 0.25}
  boomer:
    attack_type: projectile
    attack_interval: 100
    damage_min: 10
    range: 2000
    projectile_speed: 320
    special: {effect: boomerang, max_distance: 1000, offset: 0, hit_cooldown: 0.5}
  broadsider:
    attack_type: none
    damage_min: 15
    range: 600
    projectile_speed: 600
    special: {effect: broadside, projectile_count: 4, interval: 1}
  beamer:
    attack_type: beam
    attack_interval: 1
    damage_min: 10
    range: 600
    beam_targets: 2
    special: {effect: slow, slow_percent: 50, duration: 2}
  painter:
    attack_type: projectile
    attack_interval: 0.1
    damage_min: 100
    range: 2000
    special: {effect: laser_painter, charge_duration: 1}
  rampager:
    attack_type: beam
    attack_interval: 1
    damage_min: 10
    range: 2000
    special: {effect: rampage, max_stacks: 2, damage_per_stack: 5, decay_duration: 1.5}
  solar:
    attack_type: beam
    attack_interval: 1
    damage_min: 10
    range: 2000
    special: {effect: requires_solar_adjacency, required_count: 1}
  scorcher:
    attack_type: aura
    special: {effect: damage_aura, radius: 600, dot_damage: 10, dot_interval: 0.5}
  chiller:
    attack_type: aura
    special: {effect: slow_aura, radius: 600, slow_percent: 30}
  storm:
    attack_type: aura
    special: {effect: storm_aura, radius: 600, dot_damage: 10, dot_interval: 0.5, slow_percent: 30}
  slow_pulser:
    attack_type: aura
    special: {effect: slow_pulse_aura, radius: 600, interval: 1, slow_percent: 50, duration: 0.5}
  stun_pulser:
    attack_type: aura
    special: {effect: stun_pulse_aura, radius: 600, interval: 1, duration: 0.5}
  chill_pulser:
    attack_type: aura
    special: {effect: bonechill_pulse_aura, radius: 600, interval: 1, duration: 0.5}
  dot_pulser:
    attack_type: aura
    special: {effect: dot_pulse_aura, radius: 600, interval: 1, dot_damage: 5, dot_interval: 0.25, duration: 0.5}
`

const testWaves = `
- delay_before_wave: 5
  wave_completion_bonus: 10
  enemies:
    - {type: dust_mite, count: 3, spawn_interval: 1, initial_delay: 0}
- delay_before_wave: 2
  wave_completion_bonus: 5
  enemies:
    - {type: dust_mite, count: 1, spawn_interval: 1, initial_delay: 0}
`

func testCatalog(t *testing.T) *defs.Catalog {
	t.Helper()
	c, err := defs.Load(fstest.MapFS{
		defs.DamageTypesFile: {Data: []byte(testDamageTypes)},
		defs.ArmorFile:       {Data: []byte(testArmor)},
		defs.EnemiesFile:     {Data: []byte(testEnemies)},
		defs.TowersFile:      {Data: []byte(testTowers)},
		defs.WavesFile:       {Data: []byte(testWaves)},
	})
	require.NoError(t, err)
	require.Empty(t, c.Problems)
	return c
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.WanderRadius = 0
	cfg.Seed = 7
	return cfg
}

// testWorld — мир для тестов систем без фасада хоста.
type testWorld struct {
	*Pipeline
	rec *event.Recorder
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	return newTestWorldWith(t, testConfig())
}

func newTestWorldWith(t *testing.T, cfg config.Config) *testWorld {
	t.Helper()
	events := event.NewDispatcher()
	env := NewEnv(entity.NewECS(), cfg, testCatalog(t), grid.New(cfg.Layout()), utils.NewPRNGService(cfg.Seed), events, log.New(io.Discard))
	return &testWorld{Pipeline: NewPipeline(env), rec: event.NewRecorder(events)}
}

// place ставит башню test/id левым верхним углом в клетку, без проверок.
func (w *testWorld) place(t *testing.T, id string, cell grid.Cell) (types.EntityID, *component.Tower) {
	t.Helper()
	def, ok := w.Env.Catalog.Tower("test", id)
	require.True(t, ok, id)
	rect := grid.RectAt(cell, def.GridWidth, def.GridHeight)
	x, y := grid.RectCenter(rect, w.Env.Config.GridSize)
	tower := component.NewTower(def, rect, component.Position{X: x, Y: y}, w.Env.Now())
	if tower.Blocking {
		for _, c := range rect.Cells() {
			w.Env.Grid.SetBlocked(c, true)
		}
	}
	tid := w.Env.ECS.AddTower(tower)
	w.Orbiters.SpawnFor(tid, tower)
	w.Chain.Rebuild()
	w.Buffs.Invalidate()
	return tid, tower
}

// spawnAt создаёт отладочного противника и переносит его в точку.
func (w *testWorld) spawnAt(t *testing.T, id string, pos component.Position) (types.EntityID, *component.Enemy) {
	t.Helper()
	eid, err := w.Waves.Spawn(id, -1)
	require.NoError(t, err)
	e, _ := w.Env.ECS.Enemies.Get(eid)
	e.Pos = pos
	return eid, e
}

// freeze останавливает противника, чтобы позиции в тесте не менялись.
func freeze(e *component.Enemy) {
	e.BaseSpeed = 0
	e.CurrentSpeed = 0
}

func (w *testWorld) center(c grid.Cell) component.Position {
	return w.Env.CellCenter(c)
}

// run делает n тиков по dt.
func (w *testWorld) run(n int, dt float64) {
	for i := 0; i < n; i++ {
		w.Step(dt)
	}
}

func (w *testWorld) count(t event.EventType) int {
	return w.rec.Count(t)
}

const dt60 = 1.0 / 60

package defs

import (
	"errors"
	"testing"
	"testing/fstest"

	"go-grid-defense/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultCatalog(t *testing.T) {
	c, err := LoadDefault()
	require.NoError(t, err)
	assert.Empty(t, c.Problems, "shipped catalog must load cleanly")

	peasant, ok := c.Enemies["village_peasant"]
	require.True(t, ok)
	assert.Equal(t, 150.0, peasant.Health)
	assert.Equal(t, "light", peasant.ArmorType)
	assert.Equal(t, 1.0, peasant.ArmorValue)
	assert.Equal(t, types.Ground, peasant.Type)
	assert.Equal(t, 1, peasant.Lives())
	assert.Equal(t, 5, c.Enemies["ogre_warlord"].Lives())

	assert.Equal(t, 1.0, c.ArmorModifier("light", "normal"))
	assert.Equal(t, 2.0, c.ArmorModifier("light", "pierce"))
	assert.Equal(t, 1.0, c.ArmorModifier("light", "chaos"), "unlisted damage types default to 1.0")

	assert.Equal(t, []string{"arcane", "sun", "swamp", "village"}, c.Races())
	assert.NotEmpty(t, c.Waves)
}

func TestTowerSpecialsDecode(t *testing.T) {
	c, err := LoadDefault()
	require.NoError(t, err)

	cannon, ok := c.Tower("village", "cannon_tower")
	require.True(t, ok)
	splash, ok := SpecialOf[*SplashSpecial](cannon.Special)
	require.True(t, ok)
	assert.Equal(t, 180.0, splash.Radius)
	assert.Equal(t, 1.5, splash.CritSplashMultiplier)
	assert.Equal(t, []types.UnitType{types.Ground}, cannon.Targets)

	merc, ok := c.Tower("village", "mercenary_camp")
	require.True(t, ok)
	require.Len(t, merc.Special, 2, "list form carries several blocks")
	rampage, ok := SpecialOf[*RampageSpecial](merc.Special)
	require.True(t, ok)
	assert.Equal(t, EffectRampage, rampage.Tag())
	assert.True(t, merc.Special.Has(EffectBountyOnKill))

	trap, ok := c.Tower("village", "spike_trap")
	require.True(t, ok)
	dot, ok := SpecialOf[*DotSpecial](trap.Special)
	require.True(t, ok)
	assert.Equal(t, EffectGroundSpikeDot, dot.Tag())
	assert.Equal(t, "ground_spike_dot", dot.Name, "dot name defaults to its tag")

	slow, ok := c.Tower("village", "frost_tower")
	require.True(t, ok)
	s, _ := SpecialOf[*SlowSpecial](slow.Special)
	assert.InDelta(t, 0.6, s.Multiplier(), 1e-12)

	mine, _ := c.Tower("village", "gold_mine")
	assert.Equal(t, 2, mine.GridWidth)
	assert.Equal(t, "village/gold_mine", mine.Key())
}

func minimalFS(towers, waves string) fstest.MapFS {
	return fstest.MapFS{
		DamageTypesFile: {Data: []byte("normal: {description: x}\nfire: {description: y}\n")},
		ArmorFile:       {Data: []byte("light:\n  damage_modifiers: {normal: 1.0}\n")},
		EnemiesFile: {Data: []byte(`
grunt: {health: 10, speed: 20, value: 1, armor_value: 0, armor_type: light, type: ground}
ghost: {health: 10, speed: 20, value: 1, armor_value: 0, armor_type: mithril, type: ground}
`)},
		TowersFile: {Data: []byte(towers)},
		WavesFile:  {Data: []byte(waves)},
	}
}

func TestLoadSkipsBadEntries(t *testing.T) {
	towers := `
test:
  good:
    attack_type: projectile
    attack_interval: 1
    damage_min: 5
    range: 300
  bad_tag:
    attack_type: projectile
    attack_interval: 1
    special: {effect: teleport}
  bad_payload:
    attack_type: projectile
    attack_interval: 1
    special: {effect: slow, slow_percent: 0, duration: 1}
  bad_damage_type:
    attack_type: projectile
    attack_interval: 1
    damage_type: ice
`
	waves := `
- delay_before_wave: 1
  wave_completion_bonus: 5
  enemies:
    - {type: grunt, count: 2, spawn_interval: 1, initial_delay: 0}
    - {type: dragon, count: 1, spawn_interval: 1, initial_delay: 0}
`
	c, err := Load(minimalFS(towers, waves))
	require.NoError(t, err)

	_, ok := c.Tower("test", "good")
	assert.True(t, ok)
	for _, id := range []string{"bad_tag", "bad_payload", "bad_damage_type"} {
		_, ok := c.Tower("test", id)
		assert.False(t, ok, id)
	}
	_, ok = c.Enemies["ghost"]
	assert.False(t, ok, "unknown armor type skips the adversary")

	require.Len(t, c.Waves, 1)
	assert.Len(t, c.Waves[0].Enemies, 1, "unknown adversary group dropped, wave kept")

	assert.Len(t, c.Problems, 5)
	for _, p := range c.Problems {
		assert.True(t, errors.Is(p, ErrCatalog))
		var ce *CatalogError
		assert.True(t, errors.As(p, &ce))
	}
}

func TestLoadFailsOnBrokenFile(t *testing.T) {
	fsys := minimalFS("test: [not, a, map", "[]")
	_, err := Load(fsys)
	assert.Error(t, err)

	fsys = minimalFS("{}", "[]")
	delete(fsys, ArmorFile)
	_, err = Load(fsys)
	assert.Error(t, err)
}

func TestNormalizeFoldsStatFields(t *testing.T) {
	d := &TowerDefinition{SplashRadius: 100, BounceCount: 2, BounceRange: 300, PierceCount: 1}
	d.normalize()

	assert.True(t, d.Special.Has(EffectSplash))
	b, ok := SpecialOf[*BounceSpecial](d.Special)
	require.True(t, ok)
	assert.Equal(t, 1.0, b.Falloff)
	assert.True(t, d.Special.Has(EffectPierceAdjacent))
	assert.Equal(t, 1, d.GridWidth)
	assert.Equal(t, AttackNone, d.AttackType)
	assert.Equal(t, SelectClosest, d.Selection())
	assert.True(t, d.CanTarget(types.Air))
	assert.True(t, d.AllowsArmor("anything"))

	d.TargetSelection = SelectStrategicStrike
	assert.Equal(t, SelectHighestCurrentHealth, d.Selection())
}

package defs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var defaultData embed.FS

// Catalog file names inside a catalog directory.
const (
	ArmorFile       = "armor.yaml"
	DamageTypesFile = "damage_types.yaml"
	EnemiesFile     = "enemies.yaml"
	TowersFile      = "towers.yaml"
	WavesFile       = "waves.yaml"
)

// CatalogError reports an entry that was skipped while loading.
type CatalogError struct {
	Table  string
	ID     string
	Reason string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog %s[%s]: %s", e.Table, e.ID, e.Reason)
}

// ErrCatalog matches every *CatalogError via errors.Is.
var ErrCatalog = errors.New("catalog error")

func (e *CatalogError) Is(target error) bool { return target == ErrCatalog }

// Catalog — неизменяемые во время матча таблицы.
type Catalog struct {
	Armor       map[string]ArmorDefinition
	DamageTypes map[string]DamageTypeDefinition
	Enemies     map[string]EnemyDefinition
	Towers      map[string]map[string]*TowerDefinition // race -> id -> def
	Waves       []WaveDefinition

	// Problems lists every entry skipped with a CatalogError.
	Problems []error
}

// Tower looks up a tower by race and id.
func (c *Catalog) Tower(race, id string) (*TowerDefinition, bool) {
	byID, ok := c.Towers[race]
	if !ok {
		return nil, false
	}
	d, ok := byID[id]
	return d, ok
}

// Races returns the race names in sorted order.
func (c *Catalog) Races() []string {
	out := make([]string, 0, len(c.Towers))
	for r := range c.Towers {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// TowerIDs returns the tower ids of a race in sorted order.
func (c *Catalog) TowerIDs(race string) []string {
	out := make([]string, 0, len(c.Towers[race]))
	for id := range c.Towers[race] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ArmorModifier returns the damage multiplier of armorType against damageType.
func (c *Catalog) ArmorModifier(armorType, damageType string) float64 {
	if a, ok := c.Armor[armorType]; ok {
		return a.Modifier(damageType)
	}
	return 1.0
}

// LoadDefault loads the catalog embedded in the binary.
func LoadDefault() (*Catalog, error) {
	sub, err := fs.Sub(defaultData, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded catalog: %w", err)
	}
	return Load(sub)
}

// LoadDir loads a catalog from a directory on disk.
func LoadDir(dir string) (*Catalog, error) {
	return Load(os.DirFS(dir))
}

// Load reads every table from fsys. Unreadable or unparsable files fail the
// load; bad entries are skipped and recorded in Catalog.Problems.
func Load(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{
		Armor:       make(map[string]ArmorDefinition),
		DamageTypes: make(map[string]DamageTypeDefinition),
		Enemies:     make(map[string]EnemyDefinition),
		Towers:      make(map[string]map[string]*TowerDefinition),
	}

	var damageTypes map[string]DamageTypeDefinition
	if err := readYAML(fsys, DamageTypesFile, &damageTypes); err != nil {
		return nil, err
	}
	for name, d := range damageTypes {
		d.Name = name
		c.DamageTypes[name] = d
	}

	var armor map[string]ArmorDefinition
	if err := readYAML(fsys, ArmorFile, &armor); err != nil {
		return nil, err
	}
	for _, name := range sortedKeys(armor) {
		a := armor[name]
		a.Name = name
		if bad := c.unknownDamageTypes(a.DamageModifiers); bad != "" {
			c.problem("armor", name, fmt.Sprintf("unknown damage type %q", bad))
			continue
		}
		c.Armor[name] = a
	}

	var enemies map[string]EnemyDefinition
	if err := readYAML(fsys, EnemiesFile, &enemies); err != nil {
		return nil, err
	}
	for _, id := range sortedKeys(enemies) {
		e := enemies[id]
		e.ID = id
		if err := c.checkEnemy(e); err != "" {
			c.problem("enemies", id, err)
			continue
		}
		c.Enemies[id] = e
	}

	var towers map[string]map[string]yaml.Node
	if err := readYAML(fsys, TowersFile, &towers); err != nil {
		return nil, err
	}
	for _, race := range sortedKeys(towers) {
		for _, id := range sortedKeys(towers[race]) {
			node := towers[race][id]
			def := &TowerDefinition{}
			if err := node.Decode(def); err != nil {
				c.problem("towers", race+"/"+id, err.Error())
				continue
			}
			def.ID, def.Race = id, race
			def.normalize()
			if err := c.checkTower(def); err != "" {
				c.problem("towers", def.Key(), err)
				continue
			}
			if c.Towers[race] == nil {
				c.Towers[race] = make(map[string]*TowerDefinition)
			}
			c.Towers[race][id] = def
		}
	}

	var waves []WaveDefinition
	if err := readYAML(fsys, WavesFile, &waves); err != nil {
		return nil, err
	}
	for i, w := range waves {
		groups := w.Enemies[:0:0]
		for _, g := range w.Enemies {
			if _, ok := c.Enemies[g.Type]; !ok {
				c.problem("waves", fmt.Sprintf("%d/%s", i, g.Type), "unknown adversary id")
				continue
			}
			if g.Count <= 0 || g.SpawnInterval < 0 || g.InitialDelay < 0 {
				c.problem("waves", fmt.Sprintf("%d/%s", i, g.Type), "invalid spawn group timing or count")
				continue
			}
			groups = append(groups, g)
		}
		w.Enemies = groups
		c.Waves = append(c.Waves, w)
	}
	return c, nil
}

func (c *Catalog) checkEnemy(e EnemyDefinition) string {
	switch {
	case e.Health <= 0:
		return "health must be positive"
	case e.Speed < 0:
		return "speed must not be negative"
	case !e.Type.Valid():
		return fmt.Sprintf("unknown movement type %q", e.Type)
	}
	if _, ok := c.Armor[e.ArmorType]; !ok {
		return fmt.Sprintf("unknown armor type %q", e.ArmorType)
	}
	return ""
}

func (c *Catalog) checkTower(d *TowerDefinition) string {
	switch d.AttackType {
	case AttackProjectile, AttackBeam, AttackAura, AttackHybrid, AttackNone:
	default:
		return fmt.Sprintf("unknown attack_type %q", d.AttackType)
	}
	switch d.TargetSelection {
	case "", SelectClosest, SelectRandom, SelectHighestCurrentHealth, SelectStrategicStrike:
	default:
		return fmt.Sprintf("unknown target_selection %q", d.TargetSelection)
	}
	if d.Attacks() && d.AttackInterval <= 0 {
		return "attack_interval must be positive for attacking towers"
	}
	if d.Range < 0 || d.RangeMin < 0 || d.RangeMin > d.Range {
		return "invalid range / range_min"
	}
	if _, ok := c.DamageTypes[d.DamageType]; !ok {
		return fmt.Sprintf("unknown damage type %q", d.DamageType)
	}
	for _, t := range d.Targets {
		if !t.Valid() {
			return fmt.Sprintf("unknown target type %q", t)
		}
	}
	for _, a := range d.AllowedArmorTypes {
		if _, ok := c.Armor[a]; !ok {
			return fmt.Sprintf("unknown armor type %q", a)
		}
	}
	if d.TriggerOnWalkover && (!d.Traversable || d.GridWidth != 1 || d.GridHeight != 1) {
		return "walkover triggers must be traversable 1x1 towers"
	}
	for _, s := range d.Special {
		if dt := specialDamageType(s); dt != "" {
			if _, ok := c.DamageTypes[dt]; !ok {
				return fmt.Sprintf("special %s: unknown damage type %q", s.Tag(), dt)
			}
		}
	}
	return ""
}

func specialDamageType(s Special) string {
	switch v := s.(type) {
	case *DotSpecial:
		return v.DamageType
	case *OrbitingDamagerSpecial:
		return v.DamageType
	case *PassThroughExploderSpecial:
		return v.DamageType
	case *ContinuousAuraSpecial:
		return v.DamageType
	case *PulseAuraSpecial:
		return v.DamageType
	}
	return ""
}

func (c *Catalog) unknownDamageTypes(mods map[string]float64) string {
	for _, dt := range sortedKeys(mods) {
		if _, ok := c.DamageTypes[dt]; !ok {
			return dt
		}
	}
	return ""
}

func (c *Catalog) problem(table, id, reason string) {
	c.Problems = append(c.Problems, &CatalogError{Table: table, ID: id, Reason: reason})
}

func readYAML(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

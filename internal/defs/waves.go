package defs

// SpawnGroup — группа одинаковых противников внутри волны.
type SpawnGroup struct {
	Type          string  `yaml:"type"`           // ID противника из enemies.yaml
	Count         int     `yaml:"count"`          // сколько заспавнить
	SpawnInterval float64 `yaml:"spawn_interval"` // секунды между спавнами
	InitialDelay  float64 `yaml:"initial_delay"`  // секунды до первого спавна
}

// WaveDefinition описывает одну волну.
type WaveDefinition struct {
	DelayBeforeWave     float64      `yaml:"delay_before_wave"`
	Enemies             []SpawnGroup `yaml:"enemies"`
	WaveCompletionBonus int          `yaml:"wave_completion_bonus"`
}

// Total returns how many adversaries the wave spawns.
func (w WaveDefinition) Total() int {
	n := 0
	for _, g := range w.Enemies {
		n += g.Count
	}
	return n
}

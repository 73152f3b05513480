// internal/component/wave.go
package component

import "go-grid-defense/internal/defs"

// WavePhase — состояние директора волн.
type WavePhase int

const (
	WaveIdle WavePhase = iota
	WaveWaitingDelay
	WaveSpawning
	WaveIntermission
	WaveAllDone
)

func (p WavePhase) String() string {
	switch p {
	case WaveIdle:
		return "idle"
	case WaveWaitingDelay:
		return "waiting_delay"
	case WaveSpawning:
		return "spawning"
	case WaveIntermission:
		return "intermission"
	case WaveAllDone:
		return "all_done"
	}
	return "unknown"
}

// SpawnGroupState — состояние группы спавна внутри волны.
type SpawnGroupState struct {
	Group     defs.SpawnGroup
	Remaining int
	Timer     float64
	Interval  float64
}

// WaveCounters — учёт противников одной волны.
type WaveCounters struct {
	Spawned int
	Killed  int
	Reached int
	Lost    int // сняты из-за отсутствия пути
	Alive   int
}

// Wave — состояние директора волн.
type Wave struct {
	Phase    WavePhase
	Index    int
	Timer    float64
	Groups   []*SpawnGroupState
	Counters map[int]*WaveCounters
}

// NewWave returns an idle director state.
func NewWave() *Wave {
	return &Wave{Phase: WaveIdle, Counters: make(map[int]*WaveCounters)}
}

// Counter returns the counters of a wave, creating them on first use.
func (w *Wave) Counter(index int) *WaveCounters {
	c, ok := w.Counters[index]
	if !ok {
		c = &WaveCounters{}
		w.Counters[index] = c
	}
	return c
}

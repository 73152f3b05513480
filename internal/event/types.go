// internal/event/types.go
package event

import (
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/grid"
	"go-grid-defense/pkg/utils"
)

const (
	EnemySpawned          EventType = "EnemySpawned"          // Противник появился
	EnemyKilled           EventType = "EnemyKilled"           // Противник уничтожен
	EnemyReachedObjective EventType = "EnemyReachedObjective" // Противник дошёл до цели
	PathLost              EventType = "PathLost"              // Путь пропал после перестройки
	TowerPlaced           EventType = "TowerPlaced"           // Башня построена
	TowerSold             EventType = "TowerSold"             // Башня продана
	CommandRejected       EventType = "CommandRejected"       // Команда хоста отклонена
	WaveStarted           EventType = "WaveStarted"           // Волна начала спавн
	WaveCompleted         EventType = "WaveCompleted"         // Волна зачищена, бонус выдан
	AllWavesCompleted     EventType = "AllWavesCompleted"
	GoldChanged           EventType = "GoldChanged"
	LivesChanged          EventType = "LivesChanged"
	GameOver              EventType = "GameOver"
	FloatingText          EventType = "FloatingText"
	ChainFired            EventType = "ChainFired"
	PulseEmitted          EventType = "PulseEmitted"
	BeamStarted           EventType = "BeamStarted"
	BeamStopped           EventType = "BeamStopped"
	Explosion             EventType = "Explosion"
)

// EnemyData — данные о противнике для событий жизненного цикла.
type EnemyData struct {
	ID     types.EntityID
	DefID  string
	Wave   int
	Pos    utils.Vec2
	Killer types.EntityID // 0 если убит не башней
}

// TowerData — данные о поставленной или проданной башне.
type TowerData struct {
	ID        types.EntityID
	Key       string
	Footprint grid.Rect
	Gold      int // стоимость или возврат
}

// RejectedData — отказ команды с причиной для хоста.
type RejectedData struct {
	Command string
	Reason  string
	Err     error
}

// WaveData — номер волны и бонус.
type WaveData struct {
	Index int
	Bonus int
}

// AmountData — новое значение ресурса и изменение.
type AmountData struct {
	Value int
	Delta int
}

// TextData — всплывающий текст.
type TextData struct {
	Pos  utils.Vec2
	Text string
}

// ChainData — визуальный путь цепной молнии.
type ChainData struct {
	Towers []types.EntityID
	Points []utils.Vec2 // центры башен цепи + точка цели
	Target types.EntityID
	Damage float64
}

// PulseData — расширяющийся круг импульсной ауры.
type PulseData struct {
	Tower  types.EntityID
	Pos    utils.Vec2
	Radius float64
}

// BeamData — включение/выключение луча.
type BeamData struct {
	Tower types.EntityID
}

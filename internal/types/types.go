// Package types holds identifiers and small enums shared by every layer.
package types

import "fmt"

// EntityID — идентификатор сущности. Идентификаторы выдаются монотонно и
// никогда не переиспользуются, поэтому ссылка на удалённую сущность просто
// не находится при разрешении.
type EntityID uint64

// NoEntity is the zero handle.
const NoEntity EntityID = 0

func (id EntityID) String() string {
	return fmt.Sprintf("#%d", uint64(id))
}

// UnitType — тип передвижения противника.
type UnitType string

const (
	Ground UnitType = "ground"
	Air    UnitType = "air"
)

// Valid reports whether the unit type is known.
func (t UnitType) Valid() bool {
	return t == Ground || t == Air
}

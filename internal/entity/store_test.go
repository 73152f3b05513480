package entity

import (
	"testing"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/types"

	"github.com/stretchr/testify/assert"
)

type item struct{ v int }

func TestStoreDeferredRemoval(t *testing.T) {
	s := NewStore[item]()
	for i := 1; i <= 4; i++ {
		s.Add(types.EntityID(i), &item{v: i})
	}

	var seen []int
	s.Each(func(id types.EntityID, it *item) bool {
		seen = append(seen, it.v)
		if id == 2 {
			s.Remove(3)
			s.Add(9, &item{v: 9})
		}
		return true
	})
	assert.Equal(t, []int{1, 2, 4}, seen, "removed entries are skipped, added ones wait for the next walk")
	assert.False(t, s.Has(3))
	assert.Equal(t, 4, s.Len())

	s.Sweep()
	assert.Equal(t, []types.EntityID{1, 2, 4, 9}, s.IDs())
}

func TestStoreStaleHandle(t *testing.T) {
	ecs := NewECS()
	a := ecs.AddEnemy(&component.Enemy{})
	b := ecs.AddEnemy(&component.Enemy{})
	ecs.Enemies.Remove(a)
	ecs.Sweep()

	c := ecs.AddEnemy(&component.Enemy{})
	assert.NotEqual(t, a, c, "ids are never reused")
	_, ok := ecs.Enemies.Get(a)
	assert.False(t, ok)

	eb, _ := ecs.Enemies.Get(b)
	ec, _ := ecs.Enemies.Get(c)
	assert.Less(t, eb.SpawnIndex, ec.SpawnIndex)
}

func TestClockDoesNotDrift(t *testing.T) {
	ecs := NewECS()
	for i := 0; i < 300; i++ {
		ecs.Advance(1.0 / 60)
	}
	assert.Equal(t, uint64(300), ecs.Tick)
	assert.Equal(t, 5.0, ecs.GameTime, "300 ticks at 60 Hz land exactly on 5 s")

	// Смена шага продолжает отсчёт от уже набранного времени.
	ecs.Advance(0.5)
	ecs.Advance(0.5)
	assert.Equal(t, uint64(302), ecs.Tick)
	assert.Equal(t, 6.0, ecs.GameTime)
}

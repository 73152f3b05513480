package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherRecorder(t *testing.T) {
	d := NewDispatcher()
	r := NewRecorder(d)

	var kills int
	d.Subscribe(EnemyKilled, ListenerFunc(func(Event) { kills++ }))

	d.Emit(EnemyKilled, EnemyData{ID: 3})
	d.Emit(WaveStarted, WaveData{Index: 0})
	d.Emit(EnemyKilled, EnemyData{ID: 4})

	assert.Equal(t, 2, kills)
	assert.Equal(t, 2, r.Count(EnemyKilled))

	got := r.Drain()
	require.Len(t, got, 3)
	assert.Equal(t, WaveStarted, got[1].Type)
	assert.Equal(t, 3, int(got[0].Data.(EnemyData).ID))
	assert.Empty(t, r.Pending())
}

func TestUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	var first, second int
	sub := d.Subscribe(GameOver, ListenerFunc(func(Event) { first++ }))
	d.Subscribe(GameOver, ListenerFunc(func(Event) { second++ }))
	all := NewRecorder(d)

	d.Emit(GameOver, nil)
	d.Unsubscribe(sub)
	d.Unsubscribe(Subscription{})
	d.Emit(GameOver, nil)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	assert.Equal(t, 2, all.Count(GameOver))
}

func TestTypeListenersRunBeforeWildcards(t *testing.T) {
	d := NewDispatcher()
	var order []string
	d.SubscribeAll(ListenerFunc(func(Event) { order = append(order, "all") }))
	d.Subscribe(LivesChanged, ListenerFunc(func(Event) { order = append(order, "lives") }))

	d.Emit(LivesChanged, AmountData{Value: 19, Delta: -1})
	assert.Equal(t, []string{"lives", "all"}, order)
}

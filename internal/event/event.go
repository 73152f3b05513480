// internal/event/event.go
package event

// EventType — тип события
type EventType string

// Event — структура события
type Event struct {
	Type EventType
	Data any // Данные события, если нужны
}

// Listener — интерфейс для подписчиков на события
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc — адаптер функции к Listener
type ListenerFunc func(event Event)

func (f ListenerFunc) OnEvent(event Event) { f(event) }

// Subscription — билет подписки для отписки. Нулевое значение ничего не отписывает.
type Subscription struct {
	eventType EventType
	all       bool
	id        uint64
}

type subscriber struct {
	id       uint64
	listener Listener
}

// Dispatcher — синхронный диспетчер событий. Подписчики вызываются в порядке
// подписки: сначала подписанные на тип, потом подписанные на всё.
type Dispatcher struct {
	listeners map[EventType][]subscriber
	all       []subscriber
	nextID    uint64
}

// NewDispatcher — создаёт новый диспетчер
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]subscriber),
	}
}

// Subscribe — подписка на один тип события
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) Subscription {
	d.nextID++
	d.listeners[eventType] = append(d.listeners[eventType], subscriber{id: d.nextID, listener: listener})
	return Subscription{eventType: eventType, id: d.nextID}
}

// SubscribeAll — подписка на все события
func (d *Dispatcher) SubscribeAll(listener Listener) Subscription {
	d.nextID++
	d.all = append(d.all, subscriber{id: d.nextID, listener: listener})
	return Subscription{all: true, id: d.nextID}
}

// Unsubscribe — отписка по билету
func (d *Dispatcher) Unsubscribe(s Subscription) {
	if s.id == 0 {
		return
	}
	if s.all {
		d.all = without(d.all, s.id)
		return
	}
	d.listeners[s.eventType] = without(d.listeners[s.eventType], s.id)
}

func without(subs []subscriber, id uint64) []subscriber {
	for i, sub := range subs {
		if sub.id == id {
			// копия, чтобы не портить срез, который сейчас обходит Dispatch
			out := make([]subscriber, 0, len(subs)-1)
			out = append(out, subs[:i]...)
			return append(out, subs[i+1:]...)
		}
	}
	return subs
}

// Dispatch — отправка события всем подписчикам
func (d *Dispatcher) Dispatch(event Event) {
	for _, sub := range d.listeners[event.Type] {
		sub.listener.OnEvent(event)
	}
	for _, sub := range d.all {
		sub.listener.OnEvent(event)
	}
}

// Emit — сокращение для Dispatch(Event{Type, Data})
func (d *Dispatcher) Emit(eventType EventType, data any) {
	d.Dispatch(Event{Type: eventType, Data: data})
}

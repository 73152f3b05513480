package event

// Recorder — подписчик, складывающий события тика в буфер.
type Recorder struct {
	events []Event
}

// NewRecorder подписывает рекордер на все события диспетчера.
func NewRecorder(d *Dispatcher) *Recorder {
	r := &Recorder{}
	d.SubscribeAll(r)
	return r
}

func (r *Recorder) OnEvent(e Event) {
	r.events = append(r.events, e)
}

// Drain возвращает накопленные события и очищает буфер.
func (r *Recorder) Drain() []Event {
	out := r.events
	r.events = nil
	return out
}

// Pending возвращает накопленные события без очистки.
func (r *Recorder) Pending() []Event { return r.events }

// Count считает события заданного типа среди накопленных.
func (r *Recorder) Count(t EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

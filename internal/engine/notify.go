package engine

import "log/slog"

// EventModeChanged is the type of the notification sent on every transition.
const EventModeChanged = "modeChanged"

// Event is an outbound notification.
type Event struct {
	Type string `json:"type"`
	Mode string `json:"mode"`
}

// Publisher fans events out to subscribers. Publishing with no subscribers
// is a no-op, and a failing subscriber never reaches the publisher.
type Publisher struct {
	subs   map[int]func(Event)
	nextID int
}

func NewPublisher() *Publisher {
	return &Publisher{subs: make(map[int]func(Event))}
}

// Subscribe registers fn and returns a function that removes it.
func (p *Publisher) Subscribe(fn func(Event)) (cancel func()) {
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	return func() { delete(p.subs, id) }
}

// Publish delivers ev to every subscriber.
func (p *Publisher) Publish(ev Event) {
	for id, fn := range p.subs {
		deliver(id, fn, ev)
	}
}

func deliver(id int, fn func(Event), ev Event) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("notification dropped",
				slog.String("type", ev.Type), slog.Int("subscriber", id), slog.Any("panic", r))
		}
	}()
	fn(ev)
}

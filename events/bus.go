package events

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultQueueSize is the number of undelivered events a subscriber may hold.
const DefaultQueueSize = 16

var (
	ErrNoSubscribers = errors.New("no subscribers")
	ErrQueueFull     = errors.New("subscriber queue full")
	ErrClosed        = errors.New("bus closed")
)

// Event is a named notification with an arbitrary payload.
type Event struct {
	Name    string
	Payload any
	Time    time.Time
}

// Emitter is the broadcast side of the bus.
type Emitter interface {
	Emit(name string, payload any) error
}

type Bus struct {
	queueSize int
	log       zerolog.Logger

	mu     sync.RWMutex
	subs   map[string]map[uint64]*Subscription
	nextID uint64
	closed bool
}

func NewBus(queueSize int) *Bus {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Bus{
		queueSize: queueSize,
		log:       zerolog.Nop(),
		subs:      make(map[string]map[uint64]*Subscription),
	}
}

// SetLogger sets where panics recovered from Listen handlers are reported.
// Call it before the first Listen.
func (b *Bus) SetLogger(log zerolog.Logger) {
	b.log = log.With().Str("component", "events").Logger()
}

// Subscription receives events of one name until closed.
type Subscription struct {
	bus  *Bus
	name string
	id   uint64
	ch   chan Event
	once sync.Once
}

func (s *Subscription) C() <-chan Event {
	return s.ch
}

func (s *Subscription) Close() {
	s.bus.remove(s)
}

func (s *Subscription) closeChan() {
	s.once.Do(func() { close(s.ch) })
}

func (b *Bus) Subscribe(name string) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		bus:  b,
		name: name,
		id:   b.nextID,
		ch:   make(chan Event, b.queueSize),
	}
	if b.closed {
		sub.closeChan()
		return sub
	}
	if b.subs[name] == nil {
		b.subs[name] = make(map[uint64]*Subscription)
	}
	b.subs[name][sub.id] = sub
	return sub
}

// Listen calls fn for every event of the given name on a dedicated goroutine.
// A panicking handler does not stop later deliveries.
func (b *Bus) Listen(name string, fn func(Event)) *Subscription {
	sub := b.Subscribe(name)
	go func() {
		for ev := range sub.C() {
			b.deliver(fn, ev)
		}
	}()
	return sub
}

func (b *Bus) deliver(fn func(Event), ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Interface("panic", r).Str("event", ev.Name).Msg("event handler panicked")
		}
	}()
	fn(ev)
}

// Emit hands the event to every current subscriber without waiting for them.
func (b *Bus) Emit(name string, payload any) error {
	ev := Event{Name: name, Payload: payload, Time: time.Now()}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrClosed
	}
	subs := b.subs[name]
	if len(subs) == 0 {
		return fmt.Errorf("emit %q: %w", name, ErrNoSubscribers)
	}

	var errs []error
	for _, sub := range subs {
		select {
		case sub.ch <- ev:
		default:
			errs = append(errs, fmt.Errorf("emit %q to subscriber %d: %w", name, sub.id, ErrQueueFull))
		}
	}
	return errors.Join(errs...)
}

// Subscribers reports how many subscriptions exist for name.
func (b *Bus) Subscribers(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[name])
}

func (b *Bus) remove(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subs, ok := b.subs[s.name]; ok {
		if _, ok := subs[s.id]; ok {
			delete(subs, s.id)
			s.closeChan()
		}
		if len(subs) == 0 {
			delete(b.subs, s.name)
		}
	}
}

// Close ends every subscription. Later emits return ErrClosed.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for name, subs := range b.subs {
		for _, sub := range subs {
			sub.closeChan()
		}
		delete(b.subs, name)
	}
}

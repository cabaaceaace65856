package retouch

import "sync"

// Event is a change notification emitted by the editor.
type Event interface {
	event()
}

// MaskChanged is emitted once per completed stroke, clear or mask import.
type MaskChanged struct{}

// ZoomChanged is emitted whenever the zoom factor changes and after fitting.
type ZoomChanged struct {
	Zoom float64
}

func (MaskChanged) event() {}
func (ZoomChanged) event() {}

// Observer receives editor events.
type Observer interface {
	Notify(ev Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev Event)

// Notify calls f(ev).
func (f ObserverFunc) Notify(ev Event) { f(ev) }

// Subscription is a handle to a registered listener.
type Subscription interface {
	// Remove unregisters the listener. It is safe to call more than once.
	Remove()
}

// SubscriptionFunc adapts a function to the Subscription interface.
type SubscriptionFunc func()

// Remove calls f.
func (f SubscriptionFunc) Remove() { f() }

// emitter dispatches events to observers in subscription order.
type emitter struct {
	nextID    int
	observers []observerEntry
}

type observerEntry struct {
	id int
	o  Observer
}

func (em *emitter) subscribe(o Observer) Subscription {
	em.nextID++
	id := em.nextID
	em.observers = append(em.observers, observerEntry{id: id, o: o})

	var once sync.Once
	return SubscriptionFunc(func() {
		once.Do(func() { em.unsubscribe(id) })
	})
}

func (em *emitter) unsubscribe(id int) {
	for i, e := range em.observers {
		if e.id == id {
			em.observers = append(em.observers[:i:i], em.observers[i+1:]...)
			return
		}
	}
}

func (em *emitter) emit(ev Event) {
	// Observers may unsubscribe while being notified.
	snapshot := append([]observerEntry(nil), em.observers...)
	for _, e := range snapshot {
		e.o.Notify(ev)
	}
}

func (em *emitter) len() int {
	return len(em.observers)
}

// subscriptions is a group of listeners acquired and released together.
type subscriptions []Subscription

func (s *subscriptions) add(sub Subscription) {
	*s = append(*s, sub)
}

func (s *subscriptions) release() {
	for i := len(*s) - 1; i >= 0; i-- {
		(*s)[i].Remove()
	}
	*s = nil
}

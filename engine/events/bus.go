// Package events carries the change notifications that invalidate cached
// sort orders. A Bus is owned by whoever owns the world; cameras and sort
// strategies register against that instance, never a process-wide singleton.
package events

// Topic identifies a notification channel.
type Topic int

const (
	// MapChanged fires when block data changes.
	MapChanged Topic = iota
	// RenderStorageChanged fires when the set of renderable objects changes
	// (chunk loaded/unloaded, object spawned/despawned).
	RenderStorageChanged
)

// Listener receives published topics synchronously.
type Listener interface {
	HandleEvent(t Topic)
}

// Bus is a synchronous publish/subscribe channel. Not safe for concurrent
// use; the frame loop owns it.
type Bus struct {
	listeners map[Topic][]Listener
}

func NewBus() *Bus {
	return &Bus{listeners: make(map[Topic][]Listener)}
}

// Subscribe registers l for the given topics. Duplicate registrations are
// ignored.
func (b *Bus) Subscribe(l Listener, topics ...Topic) {
	if l == nil {
		return
	}
	for _, t := range topics {
		if b.index(l, t) >= 0 {
			continue
		}
		b.listeners[t] = append(b.listeners[t], l)
	}
}

// Unsubscribe removes l from the given topics. Unknown listeners are
// ignored.
func (b *Bus) Unsubscribe(l Listener, topics ...Topic) {
	if l == nil {
		return
	}
	for _, t := range topics {
		i := b.index(l, t)
		if i < 0 {
			continue
		}
		ls := b.listeners[t]
		b.listeners[t] = append(ls[:i], ls[i+1:]...)
	}
}

// Publish delivers t to every registered listener, in subscription order,
// before returning.
func (b *Bus) Publish(t Topic) {
	for _, l := range b.listeners[t] {
		l.HandleEvent(t)
	}
}

// SubscriberCount reports how many listeners a topic currently has.
func (b *Bus) SubscriberCount(t Topic) int {
	return len(b.listeners[t])
}

func (b *Bus) index(l Listener, t Topic) int {
	for i, x := range b.listeners[t] {
		if x == l {
			return i
		}
	}
	return -1
}

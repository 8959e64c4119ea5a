package events

import "testing"

type recorder struct {
	id     string
	log    *[]string
	topics []Topic
}

func (r *recorder) HandleEvent(t Topic) {
	*r.log = append(*r.log, r.id)
	r.topics = append(r.topics, t)
}

func TestPublishOrder(t *testing.T) {
	b := NewBus()
	var log []string
	a := &recorder{id: "a", log: &log}
	c := &recorder{id: "b", log: &log}

	b.Subscribe(a, MapChanged)
	b.Subscribe(c, MapChanged)
	b.Publish(MapChanged)

	if len(log) != 2 || log[0] != "a" || log[1] != "b" {
		t.Fatalf("delivery order = %v, want [a b]", log)
	}
	if a.topics[0] != MapChanged {
		t.Fatalf("topic = %v, want MapChanged", a.topics[0])
	}
}

func TestDuplicateSubscribeIgnored(t *testing.T) {
	b := NewBus()
	var log []string
	a := &recorder{id: "a", log: &log}

	b.Subscribe(a, MapChanged, RenderStorageChanged)
	b.Subscribe(a, MapChanged)

	if got := b.SubscriberCount(MapChanged); got != 1 {
		t.Fatalf("SubscriberCount(MapChanged) = %d, want 1", got)
	}
	b.Publish(MapChanged)
	if len(log) != 1 {
		t.Fatalf("deliveries = %d, want 1", len(log))
	}
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus()
	var log []string
	a := &recorder{id: "a", log: &log}

	b.Subscribe(a, MapChanged, RenderStorageChanged)
	b.Unsubscribe(a, MapChanged)

	b.Publish(MapChanged)
	b.Publish(RenderStorageChanged)

	if len(log) != 1 {
		t.Fatalf("deliveries = %d, want 1 (RenderStorageChanged only)", len(log))
	}
	if got := b.SubscriberCount(MapChanged); got != 0 {
		t.Fatalf("SubscriberCount(MapChanged) = %d, want 0", got)
	}

	// unknown listener is a no-op
	b.Unsubscribe(&recorder{id: "x", log: &log}, RenderStorageChanged)
	if got := b.SubscriberCount(RenderStorageChanged); got != 1 {
		t.Fatalf("SubscriberCount(RenderStorageChanged) = %d, want 1", got)
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	b := NewBus()
	b.Publish(MapChanged) // must not panic
	if got := b.SubscriberCount(MapChanged); got != 0 {
		t.Fatalf("SubscriberCount = %d, want 0", got)
	}
}

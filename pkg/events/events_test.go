package events

import (
	"testing"
	"time"
)

func TestSubscribeReceivesPublishedEvent(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	b.Publish(&Event{Type: EventBlockMined, Message: "height 1"})

	select {
	case ev := <-sub:
		if ev.Type != EventBlockMined {
			t.Fatalf("got type %q, want %q", ev.Type, EventBlockMined)
		}
		if ev.Timestamp.IsZero() {
			t.Fatal("expected timestamp to be stamped on publish")
		}
		if ev.ID == "" {
			t.Fatal("expected ID to be stamped on publish")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	sub := b.Subscribe()
	b.Unsubscribe(sub)

	if b.SubscriberCount() != 0 {
		t.Fatalf("expected 0 subscribers, got %d", b.SubscriberCount())
	}
}

func TestMultipleSubscribersEachReceive(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	subA := b.Subscribe()
	subB := b.Subscribe()
	defer b.Unsubscribe(subA)
	defer b.Unsubscribe(subB)

	b.Publish(&Event{Type: EventTxSubmitted})

	for _, sub := range []Subscriber{subA, subB} {
		select {
		case <-sub:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestFullSubscriberBufferDropsRatherThanBlocks(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	for i := 0; i < 100; i++ {
		b.Publish(&Event{Type: EventTxSkipped})
	}

	time.Sleep(50 * time.Millisecond)
	if b.SubscriberCount() != 1 {
		t.Fatalf("expected subscriber to remain registered, got count %d", b.SubscriberCount())
	}
}

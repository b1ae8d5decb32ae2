package realtime

import (
	"encoding/json"
	"testing"

	"limpflix/internal/usecase/interfaces"
)

func newTestClient(buffer int) *Client {
	return &Client{send: make(chan []byte, buffer)}
}

func TestHub_PublishFansOutToUserConnections(t *testing.T) {
	hub := NewHub()
	first := newTestClient(4)
	second := newTestClient(4)
	other := newTestClient(4)

	hub.Register("prov-1", first)
	hub.Register("prov-1", second)
	hub.Register("cli-1", other)

	hub.Publish("prov-1", interfaces.Event{Type: interfaces.EventTypeMessage, Payload: map[string]string{"content": "oi"}})

	for i, c := range []*Client{first, second} {
		select {
		case raw := <-c.send:
			var event struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(raw, &event); err != nil {
				t.Fatalf("client %d: invalid event payload: %v", i, err)
			}
			if event.Type != string(interfaces.EventTypeMessage) {
				t.Fatalf("client %d: unexpected event type %q", i, event.Type)
			}
		default:
			t.Fatalf("client %d did not receive the event", i)
		}
	}

	select {
	case <-other.send:
		t.Fatalf("event leaked to another user's connection")
	default:
	}
}

func TestHub_PublishToUnknownUserIsNoop(t *testing.T) {
	hub := NewHub()
	hub.Publish("nobody", interfaces.Event{Type: interfaces.EventTypeBookingStatus})
}

func TestHub_SlowConsumerDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	slow := newTestClient(1)
	hub.Register("prov-1", slow)

	hub.Publish("prov-1", interfaces.Event{Type: interfaces.EventTypeMessage})
	// The buffer is full now; this publish must not block.
	hub.Publish("prov-1", interfaces.Event{Type: interfaces.EventTypeMessage})

	if got := len(slow.send); got != 1 {
		t.Fatalf("expected exactly 1 buffered event, got %d", got)
	}
}

func TestHub_UnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	c := newTestClient(4)
	hub.Register("prov-1", c)
	hub.Unregister("prov-1", c)

	hub.Publish("prov-1", interfaces.Event{Type: interfaces.EventTypeMessage})
	if len(c.send) != 0 {
		t.Fatalf("expected no delivery after unregister")
	}
}

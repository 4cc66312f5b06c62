package live

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// create fake client
	client := &Client{
		Send: make(chan []byte, 10),
	}

	// register client
	hub.register <- client

	// broadcast a test event
	evt := Event{Action: "order_synced", OrderID: "order-9", Status: "processing", Timestamp: 1}
	data, _ := json.Marshal(evt)
	hub.Broadcast(evt)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for event")
	}

	// unregister client
	hub.unregister <- client
}

func TestPublishWithoutHubIsNoop(t *testing.T) {
	// make sure no default hub is installed
	defaultMu.Lock()
	defaultHub = nil
	defaultMu.Unlock()

	// must not block or panic
	Publish(Event{Action: "status_changed", OrderID: "order-1"})
}

func TestPublishReachesDefaultHub(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 1)}
	hub.register <- client

	Publish(Event{Action: "status_changed", OrderID: "order-2", Status: "shipped"})

	select {
	case got := <-client.Send:
		var evt Event
		if err := json.Unmarshal(got, &evt); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if evt.OrderID != "order-2" || evt.Timestamp == 0 {
			t.Fatalf("unexpected event: %+v", evt)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for event")
	}
}

package events

import (
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestHub(cfg *HubConfig) *Hub {
	return NewHub(cfg, zap.NewNop())
}

func TestShouldBroadcastEvent(t *testing.T) {
	hub := newTestHub(&HubConfig{
		BroadcastDetections: true,
		BroadcastRequests:   false,
		BroadcastSystem:     true,
		BroadcastConns:      false,
	})

	cases := []struct {
		eventType EventType
		want      bool
	}{
		{EventTypeDetection, true},
		{EventTypeRequestLog, false},
		{EventTypeSystemStatus, true},
		{EventTypeConnection, false},
		{EventType("unknown"), false},
	}

	for _, tc := range cases {
		if got := hub.shouldBroadcastEvent(tc.eventType); got != tc.want {
			t.Errorf("shouldBroadcastEvent(%s) = %v, want %v", tc.eventType, got, tc.want)
		}
	}
}

func TestCheckOrigin(t *testing.T) {
	t.Run("Wildcard", func(t *testing.T) {
		hub := newTestHub(&HubConfig{AllowedOrigins: []string{"*"}})
		req := httptest.NewRequest("GET", "/ws", nil)
		req.Header.Set("Origin", "https://anywhere.example")
		if !hub.checkOrigin(req) {
			t.Error("Wildcard origin rejected")
		}
	})

	t.Run("ExactMatch", func(t *testing.T) {
		hub := newTestHub(&HubConfig{AllowedOrigins: []string{"https://ops.example"}})

		req := httptest.NewRequest("GET", "/ws", nil)
		req.Header.Set("Origin", "https://ops.example")
		if !hub.checkOrigin(req) {
			t.Error("Allowed origin rejected")
		}

		req.Header.Set("Origin", "https://evil.example")
		if hub.checkOrigin(req) {
			t.Error("Unlisted origin accepted")
		}
	})

	t.Run("EmptyListRejectsAll", func(t *testing.T) {
		hub := newTestHub(&HubConfig{})
		req := httptest.NewRequest("GET", "/ws", nil)
		req.Header.Set("Origin", "https://ops.example")
		if hub.checkOrigin(req) {
			t.Error("Origin accepted with empty allow list")
		}
	})
}

func TestBroadcastNonBlocking(t *testing.T) {
	// No Run loop draining the channel: filling past the buffer must not
	// block the caller.
	hub := newTestHub(&HubConfig{BroadcastDetections: true})

	done := make(chan struct{})
	go func() {
		for i := 0; i < 300; i++ {
			hub.BroadcastEvent(Event{Type: EventTypeDetection, Timestamp: time.Now()})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("BroadcastEvent blocked on full channel")
	}
}

func TestSubscriptionFiltering(t *testing.T) {
	hub := newTestHub(&HubConfig{BroadcastDetections: true, BroadcastRequests: true})

	unfiltered := &Client{Send: make(chan Event, 1)}
	if !hub.shouldSendToClient(unfiltered, Event{Type: EventTypeRequestLog}) {
		t.Error("Client without subscription filtered")
	}

	filtered := &Client{
		Send:         make(chan Event, 1),
		Subscription: &SubscriptionRequest{Events: []EventType{EventTypeDetection}},
	}
	if !hub.shouldSendToClient(filtered, Event{Type: EventTypeDetection}) {
		t.Error("Subscribed event type filtered out")
	}
	if hub.shouldSendToClient(filtered, Event{Type: EventTypeRequestLog}) {
		t.Error("Unsubscribed event type delivered")
	}
}

// Delivery to clients and stats reads run concurrently in production;
// meaningful under -race.
func TestConcurrentDeliveryAndStats(t *testing.T) {
	hub := newTestHub(&HubConfig{BroadcastDetections: true})

	slow := &Client{Send: make(chan Event)} // unbuffered, always "full"
	hub.registerClient(slow)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.broadcastEvent(Event{Type: EventTypeDetection, Timestamp: time.Now()})
		}
		close(done)
	}()
	for i := 0; i < 100; i++ {
		hub.GetStats()
	}
	<-done

	stats := hub.GetStats()
	if stats.ActiveConnections != 0 {
		t.Errorf("Slow client not evicted: %+v", stats)
	}
	if stats.TotalBroadcasts != 100 {
		t.Errorf("TotalBroadcasts = %d, want 100", stats.TotalBroadcasts)
	}
}

func TestGetStats(t *testing.T) {
	hub := newTestHub(&HubConfig{})

	client := &Client{Send: make(chan Event, 1)}
	hub.registerClient(client)

	stats := hub.GetStats()
	if stats.TotalConnections != 1 || stats.ActiveConnections != 1 {
		t.Errorf("Stats after register = %+v", stats)
	}

	hub.unregisterClient(client)
	stats = hub.GetStats()
	if stats.ActiveConnections != 0 {
		t.Errorf("Stats after unregister = %+v", stats)
	}
}

package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestHubDeliversToSubscribers(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))

	events, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish(TopicOrders)

	select {
	case event := <-events:
		assert.Equal(t, TopicOrders, event.Topic)
		assert.False(t, event.At.IsZero())
	case <-time.After(time.Second):
		t.Fatal("expected an event")
	}
}

func TestHubCancelStopsDelivery(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))

	events, cancel := hub.Subscribe()
	cancel()

	hub.Publish(TopicReceivables)

	select {
	case event := <-events:
		t.Fatalf("unexpected event after cancel: %v", event)
	default:
	}
}

func TestHubDropsWhenSubscriberLags(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))

	events, cancel := hub.Subscribe()
	defer cancel()

	// Overflow the buffer; Publish must never block.
	for i := 0; i < 64; i++ {
		hub.Publish(TopicCatalog)
	}

	received := 0
	for {
		select {
		case <-events:
			received++
			continue
		default:
		}
		break
	}
	require.Greater(t, received, 0)
	assert.LessOrEqual(t, received, 16)
}

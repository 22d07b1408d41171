package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHubSubscribePublish(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-1", Event{UserID: "user-1", Event: "notification", Data: "hello"})

	got := <-ch
	assert.Equal(t, "notification", got.Event)
	assert.Equal(t, "hello", got.Data)
}

func TestHubPublishToOtherUserNotDelivered(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-2", Event{UserID: "user-2", Event: "notification"})

	select {
	case e := <-ch:
		t.Fatalf("unexpected event delivered: %+v", e)
	default:
	}
}

func TestHubPublishToMany(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("a")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("b")
	defer cleanup2()

	hub.PublishToMany([]string{"a", "b"}, Event{Event: "notification", Data: 1})

	e1 := <-ch1
	e2 := <-ch2
	assert.Equal(t, "a", e1.UserID)
	assert.Equal(t, "b", e2.UserID)
}

func TestHubSubscriberCount(t *testing.T) {
	hub := NewHub()
	assert.Equal(t, 0, hub.SubscriberCount("x"))

	_, cleanup := hub.Subscribe("x")
	assert.Equal(t, 1, hub.SubscriberCount("x"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("x"))
}

func TestHubFullChannelDoesNotBlock(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	// Channel buffer is 10; publishing more must not block.
	for i := 0; i < 25; i++ {
		hub.Publish("user-1", Event{Event: "notification", Data: i})
	}
	assert.Len(t, ch, 10)
}

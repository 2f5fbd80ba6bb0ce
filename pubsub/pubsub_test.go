package pubsub_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trainlights/pubsub"
)

func TestPubsub(t *testing.T) {
	ps := pubsub.New[string]()

	_, ch1 := ps.Subscribe()
	id2, ch2 := ps.Subscribe()

	ps.Publish("a")
	assert.Equal(t, "a", <-ch1)
	assert.Equal(t, "a", <-ch2)

	ps.Unsubscribe(id2)

	ps.Publish("b")
	assert.Equal(t, "b", <-ch1)

	_, open := <-ch2
	assert.False(t, open, "unsubscribed channel should be closed")
}

func TestPublishNeverBlocks(t *testing.T) {
	ps := pubsub.New[int]()

	_, ch := ps.Subscribe()

	// Nobody is reading; overflowing messages are dropped
	for i := 0; i < 20; i++ {
		ps.Publish(i)
	}

	assert.Equal(t, 0, <-ch)
}

func TestUnsubscribeTwice(t *testing.T) {
	ps := pubsub.New[string]()

	id, _ := ps.Subscribe()
	ps.Unsubscribe(id)
	ps.Unsubscribe(id)
}

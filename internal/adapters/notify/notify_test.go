package notify_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamkit/bingo/internal/adapters/notify"
)

func TestBusPublishSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := notify.NewBus()
	defer bus.Close()

	msgs, err := bus.Subscribe(ctx, notify.TopicBingoAchieved)
	require.NoError(t, err)

	payload := map[string]any{
		"player_id":  "u1",
		"username":   "alice",
		"bingo_type": "row 1",
	}
	require.NoError(t, bus.Publish(ctx, notify.TopicBingoAchieved, payload))

	select {
	case msg := <-msgs:
		var got map[string]any
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, "alice", got["username"])
		assert.Equal(t, "row 1", got["bingo_type"])
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for notification")
	}
}

func TestBusTopicsAreIsolated(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := notify.NewBus(notify.WithBufferSize(1))
	defer bus.Close()

	cardMsgs, err := bus.Subscribe(ctx, notify.TopicCardIssued)
	require.NoError(t, err)

	require.NoError(t, bus.Publish(ctx, notify.TopicWinConfirmed, map[string]any{"id": "sub-1"}))
	require.NoError(t, bus.Publish(ctx, notify.TopicCardIssued, map[string]any{"player_id": "u2"}))

	select {
	case msg := <-cardMsgs:
		var got map[string]any
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, "u2", got["player_id"])
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for card notification")
	}

	select {
	case msg := <-cardMsgs:
		t.Fatalf("unexpected cross-topic message: %s", msg.Payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBusRejectsUnencodablePayload(t *testing.T) {
	bus := notify.NewBus()
	defer bus.Close()

	err := bus.Publish(context.Background(), notify.TopicCardIssued, make(chan int))
	require.Error(t, err)
	assert.ErrorIs(t, err, notify.ErrPublish)
}

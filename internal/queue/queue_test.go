package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInMemoryPublishConsume(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := NewInMemory(4)
	msgs, err := q.Consume(ctx)
	require.NoError(t, err)

	want := Message{ID: "m-1", Type: "notification", Body: []byte("class at 10")}
	require.NoError(t, q.Publish(ctx, want))

	select {
	case got := <-msgs:
		require.Equal(t, want, got)
	case <-ctx.Done():
		t.Fatal("timed out waiting for message")
	}
}

func TestInMemoryPublishHonorsContext(t *testing.T) {
	q := NewInMemory(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := q.Publish(ctx, Message{Type: "notification"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSerializeRoundTrip(t *testing.T) {
	msg := Message{ID: "abc", Type: "notification", Body: []byte("pipes | in | body")}
	got, err := deserialize(serialize(msg))
	require.NoError(t, err)
	require.Equal(t, msg, got)
}

func TestDeserializeMalformed(t *testing.T) {
	got, err := deserialize("no delimiters here")
	require.NoError(t, err)
	require.Equal(t, []byte("no delimiters here"), got.Body)
}

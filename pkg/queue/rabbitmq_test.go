package queue

import (
	"context"
	"errors"
	"testing"

	"inkpress/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingChannel struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
	closed        bool
}

func (r *recordingChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	r.exchange, r.key, r.msg = exchange, key, msg
	return r.err
}

func (r *recordingChannel) Close() error {
	r.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ch := &recordingChannel{}
	p := &Publisher{channel: ch, exchange: EventsExchange, logger: logger.NewNop()}

	err := p.Publish(context.Background(), "post.created", map[string]string{"post_id": "p1"})
	require.NoError(t, err)

	assert.Equal(t, EventsExchange, ch.exchange)
	assert.Equal(t, "post.created", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.JSONEq(t, `{"post_id":"p1"}`, string(ch.msg.Body))

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublisher_PublishErrors(t *testing.T) {
	p := &Publisher{channel: &recordingChannel{err: errors.New("channel closed")}, exchange: EventsExchange, logger: logger.NewNop()}

	err := p.Publish(context.Background(), "comment.created", struct{}{})
	assert.ErrorContains(t, err, "channel closed")

	err = p.Publish(context.Background(), "comment.created", make(chan int))
	assert.ErrorContains(t, err, "marshal")
}

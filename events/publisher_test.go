package events_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelkit/synapse/depends"
	"github.com/modelkit/synapse/events"
)

// TestPublish_RoutesByTopic verifies messages reach only the handlers
// subscribed under the published topic.
func TestPublish_RoutesByTopic(t *testing.T) {
	t.Parallel()

	subscriber := events.NewSubscriber(events.WithName("metrics"))
	var losses, accuracies []float64

	_, err := subscriber.Subscribe("loss", func(value float64) { losses = append(losses, value) })
	require.NoError(t, err)
	_, err = subscriber.Subscribe("accuracy", func(value float64) { accuracies = append(accuracies, value) })
	require.NoError(t, err)

	publisher := events.NewPublisher()
	publisher.Register(subscriber)

	require.NoError(t, publisher.Publish("loss", 0.1))
	require.NoError(t, publisher.Publish("accuracy", 0.9))

	assert.Equal(t, []float64{0.1}, losses)
	assert.Equal(t, []float64{0.9}, accuracies)
}

// TestPublish_UnknownTopicDropped verifies an unknown topic is ignored
// without error.
func TestPublish_UnknownTopicDropped(t *testing.T) {
	t.Parallel()

	subscriber := events.NewSubscriber()
	fired := 0
	_, err := subscriber.Subscribe("loss", func(value float64) { fired++ })
	require.NoError(t, err)

	publisher := events.NewPublisher()
	publisher.Register(subscriber)

	require.NoError(t, publisher.Publish("unknown", 1.0))
	assert.Equal(t, 0, fired)
}

// TestPublish_SubscriptionOrder verifies handlers under one topic run in
// subscription order and a handler error aborts the rest.
func TestPublish_SubscriptionOrder(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	subscriber := events.NewSubscriber()
	var order []string

	_, err := subscriber.Subscribe("loss", func(value float64) error {
		order = append(order, "first")
		return errBoom
	})
	require.NoError(t, err)
	_, err = subscriber.Subscribe("loss", func(value float64) { order = append(order, "second") })
	require.NoError(t, err)

	publisher := events.NewPublisher()
	publisher.Register(subscriber)

	require.ErrorIs(t, publisher.Publish("loss", 0.1), errBoom)
	assert.Equal(t, []string{"first"}, order)
}

// TestSubscribe_DependencyInjection verifies subscriber handlers go through
// the same injection path as consumer handlers.
func TestSubscribe_DependencyInjection(t *testing.T) {
	t.Parallel()

	logbook := func() *[]string { return &[]string{} }
	var got *[]string
	sink := func() *[]string {
		s := []string{"sink"}
		return &s
	}

	subscriber := events.NewSubscriber()
	_, err := subscriber.Subscribe("loss", func(value float64, dst *[]string) {
		*dst = append(*dst, "handled")
		got = dst
	}, depends.Depends(logbook))
	require.NoError(t, err)

	subscriber.Provider().Override(logbook, sink)
	require.NoError(t, subscriber.Receive("loss", 0.5))

	require.NotNil(t, got)
	assert.Equal(t, []string{"sink", "handled"}, *got)
}

// TestSubscribe_Rejections verifies malformed subscriptions fail up front.
func TestSubscribe_Rejections(t *testing.T) {
	t.Parallel()

	subscriber := events.NewSubscriber()

	_, err := subscriber.Subscribe("loss", nil)
	assert.ErrorIs(t, err, events.ErrNilHandler)

	var shapeErr events.HandlerShapeError
	_, err = subscriber.Subscribe("loss", func() {})
	assert.True(t, errors.As(err, &shapeErr))
}

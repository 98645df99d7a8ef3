package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishReachesAllSubscribers(t *testing.T) {
	bus := NewBus()
	var got []any
	bus.Subscribe(TopicFeatureUpdated, func(p any) { got = append(got, p) })
	bus.Subscribe(TopicFeatureUpdated, func(p any) { got = append(got, p) })

	bus.Publish(TopicFeatureUpdated, "f-1")

	assert.Equal(t, []any{"f-1", "f-1"}, got)
}

func TestBus_TopicsAreIsolated(t *testing.T) {
	bus := NewBus()
	var calls int
	bus.Subscribe(TopicScenarioActivated, func(any) { calls++ })

	bus.Publish(TopicScenarioList, nil)
	assert.Zero(t, calls)

	bus.Publish(TopicScenarioActivated, nil)
	assert.Equal(t, 1, calls)
}

func TestBus_CancelStopsDelivery(t *testing.T) {
	bus := NewBus()
	var calls int
	cancel := bus.Subscribe(TopicCapacityUpdated, func(any) { calls++ })

	bus.Publish(TopicCapacityUpdated, nil)
	cancel()
	bus.Publish(TopicCapacityUpdated, nil)

	assert.Equal(t, 1, calls)
}

func TestBus_PublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewBus()
	assert.NotPanics(t, func() { bus.Publish(TopicBaselineChanged, nil) })
}

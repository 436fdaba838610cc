package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/colonyops/lintlens/internal/core/notify"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_ErrorfReachesEverySubscriber(t *testing.T) {
	bus := NewBus()

	var first, second []notify.Notification
	bus.Subscribe(func(n notify.Notification) { first = append(first, n) })
	bus.Subscribe(func(n notify.Notification) { second = append(second, n) })

	bus.Errorf("fetch report for version %d: %s", 42, "timeout")

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, notify.LevelError, first[0].Level)
	assert.Equal(t, "fetch report for version 42: timeout", first[0].Message)
	assert.Equal(t, first[0], second[0])
}

func TestBus_PublishStampsIDAndTime(t *testing.T) {
	bus := NewBus()
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	bus.now = func() time.Time { return stamp }

	var got []notify.Notification
	bus.Subscribe(func(n notify.Notification) { got = append(got, n) })

	bus.Errorf("one")
	bus.Errorf("two")

	require.Len(t, got, 2)
	_, err := uuid.Parse(got[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, got[0].ID, got[1].ID)
	assert.Equal(t, stamp, got[0].CreatedAt)
}

func TestBus_PublishKeepsGivenFields(t *testing.T) {
	bus := NewBus()
	at := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)

	var got notify.Notification
	bus.Subscribe(func(n notify.Notification) { got = n })
	bus.Publish(notify.Notification{ID: "fixed", Level: notify.LevelInfo, Message: "hi", CreatedAt: at})

	assert.Equal(t, notify.Notification{ID: "fixed", Level: notify.LevelInfo, Message: "hi", CreatedAt: at}, got)
}

func TestBus_NoSubscribers(t *testing.T) {
	assert.NotPanics(t, func() { NewBus().Errorf("nobody listening") })
}

func TestBus_SubscribeDuringPublish(t *testing.T) {
	bus := NewBus()

	late := 0
	bus.Subscribe(func(notify.Notification) {
		bus.Subscribe(func(notify.Notification) { late++ })
	})

	bus.Errorf("first")
	assert.Equal(t, 0, late)

	bus.Errorf("second")
	assert.Equal(t, 1, late)
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	count := 0
	bus.Subscribe(func(notify.Notification) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Errorf("report %d failed", i)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, count)
}

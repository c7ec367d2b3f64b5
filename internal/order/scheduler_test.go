package order

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingNotifier captures notifications from timer goroutines.
type recordingNotifier struct {
	mu     sync.Mutex
	bodies []string
}

func (n *recordingNotifier) Notify(title, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bodies = append(n.bodies, body)
}

func (n *recordingNotifier) recorded() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.bodies))
	copy(out, n.bodies)
	return out
}

func shortTimeline() Timeline {
	return Timeline{
		Pickup:     20 * time.Millisecond,
		Processing: 40 * time.Millisecond,
		Delivery:   60 * time.Millisecond,
	}
}

func TestScheduler_FullProgression(t *testing.T) {
	store := NewStore()
	notifier := &recordingNotifier{}
	scheduler := NewScheduler(store, notifier, shortTimeline(), zap.NewNop())

	created, err := store.Create(testSpec())
	require.NoError(t, err)

	scheduler.Track(created.ID)
	time.Sleep(150 * time.Millisecond)

	got, ok := store.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, StatusDelivered, got.Status)

	assert.Equal(t, []string{
		"Your laundry has been picked up by our driver.",
		"Your laundry is now being washed and pressed.",
		"Your laundry has been delivered. Enjoy!",
	}, notifier.recorded())
}

func TestScheduler_IntermediateStatuses(t *testing.T) {
	store := NewStore()
	notifier := &recordingNotifier{}
	scheduler := NewScheduler(store, notifier, Timeline{
		Pickup:     20 * time.Millisecond,
		Processing: 120 * time.Millisecond,
		Delivery:   220 * time.Millisecond,
	}, zap.NewNop())

	created, err := store.Create(testSpec())
	require.NoError(t, err)
	scheduler.Track(created.ID)

	time.Sleep(70 * time.Millisecond)
	got, _ := store.Get(created.ID)
	assert.Equal(t, StatusPickedUp, got.Status)

	time.Sleep(100 * time.Millisecond)
	got, _ = store.Get(created.ID)
	assert.Equal(t, StatusProcessing, got.Status)

	time.Sleep(130 * time.Millisecond)
	got, _ = store.Get(created.ID)
	assert.Equal(t, StatusDelivered, got.Status)
}

func TestScheduler_CancelledBeforeFirstStep(t *testing.T) {
	store := NewStore()
	notifier := &recordingNotifier{}
	scheduler := NewScheduler(store, notifier, shortTimeline(), zap.NewNop())

	created, err := store.Create(testSpec())
	require.NoError(t, err)

	scheduler.Track(created.ID)
	require.NoError(t, store.Cancel(created.ID))

	time.Sleep(150 * time.Millisecond)

	got, ok := store.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Empty(t, notifier.recorded(), "no notification may fire for a cancelled order")
}

func TestScheduler_CancelledMidway(t *testing.T) {
	store := NewStore()
	notifier := &recordingNotifier{}
	scheduler := NewScheduler(store, notifier, Timeline{
		Pickup:     20 * time.Millisecond,
		Processing: 150 * time.Millisecond,
		Delivery:   200 * time.Millisecond,
	}, zap.NewNop())

	created, err := store.Create(testSpec())
	require.NoError(t, err)
	scheduler.Track(created.ID)

	// Let pickup fire, then cancel before processing would.
	time.Sleep(70 * time.Millisecond)
	require.NoError(t, store.Cancel(created.ID))
	time.Sleep(250 * time.Millisecond)

	got, _ := store.Get(created.ID)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Equal(t, []string{"Your laundry has been picked up by our driver."}, notifier.recorded())
}

func TestScheduler_MissingOrderDoesNotPanic(t *testing.T) {
	store := NewStore()
	scheduler := NewScheduler(store, &recordingNotifier{}, shortTimeline(), zap.NewNop())

	scheduler.Track("ORD-0000")
	time.Sleep(100 * time.Millisecond)
}

package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipqueue/internal/bus"
	"go.klb.dev/clipqueue/internal/clip"
	"go.klb.dev/clipqueue/internal/history"
	"go.klb.dev/clipqueue/internal/input"
	"go.klb.dev/clipqueue/internal/notify"
)

const testInterval = 5 * time.Millisecond

func startMonitor(t *testing.T) (*history.Queue, *clip.Memory, chan struct{}) {
	t.Helper()
	b := bus.New(bus.DefaultCapacity)
	backend := clip.NewMemory()
	q := history.New(10, b, backend, notify.Nop{}, input.Nop{})
	m := New(backend, q, testInterval)

	stop := make(chan struct{})
	go m.Run(stop)
	// Let the monitor take its seed reading before the test mutates the
	// clipboard, so the mutation registers as a change.
	time.Sleep(2 * testInterval)
	t.Cleanup(func() {
		select {
		case <-stop:
		default:
			close(stop)
		}
		select {
		case <-m.Done():
		case <-time.After(time.Second):
			t.Fatal("monitor did not stop")
		}
	})
	return q, backend, stop
}

func items(q *history.Queue) []string { return q.Snapshot().Items }

func TestCapturesNewClipboardContent(t *testing.T) {
	q, backend, _ := startMonitor(t)

	backend.SetText("fresh")
	require.Eventually(t, func() bool {
		return len(items(q)) == 1
	}, time.Second, testInterval)
	assert.Equal(t, []string{"fresh"}, items(q))
}

func TestUnchangedContentCapturedOnce(t *testing.T) {
	q, backend, _ := startMonitor(t)

	backend.SetText("steady")
	require.Eventually(t, func() bool {
		return len(items(q)) == 1
	}, time.Second, testInterval)

	// Several more polls over the same content must not re-enqueue.
	time.Sleep(10 * testInterval)
	assert.Equal(t, []string{"steady"}, items(q))
}

func TestPreexistingContentNotCaptured(t *testing.T) {
	b := bus.New(bus.DefaultCapacity)
	backend := clip.NewMemory()
	backend.SetText("already-there")
	q := history.New(10, b, backend, notify.Nop{}, input.Nop{})
	m := New(backend, q, testInterval)

	stop := make(chan struct{})
	go m.Run(stop)
	defer func() {
		close(stop)
		<-m.Done()
	}()

	time.Sleep(10 * testInterval)
	assert.Empty(t, items(q), "content present at startup is not history")

	backend.SetText("copied-later")
	require.Eventually(t, func() bool {
		return len(items(q)) == 1
	}, time.Second, testInterval)
	assert.Equal(t, []string{"copied-later"}, items(q))
}

func TestReadFailureRetainsLastObserved(t *testing.T) {
	q, backend, _ := startMonitor(t)

	backend.SetText("before")
	require.Eventually(t, func() bool {
		return len(items(q)) == 1
	}, time.Second, testInterval)

	backend.ReadErr = assert.AnError
	time.Sleep(10 * testInterval)
	backend.ReadErr = nil

	// Same content after the outage: still one entry.
	time.Sleep(10 * testInterval)
	assert.Equal(t, []string{"before"}, items(q))
}

func TestInactiveModeObservesWithoutEnqueue(t *testing.T) {
	q, backend, _ := startMonitor(t)
	q.ToggleActive()
	require.False(t, q.Snapshot().Active)

	backend.SetText("while-off")
	time.Sleep(10 * testInterval)
	assert.Empty(t, items(q))

	// The change was observed while inactive, so reactivating does not
	// replay it; only content copied afterwards is captured.
	q.ToggleActive()
	time.Sleep(10 * testInterval)
	assert.Empty(t, items(q))

	backend.SetText("while-on")
	require.Eventually(t, func() bool {
		return len(items(q)) == 1
	}, time.Second, testInterval)
	assert.Equal(t, []string{"while-on"}, items(q))
}

func TestWhitespaceOnlyContentIgnored(t *testing.T) {
	q, backend, _ := startMonitor(t)

	backend.SetText("  \n\t ")
	time.Sleep(10 * testInterval)
	assert.Empty(t, items(q))
}

func TestStopsWithinOneInterval(t *testing.T) {
	b := bus.New(bus.DefaultCapacity)
	backend := clip.NewMemory()
	q := history.New(10, b, backend, notify.Nop{}, input.Nop{})
	m := New(backend, q, testInterval)

	stop := make(chan struct{})
	go m.Run(stop)
	time.Sleep(3 * testInterval)
	close(stop)

	select {
	case <-m.Done():
	case <-time.After(20 * testInterval):
		t.Fatal("monitor missed the stop signal")
	}
}

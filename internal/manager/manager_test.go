package manager

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipqueue/internal/clip"
	"go.klb.dev/clipqueue/internal/history"
	"go.klb.dev/clipqueue/internal/ipc"
	"go.klb.dev/clipqueue/internal/message"
	"go.klb.dev/clipqueue/internal/wire"
)

// startManager runs a manager with an isolated IPC socket and no optional
// facilities, returning it together with its memory clipboard.
func startManager(t *testing.T) (*Manager, *clip.Memory) {
	t.Helper()
	t.Setenv("CLIPQUEUE_SOCKET", filepath.Join(t.TempDir(), "clipqueue-test.sock"))

	backend := clip.NewMemory()
	m := New(Options{
		MaxSize:      5,
		PollInterval: 5 * time.Millisecond,
		Backend:      backend,
		IPC:          true,
	})
	m.Start()
	t.Cleanup(m.Stop)

	require.Eventually(t, ipc.IsRunning, time.Second, 10*time.Millisecond,
		"IPC socket should come up")
	return m, backend
}

func roundTrip(t *testing.T, req *message.Message) *message.Message {
	t.Helper()
	conn, err := ipc.Dial()
	require.NoError(t, err)
	wc := wire.New(conn)
	defer wc.Close()

	require.NoError(t, wc.WriteMsg(req))
	wc.SetReadDeadline(time.Second)
	resp, err := wc.ReadMsg()
	require.NoError(t, err)
	return resp
}

func TestIPCStatus(t *testing.T) {
	m, _ := startManager(t)
	m.Queue().Enqueue("hello")

	resp := roundTrip(t, &message.Message{Type: message.TypeStatus})
	require.Equal(t, message.TypeStatusResponse, resp.Type)
	require.NotNil(t, resp.Status)
	assert.True(t, resp.Status.Active)
	assert.Equal(t, 1, resp.Status.Count)
	assert.Equal(t, 0, resp.Status.Cursor)
	assert.Equal(t, 5, resp.Status.MaxSize)
}

func TestIPCList(t *testing.T) {
	m, _ := startManager(t)
	m.Queue().Enqueue("one")
	m.Queue().Enqueue("two")

	resp := roundTrip(t, &message.Message{Type: message.TypeList})
	require.Equal(t, message.TypeListResponse, resp.Type)
	assert.Equal(t, []string{"one", "two"}, resp.Items)
}

func TestIPCDequeue(t *testing.T) {
	m, backend := startManager(t)
	m.Queue().Enqueue("oldest")
	m.Queue().Enqueue("newer")

	resp := roundTrip(t, &message.Message{Type: message.TypeDequeue})
	assert.Equal(t, message.TypeOK, resp.Type)

	text, _ := backend.ReadText()
	assert.Equal(t, "oldest", text)
	assert.Equal(t, []string{"newer"}, m.Queue().Snapshot().Items)
}

func TestIPCToggle(t *testing.T) {
	m, _ := startManager(t)
	require.True(t, m.Queue().Snapshot().Active)

	resp := roundTrip(t, &message.Message{Type: message.TypeToggle})
	assert.Equal(t, message.TypeOK, resp.Type)
	assert.False(t, m.Queue().Snapshot().Active)
}

func TestIPCNavigateRejectsBadDirection(t *testing.T) {
	m, _ := startManager(t)
	m.Queue().Enqueue("x")
	before := m.Queue().Snapshot()

	resp := roundTrip(t, &message.Message{Type: message.TypeNavigate, Direction: 7})
	assert.Equal(t, message.TypeError, resp.Type)
	assert.Equal(t, before, m.Queue().Snapshot(), "bad direction must not touch the queue")
}

func TestIPCNavigate(t *testing.T) {
	m, backend := startManager(t)
	m.Queue().Enqueue("x")
	m.Queue().Enqueue("y")

	resp := roundTrip(t, &message.Message{Type: message.TypeNavigate, Direction: 1})
	assert.Equal(t, message.TypeOK, resp.Type)

	// Cursor was at the tail; +1 wraps to the head.
	assert.Equal(t, 0, m.Queue().Snapshot().Cursor)
	text, _ := backend.ReadText()
	assert.Equal(t, "x", text)
}

func TestIPCUnknownType(t *testing.T) {
	startManager(t)
	resp := roundTrip(t, &message.Message{Type: "BOGUS"})
	assert.Equal(t, message.TypeError, resp.Type)
}

func TestMonitorFeedsQueueEndToEnd(t *testing.T) {
	m, backend := startManager(t)

	backend.SetText("copied elsewhere")
	require.Eventually(t, func() bool {
		return len(m.Queue().Snapshot().Items) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"copied elsewhere"}, m.Queue().Snapshot().Items)
}

func TestStopIsIdempotentAndBounded(t *testing.T) {
	m, _ := startManager(t)

	start := time.Now()
	m.Stop()
	m.Stop()
	assert.Less(t, time.Since(start), 3*time.Second)
	assert.Equal(t, history.NoSelection, m.Queue().Snapshot().Cursor)
}

package manager

import (
	"log/slog"
	"net"
	"time"

	"go.klb.dev/clipqueue/internal/message"
	"go.klb.dev/clipqueue/internal/wire"
)

const ipcReadTimeout = 5 * time.Second

// serveIPC accepts control connections from the CLI sub-commands until the
// listener is closed by Stop.
func (m *Manager) serveIPC(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go m.handleIPCConn(conn)
	}
}

// handleIPCConn serves one request/response exchange.
func (m *Manager) handleIPCConn(conn net.Conn) {
	defer conn.Close()
	wc := wire.New(conn)
	wc.SetReadDeadline(ipcReadTimeout)

	msg, err := wc.ReadMsg()
	if err != nil {
		slog.Debug("ipc read failed", "err", err)
		return
	}

	switch msg.Type {
	case message.TypeStatus:
		snap := m.queue.Snapshot()
		_ = wc.WriteMsg(&message.Message{
			Type: message.TypeStatusResponse,
			Status: &message.StatusInfo{
				Active:  snap.Active,
				Count:   len(snap.Items),
				Cursor:  snap.Cursor,
				MaxSize: snap.MaxSize,
			},
		})

	case message.TypeList:
		snap := m.queue.Snapshot()
		_ = wc.WriteMsg(&message.Message{
			Type:  message.TypeListResponse,
			Items: snap.Items,
		})

	case message.TypeDequeue:
		m.queue.DequeueOldest()
		_ = wc.WriteMsg(&message.Message{Type: message.TypeOK})

	case message.TypeToggle:
		m.queue.ToggleActive()
		_ = wc.WriteMsg(&message.Message{Type: message.TypeOK})

	case message.TypeNavigate:
		if msg.Direction != 1 && msg.Direction != -1 {
			// Malformed payload: reject without touching the queue.
			slog.Debug("ipc navigate with bad direction ignored", "direction", msg.Direction)
			_ = wc.WriteMsg(&message.Message{Type: message.TypeError, Error: "direction must be 1 or -1"})
			return
		}
		m.queue.Navigate(msg.Direction)
		_ = wc.WriteMsg(&message.Message{Type: message.TypeOK})

	case message.TypeShow:
		m.queue.RequestShow()
		_ = wc.WriteMsg(&message.Message{Type: message.TypeOK})

	default:
		_ = wc.WriteMsg(&message.Message{Type: message.TypeError, Error: "unknown request: " + string(msg.Type)})
	}
}

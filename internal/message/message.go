// Package message defines the control protocol between the running manager
// and its CLI sub-commands.
//
// All messages are newline-delimited JSON over the local IPC socket. Each
// message is exactly one line: <json>\n. The protocol is request/response:
// the CLI writes one request and reads at most one response. Nothing here is
// persisted and nothing leaves the machine.
package message

import (
	"encoding/json"
	"fmt"
)

// Type identifies the kind of message.
type Type string

const (
	// Requests
	TypeStatus   Type = "STATUS"
	TypeList     Type = "LIST"
	TypeDequeue  Type = "DEQUEUE"
	TypeToggle   Type = "TOGGLE"
	TypeNavigate Type = "NAVIGATE"
	TypeShow     Type = "SHOW"

	// Responses
	TypeStatusResponse Type = "STATUS_RESPONSE"
	TypeListResponse   Type = "LIST_RESPONSE"
	TypeOK             Type = "OK"
	TypeError          Type = "ERROR"
)

// StatusInfo carries the queue state for STATUS_RESPONSE.
type StatusInfo struct {
	Active  bool `json:"active"`
	Count   int  `json:"count"`
	Cursor  int  `json:"cursor"`
	MaxSize int  `json:"max_size"`
}

// Message is the top-level envelope.
type Message struct {
	Type Type `json:"type"`

	// NAVIGATE: +1 for next, -1 for previous
	Direction int `json:"direction,omitempty"`

	// LIST_RESPONSE: ordered history snapshot, oldest first
	Items []string `json:"items,omitempty"`

	// STATUS_RESPONSE
	Status *StatusInfo `json:"status,omitempty"`

	// ERROR
	Error string `json:"error,omitempty"`
}

// Encode serialises the message to JSON without a trailing newline.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode deserialises a message from raw JSON bytes.
func Decode(b []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("message decode: %w", err)
	}
	return &m, nil
}

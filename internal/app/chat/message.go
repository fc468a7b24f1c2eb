/*
Package chat contains the relay's session registry, chat history and the
broadcast coordinator that ties them to live WebSocket connections.

This file defines the wire format: every frame is a JSON object carrying an
event name and its payload.
*/
package chat

import (
	"encoding/json"
	"fmt"
)

const (
	// DefaultHistoryCapacity is the number of messages replayed to a new connection.
	DefaultHistoryCapacity = 200

	// TimeLayout formats message timestamps in local time, e.g. "3:04 PM".
	TimeLayout = "3:04 PM"
)

// EventName identifies a frame on the wire.
type EventName string

const (
	// EventNickname carries the assigned or updated nickname (server to client).
	EventNickname EventName = "nickname"

	// EventConnectedUsers carries the full roster (server to client).
	EventConnectedUsers EventName = "connected-users"

	// EventChatLog carries the history replay (server to client).
	EventChatLog EventName = "chat-log"

	// EventNewUser announces a joined participant to everyone else.
	EventNewUser EventName = "new-user"

	// EventChat is a message send (client to server) and its delivery (server to all).
	EventChat EventName = "chat"

	// EventChangeNickname is a rename request (client to server).
	EventChangeNickname EventName = "change-nickname"

	// EventNicknameRejected carries the attempted nickname of a rejected rename.
	EventNicknameRejected EventName = "error-changing-nickname"

	// EventChangeColor is a recolor request and, with the '#' prefix, its confirmation.
	EventChangeColor EventName = "change-color"

	// EventDisconnect announces the nickname of a participant that left.
	EventDisconnect EventName = "disconnect"
)

// ChatMessage is one delivered chat line. It is immutable once created.
type ChatMessage struct {
	Time     string `json:"time"`
	Nickname string `json:"nickname"`
	Color    string `json:"color"`
	Text     string `json:"msg"`
}

// ChatPayload is the body of an inbound chat frame.
type ChatPayload struct {
	Msg string `json:"msg"`
}

// Frame is the outbound envelope.
type Frame struct {
	Type    EventName `json:"type"`
	Payload any       `json:"payload"`
}

// InboundFrame is the inbound envelope; Payload is decoded per event type.
type InboundFrame struct {
	Type    EventName       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// EncodeFrame marshals an event and its payload into a wire frame.
func EncodeFrame(name EventName, payload any) ([]byte, error) {
	b, err := json.Marshal(Frame{Type: name, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("encode %s frame: %w", name, err)
	}
	return b, nil
}

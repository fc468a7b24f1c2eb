/*
Package chat contains the relay's session registry, chat history and the
broadcast coordinator that ties them to live WebSocket connections.

This file defines the Client struct, the Peer implementation backed by a WebSocket
connection. ReadPump turns inbound frames into coordinator events; WritePump drains
the send queue onto the socket.
*/
package chat

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"relaychat/internal/pkg/logx"
	"relaychat/internal/pkg/randx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum allowed size (in bytes) of a frame sent by the client.
	maxMessageSize = 8192

	// number of outbound frames queued per client before new ones are dropped.
	sendQueueSize = 256
)

// Client represents an active WebSocket connection.
type Client struct {
	// id is the connection identity, fixed for the connection's lifetime.
	id string

	// coordinator receives the events decoded from this connection.
	coordinator *Coordinator

	// underlying WebSocket connection object.
	conn *websocket.Conn

	// a buffered channel used to queue frames waiting to be written to the socket.
	// Only the coordinator goroutine sends on or closes it.
	send chan []byte

	// closed is set once send has been closed.
	closed bool

	// structured logger with connection context.
	logger zerolog.Logger
}

// NewClient wraps conn in a Client with a fresh connection identity.
func NewClient(coordinator *Coordinator, conn *websocket.Conn) *Client {
	id := randx.ConnectionID()

	return &Client{
		id:          id,
		coordinator: coordinator,
		conn:        conn,
		send:        make(chan []byte, sendQueueSize),
		logger:      logx.Logger().With().Str("conn_id", id).Logger(),
	}
}

// ID returns the connection identity.
func (c *Client) ID() string {
	return c.id
}

// Send queues frame for the write pump without blocking.
func (c *Client) Send(frame []byte) bool {
	if c.closed {
		return false
	}

	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// Close ends the write pump, which then writes a close frame and closes the socket.
func (c *Client) Close() {
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// ReadPump reads frames until the connection fails, then reports the disconnect.
// There is no read deadline: only the socket closing ends the session.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Time{}); err != nil {
		c.logger.Error().Err(err).Msg("Failed to clear read deadline")
		return
	}

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Connection closed unexpectedly")
			}
			return
		}

		c.processInboundMessage(frame)
	}
}

// cleanupOnDisconnect notifies the coordinator and closes the socket.
func (c *Client) cleanupOnDisconnect() {
	if !c.coordinator.Disconnect(c.id) {
		c.logger.Debug().Msg("Coordinator stopped before disconnect could be queued.")
	}

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

// processInboundMessage decodes one frame and forwards it to the coordinator.
// Malformed frames are logged and ignored.
func (c *Client) processInboundMessage(frame []byte) {
	var inbound InboundFrame
	if err := json.Unmarshal(frame, &inbound); err != nil {
		c.logger.Warn().Err(err).Bytes("frame", frame).Msg("Client sent invalid JSON")
		return
	}

	switch inbound.Type {
	case EventChat:
		var payload ChatPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid chat payload")
			return
		}
		c.coordinator.Chat(c.id, payload.Msg)

	case EventChangeNickname:
		var nickname string
		if err := json.Unmarshal(inbound.Payload, &nickname); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid change-nickname payload")
			return
		}
		c.coordinator.Rename(c.id, nickname)

	case EventChangeColor:
		var color string
		if err := json.Unmarshal(inbound.Payload, &color); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid change-color payload")
			return
		}
		c.coordinator.Recolor(c.id, color)

	default:
		c.logger.Warn().Str("msg_type", string(inbound.Type)).Msg("Client sent unsupported event type")
	}
}

// WritePump writes queued frames to the socket until the send queue is closed.
func (c *Client) WritePump() {
	defer func() {
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		frame, ok := <-c.send
		if !c.writeQueuedMessage(frame, ok) {
			return
		}
	}
}

// writeQueuedMessage writes one frame, or a close frame once the queue is closed.
// It returns false when the pump should stop.
func (c *Client) writeQueuedMessage(frame []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Debug().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

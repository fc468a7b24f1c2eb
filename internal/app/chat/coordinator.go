/*
Package chat contains the relay's session registry, chat history and the
broadcast coordinator that ties them to live WebSocket connections.

This file defines the Coordinator, the single owner of all shared chat state.
Its Run loop handles one Event at a time to completion, including every
resulting unicast and broadcast, before it takes the next one.
*/
package chat

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"relaychat/internal/pkg/logx"
)

const eventChannelBuffer = 1024

// Peer is the coordinator's view of a connection. Send must not block;
// a false return means the frame was dropped.
type Peer interface {
	ID() string
	Send(frame []byte) bool
	Close()
}

type peerEntry struct {
	peer  Peer
	state ConnState
}

// Coordinator serializes every registry and history mutation through its Run loop.
type Coordinator struct {
	// registry and history are only touched from the Run goroutine.
	registry *Registry
	history  *History

	// peers holds every connection that has joined, keyed by identity.
	peers map[string]*peerEntry

	// events queues client events for the Run loop.
	events chan Event

	// stopChan is closed by Stop; done is closed when Run returns.
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	// now stamps chat messages.
	now func() time.Time

	logger zerolog.Logger
}

// NewCoordinator returns a Coordinator whose history keeps historyCapacity messages.
// Call Run to start processing events.
func NewCoordinator(historyCapacity int) *Coordinator {
	return &Coordinator{
		registry: NewRegistry(),
		history:  NewHistory(historyCapacity),
		peers:    make(map[string]*peerEntry),
		events:   make(chan Event, eventChannelBuffer),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
		now:      time.Now,
		logger:   logx.Component("coordinator"),
	}
}

// Run processes events until Stop is called, then closes every peer.
func (c *Coordinator) Run() {
	defer close(c.done)

	c.logger.Info().Int("history_capacity", c.history.Capacity()).Msg("Coordinator loop started.")

	for {
		select {
		case ev := <-c.events:
			c.dispatch(ev)

		case <-c.stopChan:
			c.closeAll()
			c.logger.Info().Msg("Coordinator loop stopped.")
			return
		}
	}
}

// Stop asks the Run loop to exit. It is safe to call more than once.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopChan)
	})
}

// Done is closed once the Run loop has exited.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// Stopped reports whether Stop has been called.
func (c *Coordinator) Stopped() bool {
	select {
	case <-c.stopChan:
		return true
	default:
		return false
	}
}

// Submit queues ev for the Run loop. It returns false once the coordinator is stopped.
func (c *Coordinator) Submit(ev Event) bool {
	if c.Stopped() {
		return false
	}

	select {
	case c.events <- ev:
		return true
	case <-c.stopChan:
		return false
	}
}

// Connect queues a ConnectEvent for p.
func (c *Coordinator) Connect(p Peer) bool {
	return c.Submit(ConnectEvent{Peer: p})
}

// Chat queues a ChatEvent.
func (c *Coordinator) Chat(id, text string) bool {
	return c.Submit(ChatEvent{ID: id, Text: text})
}

// Rename queues a RenameEvent.
func (c *Coordinator) Rename(id, nickname string) bool {
	return c.Submit(RenameEvent{ID: id, Nickname: nickname})
}

// Recolor queues a RecolorEvent; color is the raw token without '#'.
func (c *Coordinator) Recolor(id, color string) bool {
	return c.Submit(RecolorEvent{ID: id, Color: color})
}

// Disconnect queues a DisconnectEvent.
func (c *Coordinator) Disconnect(id string) bool {
	return c.Submit(DisconnectEvent{ID: id})
}

// dispatch runs the transition for ev.
func (c *Coordinator) dispatch(ev Event) {
	if _, ok := ev.(ConnectEvent); !ok {
		if entry, ok := c.peers[ev.ConnID()]; !ok || entry.state != StateActive {
			c.logger.Debug().Str("conn_id", ev.ConnID()).Msgf("Dropping %T for inactive connection.", ev)
			return
		}
	}

	switch e := ev.(type) {
	case ConnectEvent:
		c.handleConnect(e)
	case ChatEvent:
		c.handleChat(e)
	case RenameEvent:
		c.handleRename(e)
	case RecolorEvent:
		c.handleRecolor(e)
	case DisconnectEvent:
		c.handleDisconnect(e)
	}
}

func (c *Coordinator) handleConnect(e ConnectEvent) {
	id := e.Peer.ID()
	if _, exists := c.peers[id]; exists {
		c.logger.Warn().Str("conn_id", id).Msg("Ignoring connect for an identity that already joined.")
		return
	}

	entry := &peerEntry{peer: e.Peer, state: StateConnecting}
	c.peers[id] = entry

	session := c.registry.Register(id)

	c.unicast(entry.peer, EventNickname, session.Nickname)
	c.unicast(entry.peer, EventConnectedUsers, c.registry.Snapshot())
	c.unicast(entry.peer, EventChatLog, c.history.Snapshot())
	c.broadcast(EventNewUser, session.Participant(), id)

	entry.state = StateActive

	c.logger.Info().
		Str("conn_id", id).
		Str("nickname", session.Nickname).
		Str("color", session.Color).
		Int("total_users", c.registry.Len()).
		Msg("User connected.")
}

func (c *Coordinator) handleChat(e ChatEvent) {
	sender, ok := c.registry.Lookup(e.ID)
	if !ok {
		c.logger.Error().Str("conn_id", e.ID).Msg("Active connection has no session.")
		return
	}

	msg := ChatMessage{
		Time:     c.now().Format(TimeLayout),
		Nickname: sender.Nickname,
		Color:    sender.Color,
		Text:     e.Text,
	}

	c.history.Append(msg)
	c.broadcast(EventChat, msg, "")
}

func (c *Coordinator) handleRename(e RenameEvent) {
	entry := c.peers[e.ID]

	err := c.registry.Rename(e.ID, e.Nickname)

	var dup *DuplicateNicknameError
	switch {
	case errors.As(err, &dup):
		c.logger.Info().Str("conn_id", e.ID).Str("nickname", dup.Nickname).Msg("Rename rejected, nickname taken.")
		c.unicast(entry.peer, EventNicknameRejected, dup.Nickname)
		return
	case err != nil:
		c.logger.Error().Err(err).Str("conn_id", e.ID).Msg("Rename failed.")
		return
	}

	c.logger.Info().Str("conn_id", e.ID).Str("nickname", e.Nickname).Msg("User renamed.")

	c.unicast(entry.peer, EventNickname, e.Nickname)
	c.broadcast(EventConnectedUsers, c.registry.Snapshot(), "")
}

func (c *Coordinator) handleRecolor(e RecolorEvent) {
	entry := c.peers[e.ID]
	color := "#" + e.Color

	if err := c.registry.Recolor(e.ID, color); err != nil {
		c.logger.Error().Err(err).Str("conn_id", e.ID).Msg("Recolor failed.")
		return
	}

	c.logger.Debug().Str("conn_id", e.ID).Str("color", color).Msg("User recolored.")
	c.unicast(entry.peer, EventChangeColor, color)
}

func (c *Coordinator) handleDisconnect(e DisconnectEvent) {
	entry := c.peers[e.ID]
	entry.state = StateDisconnected
	delete(c.peers, e.ID)
	entry.peer.Close()

	session, err := c.registry.Unregister(e.ID)
	if err != nil {
		c.logger.Error().Err(err).Str("conn_id", e.ID).Msg("Disconnect for connection without session.")
		return
	}

	c.broadcast(EventDisconnect, session.Nickname, "")

	c.logger.Info().
		Str("conn_id", e.ID).
		Str("nickname", session.Nickname).
		Int("total_users", c.registry.Len()).
		Msg("User disconnected.")
}

// unicast sends one frame to p. Delivery is best effort.
func (c *Coordinator) unicast(p Peer, name EventName, payload any) {
	frame, err := EncodeFrame(name, payload)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to encode unicast frame.")
		return
	}

	if !p.Send(frame) {
		c.logger.Warn().Str("conn_id", p.ID()).Str("event", string(name)).Msg("Send queue full, frame dropped.")
	}
}

// broadcast sends one frame to every joined peer except the one keyed by exclude.
func (c *Coordinator) broadcast(name EventName, payload any, exclude string) {
	frame, err := EncodeFrame(name, payload)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to encode broadcast frame.")
		return
	}

	for id, entry := range c.peers {
		if id == exclude {
			continue
		}
		if !entry.peer.Send(frame) {
			c.logger.Warn().Str("conn_id", id).Str("event", string(name)).Msg("Send queue full, frame dropped.")
		}
	}
}

// closeAll closes every peer still joined when the loop stops.
func (c *Coordinator) closeAll() {
	for id, entry := range c.peers {
		entry.state = StateDisconnected
		entry.peer.Close()
		delete(c.peers, id)
	}
}

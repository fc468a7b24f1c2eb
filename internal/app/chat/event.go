package chat

// Event is a client-originated occurrence handled by the Coordinator.
// The set is closed: ConnectEvent, ChatEvent, RenameEvent, RecolorEvent, DisconnectEvent.
type Event interface {
	// ConnID is the identity of the connection the event belongs to.
	ConnID() string

	isEvent()
}

// ConnectEvent opens a session for a newly accepted peer.
type ConnectEvent struct {
	Peer Peer
}

// ChatEvent sends Text to every participant.
type ChatEvent struct {
	ID   string
	Text string
}

// RenameEvent requests Nickname for the connection.
type RenameEvent struct {
	ID       string
	Nickname string
}

// RecolorEvent carries a raw color token, without the '#' prefix.
type RecolorEvent struct {
	ID    string
	Color string
}

// DisconnectEvent ends the connection's session.
type DisconnectEvent struct {
	ID string
}

func (e ConnectEvent) ConnID() string    { return e.Peer.ID() }
func (e ChatEvent) ConnID() string       { return e.ID }
func (e RenameEvent) ConnID() string     { return e.ID }
func (e RecolorEvent) ConnID() string    { return e.ID }
func (e DisconnectEvent) ConnID() string { return e.ID }

func (ConnectEvent) isEvent()    {}
func (ChatEvent) isEvent()       {}
func (RenameEvent) isEvent()     {}
func (RecolorEvent) isEvent()    {}
func (DisconnectEvent) isEvent() {}

// ConnState is the lifecycle stage of a connection as seen by the Coordinator.
type ConnState int

const (
	StateConnecting ConnState = iota
	StateActive
	StateDisconnected
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateActive:
		return "active"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

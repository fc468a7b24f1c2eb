/*
Package user contains the data structures describing a chat participant.

A Session is the mutable per-connection state held by the registry; Participant
is the reduced view announced when someone joins.
*/
package user

// DefaultColor is the color every new session starts with.
const DefaultColor = "#000000"

// Session is one live connection's display state.
// Fields use JSON tags because the roster is sent to clients as-is.
type Session struct {
	// ID is the connection identity the session is keyed by. It never changes.
	ID string `json:"id"`

	// Nickname is the display name, unique across live sessions.
	Nickname string `json:"nickname"`

	// Color is a hex-like token such as "#ff0000". It is not validated.
	Color string `json:"color"`
}

// Participant identifies a session without its color.
type Participant struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// Participant returns the join-announcement view of s.
func (s Session) Participant() Participant {
	return Participant{ID: s.ID, Nickname: s.Nickname}
}

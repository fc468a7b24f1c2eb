package chat

import (
	"errors"
	"fmt"

	"relaychat/internal/app/user"
)

// defaultNicknamePrefix is followed by the generation counter in default nicknames.
const defaultNicknamePrefix = "anonymous"

// ErrUnknownSession is returned when a mutation names an identity that is not registered.
var ErrUnknownSession = errors.New("chat: unknown session")

// DuplicateNicknameError reports a rename to a nickname that a live session already holds.
type DuplicateNicknameError struct {
	Nickname string
}

func (e *DuplicateNicknameError) Error() string {
	return fmt.Sprintf("chat: nickname %q is already in use", e.Nickname)
}

// Registry maps connection identities to their sessions, in registration order.
// Nicknames are distinct across all sessions at all times.
//
// Registry is not safe for concurrent use; the Coordinator loop owns it.
type Registry struct {
	sessions []user.Session

	// counter only grows, so generated names are never reused.
	counter int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a session for id with a generated nickname and the default color.
// Generated names that a live session already holds (after a rename) are skipped.
func (r *Registry) Register(id string) user.Session {
	session := user.Session{
		ID:       id,
		Nickname: r.nextNickname(),
		Color:    user.DefaultColor,
	}
	r.sessions = append(r.sessions, session)
	return session
}

func (r *Registry) nextNickname() string {
	for {
		r.counter++
		name := fmt.Sprintf("%s%d", defaultNicknamePrefix, r.counter)
		if !r.taken(name) {
			return name
		}
	}
}

// Rename sets the nickname of id. It fails with *DuplicateNicknameError when any
// session holds nickname, the caller's own included, and leaves state untouched.
func (r *Registry) Rename(id, nickname string) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return ErrUnknownSession
	}

	if r.taken(nickname) {
		return &DuplicateNicknameError{Nickname: nickname}
	}

	r.sessions[idx].Nickname = nickname
	return nil
}

// Recolor replaces the color of id without validating it.
func (r *Registry) Recolor(id, color string) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return ErrUnknownSession
	}

	r.sessions[idx].Color = color
	return nil
}

// Unregister removes the session keyed by id and returns it as it was at removal.
func (r *Registry) Unregister(id string) (user.Session, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return user.Session{}, ErrUnknownSession
	}

	removed := r.sessions[idx]
	r.sessions = append(r.sessions[:idx], r.sessions[idx+1:]...)
	return removed, nil
}

// Lookup returns the session keyed by id.
func (r *Registry) Lookup(id string) (user.Session, bool) {
	idx := r.indexOf(id)
	if idx < 0 {
		return user.Session{}, false
	}
	return r.sessions[idx], true
}

// Snapshot returns a copy of the roster in registration order.
func (r *Registry) Snapshot() []user.Session {
	out := make([]user.Session, len(r.sessions))
	copy(out, r.sessions)
	return out
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return len(r.sessions)
}

func (r *Registry) indexOf(id string) int {
	for i := range r.sessions {
		if r.sessions[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) taken(nickname string) bool {
	for i := range r.sessions {
		if r.sessions[i].Nickname == nickname {
			return true
		}
	}
	return false
}

package chat

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relaychat/internal/app/user"
)

func nicknames(sessions []user.Session) []string {
	out := make([]string, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Nickname)
	}
	return out
}

func TestRegisterGeneratesDistinctNames(t *testing.T) {
	r := NewRegistry()
	seen := make(map[string]struct{})

	for i := 1; i <= 50; i++ {
		s := r.Register(fmt.Sprintf("conn-%d", i))
		assert.Equal(t, fmt.Sprintf("anonymous%d", i), s.Nickname)
		assert.Equal(t, user.DefaultColor, s.Color)

		_, dup := seen[s.Nickname]
		assert.False(t, dup)
		seen[s.Nickname] = struct{}{}
	}
}

func TestRegisterCounterNeverReused(t *testing.T) {
	r := NewRegistry()
	r.Register("a")
	r.Register("b")
	_, err := r.Unregister("b")
	require.NoError(t, err)

	s := r.Register("c")
	assert.Equal(t, "anonymous3", s.Nickname)
}

func TestRegisterSkipsNamesHeldAfterRename(t *testing.T) {
	r := NewRegistry()
	r.Register("a")
	require.NoError(t, r.Rename("a", "anonymous2"))

	s := r.Register("b")
	assert.Equal(t, "anonymous3", s.Nickname)
	assert.Equal(t, []string{"anonymous2", "anonymous3"}, nicknames(r.Snapshot()))
}

func TestRenameRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	r.Register("a")
	r.Register("b")
	before := r.Snapshot()

	err := r.Rename("b", "anonymous1")
	var dup *DuplicateNicknameError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "anonymous1", dup.Nickname)
	assert.Equal(t, before, r.Snapshot())

	err = r.Rename("b", "anonymous2")
	require.True(t, errors.As(err, &dup), "renaming to one's own name is a duplicate")
	assert.Equal(t, before, r.Snapshot())
}

func TestRenameKeepsPositionAndColor(t *testing.T) {
	r := NewRegistry()
	r.Register("a")
	r.Register("b")
	r.Register("c")
	require.NoError(t, r.Recolor("b", "#123456"))

	require.NoError(t, r.Rename("b", "bob"))

	snap := r.Snapshot()
	assert.Equal(t, []string{"anonymous1", "bob", "anonymous3"}, nicknames(snap))
	assert.Equal(t, "#123456", snap[1].Color)
	assert.Equal(t, "b", snap[1].ID)
}

func TestRecolorAcceptsAnything(t *testing.T) {
	r := NewRegistry()
	r.Register("a")

	require.NoError(t, r.Recolor("a", "#not-a-color"))
	s, ok := r.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "#not-a-color", s.Color)

	require.NoError(t, r.Recolor("a", ""))
	s, _ = r.Lookup("a")
	assert.Empty(t, s.Color)
}

func TestUnregisterByIdentityAfterRename(t *testing.T) {
	r := NewRegistry()
	r.Register("a")
	r.Register("b")
	r.Register("c")
	require.NoError(t, r.Rename("a", "zed"))

	removed, err := r.Unregister("a")
	require.NoError(t, err)
	assert.Equal(t, "zed", removed.Nickname)
	assert.Equal(t, []string{"anonymous2", "anonymous3"}, nicknames(r.Snapshot()))
	assert.Equal(t, 2, r.Len())
}

func TestUnknownSession(t *testing.T) {
	r := NewRegistry()
	r.Register("a")

	assert.ErrorIs(t, r.Rename("ghost", "x"), ErrUnknownSession)
	assert.ErrorIs(t, r.Recolor("ghost", "#fff"), ErrUnknownSession)
	_, err := r.Unregister("ghost")
	assert.ErrorIs(t, err, ErrUnknownSession)

	_, ok := r.Lookup("ghost")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())
}

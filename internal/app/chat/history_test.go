package chat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textMessage(i int) ChatMessage {
	return ChatMessage{Time: "9:00 AM", Nickname: "anonymous1", Color: "#000000", Text: fmt.Sprintf("msg-%d", i)}
}

func TestHistoryAppendBelowCapacity(t *testing.T) {
	h := NewHistory(3)
	h.Append(textMessage(0))
	h.Append(textMessage(1))

	got := h.Snapshot()
	require.Len(t, got, 2)
	assert.Equal(t, "msg-0", got[0].Text)
	assert.Equal(t, "msg-1", got[1].Text)
}

func TestHistoryEvictsOldestFirst(t *testing.T) {
	h := NewHistory(DefaultHistoryCapacity)

	for i := 0; i < DefaultHistoryCapacity+1; i++ {
		h.Append(textMessage(i))
		assert.LessOrEqual(t, h.Len(), DefaultHistoryCapacity)
	}

	got := h.Snapshot()
	require.Len(t, got, DefaultHistoryCapacity)
	for i, msg := range got {
		assert.Equal(t, fmt.Sprintf("msg-%d", i+1), msg.Text)
	}
}

func TestHistorySnapshotIsACopy(t *testing.T) {
	h := NewHistory(2)
	h.Append(textMessage(0))

	snap := h.Snapshot()
	snap[0].Text = "mutated"

	assert.Equal(t, "msg-0", h.Snapshot()[0].Text)
}

func TestHistoryEmptySnapshotIsNotNil(t *testing.T) {
	h := NewHistory(5)
	assert.NotNil(t, h.Snapshot())
	assert.Empty(t, h.Snapshot())
}

func TestHistoryNonPositiveCapacity(t *testing.T) {
	assert.Equal(t, DefaultHistoryCapacity, NewHistory(0).Capacity())
	assert.Equal(t, DefaultHistoryCapacity, NewHistory(-4).Capacity())
}

package chat

// History is a bounded FIFO of chat messages, oldest first.
// Once full, every append evicts the oldest entry.
type History struct {
	capacity int
	messages []ChatMessage
}

// NewHistory returns an empty history holding at most capacity messages.
// A non-positive capacity falls back to DefaultHistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}

	return &History{
		capacity: capacity,
		messages: make([]ChatMessage, 0, capacity),
	}
}

// Append pushes msg to the back, dropping the front entry on overflow.
func (h *History) Append(msg ChatMessage) {
	if len(h.messages) == h.capacity {
		copy(h.messages, h.messages[1:])
		h.messages = h.messages[:len(h.messages)-1]
	}
	h.messages = append(h.messages, msg)
}

// Snapshot returns a copy of the buffered messages, oldest first.
func (h *History) Snapshot() []ChatMessage {
	out := make([]ChatMessage, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len returns the number of buffered messages.
func (h *History) Len() int {
	return len(h.messages)
}

// Capacity returns the maximum number of buffered messages.
func (h *History) Capacity() int {
	return h.capacity
}

package core

import "sync"

// History is an append-only ordered message log safe for concurrent use.
// The zero value is ready to use.
type History struct {
	mu       sync.RWMutex
	messages []Message
}

// Append adds a message to the end of the log.
func (h *History) Append(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, msg)
}

// Messages returns a snapshot of the full log.
func (h *History) Messages() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Window returns at most the last n messages, oldest first.
// A non-positive n yields an empty slice.
func (h *History) Window(n int) []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if n <= 0 {
		return []Message{}
	}
	start := max(len(h.messages)-n, 0)
	out := make([]Message, len(h.messages)-start)
	copy(out, h.messages[start:])
	return out
}

// Len returns the number of stored messages.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.messages)
}

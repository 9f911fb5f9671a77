package domain

// MessageFeed an append-only ordered collection keyed by message id. Both the
// initial history load and every pushed event funnel through Insert, which
// keeps the feed sorted by CreatedAt ascending and drops duplicates. A
// message already present by id is never re-added, no matter which path
// delivered it first.
type MessageFeed struct {
	messages []ChatMessage
	byID     map[string]struct{}
}

// NewMessageFeed create an empty feed
func NewMessageFeed() *MessageFeed {
	return &MessageFeed{byID: make(map[string]struct{})}
}

// Insert add a message if its id is absent. Returns false for duplicates.
// Position follows CreatedAt ascending; messages sharing a timestamp keep
// their arrival order.
func (f *MessageFeed) Insert(msg ChatMessage) bool {
	if _, ok := f.byID[msg.ID]; ok {
		return false
	}
	f.byID[msg.ID] = struct{}{}

	// Insert after the last entry not later than msg; history and live
	// events both arrive near-ordered so this rarely scans far.
	i := len(f.messages)
	for i > 0 && f.messages[i-1].CreatedAt.After(msg.CreatedAt) {
		i--
	}
	f.messages = append(f.messages, ChatMessage{})
	copy(f.messages[i+1:], f.messages[i:])
	f.messages[i] = msg
	return true
}

// Len current feed size
func (f *MessageFeed) Len() int {
	return len(f.messages)
}

// All the feed in display order
func (f *MessageFeed) All() []ChatMessage {
	out := make([]ChatMessage, len(f.messages))
	copy(out, f.messages)
	return out
}

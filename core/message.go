package core

import (
	"encoding/json"
	"maps"
	"time"
)

// UserSender is the sender name attached to messages typed by a human.
const UserSender = "User"

// Metadata keys written by agents and providers.
const (
	MetaError    = "error"
	MetaDetails  = "details"
	MetaProvider = "provider"
	MetaModel    = "model"
	MetaWaitTime = "wait_time"
)

// Message is an immutable unit of conversation. Values are created through
// NewMessage and never change afterwards; accessors hand out copies of any
// mutable state.
type Message struct {
	id        string
	content   string
	sender    string
	metadata  map[string]any
	timestamp time.Time
}

// NewMessage constructs a Message stamped with a fresh id and the current time.
// The metadata map is copied so later caller mutations are not observed.
func NewMessage(sender, content string, metadata map[string]any) Message {
	md := make(map[string]any, len(metadata))
	maps.Copy(md, metadata)
	return Message{
		id:        NewID(),
		content:   content,
		sender:    sender,
		metadata:  md,
		timestamp: time.Now(),
	}
}

// NewUserMessage is shorthand for a message sent by the human user.
func NewUserMessage(content string) Message {
	return NewMessage(UserSender, content, nil)
}

// ID returns the unique message identifier.
func (m Message) ID() string { return m.id }

// Content returns the message text.
func (m Message) Content() string { return m.content }

// Sender returns the agent name or UserSender.
func (m Message) Sender() string { return m.sender }

// Timestamp returns the creation time.
func (m Message) Timestamp() time.Time { return m.timestamp }

// Metadata returns a copy of the metadata map.
func (m Message) Metadata() map[string]any {
	md := make(map[string]any, len(m.metadata))
	maps.Copy(md, m.metadata)
	return md
}

// Meta returns a single metadata value.
func (m Message) Meta(key string) (any, bool) {
	v, ok := m.metadata[key]
	return v, ok
}

// Err returns the error description recorded in metadata, if any.
func (m Message) Err() string {
	if v, ok := m.metadata[MetaError]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// IsError reports whether the message carries an error marker.
func (m Message) IsError() bool {
	_, ok := m.metadata[MetaError]
	return ok
}

type messageJSON struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Sender    string         `json:"sender"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// MarshalJSON implements json.Marshaler.
func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(messageJSON{
		ID:        m.id,
		Content:   m.content,
		Sender:    m.sender,
		Metadata:  m.metadata,
		Timestamp: m.timestamp,
	})
}

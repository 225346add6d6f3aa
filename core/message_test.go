package core

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
)

func TestMessage_ConstructorCopiesMetadata(t *testing.T) {
	md := map[string]any{"provider": "openai"}
	m := NewMessage("WeatherExpert", "sunny", md)
	md["provider"] = "mutated"

	if m.ID() == "" || m.Timestamp().IsZero() {
		t.Fatalf("NewMessage did not initialize id/timestamp: %+v", m)
	}
	if v, _ := m.Meta(MetaProvider); v != "openai" {
		t.Fatalf("metadata should be isolated from caller map, got %v", v)
	}

	out := m.Metadata()
	out["provider"] = "changed"
	if v, _ := m.Meta(MetaProvider); v != "openai" {
		t.Fatalf("Metadata() must return a copy, got %v", v)
	}
}

func TestMessage_ErrorMarker(t *testing.T) {
	ok := NewUserMessage("hello")
	if ok.IsError() || ok.Err() != "" || ok.Sender() != UserSender {
		t.Fatalf("user message malformed: %+v", ok)
	}

	bad := NewMessage("HotelExpert", "sorry", map[string]any{MetaError: "HTTP 500"})
	if !bad.IsError() || bad.Err() != "HTTP 500" {
		t.Fatalf("expected error marker, got %q", bad.Err())
	}
}

func TestMessage_MarshalJSON(t *testing.T) {
	m := NewMessage("Assistant", "hi", map[string]any{"model": "gpt"})
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["sender"] != "Assistant" || decoded["content"] != "hi" || decoded["id"] != m.ID() {
		t.Fatalf("unexpected json: %s", raw)
	}
}

func TestHistory_Window(t *testing.T) {
	var h History
	if got := h.Window(5); len(got) != 0 {
		t.Fatalf("expected empty window, got %d", len(got))
	}
	for i := range 7 {
		h.Append(NewUserMessage(fmt.Sprintf("m%d", i)))
	}
	w := h.Window(5)
	if len(w) != 5 || w[0].Content() != "m2" || w[4].Content() != "m6" {
		t.Fatalf("window mismatch: first=%q last=%q len=%d", w[0].Content(), w[4].Content(), len(w))
	}
	if got := h.Window(0); len(got) != 0 {
		t.Fatalf("zero window should be empty")
	}
	if h.Len() != 7 || len(h.Messages()) != 7 {
		t.Fatalf("expected 7 messages")
	}
}

func TestHistory_Concurrency(t *testing.T) {
	var h History
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Append(NewUserMessage("x"))
			_ = h.Window(5)
		}()
	}
	wg.Wait()
	if h.Len() != 50 {
		t.Fatalf("expected 50 messages, got %d", h.Len())
	}
}

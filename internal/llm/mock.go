package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockReply is one canned reply of a Mock.
type MockReply struct {
	Content json.RawMessage
	Err     error
}

// Mock replays canned replies in order and records every request. Once
// the replies run out it reports the provider as unavailable.
type Mock struct {
	mu      sync.Mutex
	replies []MockReply
	calls   []Request
}

func NewMock(replies ...MockReply) *Mock {
	return &Mock{replies: replies}
}

func (m *Mock) ModelID() string { return "mock" }

func (m *Mock) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)
	if len(m.replies) == 0 {
		return nil, &UnavailableError{}
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	if err := checkSchema(req.Schema, r.Content); err != nil {
		return nil, err
	}
	return &Response{Content: r.Content, Model: "mock", StopReason: "end"}, nil
}

// Add queues another reply.
func (m *Mock) Add(r MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, r)
}

// Calls returns the requests seen so far.
func (m *Mock) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}

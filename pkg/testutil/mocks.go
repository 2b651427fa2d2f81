package testutil

import (
	"sync"

	"github.com/arthur-debert/tokenrule/pkg/rules"
)

// CallLog records collaborator calls in order, across mocks
type CallLog struct {
	mu    sync.Mutex
	calls []string
}

// Record appends a call
func (l *CallLog) Record(call string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

// Entries returns the calls recorded so far
func (l *CallLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// MockSink is a PersistenceSink that remembers every rule it accepted.
// When Err is set, Persist fails with it and stores nothing.
type MockSink struct {
	Err error
	Log *CallLog

	mu    sync.Mutex
	rules []rules.ValidatedRule
}

// Persist implements rules.PersistenceSink
func (s *MockSink) Persist(rule rules.ValidatedRule) error {
	s.Log.Record("persist")
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append(s.rules, rule)
	return nil
}

// Rules returns the accepted rules in order
func (s *MockSink) Rules() []rules.ValidatedRule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]rules.ValidatedRule(nil), s.rules...)
}

// MockHider is a VisibilityController that counts Hide calls
type MockHider struct {
	Log *CallLog

	mu     sync.Mutex
	hidden int
}

// Hide implements rules.VisibilityController
func (h *MockHider) Hide() {
	h.Log.Record("hide")
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hidden++
}

// Hidden returns how many times Hide was called
func (h *MockHider) Hidden() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hidden
}

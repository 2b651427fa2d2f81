package datastore

import (
	"sort"
	"sync"

	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/rules"
)

// MemoryStore keeps rules in memory, keyed by node id
type MemoryStore struct {
	mu      sync.Mutex
	rules   map[string]rules.ValidatedRule
	history []string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rules: make(map[string]rules.ValidatedRule)}
}

// Persist stores the rule, replacing any previous rule for the node
func (s *MemoryStore) Persist(rule rules.ValidatedRule) error {
	if rule.IsZero() {
		return errors.New(errors.ErrInvalidInput, "cannot persist a rule without a node id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[rule.NodeID()] = rule
	s.history = append(s.history, rule.NodeID())
	return nil
}

// Load returns the rule stored for nodeID
func (s *MemoryStore) Load(nodeID string) (rules.ValidatedRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rule, ok := s.rules[nodeID]
	if !ok {
		return rules.ValidatedRule{}, errors.Newf(errors.ErrRuleNotFound, "no rule stored for node %s", nodeID)
	}
	return rule, nil
}

// List returns all rules ordered by node id
func (s *MemoryStore) List() ([]rules.ValidatedRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]rules.ValidatedRule, 0, len(s.rules))
	for _, rule := range s.rules {
		list = append(list, rule)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].NodeID() < list[j].NodeID()
	})
	return list, nil
}

// Delete removes the rule stored for nodeID
func (s *MemoryStore) Delete(nodeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rules[nodeID]; !ok {
		return errors.Newf(errors.ErrRuleNotFound, "no rule stored for node %s", nodeID)
	}
	delete(s.rules, nodeID)
	return nil
}

// History returns the node ids in the order they were persisted
func (s *MemoryStore) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

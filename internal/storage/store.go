// Package storage provides the durable key-value store the progression
// ledger reads at startup and writes through on every change. Two backends:
// a local SQLite file (the default, no external services) and Postgres for
// shared deployments.
package storage

import "sort"

// Store is a synchronous string key-value store. Writes are total
// replacements of the key; there are no concurrent writers, so no
// partial-write recovery is needed.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set durably writes key to value, replacing any previous value.
	Set(key, value string) error
	// All returns every key-value pair, for export.
	All() (map[string]string, error)
	Close() error
}

// Memory is an in-process Store with no durability. Used by tests and by
// ephemeral runs that pass no store config.
type Memory struct {
	m map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) Get(key string) (string, bool, error) {
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Memory) Set(key, value string) error {
	s.m[key] = value
	return nil
}

func (s *Memory) All() (map[string]string, error) {
	out := make(map[string]string, len(s.m))
	for k, v := range s.m {
		out[k] = v
	}
	return out, nil
}

func (s *Memory) Close() error { return nil }

// Keys returns the stored keys sorted, for deterministic test assertions.
func (s *Memory) Keys() []string {
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

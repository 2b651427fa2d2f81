// Package datastore provides the persistence sinks committed rules are
// handed to. FileStore keeps one file per pipeline node in a directory,
// encoded as TOML, YAML, JSON or XML; MemoryStore keeps rules in memory.
package datastore

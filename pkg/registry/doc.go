// Package registry provides a generic, thread-safe registry of named
// items. The datastore keeps its format codecs in one.
package registry

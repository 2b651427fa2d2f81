// Package filesystem provides the file access FileStore is built on.
//
// FS is injected into the store so tests can run against an in-memory
// filesystem; NewOS returns the implementation backed by the os package.
package filesystem

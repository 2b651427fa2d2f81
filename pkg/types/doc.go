// Package types defines the data model shared by the rule editor: the
// mutable Draft edited during a session, its enums, and RuleRecord, the
// plain serializable form stores read and write.
package types

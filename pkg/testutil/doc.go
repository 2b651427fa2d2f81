// Package testutil provides test doubles and environment helpers shared by
// the package tests.
package testutil

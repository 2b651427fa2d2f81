package rules

// PersistenceSink stores or forwards a committed rule
type PersistenceSink interface {
	Persist(rule ValidatedRule) error
}

// VisibilityController is told when the editing session should close
type VisibilityController interface {
	Hide()
}

// PersistFunc adapts a function to PersistenceSink
type PersistFunc func(rule ValidatedRule) error

// Persist calls f(rule)
func (f PersistFunc) Persist(rule ValidatedRule) error { return f(rule) }

// HideFunc adapts a function to VisibilityController
type HideFunc func()

// Hide calls f()
func (f HideFunc) Hide() { f() }

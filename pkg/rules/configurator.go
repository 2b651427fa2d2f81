package rules

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/logging"
	"github.com/arthur-debert/tokenrule/pkg/types"
)

// Configurator is one editing session for the rule of a pipeline node.
// It owns the draft, applies edits one at a time and commits the result
// to its collaborators.
type Configurator struct {
	mu sync.Mutex

	nodeID    string
	sessionID string
	draft     types.Draft
	engine    Engine

	sink  PersistenceSink
	hider VisibilityController

	closed     bool
	committing bool
	committed  ValidatedRule

	logger zerolog.Logger
}

// Option configures a Configurator
type Option func(*Configurator)

// WithDefaults starts the session from d instead of types.DefaultDraft.
// The draft invariants are applied to d.
func WithDefaults(d types.Draft) Option {
	return func(c *Configurator) {
		d.ErrorMessage = ""
		c.draft = Normalize(d)
	}
}

// WithValidationEngine selects the regex engine used on commit
func WithValidationEngine(e Engine) Option {
	return func(c *Configurator) {
		c.engine = e
	}
}

// NewConfigurator starts an editing session for nodeID
func NewConfigurator(nodeID string, sink PersistenceSink, hider VisibilityController, opts ...Option) (*Configurator, error) {
	if strings.TrimSpace(nodeID) == "" {
		return nil, errors.New(errors.ErrMissingNodeID, "a node id is required to edit a rule")
	}
	if sink == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no persistence sink")
	}
	if hider == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no visibility controller")
	}

	c := &Configurator{
		nodeID:    nodeID,
		sessionID: uuid.NewString(),
		draft:     types.DefaultDraft(),
		engine:    DefaultEngine,
		sink:      sink,
		hider:     hider,
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.engine.Valid() {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown regex engine %q", c.engine)
	}

	c.logger = logging.GetLogger("rules.configurator").With().
		Str("node", nodeID).
		Str("session", c.sessionID).
		Logger()
	c.logger.Debug().
		Str("engine", string(c.engine)).
		Msg("Editing session started")

	return c, nil
}

// NodeID returns the node the rule belongs to
func (c *Configurator) NodeID() string { return c.nodeID }

// SessionID identifies this session in logs
func (c *Configurator) SessionID() string { return c.sessionID }

// Draft returns a copy of the current draft
func (c *Configurator) Draft() types.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// LockedModifiers returns the modifiers the user cannot edit right now
func (c *Configurator) LockedModifiers() []types.Modifier {
	c.mu.Lock()
	defer c.mu.Unlock()
	return LockedModifiers(c.draft)
}

// Closed reports whether the session ended by commit or cancel
func (c *Configurator) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Committed returns the rule of a successful commit
func (c *Configurator) Committed() (ValidatedRule, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.committed, !c.committed.IsZero()
}

// Apply runs one edit against the draft
func (c *Configurator) Apply(ev Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkOpen(); err != nil {
		return err
	}

	next, err := Apply(c.draft, ev)
	if err != nil {
		evt := c.logger.Debug().Err(err)
		if ev != nil {
			evt = evt.Str("event", ev.Name())
		}
		evt.Msg("Edit rejected")
		return err
	}

	c.draft = next
	c.logger.Trace().
		Str("event", ev.Name()).
		Interface("draft", c.draft).
		Msg("Edit applied")
	return nil
}

// SetPattern replaces the pattern text
func (c *Configurator) SetPattern(text string) error {
	return c.Apply(PatternChanged{Text: text})
}

// SetExpressionType switches between regular and literal matching
func (c *Configurator) SetExpressionType(t types.ExpressionType) error {
	return c.Apply(ExpressionTypeChanged{Type: t})
}

// SetCaseSensitivity selects the case handling mode
func (c *Configurator) SetCaseSensitivity(mode types.CaseSensitivity) error {
	return c.Apply(CaseSensitivityChanged{Mode: mode})
}

// SetModifier sets a modifier unless it is locked
func (c *Configurator) SetModifier(m types.Modifier, value bool) error {
	return c.Apply(ModifierToggled{Modifier: m, Value: value})
}

// SetTokenRangeEnabled turns the token range on or off
func (c *Configurator) SetTokenRangeEnabled(enabled bool) error {
	return c.Apply(TokenRangeToggled{Enabled: enabled})
}

// SetTokenRangeBound sets one bound, clamped into range
func (c *Configurator) SetTokenRangeBound(which types.TokenBound, value int) error {
	return c.Apply(TokenBoundChanged{Bound: which, Value: value})
}

// Commit validates the draft and hands the rule to the collaborators.
// A successful commit closes the session.
//
// The collaborators run without the session lock held, so they may call
// back into the session: Closed and Committed already report the new rule
// by the time Hide runs. Edits made while a commit is running fail with
// SESSION_BUSY.
func (c *Configurator) Commit() (ValidatedRule, error) {
	c.mu.Lock()
	if err := c.checkOpen(); err != nil {
		c.mu.Unlock()
		return ValidatedRule{}, err
	}
	c.committing = true
	draft := c.draft
	c.mu.Unlock()

	done := logging.LogOperationStart(c.logger, "commit")
	defer done()

	sink := PersistFunc(func(rule ValidatedRule) error {
		if err := c.sink.Persist(rule); err != nil {
			return err
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		c.committed = rule
		c.closed = true
		return nil
	})
	rule, err := ValidateAndCommit(&draft, c.nodeID, sink, c.hider, WithEngine(c.engine))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.committing = false
	c.draft.ErrorMessage = draft.ErrorMessage
	if err != nil {
		c.logger.Info().
			Str("code", string(errors.GetErrorCode(err))).
			Str("message", c.draft.ErrorMessage).
			Msg("Commit failed")
		return ValidatedRule{}, err
	}
	return rule, nil
}

// CommitFunc returns Commit as a plain callback for whatever triggers it
func (c *Configurator) CommitFunc() func() error {
	return func() error {
		_, err := c.Commit()
		return err
	}
}

// Cancel ends the session without committing; the draft is discarded.
// It has no effect while a commit is running.
func (c *Configurator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.committing {
		return
	}
	c.closed = true
	c.draft = types.DefaultDraft()
	c.logger.Debug().Msg("Editing session cancelled")
}

// checkOpen must be called with c.mu held
func (c *Configurator) checkOpen() error {
	if c.closed {
		return errors.New(errors.ErrSessionClosed, "the editing session is closed")
	}
	if c.committing {
		return errors.New(errors.ErrSessionBusy, "a commit is in progress")
	}
	return nil
}

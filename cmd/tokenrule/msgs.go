package tokenrule

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Configure pattern rules for token matching"
	MsgCommitShort     = "Validate and store a rule built from flags"
	MsgEditShort       = "Edit a rule interactively, one command per line"
	MsgCheckShort      = "Check that a pattern compiles"
	MsgShowShort       = "Show the rule stored for a node"
	MsgListShort       = "List all stored rules"
	MsgDeleteShort     = "Delete the rule stored for a node"
	MsgGenConfigShort  = "Print the default configuration"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"
	MsgVersionShort    = "Print version information"

	// Status messages
	MsgRuleSaved      = "Saved rule for %s to %s\n"
	MsgRuleDryRun     = "Rule for %s is valid (not saved)\n"
	MsgRuleReplaced   = "Replaced previous rule:\n%s\n"
	MsgRuleUnchanged  = "Stored rule was already identical.\n"
	MsgRuleDeleted    = "Deleted rule for %s\n"
	MsgPatternValid   = "%s Pattern is valid (%s, %s)\n"
	MsgAllRulesValid  = "%s %d stored rule(s) valid for %s\n"
	MsgRuleInvalid    = "%s %s: %s\n"
	MsgEditPrompt     = "> "
	MsgEditCancelled  = "Editing cancelled, nothing saved.\n"
	MsgEditCommitFail = "Commit failed; fix the draft and try again.\n"
	MsgConfigWritten  = "Wrote default configuration to %s\n"
	MsgVersionFormat  = "tokenrule version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrLoadConfig    = "failed to load configuration: %w"
	MsgErrInvalidRange  = "token range must be off or <from>:<to>, got %q"
	MsgErrInvalidToggle = "modifier must be <name>=on|off, got %q"
	MsgErrInvalidRules  = "%d stored rule(s) failed validation"
	MsgErrConfigExists  = "config file %s already exists (use --force to overwrite)"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig     = "Config file (default $XDG_CONFIG_HOME/tokenrule/config.toml)"
	MsgFlagNodeID     = "Id of the pipeline node the rule belongs to"
	MsgFlagPattern    = "Pattern text"
	MsgFlagType       = "Expression type: regular or literal"
	MsgFlagLiteral    = "Shorthand for --type literal"
	MsgFlagCase       = "Case sensitivity: match, ignore or match-unicode"
	MsgFlagModifier   = "Set a modifier, e.g. multiline=on (repeatable)"
	MsgFlagTokenRange = "Token range as <from>:<to>, or off"
	MsgFlagStoreDir   = "Directory rules are stored in"
	MsgFlagFormat     = "Store format: toml, yaml, json or xml"
	MsgFlagEngine     = "Regex syntax used for validation: ecmascript or re2"
	MsgFlagDryRun     = "Validate without saving"
	MsgFlagOutput     = "Print the rule encoded as toml, yaml, json or xml"
	MsgFlagWrite      = "Write to the user config file instead of stdout"
	MsgFlagForce      = "Overwrite an existing config file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/commit-long.txt
	msgCommitLongRaw string
	MsgCommitLong    = strings.TrimSpace(msgCommitLongRaw)

	//go:embed msgs/commit-example.txt
	msgCommitExampleRaw string
	MsgCommitExample    = strings.TrimSpace(msgCommitExampleRaw)

	//go:embed msgs/edit-long.txt
	msgEditLongRaw string
	MsgEditLong    = strings.TrimSpace(msgEditLongRaw)

	//go:embed msgs/edit-help.txt
	msgEditHelpRaw string
	MsgEditHelp    = strings.TrimSpace(msgEditHelpRaw)

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)
)

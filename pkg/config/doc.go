// Package config loads tokenrule configuration: the initial draft values
// for new editing sessions, the regex engine used to validate patterns,
// where committed rules are stored and the default log verbosity.
//
// Values are layered with koanf, later layers winning: the embedded
// defaults, the user config file, then TOKENRULE_* environment variables.
package config

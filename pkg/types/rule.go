package types

// RuleRecord is the serializable form of a committed rule. Stores write
// and read records; turning one back into a rule goes through validation.
type RuleRecord struct {
	NodeID               string          `toml:"node_id" yaml:"node_id" json:"nodeId"`
	Pattern              string          `toml:"pattern" yaml:"pattern" json:"pattern"`
	ExpressionType       ExpressionType  `toml:"expression_type" yaml:"expression_type" json:"expressionType"`
	CaseSensitivity      CaseSensitivity `toml:"case_sensitivity" yaml:"case_sensitivity" json:"caseSensitivity"`
	TokenRange           TokenRange      `toml:"token_range" yaml:"token_range" json:"tokenRange"`
	CanonicalEquivalence bool            `toml:"canonical_equivalence" yaml:"canonical_equivalence" json:"canonicalEquivalence"`
	DotAll               bool            `toml:"dot_all" yaml:"dot_all" json:"dotAll"`
	Multiline            bool            `toml:"multiline" yaml:"multiline" json:"multiline"`
	UnixLines            bool            `toml:"unix_lines" yaml:"unix_lines" json:"unixLines"`
	Engine               string          `toml:"engine" yaml:"engine" json:"engine"`
	IsValid              bool            `toml:"is_valid" yaml:"is_valid" json:"isValid"`
}

// Draft returns the record's rule fields as a draft, e.g. to reopen a
// stored rule for editing
func (rec RuleRecord) Draft() Draft {
	return Draft{
		Pattern:              rec.Pattern,
		ExpressionType:       rec.ExpressionType,
		CaseSensitivity:      rec.CaseSensitivity,
		TokenRange:           rec.TokenRange,
		CanonicalEquivalence: rec.CanonicalEquivalence,
		DotAll:               rec.DotAll,
		Multiline:            rec.Multiline,
		UnixLines:            rec.UnixLines,
	}
}

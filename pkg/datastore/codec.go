package datastore

import (
	"encoding/json"
	"strconv"

	"github.com/beevik/etree"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/registry"
	"github.com/arthur-debert/tokenrule/pkg/rules"
	"github.com/arthur-debert/tokenrule/pkg/types"
)

// Codec converts rule records to and from one file format
type Codec interface {
	Encode(rec types.RuleRecord) ([]byte, error)
	Decode(data []byte) (types.RuleRecord, error)
}

// codecFuncs adapts a pair of functions to Codec
type codecFuncs struct {
	encode func(types.RuleRecord) ([]byte, error)
	decode func([]byte) (types.RuleRecord, error)
}

func (c codecFuncs) Encode(rec types.RuleRecord) ([]byte, error) { return c.encode(rec) }
func (c codecFuncs) Decode(data []byte) (types.RuleRecord, error) { return c.decode(data) }

var codecs = registry.New[Codec]("codec")

func init() {
	registry.MustRegister[Codec](codecs, string(FormatTOML), codecFuncs{
		encode: func(rec types.RuleRecord) ([]byte, error) { return toml.Marshal(rec) },
		decode: func(data []byte) (rec types.RuleRecord, err error) {
			err = toml.Unmarshal(data, &rec)
			return rec, err
		},
	})
	registry.MustRegister[Codec](codecs, string(FormatYAML), codecFuncs{
		encode: func(rec types.RuleRecord) ([]byte, error) { return yaml.Marshal(rec) },
		decode: func(data []byte) (rec types.RuleRecord, err error) {
			err = yaml.Unmarshal(data, &rec)
			return rec, err
		},
	})
	registry.MustRegister[Codec](codecs, string(FormatJSON), codecFuncs{
		encode: func(rec types.RuleRecord) ([]byte, error) {
			data, err := json.MarshalIndent(rec, "", "  ")
			if err != nil {
				return nil, err
			}
			return append(data, '\n'), nil
		},
		decode: func(data []byte) (rec types.RuleRecord, err error) {
			err = json.Unmarshal(data, &rec)
			return rec, err
		},
	})
	registry.MustRegister[Codec](codecs, string(FormatXML), codecFuncs{
		encode: encodeXML,
		decode: decodeXML,
	})
}

func codecFor(format Format) (Codec, error) {
	c, err := codecs.Get(string(format))
	if err != nil {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown store format %q", format)
	}
	return c, nil
}

// Encode renders a rule in the given format
func Encode(rule rules.ValidatedRule, format Format) ([]byte, error) {
	c, err := codecFor(format)
	if err != nil {
		return nil, err
	}
	return c.Encode(rule.Record())
}

// DecodeRecord parses a stored record without validating it
func DecodeRecord(data []byte, format Format) (types.RuleRecord, error) {
	c, err := codecFor(format)
	if err != nil {
		return types.RuleRecord{}, err
	}
	rec, err := c.Decode(data)
	if err != nil {
		return types.RuleRecord{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to decode %s rule", format)
	}
	return rec, nil
}

// Decode parses a rule previously written by Encode. The record is
// validated with rules.Restore, so a hand-edited file that no commit could
// have produced is rejected.
func Decode(data []byte, format Format) (rules.ValidatedRule, error) {
	rec, err := DecodeRecord(data, format)
	if err != nil {
		return rules.ValidatedRule{}, err
	}
	return rules.Restore(rec)
}

func encodeXML(rec types.RuleRecord) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("rule")
	root.CreateAttr("nodeId", rec.NodeID)
	root.CreateAttr("isValid", strconv.FormatBool(rec.IsValid))

	root.CreateElement("pattern").SetText(rec.Pattern)
	root.CreateElement("expressionType").SetText(string(rec.ExpressionType))
	root.CreateElement("caseSensitivity").SetText(string(rec.CaseSensitivity))
	root.CreateElement("engine").SetText(rec.Engine)

	tr := root.CreateElement("tokenRange")
	tr.CreateAttr("enabled", strconv.FormatBool(rec.TokenRange.Enabled))
	tr.CreateAttr("from", strconv.Itoa(rec.TokenRange.From))
	tr.CreateAttr("to", strconv.Itoa(rec.TokenRange.To))

	mods := root.CreateElement("modifiers")
	values := map[types.Modifier]bool{
		types.ModifierCanonicalEquivalence: rec.CanonicalEquivalence,
		types.ModifierDotAll:               rec.DotAll,
		types.ModifierMultiline:            rec.Multiline,
		types.ModifierUnixLines:            rec.UnixLines,
	}
	for _, m := range types.Modifiers() {
		el := mods.CreateElement("modifier")
		el.CreateAttr("name", string(m))
		el.CreateAttr("flag", m.Mnemonic())
		el.CreateAttr("enabled", strconv.FormatBool(values[m]))
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func decodeXML(data []byte) (types.RuleRecord, error) {
	var rec types.RuleRecord

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return rec, err
	}
	root := doc.SelectElement("rule")
	if root == nil {
		return rec, errors.New(errors.ErrFileAccess, "missing <rule> element")
	}

	rec.NodeID = root.SelectAttrValue("nodeId", "")
	rec.IsValid = root.SelectAttrValue("isValid", "false") == "true"
	if el := root.SelectElement("pattern"); el != nil {
		rec.Pattern = el.Text()
	}
	if el := root.SelectElement("expressionType"); el != nil {
		rec.ExpressionType = types.ExpressionType(el.Text())
	}
	if el := root.SelectElement("caseSensitivity"); el != nil {
		rec.CaseSensitivity = types.CaseSensitivity(el.Text())
	}
	if el := root.SelectElement("engine"); el != nil {
		rec.Engine = el.Text()
	}

	if tr := root.SelectElement("tokenRange"); tr != nil {
		rec.TokenRange.Enabled = tr.SelectAttrValue("enabled", "false") == "true"
		var err error
		if rec.TokenRange.From, err = strconv.Atoi(tr.SelectAttrValue("from", "0")); err != nil {
			return rec, err
		}
		if rec.TokenRange.To, err = strconv.Atoi(tr.SelectAttrValue("to", "0")); err != nil {
			return rec, err
		}
	}

	if mods := root.SelectElement("modifiers"); mods != nil {
		for _, el := range mods.SelectElements("modifier") {
			on := el.SelectAttrValue("enabled", "false") == "true"
			switch types.Modifier(el.SelectAttrValue("name", "")) {
			case types.ModifierCanonicalEquivalence:
				rec.CanonicalEquivalence = on
			case types.ModifierDotAll:
				rec.DotAll = on
			case types.ModifierMultiline:
				rec.Multiline = on
			case types.ModifierUnixLines:
				rec.UnixLines = on
			}
		}
	}
	return rec, nil
}

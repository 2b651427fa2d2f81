package datastore

import (
	"encoding/base64"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/filesystem"
	"github.com/arthur-debert/tokenrule/pkg/logging"
	"github.com/arthur-debert/tokenrule/pkg/rules"
	"github.com/arthur-debert/tokenrule/pkg/types"
)

// FileStore keeps one rule file per node in a directory
type FileStore struct {
	fs     filesystem.FS
	dir    string
	format Format
	logger zerolog.Logger
}

// NewFileStore creates a store rooted at dir on fsys. The directory is
// created on the first write.
func NewFileStore(fsys filesystem.FS, dir string, format Format) (*FileStore, error) {
	if fsys == nil {
		return nil, errors.New(errors.ErrInvalidInput, "store filesystem is required")
	}
	if dir == "" {
		return nil, errors.New(errors.ErrInvalidInput, "store directory is required")
	}
	f, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}
	return &FileStore{
		fs:     fsys,
		dir:    dir,
		format: f,
		logger: logging.GetLogger("datastore.file"),
	}, nil
}

// Dir returns the store directory
func (s *FileStore) Dir() string { return s.dir }

// Format returns the encoding used for new files
func (s *FileStore) Format() Format { return s.format }

// Path returns the file a node's rule is stored in
func (s *FileStore) Path(nodeID string) string {
	return filepath.Join(s.dir, FileName(nodeID)+s.format.Ext())
}

// Persist writes the rule, replacing any previous rule for the node. A
// file at the node's path that holds another node's rule is never
// overwritten.
func (s *FileStore) Persist(rule rules.ValidatedRule) error {
	defer logging.LogDuration(time.Now(), "persist rule")

	if rule.IsZero() {
		return errors.New(errors.ErrInvalidInput, "cannot persist a rule without a node id")
	}

	data, err := Encode(rule, s.format)
	if err != nil {
		return errors.Wrapf(err, errors.ErrSinkWrite, "failed to encode rule for node %s", rule.NodeID())
	}

	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to create store directory %s", s.dir)
	}

	path := s.Path(rule.NodeID())
	if err := s.checkOwner(path, rule.NodeID()); err != nil {
		return err
	}
	if err := s.write(path, data); err != nil {
		return errors.Wrapf(err, errors.ErrSinkWrite, "failed to write %s", path)
	}

	s.logger.Info().
		Str("node", rule.NodeID()).
		Str("path", path).
		Msg("Rule stored")
	return nil
}

// checkOwner fails when path holds a record for a node other than nodeID
func (s *FileStore) checkOwner(path, nodeID string) error {
	data, err := s.fs.ReadFile(path)
	if filesystem.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}
	rec, err := DecodeRecord(data, s.format)
	if err != nil || rec.NodeID == "" || rec.NodeID == nodeID {
		return nil
	}
	return errors.Newf(errors.ErrAlreadyExists, "%s already holds the rule for node %s", path, rec.NodeID).
		WithDetail("node", nodeID).
		WithDetail("owner", rec.NodeID)
}

// write replaces path with data, through a temp file when the
// filesystem can rename
func (s *FileStore) write(path string, data []byte) error {
	renamer, ok := s.fs.(filesystem.Renamer)
	if !ok {
		return s.fs.WriteFile(path, data, 0644)
	}

	tmp := filepath.Join(filepath.Dir(path), ".rule-"+uuid.NewString())
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := renamer.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return err
	}
	return nil
}

// Load reads the rule stored for nodeID
func (s *FileStore) Load(nodeID string) (rules.ValidatedRule, error) {
	path := s.Path(nodeID)
	data, err := s.fs.ReadFile(path)
	if filesystem.IsNotExist(err) {
		return rules.ValidatedRule{}, errors.Newf(errors.ErrRuleNotFound, "no rule stored for node %s", nodeID).
			WithDetail("path", path)
	}
	if err != nil {
		return rules.ValidatedRule{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}
	rule, err := Decode(data, s.format)
	if err != nil {
		return rules.ValidatedRule{}, err
	}
	if rule.NodeID() != nodeID {
		return rules.ValidatedRule{}, errors.Newf(errors.ErrInvalidRecord,
			"%s holds the rule for node %s, not %s", path, rule.NodeID(), nodeID).
			WithDetail("path", path)
	}
	return rule, nil
}

// Entry is one rule file found by Scan. Err is set when the file could
// not be read, decoded or restored; NodeID then falls back to the id
// encoded in the file name.
type Entry struct {
	Path   string
	NodeID string
	Record types.RuleRecord
	Rule   rules.ValidatedRule
	Err    error
}

// Scan reads every file in the store's format, ordered by node id
func (s *FileStore) Scan() ([]Entry, error) {
	entries, err := s.fs.ReadDir(s.dir)
	if filesystem.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read store directory %s", s.dir)
	}

	var found []Entry
	for _, de := range entries {
		name := de.Name()
		if de.IsDir() || filepath.Ext(name) != s.format.Ext() {
			continue
		}
		found = append(found, s.scanFile(name))
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].NodeID < found[j].NodeID
	})
	return found, nil
}

func (s *FileStore) scanFile(name string) Entry {
	e := Entry{Path: filepath.Join(s.dir, name)}
	e.NodeID, _ = NodeIDFromFileName(strings.TrimSuffix(name, s.format.Ext()))

	data, err := s.fs.ReadFile(e.Path)
	if err != nil {
		e.Err = errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", e.Path)
		return e
	}
	if e.Record, e.Err = DecodeRecord(data, s.format); e.Err != nil {
		return e
	}
	if e.Record.NodeID != "" && e.Record.NodeID != e.NodeID {
		e.Err = errors.Newf(errors.ErrInvalidRecord, "%s holds the rule for node %s", e.Path, e.Record.NodeID).
			WithDetail("path", e.Path)
		return e
	}
	e.Rule, e.Err = rules.Restore(e.Record)
	return e
}

// List returns every valid rule in the store's format, ordered by node
// id. Files that fail Scan are skipped with a warning.
func (s *FileStore) List() ([]rules.ValidatedRule, error) {
	entries, err := s.Scan()
	if err != nil {
		return nil, err
	}

	logger := logging.WithFields(map[string]interface{}{
		"dir":    s.dir,
		"format": string(s.format),
	})
	var list []rules.ValidatedRule
	for _, e := range entries {
		if e.Err != nil {
			logger.Warn().Err(e.Err).Str("path", e.Path).Msg("Skipping invalid rule file")
			continue
		}
		list = append(list, e.Rule)
	}
	return list, nil
}

// Delete removes the rule stored for nodeID
func (s *FileStore) Delete(nodeID string) error {
	path := s.Path(nodeID)
	if err := s.checkOwner(path, nodeID); err != nil {
		return err
	}
	if err := s.fs.Remove(path); err != nil {
		if filesystem.IsNotExist(err) {
			return errors.Newf(errors.ErrRuleNotFound, "no rule stored for node %s", nodeID)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", path)
	}
	s.logger.Info().Str("node", nodeID).Msg("Rule deleted")
	return nil
}

// encodedPrefix marks file names that carry an encoded node id. It never
// appears in a name kept as is.
const encodedPrefix = "~"

// FileName turns a node id into a file name (without extension). Ids made
// of letters, digits, '-', '_' and '.' that do not start with '.' are used
// as is; any other id is base64url encoded behind a '~', so two ids never
// share a name.
func FileName(nodeID string) string {
	if plainName(nodeID) {
		return nodeID
	}
	return encodedPrefix + base64.RawURLEncoding.EncodeToString([]byte(nodeID))
}

// NodeIDFromFileName reverses FileName
func NodeIDFromFileName(name string) (string, bool) {
	if plainName(name) {
		return name, true
	}
	if !strings.HasPrefix(name, encodedPrefix) {
		return "", false
	}
	id, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(name, encodedPrefix))
	if err != nil || plainName(string(id)) {
		return "", false
	}
	return string(id), true
}

func plainName(s string) bool {
	if s == "" || s[0] == '.' {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

// Package store locates, loads and exports prefix mapping files.
//
// Two formats are read: the line format "prefix|||||tag" and an ordered YAML
// document with a top-level "rules" sequence. Rule order is always kept.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/txtag/internal/fileutils"
	"fjacquet/txtag/internal/logging"
	"fjacquet/txtag/internal/mapping"
	"fjacquet/txtag/internal/tagerror"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// MappingStore reads and writes rule tables.
type MappingStore struct {
	Separator string // line format separator, mapping.DefaultSeparator when empty
	logger    logging.Logger
}

// NewMappingStore creates a store using sep for the line format.
func NewMappingStore(sep string, logger logging.Logger) *MappingStore {
	if sep == "" {
		sep = mapping.DefaultSeparator
	}
	return &MappingStore{Separator: sep, logger: logger}
}

// FindMappingFile resolves filename. Absolute paths are used as-is; relative
// names are looked up in the working directory, ./config, ./database and
// finally $HOME/.config/txtag.
func (s *MappingStore) FindMappingFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if fileutils.FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", "txtag", filename))
	}

	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// Load resolves and parses a mapping file. Files ending in .yaml or .yml use
// the YAML format; anything else is read line by line.
func (s *MappingStore) Load(filename string) (*mapping.Table, error) {
	path, err := s.FindMappingFile(filename)
	if err != nil {
		return nil, &tagerror.ResourceError{Path: filename, Op: "open", Err: err}
	}

	var table *mapping.Table
	if isYAML(path) {
		table, err = s.loadYAML(path)
	} else {
		table, err = s.loadLines(path)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Loaded mapping rules",
		logging.Field{Key: logging.FieldMappingFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: table.Len()},
	)
	for _, sh := range table.Shadowed() {
		s.logger.Warn("Mapping rule can never match",
			logging.Field{Key: logging.FieldMappingFile, Value: path},
			logging.Field{Key: logging.FieldPrefix, Value: sh.Rule.Prefix},
			logging.Field{Key: "shadowed_by", Value: sh.ByRule.Prefix},
		)
	}
	return table, nil
}

func (s *MappingStore) loadLines(path string) (*mapping.Table, error) {
	f, err := fileutils.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close mapping file")
		}
	}()
	return mapping.ReadRules(path, f, s.Separator)
}

func (s *MappingStore) loadYAML(path string) (*mapping.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &tagerror.ResourceError{Path: path, Op: "read", Err: err}
	}
	return parseYAML(path, data)
}

// parseYAML accepts either {rules: [...]} or a bare sequence of rules.
func parseYAML(path string, data []byte) (*mapping.Table, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &tagerror.ConfigError{Source: path, Reason: err.Error()}
	}
	if len(root.Content) == 0 {
		return mapping.NewTable(nil), nil
	}

	items, err := ruleNodes(root.Content[0])
	if err != nil {
		return nil, &tagerror.ConfigError{Source: path, Line: root.Content[0].Line, Reason: err.Error()}
	}

	rules := make([]mapping.Rule, 0, len(items))
	for _, node := range items {
		var rule mapping.Rule
		if err := node.Decode(&rule); err != nil {
			return nil, &tagerror.ConfigError{Source: path, Line: node.Line, Reason: err.Error()}
		}
		if rule.Tag == "" {
			return nil, &tagerror.ConfigError{
				Source:  path,
				Line:    node.Line,
				Content: rule.Prefix,
				Reason:  "empty tag",
			}
		}
		rules = append(rules, rule)
	}
	return mapping.NewTable(rules), nil
}

func ruleNodes(node *yaml.Node) ([]*yaml.Node, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		return node.Content, nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value != "rules" {
				continue
			}
			value := node.Content[i+1]
			if value.Kind != yaml.SequenceNode {
				return nil, errors.New("rules must be a sequence")
			}
			return value.Content, nil
		}
		return nil, errors.New("missing rules key")
	}
	return nil, errors.New("expected a rules mapping or a sequence")
}

// SaveYAML writes table to path in the YAML format.
func (s *MappingStore) SaveYAML(path string, table *mapping.Table) error {
	data, err := yaml.Marshal(struct {
		Rules []mapping.Rule `yaml:"rules"`
	}{Rules: table.Rules()})
	if err != nil {
		return fmt.Errorf("error marshaling mapping rules: %w", err)
	}

	f, err := fileutils.CreateOutput(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return &tagerror.ResourceError{Path: path, Op: "write", Err: err}
	}
	if err := f.Close(); err != nil {
		return &tagerror.ResourceError{Path: path, Op: "close", Err: err}
	}

	s.logger.Debug("Saved mapping rules",
		logging.Field{Key: logging.FieldMappingFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: table.Len()},
	)
	return nil
}

// ruleRow is the CSV export shape; Position is 1-based lookup order.
type ruleRow struct {
	Position int    `csv:"position"`
	Prefix   string `csv:"prefix"`
	Tag      string `csv:"tag"`
}

// ExportCSV writes the rules as a quoted CSV for review in a spreadsheet.
func (s *MappingStore) ExportCSV(path string, table *mapping.Table, delim rune) (err error) {
	rows := make([]ruleRow, 0, table.Len())
	for i, r := range table.Rules() {
		rows = append(rows, ruleRow{Position: i + 1, Prefix: r.Prefix, Tag: r.Tag})
	}

	f, err := fileutils.CreateOutput(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &tagerror.ResourceError{Path: path, Op: "close", Err: cerr}
		}
	}()

	w := csv.NewWriter(f)
	if delim != 0 {
		w.Comma = delim
	}
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(w)); err != nil {
		return fmt.Errorf("error writing mapping CSV: %w", err)
	}
	return nil
}

// Export writes table to path, choosing YAML or CSV from the extension.
func (s *MappingStore) Export(path string, table *mapping.Table) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return s.SaveYAML(path, table)
	case ".csv":
		return s.ExportCSV(path, table, ',')
	}
	return errors.New("unsupported export format " + filepath.Ext(path) + " (use .yaml, .yml or .csv)")
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

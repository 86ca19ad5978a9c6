package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/txtag/internal/logging"
	"fjacquet/txtag/internal/mapping"
	"fjacquet/txtag/internal/tagerror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func newTestStore() (*MappingStore, *logging.MockLogger) {
	logger := logging.NewMockLogger()
	return NewMappingStore("", logger), logger
}

func TestNewMappingStore_DefaultSeparator(t *testing.T) {
	s := NewMappingStore("", logging.NewMockLogger())
	assert.Equal(t, mapping.DefaultSeparator, s.Separator)

	s = NewMappingStore("=>", logging.NewMockLogger())
	assert.Equal(t, "=>", s.Separator)
}

func TestFindMappingFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tags.txt")
	writeFile(t, file, "AB|||||X\n")
	s, _ := newTestStore()

	found, err := s.FindMappingFile(file)
	require.NoError(t, err)
	assert.Equal(t, file, found)

	_, err = s.FindMappingFile(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindMappingFile_ConfigDirectory(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.Mkdir("config", 0750))
	writeFile(t, filepath.Join("config", "tags.txt"), "AB|||||X\n")
	s, _ := newTestStore()

	found, err := s.FindMappingFile("tags.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("config", "tags.txt"), found)
}

func TestLoad_LineFormat(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tags.txt")
	writeFile(t, file, "AB|||||X\nABC|||||Y\nsbb|||||Transport\n")
	s, logger := newTestStore()

	table, err := s.Load(file)
	require.NoError(t, err)
	assert.Equal(t, []mapping.Rule{
		{Prefix: "AB", Tag: "X"},
		{Prefix: "ABC", Tag: "Y"},
		{Prefix: "sbb", Tag: "Transport"},
	}, table.Rules())

	// ABC sits behind AB and can never match.
	assert.True(t, logger.HasEntry("WARN", "Mapping rule can never match"))
}

func TestLoad_LineFormatMalformed(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tags.txt")
	writeFile(t, file, "AB|||||X\nAB|||||X|||||Z\n")
	s, _ := newTestStore()

	table, err := s.Load(file)
	assert.Nil(t, table)

	var cfgErr *tagerror.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, file, cfgErr.Source)
	assert.Equal(t, 2, cfgErr.Line)
}

func TestLoad_CustomSeparator(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tags.txt")
	writeFile(t, file, "COOP=>Groceries\n")

	table, err := NewMappingStore("=>", logging.NewMockLogger()).Load(file)
	require.NoError(t, err)
	tag, found := table.FindTag("coop basel")
	assert.True(t, found)
	assert.Equal(t, "Groceries", tag)
}

func TestLoad_Missing(t *testing.T) {
	s, _ := newTestStore()

	_, err := s.Load(filepath.Join(t.TempDir(), "missing.txt"))

	var resErr *tagerror.ResourceError
	require.True(t, errors.As(err, &resErr))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_YAML(t *testing.T) {
	tests := []struct {
		name    string
		content string
		expect  []mapping.Rule
	}{
		{
			name: "rules key keeps order",
			content: `rules:
  - prefix: ZZZ
    tag: Last
  - prefix: AAA
    tag: First
`,
			expect: []mapping.Rule{{Prefix: "ZZZ", Tag: "Last"}, {Prefix: "AAA", Tag: "First"}},
		},
		{
			name: "bare sequence",
			content: `- prefix: COOP
  tag: Groceries
- prefix: ""
  tag: Other
`,
			expect: []mapping.Rule{{Prefix: "COOP", Tag: "Groceries"}, {Prefix: "", Tag: "Other"}},
		},
		{
			name:    "empty file",
			content: "",
			expect:  []mapping.Rule{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "tags.yaml")
			writeFile(t, file, tt.content)
			s, _ := newTestStore()

			table, err := s.Load(file)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, table.Rules())
		})
	}
}

func TestLoad_YAMLErrors(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		expectLine int
		reason     string
	}{
		{name: "empty tag", content: "rules:\n  - prefix: COOP\n    tag: X\n  - prefix: SBB\n", expectLine: 4, reason: "empty tag"},
		{name: "missing rules key", content: "other: 1\n", expectLine: 1, reason: "missing rules key"},
		{name: "rules not a sequence", content: "rules: nope\n", expectLine: 1, reason: "rules must be a sequence"},
		{name: "scalar document", content: "hello\n", expectLine: 1, reason: "expected a rules mapping"},
		{name: "invalid syntax", content: "rules: [\n", reason: "yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "tags.yml")
			writeFile(t, file, tt.content)
			s, _ := newTestStore()

			_, err := s.Load(file)
			var cfgErr *tagerror.ConfigError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, tt.expectLine, cfgErr.Line)
			assert.Contains(t, cfgErr.Reason, tt.reason)
		})
	}
}

func TestSaveYAML_RoundTripsOrder(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "export", "tags.yaml")
	table := mapping.NewTable([]mapping.Rule{{Prefix: "ZZZ", Tag: "Last"}, {Prefix: "AAA", Tag: "First"}})
	s, _ := newTestStore()

	require.NoError(t, s.Export(out, table))

	reloaded, err := s.Load(out)
	require.NoError(t, err)
	assert.Equal(t, table.Rules(), reloaded.Rules())
}

func TestExportCSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tags.csv")
	table := mapping.NewTable([]mapping.Rule{{Prefix: "AB", Tag: "X"}, {Prefix: "Coop, Basel", Tag: "Groceries"}})
	s, _ := newTestStore()

	require.NoError(t, s.Export(out, table))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "position,prefix,tag\n1,AB,X\n2,\"Coop, Basel\",Groceries\n", string(data))
}

func TestExport_UnsupportedFormat(t *testing.T) {
	s, _ := newTestStore()
	err := s.Export(filepath.Join(t.TempDir(), "tags.json"), mapping.NewTable(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".json")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

package root_test

import (
	"bytes"
	"os"
	"testing"

	"fjacquet/txtag/cmd/root"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "txtag", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "tag transaction CSV rows")
	assert.Contains(t, root.Cmd.Long, "The first rule whose prefix matches wins")
	assert.NotNil(t, root.Cmd.RunE)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
}

func TestRootCommand_Flags(t *testing.T) {
	root.Init()
	root.Init() // second call must not redefine flags

	for _, name := range []string{"config", "log-level", "log-format"} {
		flag := root.Cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "", flag.DefValue, name)
	}
}

func TestRootCommand_LoadsConfigAndLogger(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)
	t.Setenv("TXTAG_TAGGING_COLUMN", "5")
	root.Init()

	var out bytes.Buffer
	root.Cmd.SetOut(&out)
	root.Cmd.SetErr(&out)
	root.Cmd.SetArgs([]string{"--log-level", "debug"})
	t.Cleanup(func() {
		root.Cmd.SetArgs(nil)
		_ = root.Cmd.PersistentFlags().Set("log-level", "")
	})

	require.NoError(t, root.Cmd.Execute())

	cfg := root.GetConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, 5, cfg.Tagging.Column)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NotNil(t, root.GetLogger())
	assert.Contains(t, out.String(), "Configuration loaded")
	assert.Contains(t, out.String(), "Usage:")
}

func TestGlobalFlags_Structure(t *testing.T) {
	flags := root.GlobalFlags{ConfigFile: "c.yaml", LogLevel: "warn", LogFormat: "json"}
	assert.Equal(t, "c.yaml", flags.ConfigFile)
	assert.Equal(t, "warn", flags.LogLevel)
	assert.Equal(t, "json", flags.LogFormat)
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

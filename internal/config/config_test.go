package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("archive", "", "")
	fs.String("addr", defaultAddr, "")
	fs.String("log-level", "", "")
	fs.String("config", defaultConfigFile, "")
	return fs
}

// inTempDir runs the test from an empty directory so no stray config file
// is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestResolveDefaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Archive)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, ".hours.yaml", cfg.ConfigFile)
	assert.False(t, cfg.FileLoaded)
}

func TestResolvePrecedence(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hours.yaml"),
		[]byte("archive: from-file.zip\naddr: \":7000\"\nlog_level: warn\nlog_format: json\n"), 0o644))

	cfg, err := Resolve(nil)
	require.NoError(t, err)
	assert.True(t, cfg.FileLoaded)
	assert.Equal(t, filepath.Join(dir, "from-file.zip"), cfg.Archive)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)

	t.Setenv("HOURS_ADDR", ":9000")
	t.Setenv("HOURS_LOG_LEVEL", "DEBUG")
	cfg, err = Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--addr", ":1234", "--archive", "/tmp/export.zip"}))
	cfg, err = Resolve(flags)
	require.NoError(t, err)
	assert.Equal(t, ":1234", cfg.Addr)
	assert.Equal(t, "/tmp/export.zip", cfg.Archive)
	assert.Equal(t, "debug", cfg.LogLevel, "unset flag must not shadow the environment")
}

func TestResolveExplicitConfigFile(t *testing.T) {
	inTempDir(t)
	other := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(other, []byte("addr: \":6000\"\n"), 0o644))

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--config", other}))
	cfg, err := Resolve(flags)
	require.NoError(t, err)
	assert.Equal(t, other, cfg.ConfigFile)
	assert.Equal(t, ":6000", cfg.Addr)
}

func TestResolveMissingConfigFileIsNotAnError(t *testing.T) {
	inTempDir(t)
	t.Setenv("HOURS_CONFIG", "does-not-exist.yaml")

	cfg, err := Resolve(nil)
	require.NoError(t, err)
	assert.False(t, cfg.FileLoaded)
}

func TestResolveInvalidConfigFile(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hours.yaml"), []byte("addr: [unclosed\n"), 0o644))

	_, err := Resolve(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestResolveInvalidLogFormat(t *testing.T) {
	inTempDir(t)
	t.Setenv("HOURS_LOG_FORMAT", "xml")

	_, err := Resolve(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestArchiveExists(t *testing.T) {
	dir := t.TempDir()

	exists, err := (&Config{}).ArchiveExists()
	require.NoError(t, err)
	assert.False(t, exists, "unset archive")

	exists, err = (&Config{Archive: filepath.Join(dir, "missing.zip")}).ArchiveExists()
	require.NoError(t, err)
	assert.False(t, exists)

	path := filepath.Join(dir, "export.zip")
	require.NoError(t, os.WriteFile(path, []byte("zip"), 0o644))
	exists, err = (&Config{Archive: path}).ArchiveExists()
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = (&Config{Archive: dir}).ArchiveExists()
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader(t *testing.T, env map[string]string) *Loader {
	t.Helper()
	l := NewLoader().WithConfigFile("")
	l.getenv = func(key string) string { return env[key] }
	return l
}

func TestLoader_Load_Defaults(t *testing.T) {
	cfg, err := newTestLoader(t, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultDBFilename, cfg.Database.Filename)
}

func TestLoader_Cascade(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "database:\n  filename: from-file.db\n  dir: /from/file\ntime:\n  display_format: \"2006-01-02\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	l := NewLoader().WithConfigFile(path)
	env := map[string]string{"METRONOME_DB_FILENAME": "from-env.db"}
	l.getenv = func(key string) string { return env[key] }

	dir := "/from/flag"
	cfg, err := l.LoadWithOverrides(&ConfigOverrides{DBDir: &dir})
	require.NoError(t, err)

	assert.Equal(t, "/from/flag", cfg.Database.Dir, "flags beat the file")
	assert.Equal(t, "from-env.db", cfg.Database.Filename, "environment beats the file")
	assert.Equal(t, "2006-01-02", cfg.Time.DisplayFormat, "file beats defaults")
}

func TestLoader_MissingDefaultFileIsIgnored(t *testing.T) {
	t.Setenv("METRONOME_CONFIG", "")
	t.Setenv("HOME", t.TempDir())

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoader_MissingExplicitFileFails(t *testing.T) {
	t.Setenv("METRONOME_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := NewLoader().Load()
	assert.Error(t, err)
}

func TestLoader_OverridesAreValidated(t *testing.T) {
	style := "sparkly"
	_, err := newTestLoader(t, nil).LoadWithOverrides(&ConfigOverrides{TableStyle: &style})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "display.table_style")
}

func TestConfigOverrides_Apply(t *testing.T) {
	cfg := NewConfig()
	dir, file, format, category, style := "/d", "f.db", "15:04", "Ops", "ascii"
	verbose := true

	(&ConfigOverrides{
		DBDir:           &dir,
		DBFilename:      &file,
		TimeFormat:      &format,
		DefaultCategory: &category,
		TableStyle:      &style,
		Verbose:         &verbose,
	}).Apply(cfg)

	assert.Equal(t, "/d", cfg.Database.Dir)
	assert.Equal(t, "f.db", cfg.Database.Filename)
	assert.Equal(t, "15:04", cfg.Time.DisplayFormat)
	assert.Equal(t, "Ops", cfg.Validation.DefaultCategory)
	assert.Equal(t, "ascii", cfg.Display.TableStyle)
	assert.True(t, cfg.Application.Verbose)
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, 3, ParseIntWithFallback("3", 1))
	assert.Equal(t, 1, ParseIntWithFallback("x", 1))
	assert.True(t, ParseBoolWithFallback("true", false))
	assert.False(t, ParseBoolWithFallback("maybe", false))
	assert.Equal(t, uint32(0700), ParseUint32WithFallback("700", 8, 0755))
	assert.Equal(t, uint32(0755), ParseUint32WithFallback("9", 8, 0755))
}

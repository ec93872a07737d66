package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file gives defaults", func(t *testing.T) {
		config, err := LoadFrom(filepath.Join(dir, "none.json"))
		require.NoError(t, err)
		assert.Equal(t, Default(), config)
	})

	t.Run("partial file keeps defaults for absent keys", func(t *testing.T) {
		path := filepath.Join(dir, "partial.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"theme":"Ocean Neon","scale":9,"volume":-4}`), 0o644))
		config, err := LoadFrom(path)
		require.NoError(t, err)
		assert.Equal(t, "Ocean Neon", config.Theme)
		assert.Equal(t, MaxScale, config.Scale)
		assert.Equal(t, 0, config.Volume)
		assert.True(t, config.Sound)
		assert.True(t, config.Animations)
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"theme":`), 0o644))
		config, err := LoadFrom(path)
		assert.Error(t, err)
		assert.Equal(t, Default(), config)
	})
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	want := Config{Theme: "Mono Matrix", Music: false, Sound: true, Volume: 35, Scale: 2}
	require.NoError(t, SaveTo(path, want))

	got, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadUsesUserConfigDir(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	t.Setenv("HOME", root)

	config := Default()
	config.Volume = 40
	require.NoError(t, Save(config))
	path, err := Path()
	require.NoError(t, err)
	assert.FileExists(t, path)

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 40, loaded.Volume)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, Default().Validate())

	config := Default()
	config.MusicFile = filepath.Join(dir, "missing.mp3")
	assert.ErrorIs(t, config.Validate(), ErrMusicFile)
	assert.ErrorIs(t, config.Validate(), os.ErrNotExist)

	config.MusicFile = dir
	assert.ErrorIs(t, config.Validate(), ErrMusicFile)

	file := filepath.Join(dir, "theme.mp3")
	require.NoError(t, os.WriteFile(file, []byte("id3"), 0o644))
	config.MusicFile = file
	assert.NoError(t, config.Validate())
}

func TestVolumeFraction(t *testing.T) {
	assert.InDelta(t, 0.7, Default().VolumeFraction(), 1e-9)
	assert.InDelta(t, 1.0, Config{Volume: 150}.VolumeFraction(), 1e-9)
}

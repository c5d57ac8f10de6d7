package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_Fetch_Success(t *testing.T) {
	t.Parallel()

	content := []byte(`
name: test-app
version: "1.0"
`)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, content, 0o600)
	require.NoError(t, err)

	fetcher, err := NewFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, configPath, fetcher.Name())

	data, err := fetcher.Fetch()

	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestFile_Fetch_FileNotFound(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFile("/nonexistent/path/config.yaml")

	require.Error(t, err)
	assert.Nil(t, fetcher)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "stat file")
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestFile_Fetch_Directory(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFile(t.TempDir())

	require.ErrorIs(t, err, ErrPathIsDirectory)
	assert.Nil(t, fetcher)
}

func TestFile_Fetch_ReturnsCopy(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "config.json")

	err := os.WriteFile(configPath, []byte(`{"a":1}`), 0o600)
	require.NoError(t, err)

	fetcher, err := NewFile(configPath)
	require.NoError(t, err)

	first, err := fetcher.Fetch()
	require.NoError(t, err)

	first[0] = 'X'

	second, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), second)
}

func TestFile_CleansPath(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("a: 1\n"), 0o600)
	require.NoError(t, err)

	fetcher, err := NewFile(tmpDir + "/./sub/../config.yaml")
	require.NoError(t, err)
	assert.Equal(t, configPath, fetcher.Name())
}

func TestReader_FetchCachesData(t *testing.T) {
	t.Parallel()

	r := NewReader(StdinName, strings.NewReader("k: v\n"))

	first, err := r.Fetch()
	require.NoError(t, err)

	second, err := r.Fetch()
	require.NoError(t, err)

	assert.Equal(t, "-", r.Name())
	assert.Equal(t, []byte("k: v\n"), first)
	assert.Equal(t, first, second)
}

func TestExpand(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	for _, name := range []string{"b.yml", "a.yml", "c.json"} {
		err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x: 1\n"), 0o600)
		require.NoError(t, err)
	}

	explicit := filepath.Join(tmpDir, "c.json")
	missing := filepath.Join(tmpDir, "missing.toml")

	paths, err := Expand(explicit, filepath.Join(tmpDir, "*.yml"), missing, filepath.Join(tmpDir, "*.json"), filepath.Join(tmpDir, "*.ini"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		explicit,
		filepath.Join(tmpDir, "a.yml"),
		filepath.Join(tmpDir, "b.yml"),
		missing,
	}, paths)
}

func TestExpand_BadPattern(t *testing.T) {
	t.Parallel()

	_, err := Expand("[")
	require.Error(t, err)
}

func TestIsGlob(t *testing.T) {
	t.Parallel()

	assert.True(t, IsGlob("conf/*.yml"))
	assert.True(t, IsGlob("a?.json"))
	assert.True(t, IsGlob("[ab].json"))
	assert.False(t, IsGlob("conf/app.yml"))
	assert.False(t, IsGlob("-"))
}

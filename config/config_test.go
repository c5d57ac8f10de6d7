package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/0xalexb/anyconf"
	"github.com/0xalexb/anyconf/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type simpleConfig struct {
	Name string `yaml:"name"`
}

type configWithDefaults struct {
	Name    string `yaml:"name"`
	changed bool
}

func (c *configWithDefaults) SetDefaults() bool {
	return c.changed
}

type configWithBoth struct {
	Name    string `yaml:"name"`
	changed bool
	err     error
}

func (c *configWithBoth) SetDefaults() bool {
	return c.changed
}

func (c *configWithBoth) Validate() error {
	return c.err
}

type serviceConfig struct {
	Host    string        `yaml:"host"`
	Port    int           `yaml:"port"`
	Timeout time.Duration `yaml:"timeout"`
	Tags    []string      `yaml:"tags"`
	Debug   bool          `yaml:"debug"`
}

func newLoader(t *testing.T) *anyconf.Loader {
	t.Helper()

	loader, err := anyconf.New(anyconf.WithLogger(logging.Discard()))
	require.NoError(t, err)

	return loader
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestProvider_Success(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "app.yaml", "name: test\n")
	target := &simpleConfig{}

	result, err := Provider(target, "", []string{path})(newLoader(t))
	require.NoError(t, err)
	assert.Same(t, target, result)
	assert.Equal(t, "test", result.Name)
}

func TestProvider_SectionAcrossFormats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := writeFile(t, dir, "base.yaml", `
services:
  api:
    host: api.local
    port: 80
    timeout: 5s
    tags: [a, b]
`)
	override := writeFile(t, dir, "override.toml", `
[services.api]
port = "8080"
debug = "true"
`)

	target := &serviceConfig{}

	result, err := Provider(target, "services.api", []string{base, override})(newLoader(t))
	require.NoError(t, err)
	assert.Equal(t, &serviceConfig{
		Host:    "api.local",
		Port:    8080,
		Timeout: 5 * time.Second,
		Tags:    []string{"a", "b"},
		Debug:   true,
	}, result)
}

func TestProvider_MissingSectionKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "app.json", `{"other": {"name": "x"}}`)
	target := &configWithDefaults{Name: "preset", changed: true}

	result, err := Provider(target, "/services/api", []string{path})(newLoader(t))
	require.NoError(t, err)
	assert.Equal(t, "preset", result.Name)
}

func TestProvider_WithLoadOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "present.yaml", "name: present\n")
	target := &simpleConfig{}

	provider := Provider(target, "", []string{filepath.Join(dir, "absent.yaml"), path}, anyconf.WithIgnoreMissing())

	result, err := provider(newLoader(t))
	require.NoError(t, err)
	assert.Equal(t, "present", result.Name)
}

func TestProvider_Errors(t *testing.T) {
	t.Parallel()

	validationErr := errors.New("validation failed")

	dir := t.TempDir()
	valid := writeFile(t, dir, "valid.yaml", "name: ok\n")
	broken := writeFile(t, dir, "broken.json", "{")
	scalar := writeFile(t, dir, "scalar.yaml", "name: [1, 2]\n")

	tests := []struct {
		name      string
		inputs    []string
		targetErr error
		wantErr   error
	}{
		{
			name:    "fetch error",
			inputs:  []string{filepath.Join(dir, "absent.yaml")},
			wantErr: os.ErrNotExist,
		},
		{
			name:   "parse error",
			inputs: []string{broken},
		},
		{
			name:   "decode error",
			inputs: []string{scalar},
		},
		{
			name:      "validation error",
			inputs:    []string{valid},
			targetErr: validationErr,
			wantErr:   validationErr,
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			target := &configWithBoth{err: testInfo.targetErr}

			result, err := Provider(target, "", testInfo.inputs)(newLoader(t))
			require.Error(t, err)
			assert.Nil(t, result)

			if testInfo.wantErr != nil {
				require.ErrorIs(t, err, testInfo.wantErr)
			}
		})
	}
}

func TestProvider_NilTarget(t *testing.T) {
	t.Parallel()

	var target *simpleConfig

	_, err := Provider(target, "", []string{"unused.yaml"})(newLoader(t))
	require.ErrorIs(t, err, ErrNilTarget)
}

func TestProvider_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		changed bool
	}{
		{
			name:    "defaults changed",
			changed: true,
		},
		{
			name:    "defaults not changed",
			changed: false,
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, t.TempDir(), "app.yaml", "name: test\n")
			target := &configWithDefaults{changed: testInfo.changed}

			result, err := Provider(target, "", []string{path})(newLoader(t))
			require.NoError(t, err)
			assert.Same(t, target, result)
		})
	}
}

func TestDecode_IndexIntoSequence(t *testing.T) {
	t.Parallel()

	data := map[string]any{
		"servers": []any{
			map[string]any{"name": "primary"},
			map[string]any{"name": "replica"},
		},
	}

	var target simpleConfig

	require.NoError(t, Decode(data, "/servers/1", &target))
	assert.Equal(t, "replica", target.Name)
}

package builtin

import (
	"testing"

	"github.com/0xalexb/anyconf/codec"
	"github.com/0xalexb/anyconf/processor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_AllCodecs(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry()
	require.NoError(t, err)

	assert.Equal(t, []string{"ini", "json", "properties", "shellvars", "toml", "yaml"}, registry.Types())

	for _, p := range registry.List(false) {
		_, err := codec.As(p)
		require.NoError(t, err, p.ID())
	}
}

func TestNewRegistry_Resolution(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry()
	require.NoError(t, err)

	candidates := registry.List(false)

	testCases := []struct {
		path     string
		expected string
	}{
		{path: "a.json", expected: "json"},
		{path: "a.yml", expected: "yaml"},
		{path: "conf/a.YAML", expected: "yaml"},
		{path: "a.toml", expected: "toml"},
		{path: "a.ini", expected: "ini"},
		{path: "a.cfg", expected: "ini"},
		{path: "a.properties", expected: "properties"},
		{path: ".env", expected: "shellvars"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.path, func(t *testing.T) {
			t.Parallel()

			p, err := processor.Find(testCase.path, candidates, nil)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, p.Type())
		})
	}
}

func TestNewRegistry_ExtraOverridesByPriority(t *testing.T) {
	t.Parallel()

	type override struct {
		codec.Codec
	}

	base := Processors()[0].(codec.Codec)
	custom := &override{Codec: base}
	registry, err := NewRegistry()
	require.NoError(t, err)

	// same id replaces the stdlib json codec in place
	require.NoError(t, registry.Register(custom))

	p, err := processor.Find("x.json", registry.List(false), nil)
	require.NoError(t, err)
	assert.Same(t, custom, p)
}

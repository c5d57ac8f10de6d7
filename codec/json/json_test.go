package json

import (
	"testing"

	"github.com/0xalexb/anyconf/codec"
	"github.com/0xalexb/anyconf/tree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_Decode(t *testing.T) {
	t.Parallel()

	out, err := New().Decode([]byte(`{"name":"a","a":1,"b":{"b":[0,1],"c":"C"},"f":1.5,"n":null,"t":true,"big":1e400}`))
	require.NoError(t, err)

	root, ok := out.(*tree.Map)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "a", "b", "f", "n", "t", "big"}, root.Keys())

	plain := tree.ToPlain(out).(map[string]any)
	assert.Equal(t, "a", plain["name"])
	assert.Equal(t, int64(1), plain["a"])
	assert.Equal(t, map[string]any{"b": []any{int64(0), int64(1)}, "c": "C"}, plain["b"])
	assert.InDelta(t, 1.5, plain["f"], 0.0001)
	assert.Nil(t, plain["n"])
	assert.Equal(t, true, plain["t"])
	assert.Equal(t, "1e400", plain["big"])
}

func TestCodec_Decode_TopLevelArray(t *testing.T) {
	t.Parallel()

	out, err := New().Decode([]byte(`[{"k":"v"}, [], "s"]`))
	require.NoError(t, err)

	list, ok := out.([]any)
	require.True(t, ok)
	require.Len(t, list, 3)
	assert.IsType(t, &tree.Map{}, list[0])
	assert.Equal(t, []any{}, list[1])
	assert.Equal(t, "s", list[2])
}

func TestCodec_Decode_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		data string
	}{
		{name: "truncated", data: `{"a": [1, 2`},
		{name: "trailing data", data: `{"a": 1} {"b": 2}`},
		{name: "bad literal", data: `{"a": nope}`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := New().Decode([]byte(testCase.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "decode json")
		})
	}

	_, err := New().Decode(nil)
	require.ErrorIs(t, err, codec.ErrEmptyData)
}

func TestCodec_Encode_KeepsOrder(t *testing.T) {
	t.Parallel()

	root := tree.NewMap()
	root.Set("z", int64(1))
	root.Set("a", []any{"x"})

	data, err := New().Encode(root)
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"z\": 1,\n  \"a\": [\n    \"x\"\n  ]\n}\n", string(data))
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	src := []byte(`{"b":{"y":[1,{"k":false}],"x":"X"},"a":-2.25}`)

	c := New()

	first, err := c.Decode(src)
	require.NoError(t, err)

	data, err := c.Encode(first)
	require.NoError(t, err)

	second, err := c.Decode(data)
	require.NoError(t, err)

	assert.True(t, tree.Equal(first, second))
	assert.Equal(t, []string{"b", "a"}, second.(*tree.Map).Keys())
}

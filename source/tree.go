package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/0xalexb/anyconf/pointer"
	"github.com/0xalexb/anyconf/tree"
)

// ErrInvalidOption is returned for option entries that are not key=value.
var ErrInvalidOption = errors.New("invalid option")

// EnvLevelSeparator separates nesting levels in environment variable names.
const EnvLevelSeparator = "__"

// Source produces configuration data that needs no decoding.
type Source interface {
	Name() string
	Tree() (tree.Mapping, error)
}

// EnvSource maps environment variables to a tree.
type EnvSource struct {
	prefix  string
	environ []string
}

// Environ selects the variables of environ (KEY=value entries, as returned by
// os.Environ) starting with prefix followed by "_". The remainder is
// lowercased and split on "__" into nesting levels, and values are parsed with
// tree.ParseScalar: APP_DB__PORT=5432 becomes {db: {port: 5432}}. An empty
// prefix selects every variable.
func Environ(prefix string, environ []string) *EnvSource {
	return &EnvSource{prefix: prefix, environ: environ}
}

// Name identifies the source in logs.
func (e *EnvSource) Name() string {
	if e.prefix == "" {
		return "env"
	}

	return "env:" + e.prefix
}

// Tree builds the mapping. Later duplicates win.
func (e *EnvSource) Tree() (tree.Mapping, error) {
	out := tree.NewMap()

	want := ""
	if e.prefix != "" {
		want = strings.ToUpper(e.prefix) + "_"
	}

	for _, entry := range e.environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(strings.ToUpper(name), want) {
			continue
		}

		key := strings.ToLower(name[len(want):])
		if key == "" {
			continue
		}

		var segments []string

		for _, segment := range strings.Split(key, EnvLevelSeparator) {
			if segment != "" {
				segments = append(segments, segment)
			}
		}

		if len(segments) == 0 {
			continue
		}

		pointer.Set(out, "/"+strings.Join(escapeAll(segments), "/"), tree.ParseScalar(value))
	}

	return out, nil
}

// OptionSource maps "path=value" entries to a tree.
type OptionSource struct {
	entries []string
}

// Options builds a source from entries such as "server.port=8080" or
// "/a/b=text". Paths follow pointer.Split and values are parsed with
// tree.ParseScalar.
func Options(entries ...string) *OptionSource {
	return &OptionSource{entries: entries}
}

// Name identifies the source in logs.
func (o *OptionSource) Name() string {
	return "options"
}

// Tree builds the mapping. Entries are applied in order.
func (o *OptionSource) Tree() (tree.Mapping, error) {
	out := tree.NewMap()

	for _, entry := range o.entries {
		path, value, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("%w: %q, expected path=value", ErrInvalidOption, entry)
		}

		pointer.Set(out, strings.TrimSpace(path), tree.ParseScalar(value))
	}

	return out, nil
}

func escapeAll(segments []string) []string {
	out := make([]string, len(segments))
	for i, s := range segments {
		out[i] = strings.NewReplacer("~", "~0", "/", "~1").Replace(s)
	}

	return out
}

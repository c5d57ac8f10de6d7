package anyconf

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/0xalexb/anyconf/codec"
	"github.com/0xalexb/anyconf/codec/builtin"
	"github.com/0xalexb/anyconf/logging"
	"github.com/0xalexb/anyconf/merge"
	"github.com/0xalexb/anyconf/processor"
	"github.com/0xalexb/anyconf/query"
	"github.com/0xalexb/anyconf/render"
	"github.com/0xalexb/anyconf/schema"
	"github.com/0xalexb/anyconf/source"
	"github.com/0xalexb/anyconf/tree"
)

// ErrNotMapping is returned by MultiLoad when an input's top-level value
// cannot be merged because it is not a mapping.
var ErrNotMapping = errors.New("top-level value is not a mapping")

// ErrNoInputs is returned when no input could be resolved.
var ErrNoInputs = errors.New("no inputs")

// Loader resolves codecs for inputs and loads, merges and dumps configuration.
type Loader struct {
	registry *processor.Registry
	logger   *slog.Logger
	stdin    io.Reader
	stdout   io.Writer
}

// New creates a Loader. Without WithRegistry it uses the built-in codecs.
func New(opts ...Option) (*Loader, error) {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	registry := options.Registry
	if registry == nil {
		var err error

		registry, err = builtin.NewRegistry()
		if err != nil {
			return nil, fmt.Errorf("building registry: %w", err)
		}
	}

	err := registry.Register(options.Processors...)
	if err != nil {
		return nil, fmt.Errorf("registering processors: %w", err)
	}

	loader := &Loader{
		registry: registry,
		logger:   options.Logger,
		stdin:    options.Stdin,
		stdout:   options.Stdout,
	}

	if loader.logger == nil {
		loader.logger = createLogger(options.LogLevel, os.Stderr)
	}

	if loader.stdin == nil {
		loader.stdin = os.Stdin
	}

	if loader.stdout == nil {
		loader.stdout = os.Stdout
	}

	return loader, nil
}

func createLogger(level string, w io.Writer) *slog.Logger {
	if level == "" {
		return slog.Default()
	}

	return logging.NewLogger(logging.LoggerConfig{Level: level}, w)
}

// Registry returns the registry codecs are resolved from.
func (l *Loader) Registry() *processor.Registry {
	return l.registry
}

// List returns the registered processors sorted by id.
func (l *Loader) List() []processor.Processor {
	return l.registry.List(true)
}

// Find returns the codec for path, honoring WithType and WithProcessor.
func (l *Loader) Find(path string, opts ...LoadOption) (codec.Codec, error) {
	return l.find(path, newLoadOptions(opts))
}

func (l *Loader) find(path string, options LoadOptions) (codec.Codec, error) {
	if path == source.StdinName {
		path = ""
	}

	p, err := processor.Find(path, l.registry.List(false), options.selector())
	if err != nil {
		return nil, fmt.Errorf("finding processor: %w", err)
	}

	c, err := codec.As(p)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("processor selected",
		slog.String("input", path),
		slog.String("processor", c.ID()),
		slog.String("type", c.Type()))

	return c, nil
}

// Loads decodes data with the codec chosen by WithType or WithProcessor.
func (l *Loader) Loads(data []byte, opts ...LoadOption) (any, error) {
	options := newLoadOptions(opts)

	value, err := l.decode("", data, options)
	if err != nil {
		return nil, err
	}

	return l.finish(value, options)
}

// Load loads a single input: a file path, "-" for stdin (requires WithType),
// or a glob pattern, which is handed to MultiLoad.
func (l *Loader) Load(input string, opts ...LoadOption) (any, error) {
	if source.IsGlob(input) {
		return l.MultiLoad([]string{input}, opts...)
	}

	options := newLoadOptions(opts)

	value, found, err := l.loadInput(input, options)
	if err != nil {
		return nil, err
	}

	if !found {
		value = tree.NewMap()
	}

	return l.finish(value, options)
}

// MultiLoad loads every input in order, expanding glob patterns, and merges
// the results into one mapping with the selected strategy. Sources added
// with WithSources are merged last.
func (l *Loader) MultiLoad(inputs []string, opts ...LoadOption) (any, error) {
	options := newLoadOptions(opts)

	paths, err := source.Expand(inputs...)
	if err != nil {
		return nil, fmt.Errorf("resolving inputs: %w", err)
	}

	if len(paths) == 0 && len(options.Sources) == 0 && !options.IgnoreMissing {
		return nil, fmt.Errorf("%w: %v matched nothing", ErrNoInputs, inputs)
	}

	result := tree.NewMap()

	for _, path := range paths {
		value, found, err := l.loadInput(path, options)
		if err != nil {
			return nil, err
		}

		if !found {
			continue
		}

		err = l.fold(result, path, value, options)
		if err != nil {
			return nil, err
		}
	}

	for _, src := range options.Sources {
		value, err := src.Tree()
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", src.Name(), err)
		}

		err = l.fold(result, src.Name(), value, options)
		if err != nil {
			return nil, err
		}
	}

	return l.finish(result, options)
}

func (l *Loader) fold(result *tree.Map, name string, value any, options LoadOptions) error {
	if _, ok := tree.AsMapping(value); !ok {
		return fmt.Errorf("merging %s: %w (got %T)", name, ErrNotMapping, value)
	}

	_, err := merge.Merge(result, value, options.Merger)
	if err != nil {
		return fmt.Errorf("merging %s: %w", name, err)
	}

	l.logger.Debug("input merged", slog.String("input", name), slog.String("strategy", mergerName(options.Merger)))

	return nil
}

func mergerName(merger merge.Merger) string {
	if strategy, ok := merger.(merge.Strategy); ok {
		return strategy.String()
	}

	return "custom"
}

func (l *Loader) loadInput(input string, options LoadOptions) (any, bool, error) {
	fetcher, err := l.fetcher(input)
	if err != nil {
		if options.IgnoreMissing && errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("missing input skipped", slog.String("input", input))

			return nil, false, nil
		}

		return nil, false, err
	}

	data, err := fetcher.Fetch()
	if err != nil {
		return nil, false, fmt.Errorf("reading data error: %w", err)
	}

	value, err := l.decode(fetcher.Name(), data, options)
	if err != nil {
		return nil, false, err
	}

	l.logger.Debug("input loaded", slog.String("input", fetcher.Name()))

	return value, true, nil
}

func (l *Loader) fetcher(input string) (source.Fetcher, error) {
	if input == source.StdinName {
		return source.NewReader(source.StdinName, l.stdin), nil
	}

	return source.NewFile(input)
}

func (l *Loader) decode(name string, data []byte, options LoadOptions) (any, error) {
	c, err := l.find(name, options)
	if err != nil {
		return nil, err
	}

	if options.Template {
		data, err = render.Render(name, data, options.TemplateContext)
		if err != nil {
			return nil, err
		}
	}

	value, err := c.Decode(data)
	if err != nil {
		if name == "" {
			return nil, fmt.Errorf("parsing error: %w", err)
		}

		return nil, fmt.Errorf("parsing error in %s: %w", name, err)
	}

	return value, nil
}

func (l *Loader) finish(value any, options LoadOptions) (any, error) {
	if options.Schema != nil {
		err := schema.Validate(value, options.Schema)
		if err != nil {
			return nil, fmt.Errorf("validating error: %w", err)
		}
	}

	if options.Query != "" {
		return query.Search(options.Query, value)
	}

	return value, nil
}

// Dumps encodes data with the codec chosen by WithType or WithProcessor.
func (l *Loader) Dumps(data any, opts ...LoadOption) ([]byte, error) {
	c, err := l.find("", newLoadOptions(opts))
	if err != nil {
		return nil, err
	}

	out, err := c.Encode(data)
	if err != nil {
		return nil, fmt.Errorf("dumping error: %w", err)
	}

	return out, nil
}

// Dump encodes data and writes it to output, or to stdout for "-". The codec
// comes from the output extension unless WithType or WithProcessor is given.
func (l *Loader) Dump(data any, output string, opts ...LoadOption) error {
	c, err := l.find(output, newLoadOptions(opts))
	if err != nil {
		return err
	}

	out, err := c.Encode(data)
	if err != nil {
		return fmt.Errorf("dumping error: %w", err)
	}

	if output == source.StdinName {
		_, err = l.stdout.Write(out)
		if err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		return nil
	}

	err = os.WriteFile(output, out, 0o600)
	if err != nil {
		return fmt.Errorf("writing file %q: %w", output, err)
	}

	l.logger.Debug("output written", slog.String("output", output), slog.String("processor", c.ID()))

	return nil
}

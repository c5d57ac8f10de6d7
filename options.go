package anyconf

import (
	"io"
	"log/slog"

	"github.com/0xalexb/anyconf/merge"
	"github.com/0xalexb/anyconf/processor"
	"github.com/0xalexb/anyconf/source"

	"go.uber.org/fx"
)

// Options holds configuration settings for a Loader and the App built
// around it.
type Options struct {
	Modules    []fx.Option
	Registry   *processor.Registry
	Processors []processor.Processor
	Logger     *slog.Logger
	LogLevel   string
	Stdin      io.Reader
	Stdout     io.Writer
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application. New ignores them.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithRegistry makes the Loader resolve codecs from registry instead of the
// built-in one.
func WithRegistry(registry *processor.Registry) Option {
	return func(opts *Options) {
		opts.Registry = registry
	}
}

// WithProcessors registers additional processors on top of the registry.
// A processor reusing a built-in id replaces it.
func WithProcessors(processors ...processor.Processor) Option {
	return func(opts *Options) {
		opts.Processors = append(opts.Processors, processors...)
	}
}

// WithLogger sets the logger used for debug output. It takes precedence over
// WithLogLevel.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithLogLevel creates a JSON logger on stderr with the given level.
// Valid levels are: "debug", "info", "warn", "error".
// If not set, the Loader logs through slog.Default().
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithStdio replaces the streams used for the "-" input and output.
func WithStdio(stdin io.Reader, stdout io.Writer) Option {
	return func(opts *Options) {
		opts.Stdin = stdin
		opts.Stdout = stdout
	}
}

// LoadOptions holds per call settings for loading and dumping.
type LoadOptions struct {
	Type            string
	Processor       processor.Processor
	Merger          merge.Merger
	IgnoreMissing   bool
	Template        bool
	TemplateContext any
	Schema          any
	Query           string
	Sources         []source.Source
}

// LoadOption defines a function type for applying per call options.
type LoadOption func(*LoadOptions)

// WithType forces the processor by type or id instead of deriving it from
// the file extension.
func WithType(typeOrID string) LoadOption {
	return func(opts *LoadOptions) {
		opts.Type = typeOrID
	}
}

// WithProcessor forces a specific processor instance. It takes precedence
// over WithType.
func WithProcessor(p processor.Processor) LoadOption {
	return func(opts *LoadOptions) {
		opts.Processor = p
	}
}

// WithStrategy selects how multiple inputs are merged. The default is
// merge.MergeDicts.
func WithStrategy(strategy merge.Strategy) LoadOption {
	return func(opts *LoadOptions) {
		opts.Merger = strategy
	}
}

// WithMergeFunc merges multiple inputs with a custom function.
func WithMergeFunc(fn merge.Func) LoadOption {
	return func(opts *LoadOptions) {
		opts.Merger = fn
	}
}

// WithIgnoreMissing skips inputs that do not exist instead of failing.
func WithIgnoreMissing() LoadOption {
	return func(opts *LoadOptions) {
		opts.IgnoreMissing = true
	}
}

// WithTemplate renders every input as a text/template with ctx as its data
// before decoding it.
func WithTemplate(ctx any) LoadOption {
	return func(opts *LoadOptions) {
		opts.Template = true
		opts.TemplateContext = ctx
	}
}

// WithSchema validates the loaded result against a decoded JSON Schema.
func WithSchema(schemaDoc any) LoadOption {
	return func(opts *LoadOptions) {
		opts.Schema = schemaDoc
	}
}

// WithQuery filters the loaded result with a JMESPath expression.
func WithQuery(expr string) LoadOption {
	return func(opts *LoadOptions) {
		opts.Query = expr
	}
}

// WithSources merges already structured sources (environment, option lists)
// after the file inputs of MultiLoad.
func WithSources(sources ...source.Source) LoadOption {
	return func(opts *LoadOptions) {
		opts.Sources = append(opts.Sources, sources...)
	}
}

func newLoadOptions(opts []LoadOption) LoadOptions {
	var options LoadOptions

	for _, apply := range opts {
		apply(&options)
	}

	if options.Merger == nil {
		options.Merger = merge.MergeDicts
	}

	return options
}

func (o LoadOptions) selector() processor.Selector {
	if o.Processor != nil {
		return processor.ByInstance(o.Processor)
	}

	return processor.ByType(o.Type)
}

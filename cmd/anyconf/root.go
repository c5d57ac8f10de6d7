package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/0xalexb/anyconf"
	"github.com/0xalexb/anyconf/logging"
	"github.com/0xalexb/anyconf/merge"
	"github.com/0xalexb/anyconf/pointer"
	"github.com/0xalexb/anyconf/schema"
	"github.com/0xalexb/anyconf/source"
	"github.com/0xalexb/anyconf/tree"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	errSchemaRequired = errors.New("--validate requires --schema")
	errInvalidSet     = errors.New("--set expects PATH=VALUE")
	errSetOnScalar    = errors.New("--set needs a mapping to modify")
)

type rootFlags struct {
	itype         string
	otype         string
	output        string
	strategy      string
	get           string
	set           string
	query         string
	template      bool
	contextFile   string
	schemaFile    string
	validate      bool
	genSchema     bool
	ignoreMissing bool
	envPrefix     string
	options       []string
	logLevel      string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "anyconf [flags] INPUT...",
		Short:         "Load, merge and convert configuration files",
		Version:       fmt.Sprintf("%s (compiled %s)", anyconf.Version, anyconf.CompiledAt),
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, flags, args)
		},
	}

	f := rootCmd.Flags()
	f.StringVarP(&flags.itype, "itype", "I", "", "Input type or processor id, required for stdin")
	f.StringVarP(&flags.otype, "otype", "O", "", "Output type or processor id")
	f.StringVarP(&flags.output, "output", "o", "", "Output file, stdout when empty")
	f.StringVarP(&flags.strategy, "merge", "M", merge.MergeDicts.String(), "Merge strategy: "+strategyNames())
	f.StringVar(&flags.get, "get", "", "Print only the value at this path")
	f.StringVar(&flags.set, "set", "", "Set PATH=VALUE in the result before output")
	f.StringVarP(&flags.query, "query", "Q", "", "Filter the result with a JMESPath expression")
	f.BoolVar(&flags.template, "template", false, "Render inputs as templates before parsing")
	f.StringVar(&flags.contextFile, "context", "", "File providing the template context")
	f.StringVar(&flags.schemaFile, "schema", "", "JSON Schema file to validate the result against")
	f.BoolVar(&flags.validate, "validate", false, "Only validate the result against --schema")
	f.BoolVar(&flags.genSchema, "gen-schema", false, "Output a JSON Schema inferred from the result")
	f.BoolVar(&flags.ignoreMissing, "ignore-missing", false, "Skip inputs that do not exist")
	f.StringVar(&flags.envPrefix, "env-prefix", "", "Merge environment variables PREFIX_A__B=v as a.b")
	f.StringArrayVarP(&flags.options, "option", "A", nil, "Merge PATH=VALUE overrides, repeatable")
	f.StringVar(&flags.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newListCommand())

	return rootCmd
}

func strategyNames() string {
	names := make([]string, 0, len(merge.Strategies()))
	for _, s := range merge.Strategies() {
		names = append(names, s.String())
	}

	return strings.Join(names, ", ")
}

func newLogger(level string, w io.Writer) *slog.Logger {
	format := logging.FormatJSON
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		format = logging.FormatText
	}

	return logging.NewLogger(logging.LoggerConfig{Level: level, Format: format}, w)
}

func runRoot(cmd *cobra.Command, flags *rootFlags, inputs []string) error {
	if flags.validate && flags.schemaFile == "" {
		return errSchemaRequired
	}

	loader, err := anyconf.New(
		anyconf.WithLogger(newLogger(flags.logLevel, cmd.ErrOrStderr())),
		anyconf.WithStdio(cmd.InOrStdin(), cmd.OutOrStdout()),
	)
	if err != nil {
		return err
	}

	opts, err := flags.loadOptions(loader)
	if err != nil {
		return err
	}

	var data any

	if len(inputs) == 1 && flags.envPrefix == "" && len(flags.options) == 0 {
		data, err = loader.Load(inputs[0], opts...)
	} else {
		data, err = loader.MultiLoad(inputs, opts...)
	}

	if err != nil {
		return err
	}

	if flags.validate {
		fmt.Fprintln(cmd.OutOrStdout(), "OK")

		return nil
	}

	data, err = flags.apply(data)
	if err != nil {
		return err
	}

	return flags.emit(cmd.OutOrStdout(), loader, data, inputs)
}

func (flags *rootFlags) loadOptions(loader *anyconf.Loader) ([]anyconf.LoadOption, error) {
	strategy, err := merge.ParseStrategy(flags.strategy)
	if err != nil {
		return nil, err
	}

	opts := []anyconf.LoadOption{
		anyconf.WithType(flags.itype),
		anyconf.WithStrategy(strategy),
	}

	if flags.ignoreMissing {
		opts = append(opts, anyconf.WithIgnoreMissing())
	}

	if flags.template || flags.contextFile != "" {
		var ctx any

		if flags.contextFile != "" {
			ctx, err = loader.Load(flags.contextFile)
			if err != nil {
				return nil, fmt.Errorf("loading template context: %w", err)
			}
		}

		opts = append(opts, anyconf.WithTemplate(ctx))
	}

	if flags.schemaFile != "" {
		schemaDoc, err := loader.Load(flags.schemaFile)
		if err != nil {
			return nil, fmt.Errorf("loading schema: %w", err)
		}

		opts = append(opts, anyconf.WithSchema(schemaDoc))
	}

	if flags.query != "" {
		opts = append(opts, anyconf.WithQuery(flags.query))
	}

	if flags.envPrefix != "" {
		opts = append(opts, anyconf.WithSources(source.Environ(flags.envPrefix, os.Environ())))
	}

	if len(flags.options) > 0 {
		opts = append(opts, anyconf.WithSources(source.Options(flags.options...)))
	}

	return opts, nil
}

func (flags *rootFlags) apply(data any) (any, error) {
	if flags.set != "" {
		path, value, ok := strings.Cut(flags.set, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q", errInvalidSet, flags.set)
		}

		root, ok := tree.AsMapping(data)
		if !ok {
			return nil, fmt.Errorf("%w: got %T", errSetOnScalar, data)
		}

		pointer.Set(root, path, tree.ParseScalar(value))
	}

	if flags.get != "" {
		value, err := pointer.Get(data, flags.get)
		if err != nil {
			return nil, err
		}

		data = value
	}

	if flags.genSchema {
		data = schema.Generate(data)
	}

	return data, nil
}

func (flags *rootFlags) emit(out io.Writer, loader *anyconf.Loader, data any, inputs []string) error {
	_, isMapping := tree.AsMapping(data)
	_, isSequence := tree.AsSequence(data)

	if !isMapping && !isSequence && flags.otype == "" {
		fmt.Fprintln(out, data)

		return nil
	}

	output := flags.output
	if output == "" {
		output = source.StdinName
	}

	otype := flags.otype
	if otype == "" && flags.output == "" {
		otype = flags.itype
	}

	if otype == "" && flags.output == "" {
		c, err := loader.Find(inputs[0])
		if err != nil {
			return fmt.Errorf("cannot guess the output type, use --otype: %w", err)
		}

		otype = c.Type()
	}

	return loader.Dump(data, output, anyconf.WithType(otype))
}

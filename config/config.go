package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/0xalexb/anyconf"
	"github.com/0xalexb/anyconf/pointer"
	"github.com/0xalexb/anyconf/tree"

	"github.com/mitchellh/mapstructure"
)

// ErrNilTarget is returned when Provider is given a nil target.
var ErrNilTarget = errors.New("config target is nil")

// TagName is the struct tag used to map configuration keys to fields.
const TagName = "yaml"

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that loads and merges inputs, selects the
// section at path, decodes it into target, sets defaults, and validates it.
// An empty path selects the whole document.
func Provider[T any](target *T, path string, inputs []string, opts ...anyconf.LoadOption) func(*anyconf.Loader) (*T, error) {
	return func(loader *anyconf.Loader) (*T, error) {
		if target == nil {
			return nil, ErrNilTarget
		}

		data, err := loader.MultiLoad(inputs, opts...)
		if err != nil {
			return nil, fmt.Errorf("reading data error: %w", err)
		}

		err = Decode(data, path, target)
		if err != nil {
			return nil, err
		}

		targetDefaulter, isDefaulter := any(target).(Defaulter)
		if isDefaulter {
			changed := targetDefaulter.SetDefaults()
			if changed {
				slog.Info("defaults applied", slog.String("path", path))
			}
		}

		targetValidatable, isValidatable := any(target).(Validator)
		if isValidatable {
			err := targetValidatable.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating error: %w", err)
			}
		}

		return target, nil
	}
}

// Decode copies the value at path within data into target. A missing
// section leaves target untouched.
func Decode(data any, path string, target any) error {
	section, err := pointer.Get(data, path)
	if err != nil {
		if errors.Is(err, pointer.ErrNotFound) {
			return nil
		}

		return fmt.Errorf("parsing error: %w", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           target,
		TagName:          TagName,
	})
	if err != nil {
		return fmt.Errorf("parsing error: %w", err)
	}

	err = decoder.Decode(tree.ToPlain(section))
	if err != nil {
		return fmt.Errorf("parsing error: %w", err)
	}

	return nil
}

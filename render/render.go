// Package render pre-processes configuration files as text/template
// templates before they are decoded.
//
// Templates see the context passed to Render as dot and can call two extra
// functions:
//
//	env "NAME"            value of an environment variable, "" when unset
//	default "x" .missing  the first argument when the second is empty
//
// Missing map keys render as the zero value instead of "<no value>".
package render

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"
	"text/template"

	"github.com/0xalexb/anyconf/tree"
)

// ErrRender is wrapped by every template failure.
var ErrRender = errors.New("template rendering failed")

// Funcs returns the functions available to templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"env":     os.Getenv,
		"default": defaultValue,
	}
}

func defaultValue(fallback, value any) any {
	if value == nil {
		return fallback
	}

	rv := reflect.ValueOf(value)
	if rv.IsZero() {
		return fallback
	}

	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		if rv.Len() == 0 {
			return fallback
		}
	default:
	}

	return value
}

// Render executes data as a template named name. Mapping contexts built from
// trees are converted to native maps so templates can index them.
func Render(name string, data []byte, ctx any) ([]byte, error) {
	tmpl, err := template.New(name).
		Option("missingkey=zero").
		Funcs(Funcs()).
		Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrRender, name, err)
	}

	var buf bytes.Buffer

	err = tmpl.Execute(&buf, tree.ToPlain(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: execute %s: %w", ErrRender, name, err)
	}

	return buf.Bytes(), nil
}

// Package query filters loaded configuration with JMESPath expressions
// (https://jmespath.org) via github.com/jmespath/go-jmespath.
package query

import (
	"errors"
	"fmt"

	"github.com/0xalexb/anyconf/tree"

	"github.com/jmespath/go-jmespath"
)

// ErrQuery is wrapped by compile and evaluation failures.
var ErrQuery = errors.New("query failed")

// Search evaluates expr against data. data may contain trees; the result is
// converted back into ordered trees (keys sorted, since JMESPath results are
// native maps). Integers are handed to the engine as float64, the only number
// type its comparisons understand, so numbers in results are float64.
func Search(expr string, data any) (any, error) {
	compiled, err := jmespath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: compile %q: %w", ErrQuery, expr, err)
	}

	result, err := compiled.Search(floatNumbers(tree.ToPlain(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: evaluate %q: %w", ErrQuery, expr, err)
	}

	return tree.FromPlain(result), nil
}

func floatNumbers(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = floatNumbers(item)
		}

		return val
	case []any:
		for i, item := range val {
			val[i] = floatNumbers(item)
		}

		return val
	case int:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	default:
		return v
	}
}

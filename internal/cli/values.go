package cli

import (
	"fmt"
	"strconv"

	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/host/memhost"
)

// buildVector creates a preserved vector of type t from command-line values.
func buildVector(rt *memhost.Runtime, t entities.ElementType, values []string) (entities.Handle, error) {
	switch t {
	case entities.TypeText:
		return rt.NewStrings(values...), nil
	case entities.TypeInteger:
		ints := make([]int32, len(values))
		for i, v := range values {
			n, err := strconv.ParseInt(v, 10, 32)
			if err != nil {
				return entities.NullHandle, fmt.Errorf("value %d: %w", i, err)
			}
			ints[i] = int32(n)
		}
		return rt.NewIntegers(ints...), nil
	case entities.TypeReal:
		reals := make([]float64, len(values))
		for i, v := range values {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return entities.NullHandle, fmt.Errorf("value %d: %w", i, err)
			}
			reals[i] = f
		}
		return rt.NewReals(reals...), nil
	case entities.TypeNull:
		if len(values) > 0 {
			return entities.NullHandle, fmt.Errorf("NULL takes no values")
		}
		return rt.Null(), nil
	}
	return entities.NullHandle, fmt.Errorf("cannot build a %s vector from arguments", t)
}

// readVector renders the elements of h as strings.
func readVector(rt *memhost.Runtime, h entities.Handle) ([]string, error) {
	switch t := rt.TypeOf(h); t {
	case entities.TypeText:
		return rt.Strings(h), nil
	case entities.TypeInteger:
		ints := rt.Integers(h)
		out := make([]string, len(ints))
		for i, v := range ints {
			out[i] = strconv.FormatInt(int64(v), 10)
		}
		return out, nil
	case entities.TypeReal:
		reals := rt.Reals(h)
		out := make([]string, len(reals))
		for i, v := range reals {
			out[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		return out, nil
	case entities.TypeNull:
		return []string{}, nil
	default:
		return nil, fmt.Errorf("cannot display a %s result", t)
	}
}

package growth

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Parameter names accepted in a ParameterSet.
const (
	KeyN     = "n"
	KeyS     = "s"
	KeyD     = "d"
	KeyDelta = "delta"
	KeyAlpha = "alpha"
	KeyG     = "g"
)

// Names lists the canonical parameter keys in display order.
var Names = []string{KeyN, KeyS, KeyD, KeyAlpha, KeyG}

// ParameterSet is the loosely typed, string-keyed form of a parameter set,
// as read from config files, query strings or flags.
type ParameterSet map[string]any

// Params is the resolved parameter set of a Solow model: population growth
// N, savings rate S, depreciation D, capital share Alpha and technology
// growth G.
type Params struct {
	N     float64 `yaml:"n" json:"n" mapstructure:"n"`
	S     float64 `yaml:"s" json:"s" mapstructure:"s"`
	D     float64 `yaml:"d" json:"d" mapstructure:"d"`
	Alpha float64 `yaml:"alpha" json:"alpha" mapstructure:"alpha"`
	G     float64 `yaml:"g" json:"g" mapstructure:"g"`
}

// rawParams mirrors Params with pointers so absent keys stay nil.
type rawParams struct {
	N     *float64 `mapstructure:"n"`
	S     *float64 `mapstructure:"s"`
	D     *float64 `mapstructure:"d"`
	Delta *float64 `mapstructure:"delta"`
	Alpha *float64 `mapstructure:"alpha"`
	G     *float64 `mapstructure:"g"`
}

// Decode resolves a ParameterSet into Params. Keys match exactly, so "N" or
// "Delta" are unknown keys; unknown keys are ignored. Numeric strings are
// accepted. Empty strings count as missing and non-finite values fail with
// ErrInvalidDomain.
func Decode(set ParameterSet) (Params, error) {
	var raw rawParams
	var rejected error
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &raw,
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
		DecodeHook: func(from, to reflect.Type, data any) (any, error) {
			if to.Kind() == reflect.Ptr {
				to = to.Elem()
			}
			if to.Kind() != reflect.Float64 {
				return data, nil
			}
			if err := checkNumber(data); err != nil {
				if rejected == nil {
					rejected = err
				}
				return nil, err
			}
			return data, nil
		},
	})
	if err != nil {
		return Params{}, err
	}
	if err := dec.Decode(map[string]any(set)); err != nil {
		if rejected != nil {
			return Params{}, fmt.Errorf("%w: %v", rejected, err)
		}
		return Params{}, fmt.Errorf("decode parameters: %w", err)
	}

	d := raw.D
	switch {
	case d == nil:
		d = raw.Delta
	case raw.Delta != nil && *raw.Delta != *d:
		return Params{}, fmt.Errorf("%w: d=%g delta=%g", ErrAliasConflict, *d, *raw.Delta)
	}

	fields := []struct {
		key string
		val *float64
	}{
		{KeyN, raw.N},
		{KeyS, raw.S},
		{KeyD, d},
		{KeyAlpha, raw.Alpha},
		{KeyG, raw.G},
	}
	var missing []string
	for _, f := range fields {
		if f.val == nil {
			missing = append(missing, f.key)
		}
	}
	if len(missing) > 0 {
		return Params{}, fmt.Errorf("%w: %s", ErrMissingParameter, strings.Join(missing, ", "))
	}

	return Params{N: *raw.N, S: *raw.S, D: *d, Alpha: *raw.Alpha, G: *raw.G}, nil
}

var errNotNumber = errors.New("not a number")

// checkNumber rejects inputs that weak typing would otherwise turn into 0 or
// a non-finite float. Unparseable strings are left for the decoder to report.
func checkNumber(data any) error {
	var v float64
	switch x := data.(type) {
	case bool:
		return fmt.Errorf("%w: %t", errNotNumber, x)
	case string:
		if strings.TrimSpace(x) == "" {
			return fmt.Errorf("%w: empty value", ErrMissingParameter)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		v = f
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil
		}
		v = f
	case float64:
		v = x
	case float32:
		v = float64(x)
	default:
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidDomain, data)
	}
	return nil
}

// Set returns the ParameterSet form of p, using "d" for depreciation.
func (p Params) Set() ParameterSet {
	return ParameterSet{
		KeyN:     p.N,
		KeyS:     p.S,
		KeyD:     p.D,
		KeyAlpha: p.Alpha,
		KeyG:     p.G,
	}
}

// Get returns the parameter named key. "delta" reads the depreciation rate.
func (p Params) Get(key string) (float64, error) {
	switch key {
	case KeyN:
		return p.N, nil
	case KeyS:
		return p.S, nil
	case KeyD, KeyDelta:
		return p.D, nil
	case KeyAlpha:
		return p.Alpha, nil
	case KeyG:
		return p.G, nil
	}
	return 0, fmt.Errorf("unknown param: %s", key)
}

// With returns a copy of p with the named parameter replaced.
func (p Params) With(key string, value float64) (Params, error) {
	switch key {
	case KeyN:
		p.N = value
	case KeyS:
		p.S = value
	case KeyD, KeyDelta:
		p.D = value
	case KeyAlpha:
		p.Alpha = value
	case KeyG:
		p.G = value
	default:
		return p, fmt.Errorf("unknown param: %s", key)
	}
	return p, nil
}

// Dilution is the effective depreciation n+g+d.
func (p Params) Dilution() float64 {
	return p.N + p.G + p.D
}

func (p Params) String() string {
	var sb strings.Builder
	for i, key := range Names {
		v, _ := p.Get(key)
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatFloat(v, 'g', 4, 64))
	}
	return sb.String()
}

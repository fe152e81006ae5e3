package types

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// converter is the table entry behind one Type
type converter struct {
	arity   int
	format  string
	value   any
	accepts func(any) bool
	convert func(tokens []string) (any, error)
}

// registry maps every valid (kind, shape) pair to its converter. It is filled once
// in init and read-only afterwards.
var registry = make(map[Type]converter)

func init() {
	registerKind(Boolean, "boolean", parseBool)
	registerNumeric(Byte, "byte", parseInt[int8](8))
	registerNumeric(Short, "short", parseInt[int16](16))
	registerNumeric(Integer, "int", parseInt[int32](32))
	registerNumeric(Long, "long", parseInt[int64](64))
	registerNumeric(Float, "float", parseFloat[float32](32))
	registerNumeric(Double, "double", parseFloat[float64](64))
	registerKind(String, "string", func(s string) (string, error) { return s, nil })
	registerKind(File, "file", func(s string) (FilePath, error) { return FilePath(s), nil })

	// A boolean value is a flag: present means true.
	flag := Boolean.Value()
	registry[flag] = newConverter(flag, 0, "", false, func(tokens []string) (bool, error) {
		switch len(tokens) {
		case 0:
			return true, nil
		case 1:
			v, err := parseBool(tokens[0])
			if err != nil {
				return false, tokenError(tokens[0], err)
			}
			return v, nil
		default:
			return false, countError(0, len(tokens))
		}
	})
}

// registerKind installs every shape that does not need ordering.
func registerKind[T comparable](k Kind, name string, parse func(string) (T, error)) {
	elem := "<" + name + ">"
	array := arrayOf(parse)
	set := func(tokens []string) (Set[T], error) {
		values, err := array(tokens)
		if err != nil {
			return nil, err
		}
		return NewSet(values...), nil
	}
	dict := mapOf(parse)
	labelArray := labelOf(func(s string) ([]T, error) {
		return array(splitJoined(s, ","))
	})

	install(k.Value(), 1, elem, nil, single(func(s string) (T, error) {
		v, err := parse(s)
		if err != nil {
			return v, tokenError(s, err)
		}
		return v, nil
	}))
	install(k.Array(), -1, elem+" "+elem+" ...", nil, array)
	install(k.ArrayComma(), 1, elem+","+elem+",...", nil, joined(",", array))
	install(k.ArraySemicolon(), 1, elem+";"+elem+";...", nil, joined(";", array))
	install(k.Set(), -1, elem+" "+elem+" ...", nil, set)
	install(k.SetComma(), 1, elem+","+elem+",...", nil, joined(",", set))
	install(k.SetSemicolon(), 1, elem+";"+elem+";...", nil, joined(";", set))
	install(k.Map(), -1, "<key>="+elem+" <key>="+elem+" ...", nil, dict)
	install(k.MapComma(), 1, "<key>="+elem+",<key>="+elem+",...", nil, joined(",", dict))
	install(k.MapSemicolon(), 1, "<key>="+elem+";<key>="+elem+";...", nil, joined(";", dict))
	install(k.LabelArray(), -1, "<label>:"+elem+","+elem+",... ...", nil, labelArray)
}

// registerNumeric installs the common shapes plus the range shapes.
func registerNumeric[T Number](k Kind, name string, parse func(string) (T, error)) {
	registerKind(k, name, parse)

	elem := "<" + name + ">"
	_, float := any(*new(T)).(float32)
	if !float {
		_, float = any(*new(T)).(float64)
	}
	parseRange := rangeOf(parse, float)

	install(k.Range(), 1, elem+"-"+elem, nil, single(parseRange))
	install(k.LabelRange(), -1, "<label>:"+elem+"-"+elem+" ...", nil, labelOf(parseRange))
}

func install[V any](t Type, arity int, format string, def any, fn func([]string) (V, error)) {
	registry[t] = newConverter(t, arity, format, def, fn)
}

func newConverter[V any](t Type, arity int, format string, def any, fn func([]string) (V, error)) converter {
	return converter{
		arity:  arity,
		format: format,
		value:  def,
		accepts: func(v any) bool {
			_, ok := v.(V)
			return ok
		},
		convert: func(tokens []string) (any, error) {
			v, err := fn(tokens)
			if err != nil {
				var ce *ConversionError
				if errors.As(err, &ce) {
					ce.Type = t
					return nil, ce
				}
				return nil, &ConversionError{Type: t, Err: err}
			}
			return v, nil
		},
	}
}

// Shape builders

func single[V any](fn func(string) (V, error)) func([]string) (V, error) {
	return func(tokens []string) (V, error) {
		if len(tokens) != 1 {
			var zero V
			return zero, countError(1, len(tokens))
		}
		return fn(tokens[0])
	}
}

func arrayOf[T any](parse func(string) (T, error)) func([]string) ([]T, error) {
	return func(tokens []string) ([]T, error) {
		out := make([]T, 0, len(tokens))
		for _, tok := range tokens {
			v, err := parse(tok)
			if err != nil {
				return nil, tokenError(tok, err)
			}
			out = append(out, v)
		}
		return out, nil
	}
}

func mapOf[T any](parse func(string) (T, error)) func([]string) (map[string]T, error) {
	return func(tokens []string) (map[string]T, error) {
		out := make(map[string]T, len(tokens))
		for _, tok := range tokens {
			key, raw, ok := strings.Cut(tok, "=")
			if !ok || key == "" {
				return nil, tokenError(tok, ErrMissingKey)
			}
			v, err := parse(raw)
			if err != nil {
				return nil, tokenError(tok, err)
			}
			out[key] = v
		}
		return out, nil
	}
}

func labelOf[V any](inner func(string) (V, error)) func([]string) (map[string]V, error) {
	return func(tokens []string) (map[string]V, error) {
		out := make(map[string]V, len(tokens))
		for _, tok := range tokens {
			label, rest, ok := strings.Cut(tok, ":")
			if !ok || label == "" {
				return nil, tokenError(tok, ErrMissingLabel)
			}
			v, err := inner(rest)
			if err != nil {
				return nil, tokenError(tok, err)
			}
			out[label] = v
		}
		return out, nil
	}
}

// joined reads one delimiter-joined token and hands the pieces to a multi-token shape
func joined[V any](sep string, multi func([]string) (V, error)) func([]string) (V, error) {
	return func(tokens []string) (V, error) {
		if len(tokens) != 1 {
			var zero V
			return zero, countError(1, len(tokens))
		}
		return multi(splitJoined(tokens[0], sep))
	}
}

// splitJoined splits on sep, trimming whitespace and dropping empty segments
func splitJoined(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Element parsers

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0":
		return false, nil
	}
	return false, ErrSyntax
}

func parseInt[T int8 | int16 | int32 | int64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			return 0, numError(err)
		}
		return T(v), nil
	}
}

func parseFloat[T float32 | float64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := strconv.ParseFloat(s, bits)
		if err != nil {
			return 0, numError(err)
		}
		return T(v), nil
	}
}

// numError strips the strconv prefix and maps to our sentinels
func numError(err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return ErrOutOfRange
	}
	return ErrSyntax
}

// bounds returns the smallest and largest value of the element type. Open range
// sides take these values.
func bounds[T Number]() (lo, hi T) {
	switch any(lo).(type) {
	case int8:
		return any(int8(math.MinInt8)).(T), any(int8(math.MaxInt8)).(T)
	case int16:
		return any(int16(math.MinInt16)).(T), any(int16(math.MaxInt16)).(T)
	case int32:
		return any(int32(math.MinInt32)).(T), any(int32(math.MaxInt32)).(T)
	case int64:
		return any(int64(math.MinInt64)).(T), any(int64(math.MaxInt64)).(T)
	case float32:
		return any(float32(-math.MaxFloat32)).(T), any(float32(math.MaxFloat32)).(T)
	case float64:
		return any(-math.MaxFloat64).(T), any(math.MaxFloat64).(T)
	}
	return lo, hi
}

// kindOf maps the closed set of element types to their Kind; 0 for anything else.
func kindOf[T any]() Kind {
	switch any(*new(T)).(type) {
	case bool:
		return Boolean
	case int8:
		return Byte
	case int16:
		return Short
	case int32:
		return Integer
	case int64:
		return Long
	case float32:
		return Float
	case float64:
		return Double
	case string:
		return String
	case FilePath:
		return File
	}
	return 0
}

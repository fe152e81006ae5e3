package types

import (
	"fmt"
	"os"
	"strings"
)

// Validator post-processes a converted value. It sees the fully shaped value
// (scalar, array, set, map, range or labelled form) and may reject it or
// return a coerced replacement. Kind reports the base kind it accepts; an option
// may only carry a validator of its own kind.
type Validator interface {
	Kind() Kind
	Validate(name string, value any) (any, error)
}

func unsupportedShape(name string, value any) error {
	return &ValidationError{Option: name, Value: value, Reason: fmt.Sprintf("unsupported value shape %T", value)}
}

// eachSlice applies fn to a copy of values
func eachSlice[T any](values []T, fn func(T) (T, error)) ([]T, error) {
	out := make([]T, len(values))
	for i, v := range values {
		checked, err := fn(v)
		if err != nil {
			return nil, err
		}
		out[i] = checked
	}
	return out, nil
}

// eachValue applies fn to a copy of the map values
func eachValue[V any](values map[string]V, fn func(V) (V, error)) (map[string]V, error) {
	out := make(map[string]V, len(values))
	for k, v := range values {
		checked, err := fn(v)
		if err != nil {
			return nil, err
		}
		out[k] = checked
	}
	return out, nil
}

// RangeValidator rejects numbers outside [min, max], or clamps them into it.
type RangeValidator[T Number] struct {
	min, max T
	clamp    bool
}

// NumberRange creates a validator for numeric options of the kind matching T.
// It panics if min > max, since that is a mistake in the parser definition.
func NumberRange[T Number](min, max T) *RangeValidator[T] {
	if min > max {
		panic(fmt.Sprintf("types: NumberRange min %v exceeds max %v", min, max))
	}
	return &RangeValidator[T]{min: min, max: max}
}

// Clamp returns a copy of the validator that coerces out-of-range values to the
// nearest bound instead of rejecting them.
func (v *RangeValidator[T]) Clamp() *RangeValidator[T] {
	c := *v
	c.clamp = true
	return &c
}

func (v *RangeValidator[T]) Kind() Kind { return kindOf[T]() }

func (v *RangeValidator[T]) String() string {
	return fmt.Sprintf("%v ~ %v", v.min, v.max)
}

func (v *RangeValidator[T]) Validate(name string, value any) (any, error) {
	check := func(x T) (T, error) { return v.check(name, x) }
	checkRange := func(r Range[T]) (Range[T], error) { return v.checkRange(name, r) }

	switch x := value.(type) {
	case T:
		return v.check(name, x)
	case []T:
		return eachSlice(x, check)
	case Set[T]:
		values, err := eachSlice([]T(x), check)
		if err != nil {
			return nil, err
		}
		return NewSet(values...), nil
	case map[string]T:
		return eachValue(x, check)
	case Range[T]:
		return v.checkRange(name, x)
	case map[string][]T:
		return eachValue(x, func(values []T) ([]T, error) { return eachSlice(values, check) })
	case map[string]Range[T]:
		return eachValue(x, checkRange)
	default:
		return nil, unsupportedShape(name, value)
	}
}

func (v *RangeValidator[T]) check(name string, x T) (T, error) {
	if x >= v.min && x <= v.max {
		return x, nil
	}
	if v.clamp {
		return min(max(x, v.min), v.max), nil
	}
	return x, &ValidationError{
		Option: name,
		Value:  x,
		Reason: fmt.Sprintf("not within range [%v, %v]", v.min, v.max),
	}
}

// checkRange narrows open sides to the validator bounds before checking.
func (v *RangeValidator[T]) checkRange(name string, r Range[T]) (Range[T], error) {
	lo, hi := bounds[T]()
	if r.Min == lo {
		r.Min = v.min
	}
	if r.Max == hi {
		r.Max = v.max
	}
	var err error
	if r.Min, err = v.check(name, r.Min); err != nil {
		return r, err
	}
	if r.Max, err = v.check(name, r.Max); err != nil {
		return r, err
	}
	return r, nil
}

// ElementValidator restricts string options to a fixed vocabulary.
type ElementValidator struct {
	values     []string
	ignoreCase bool
}

// Elements creates a validator accepting only the given strings.
func Elements(values ...string) *ElementValidator {
	return &ElementValidator{values: values}
}

// IgnoreCase returns a copy that matches case-insensitively and rewrites
// matches to the declared spelling.
func (v *ElementValidator) IgnoreCase() *ElementValidator {
	c := *v
	c.ignoreCase = true
	return &c
}

func (v *ElementValidator) Kind() Kind { return String }

func (v *ElementValidator) String() string {
	return "[" + strings.Join(v.values, ", ") + "]"
}

func (v *ElementValidator) Validate(name string, value any) (any, error) {
	check := func(s string) (string, error) { return v.check(name, s) }

	switch x := value.(type) {
	case string:
		return v.check(name, x)
	case []string:
		return eachSlice(x, check)
	case Set[string]:
		values, err := eachSlice([]string(x), check)
		if err != nil {
			return nil, err
		}
		return NewSet(values...), nil
	case map[string]string:
		return eachValue(x, check)
	case map[string][]string:
		return eachValue(x, func(values []string) ([]string, error) { return eachSlice(values, check) })
	default:
		return nil, unsupportedShape(name, value)
	}
}

func (v *ElementValidator) check(name, s string) (string, error) {
	for _, allowed := range v.values {
		if s == allowed || (v.ignoreCase && strings.EqualFold(s, allowed)) {
			return allowed, nil
		}
	}
	return s, &ValidationError{Option: name, Value: s, Reason: "must be one of " + v.String()}
}

type fileMode int

const (
	fileMustExist fileMode = iota + 1
	fileNotDirectory
	fileMustBeDirectory
)

// FileValidator checks File options against the local file system.
type FileValidator struct {
	mode fileMode
}

// FileExists requires every path to exist
func FileExists() *FileValidator { return &FileValidator{mode: fileMustExist} }

// NotDirectory rejects paths that exist and are directories
func NotDirectory() *FileValidator { return &FileValidator{mode: fileNotDirectory} }

// DirectoryExists requires every path to be an existing directory
func DirectoryExists() *FileValidator { return &FileValidator{mode: fileMustBeDirectory} }

func (v *FileValidator) Kind() Kind { return File }

func (v *FileValidator) Validate(name string, value any) (any, error) {
	check := func(p FilePath) (FilePath, error) { return p, v.check(name, p) }

	switch x := value.(type) {
	case FilePath:
		return x, v.check(name, x)
	case []FilePath:
		return eachSlice(x, check)
	case Set[FilePath]:
		_, err := eachSlice([]FilePath(x), check)
		return x, err
	case map[string]FilePath:
		return eachValue(x, check)
	case map[string][]FilePath:
		return eachValue(x, func(paths []FilePath) ([]FilePath, error) { return eachSlice(paths, check) })
	default:
		return nil, unsupportedShape(name, value)
	}
}

func (v *FileValidator) check(name string, p FilePath) error {
	info, err := os.Stat(string(p))
	switch v.mode {
	case fileMustExist:
		if err != nil {
			return &ValidationError{Option: name, Value: p, Reason: "file does not exist"}
		}
	case fileNotDirectory:
		if err == nil && info.IsDir() {
			return &ValidationError{Option: name, Value: p, Reason: "path is a directory"}
		}
	case fileMustBeDirectory:
		if err != nil {
			return &ValidationError{Option: name, Value: p, Reason: "directory does not exist"}
		}
		if !info.IsDir() {
			return &ValidationError{Option: name, Value: p, Reason: "path is not a directory"}
		}
	}
	return nil
}

// FuncValidator adapts a plain check function, applied to every element.
type FuncValidator[T comparable] struct {
	fn func(T) error
}

// Func creates a validator from fn. T must be one of the element types of a
// Kind (bool, int8 ... float64, string, FilePath).
func Func[T comparable](fn func(T) error) *FuncValidator[T] {
	return &FuncValidator[T]{fn: fn}
}

func (v *FuncValidator[T]) Kind() Kind { return kindOf[T]() }

func (v *FuncValidator[T]) Validate(name string, value any) (any, error) {
	check := func(x T) (T, error) {
		if err := v.fn(x); err != nil {
			return x, &ValidationError{Option: name, Value: x, Reason: err.Error()}
		}
		return x, nil
	}

	switch x := value.(type) {
	case T:
		return check(x)
	case []T:
		return eachSlice(x, check)
	case Set[T]:
		_, err := eachSlice([]T(x), check)
		return x, err
	case map[string]T:
		return eachValue(x, check)
	case map[string][]T:
		return eachValue(x, func(values []T) ([]T, error) { return eachSlice(values, check) })
	default:
		return nil, unsupportedShape(name, value)
	}
}

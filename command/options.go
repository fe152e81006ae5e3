package command

import (
	"fmt"
	"slices"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Options is the result of one parse: canonical option name to converted
// value, in the order options were matched, plus the raw tokens each matched
// option consumed. Any alias of an option may be used to query it.
type Options struct {
	parser  *Parser
	values  *orderedmap.OrderedMap[string, any]
	matched map[string][]string
	help    bool
}

func newOptions(p *Parser) *Options {
	return &Options{
		parser:  p,
		values:  orderedmap.New[string, any](),
		matched: make(map[string][]string),
	}
}

func (o *Options) set(it *Item, value any, tokens []string) {
	o.values.Set(it.Name(), value)
	if tokens != nil {
		o.matched[it.Name()] = tokens
	}
}

func (o *Options) canonical(name string) string {
	if it := o.parser.index[name]; it != nil {
		return it.Name()
	}
	return name
}

// IsHelp reports whether the result came from a help invocation. Help results
// hold defaults only and were neither validated nor rule-checked.
func (o *Options) IsHelp() bool { return o.help }

// IsPassedIn reports whether the option appeared on the command line
func (o *Options) IsPassedIn(name string) bool {
	_, ok := o.values.Get(o.canonical(name))
	return ok
}

// Value returns the option's value, or its default when it was not passed.
// Unknown names yield nil.
func (o *Options) Value(name string) any {
	if v, ok := o.values.Get(o.canonical(name)); ok {
		return v
	}
	if it := o.parser.index[name]; it != nil {
		return it.DefaultValue()
	}
	return nil
}

// Get returns the option's value as T. ok is false for unknown options, nil
// defaults and values of another Go type.
func Get[T any](o *Options, name string) (value T, ok bool) {
	value, ok = o.Value(name).(T)
	return value, ok
}

// MustGet is Get for options whose type is known to the caller; it panics on
// a type mismatch.
func MustGet[T any](o *Options, name string) T {
	v := o.Value(name)
	if v == nil {
		var zero T
		return zero
	}
	value, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("command: option %s holds %T, not %T", name, v, value))
	}
	return value
}

// MatchedParameter returns the tokens the option consumed, space-joined.
// Options that were not passed, or consumed nothing, give "".
func (o *Options) MatchedParameter(name string) string {
	return strings.Join(o.matched[o.canonical(name)], " ")
}

// MatchedTokens returns a copy of the tokens the option consumed
func (o *Options) MatchedTokens(name string) []string {
	return slices.Clone(o.matched[o.canonical(name)])
}

// Keys returns the passed options' canonical names in match order
func (o *Options) Keys() []string {
	keys := make([]string, 0, o.values.Len())
	for pair := o.values.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every passed option in match order
func (o *Options) Each(fn func(name string, value any)) {
	for pair := o.values.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Len returns the number of passed options
func (o *Options) Len() int { return o.values.Len() }

func (o *Options) String() string {
	var b strings.Builder
	b.WriteByte('{')
	o.Each(func(name string, value any) {
		if b.Len() > 1 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", name, value)
	})
	b.WriteByte('}')
	return b.String()
}

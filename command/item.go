package command

import (
	"regexp"
	"slices"
	"strings"

	"github.com/Zhangliubin/commandParser-1.1-sub000/types"
)

// Option is a bit set of behavioural flags on an Item.
type Option uint8

const (
	Required Option = 1 << iota // must be passed unless help is requested
	Hidden                      // omitted from listings and suggestions
	Help                        // triggers help mode
	Debug                       // declared only in diagnostic mode
)

var optionNames = []struct {
	opt  Option
	name string
}{
	{Required, "REQUIRED"},
	{Hidden, "HIDDEN"},
	{Help, "HELP"},
	{Debug, "DEBUG"},
}

// Has reports whether every bit of flag is set
func (o Option) Has(flag Option) bool { return o&flag == flag }

func (o Option) String() string {
	var parts []string
	for _, n := range optionNames {
		if o.Has(n.opt) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9+\-_.]+$`)

// Item is one declared option. The first name is canonical: results, rules and
// errors refer to the option by it. Items are configured through the
// ItemBuilder returned at registration and are read-only once the owning
// parser has parsed for the first time.
type Item struct {
	names       []string
	typ         types.Type
	arity       int
	def         any
	validator   types.Validator
	options     Option
	description string
	format      string
	group       *Group
}

func newItem(t types.Type, names []string) *Item {
	return &Item{
		names:  slices.Clone(names),
		typ:    t,
		arity:  t.DefaultArity(),
		def:    t.DefaultValue(),
		format: t.Format(),
	}
}

// Name returns the canonical name
func (it *Item) Name() string { return it.names[0] }

// Names returns every name, canonical first
func (it *Item) Names() []string { return slices.Clone(it.names) }

func (it *Item) Type() types.Type { return it.typ }

// Arity is -1 for variable, 0 for flags and n for exactly n tokens
func (it *Item) Arity() int { return it.arity }

func (it *Item) DefaultValue() any { return it.def }

func (it *Item) Validator() types.Validator { return it.validator }

func (it *Item) Options() Option { return it.options }

// Is reports whether the item carries opt
func (it *Item) Is(opt Option) bool { return it.options.Has(opt) }

func (it *Item) Description() string { return it.description }

func (it *Item) Format() string { return it.format }

// Group returns the owning group
func (it *Item) Group() *Group { return it.group }

func (it *Item) String() string {
	return strings.Join(it.names, ",") + " " + it.typ.String()
}

// convert turns the captured tokens into the item's value, running the
// validator on the shaped result.
func (it *Item) convert(tokens []string) (any, error) {
	v, err := it.typ.Convert(tokens...)
	if err != nil {
		return nil, valueError(it.Name(), err)
	}
	if it.validator != nil {
		if v, err = it.validator.Validate(it.Name(), v); err != nil {
			return nil, valueError(it.Name(), err)
		}
	}
	return v, nil
}

// helpValue is what the item contributes to a help-mode result
func (it *Item) helpValue() any {
	if it.arity == 0 {
		if v, err := it.typ.Convert(); err == nil {
			return v
		}
	}
	return it.def
}

func (it *Item) sealed() bool {
	return it.group != nil && it.group.sealed()
}

// ItemBuilder configures an Item during parser setup. Every setter checks its
// argument immediately and panics with a *ConfigError on misuse.
type ItemBuilder struct {
	item *Item
}

func (b *ItemBuilder) mutable() *Item {
	if b.item.sealed() {
		configPanic(b.item.Name(), "cannot modify an option after parsing has started")
	}
	return b.item
}

// Arity changes the number of tokens the option consumes. Only options whose
// type has variable arity can be tuned; n must be -1 or >= 0.
func (b *ItemBuilder) Arity(n int) *ItemBuilder {
	it := b.mutable()
	if it.typ.DefaultArity() != -1 {
		configPanic(it.Name(), "arity of %s is fixed at %d", it.typ, it.typ.DefaultArity())
	}
	if n < -1 {
		configPanic(it.Name(), "illegal arity %d", n)
	}
	it.arity = n
	return b
}

// Default sets the value reported when the option is not passed. v must have
// the Go type the option's Type converts to (or be nil).
func (b *ItemBuilder) Default(v any) *ItemBuilder {
	it := b.mutable()
	if v != nil && !it.typ.Accepts(v) {
		configPanic(it.Name(), "default %v (%T) does not match type %s", v, v, it.typ)
	}
	it.def = v
	return b
}

// DefaultTokens sets the default by converting command-line tokens.
func (b *ItemBuilder) DefaultTokens(tokens ...string) *ItemBuilder {
	it := b.mutable()
	v, err := it.typ.Convert(tokens...)
	if err != nil {
		configPanic(it.Name(), "illegal default: %v", err)
	}
	it.def = v
	return b
}

// Validator attaches a validator of the option's kind.
func (b *ItemBuilder) Validator(v types.Validator) *ItemBuilder {
	it := b.mutable()
	if v != nil && v.Kind() != it.typ.Kind() {
		configPanic(it.Name(), "validator for %s cannot check %s values", v.Kind(), it.typ.Kind())
	}
	it.validator = v
	return b
}

// Options adds behavioural flags
func (b *ItemBuilder) Options(opts ...Option) *ItemBuilder {
	it := b.mutable()
	set := it.options
	for _, o := range opts {
		set |= o
	}
	if set.Has(Help | Required) {
		configPanic(it.Name(), "a help option cannot be required")
	}
	it.options = set
	return b
}

func (b *ItemBuilder) Required() *ItemBuilder { return b.Options(Required) }

func (b *ItemBuilder) Hidden() *ItemBuilder { return b.Options(Hidden) }

func (b *ItemBuilder) Help() *ItemBuilder { return b.Options(Help) }

func (b *ItemBuilder) Debug() *ItemBuilder { return b.Options(Debug) }

func (b *ItemBuilder) Description(s string) *ItemBuilder {
	b.mutable().description = s
	return b
}

// Format overrides the value hint derived from the type
func (b *ItemBuilder) Format(s string) *ItemBuilder {
	b.mutable().format = s
	return b
}

// Back returns the owning group for continued registration
func (b *ItemBuilder) Back() *Group { return b.item.group }

// Item returns the configured item
func (b *ItemBuilder) Item() *Item { return b.item }

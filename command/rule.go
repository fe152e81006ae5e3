package command

import (
	"fmt"
	"slices"
	"strings"
)

// RuleType selects how a Rule constrains the presence of its options.
type RuleType int

const (
	RuleAtMost RuleType = iota + 1
	RuleAtLeast
	RuleEqual
	RuleMutualExclusion
	RuleSymbiosis
	RulePrecondition
)

func (t RuleType) String() string {
	switch t {
	case RuleAtMost:
		return "AT_MOST"
	case RuleAtLeast:
		return "AT_LEAST"
	case RuleEqual:
		return "EQUAL"
	case RuleMutualExclusion:
		return "MUTUAL_EXCLUSION"
	case RuleSymbiosis:
		return "SYMBIOSIS"
	case RulePrecondition:
		return "PRECONDITION"
	default:
		return "UNKNOWN"
	}
}

// IsQuantity reports whether rules of this type carry a threshold
func (t RuleType) IsQuantity() bool {
	return t >= RuleAtMost && t <= RuleMutualExclusion
}

// Rule constrains which of two or more options may be passed together. Rules
// are checked after matching succeeds; attach them with Parser.AddRule.
type Rule struct {
	typ   RuleType
	names []string
	k     int
}

// AtMost allows at most k of the options
func AtMost(k int, names ...string) *Rule { return newRule(RuleAtMost, k, names) }

// AtLeast requires at least k of the options
func AtLeast(k int, names ...string) *Rule { return newRule(RuleAtLeast, k, names) }

// Equal requires exactly k of the options
func Equal(k int, names ...string) *Rule { return newRule(RuleEqual, k, names) }

// MutualExclusion splits the options into the first k and the rest; options
// from both blocks may not be passed together.
func MutualExclusion(k int, names ...string) *Rule {
	return newRule(RuleMutualExclusion, k, names)
}

// Symbiosis requires all of the options or none of them
func Symbiosis(names ...string) *Rule { return newRule(RuleSymbiosis, 0, names) }

// Precondition requires every option listed before a passed option to be
// passed as well.
func Precondition(names ...string) *Rule { return newRule(RulePrecondition, 0, names) }

func newRule(t RuleType, k int, names []string) *Rule {
	return &Rule{typ: t, names: slices.Clone(names), k: k}
}

func (r *Rule) Type() RuleType { return r.typ }

// Names returns the constrained option names, canonical once attached
func (r *Rule) Names() []string { return slices.Clone(r.names) }

// Threshold returns k for quantity rules and 0 otherwise
func (r *Rule) Threshold() int { return r.k }

func (r *Rule) String() string {
	list := "[" + strings.Join(r.names, ", ") + "]"
	switch r.typ {
	case RuleAtMost:
		return fmt.Sprintf("at most %d of %s", r.k, list)
	case RuleAtLeast:
		return fmt.Sprintf("at least %d of %s", r.k, list)
	case RuleEqual:
		return fmt.Sprintf("exactly %d of %s", r.k, list)
	case RuleMutualExclusion:
		return fmt.Sprintf("[%s] and [%s] are mutually exclusive",
			strings.Join(r.names[:r.k], ", "), strings.Join(r.names[r.k:], ", "))
	case RuleSymbiosis:
		return fmt.Sprintf("all or none of %s", list)
	case RulePrecondition:
		return fmt.Sprintf("each of %s requires the ones before it", list)
	default:
		return r.typ.String() + " " + list
	}
}

// resolve validates the rule against the parser's options and rewrites aliases
// to canonical names.
func (r *Rule) resolve(p *Parser) *Rule {
	resolved := make([]string, 0, len(r.names))
	for _, name := range r.names {
		it := p.index[name]
		if it == nil {
			configPanic(name, "rule %s refers to an undeclared option", r.typ)
		}
		if slices.Contains(resolved, it.Name()) {
			configPanic(name, "rule %s lists option %s twice", r.typ, it.Name())
		}
		resolved = append(resolved, it.Name())
	}
	if len(resolved) < 2 {
		configPanic("", "rule %s needs at least two options", r.typ)
	}

	switch {
	case r.typ == RuleMutualExclusion:
		if r.k < 1 || r.k >= len(resolved) {
			configPanic("", "rule %s threshold %d must be within [1, %d]", r.typ, r.k, len(resolved)-1)
		}
	case r.typ.IsQuantity():
		if r.k < 0 || r.k > len(resolved) {
			configPanic("", "rule %s threshold %d must be within [0, %d]", r.typ, r.k, len(resolved))
		}
	case r.typ != RuleSymbiosis && r.typ != RulePrecondition:
		configPanic("", "unknown rule type %d", int(r.typ))
	}

	out := &Rule{typ: r.typ, names: resolved, k: r.k}
	out.checkItems(p)
	return out
}

// checkItems rejects required and help options. It runs again when the parser
// seals, since options stay configurable until then.
func (r *Rule) checkItems(p *Parser) {
	for _, name := range r.names {
		it := p.index[name]
		if it.Is(Required) {
			configPanic(name, "required option cannot be part of rule %s", r.typ)
		}
		if it.Is(Help) {
			configPanic(name, "help option cannot be part of rule %s", r.typ)
		}
	}
}

// Check evaluates the rule against a parse result.
func (r *Rule) Check(o *Options) error {
	present := make([]bool, len(r.names))
	count := 0
	for i, name := range r.names {
		if o.IsPassedIn(name) {
			present[i] = true
			count++
		}
	}

	var ok bool
	switch r.typ {
	case RuleAtMost:
		ok = count <= r.k
	case RuleAtLeast:
		ok = count >= r.k
	case RuleEqual:
		ok = count == r.k
	case RuleMutualExclusion:
		ok = !(slices.Contains(present[:r.k], true) && slices.Contains(present[r.k:], true))
	case RuleSymbiosis:
		ok = count == 0 || count == len(r.names)
	case RulePrecondition:
		ok = true
		for i := 1; i < len(present) && ok; i++ {
			ok = !present[i] || !slices.Contains(present[:i], false)
		}
	}
	if ok {
		return nil
	}

	passed := make([]string, 0, count)
	for i, name := range r.names {
		if present[i] {
			passed = append(passed, name)
		}
	}
	return NewParseError(ErrorTypeRuleViolation, strings.Join(r.names, ","),
		"rule violated: %s (passed: [%s])", r, strings.Join(passed, ", "))
}

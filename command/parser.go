// Package command declares command-line options, matches token streams
// against them and checks cross-option rules on the result.
//
// A Parser owns groups of options (Item) and rules (Rule). Parse expands
// @file tokens, short-circuits into help mode when a help option is present,
// and otherwise matches every token greedily: an option consumes following
// tokens until the next declared option name, up to its arity.
//
//	p := command.New("bgzip")
//	p.Register(types.File.Array(), "--input", "-i").Required()
//	p.Register(types.Integer.Value(), "--threads", "-t").Default(int32(4)).
//		Validator(types.NumberRange[int32](1, 64))
//	p.Register(types.Boolean.Value(), "--help", "-h").Help()
//	opts, err := p.Parse(os.Args[1:]...)
package command

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"

	"github.com/Zhangliubin/commandParser-1.1-sub000/internal/fuzzy"
	"github.com/Zhangliubin/commandParser-1.1-sub000/internal/paramfile"
	"github.com/Zhangliubin/commandParser-1.1-sub000/types"
)

const (
	// DefaultGroup names the group Parser.Register creates when none exists
	DefaultGroup = "Options"
	// DefaultMaxExpansionDepth bounds nested @file expansion
	DefaultMaxExpansionDepth = 16
)

// Parser matches token streams against its declared options. Setup methods
// panic with a *ConfigError on misuse and after the first Parse, from which
// point the parser is read-only and safe for concurrent use.
type Parser struct {
	name   string
	groups []*Group
	rules  []*Rule
	index  map[string]*Item

	offset     int
	maxMatched int
	atSyntax   bool
	debug      bool
	maxDepth   int
	logger     Logger

	sealOnce sync.Once
	sealed   atomic.Bool
}

// New creates a parser for the named program
func New(programName string) *Parser {
	return &Parser{
		name:     programName,
		index:    make(map[string]*Item),
		atSyntax: true,
		maxDepth: DefaultMaxExpansionDepth,
		logger:   nopLogger{},
	}
}

func (p *Parser) Name() string { return p.name }

func (p *Parser) isSealed() bool { return p.sealed.Load() }

func (p *Parser) mutable(what string) {
	if p.isSealed() {
		configPanic("", "cannot change %s after parsing has started", what)
	}
}

// seal freezes the declarative model. Rules are re-checked because their
// options stayed configurable until now.
func (p *Parser) seal() {
	p.sealOnce.Do(func() {
		p.sealed.Store(true)
		for _, r := range p.rules {
			r.checkItems(p)
		}
	})
}

// Offset skips the first n tokens passed to Parse (e.g. a subcommand name).
func (p *Parser) Offset(n int) *Parser {
	p.mutable("offset")
	if n < 0 {
		configPanic("", "negative offset %d", n)
	}
	p.offset = n
	return p
}

// MaxMatchedItems caps the number of distinct options matched. The option that
// reaches the cap receives every remaining token. n <= 0 disables the cap.
func (p *Parser) MaxMatchedItems(n int) *Parser {
	p.mutable("match cap")
	p.maxMatched = max(n, 0)
	return p
}

// AtSyntax enables or disables @file expansion (on by default)
func (p *Parser) AtSyntax(enabled bool) *Parser {
	p.mutable("@ syntax")
	p.atSyntax = enabled
	return p
}

// Debug switches diagnostic mode. In diagnostic mode Debug options are
// declared, and Parse logs every error through the Logger and keeps scanning,
// returning all of them together instead of stopping at the first one.
func (p *Parser) Debug(enabled bool) *Parser {
	p.mutable("debug mode")
	p.debug = enabled
	return p
}

// MaxExpansionDepth bounds nested @file references
func (p *Parser) MaxExpansionDepth(n int) *Parser {
	p.mutable("expansion depth")
	if n < 1 {
		configPanic("", "expansion depth %d must be at least 1", n)
	}
	p.maxDepth = n
	return p
}

// Logger sets the diagnostic sink; nil restores the no-op default.
func (p *Parser) Logger(l Logger) *Parser {
	p.mutable("logger")
	if l == nil {
		l = nopLogger{}
	}
	p.logger = l
	return p
}

// Group returns the named group, creating and attaching it when missing.
func (p *Parser) Group(name string) *Group {
	for _, g := range p.groups {
		if g.name == name {
			return g
		}
	}
	g := NewGroup(name)
	p.AddGroup(g)
	return g
}

// Register declares an option in the most recently added group.
func (p *Parser) Register(t types.Type, names ...string) *ItemBuilder {
	if len(p.groups) == 0 {
		p.Group(DefaultGroup)
	}
	return p.groups[len(p.groups)-1].Register(t, names...)
}

// AddGroup attaches a group built with NewGroup.
func (p *Parser) AddGroup(g *Group) *Parser {
	p.mutable("groups")
	if g.parser == p {
		return p
	}
	if g.parser != nil {
		configPanic("", "group %q is already attached to another parser", g.name)
	}
	for _, it := range g.items {
		for _, name := range it.names {
			if p.index[name] != nil {
				configPanic(name, "duplicate option name")
			}
		}
	}

	g.parser = p
	for _, it := range g.items {
		for _, name := range it.names {
			p.index[name] = it
		}
	}
	p.groups = append(p.groups, g)
	return p
}

// AddRule attaches a rule. Aliases are resolved to canonical names.
func (p *Parser) AddRule(r *Rule) *Parser {
	p.mutable("rules")
	p.rules = append(p.rules, r.resolve(p))
	return p
}

// Lookup finds an option by any of its names
func (p *Parser) Lookup(name string) *Item { return p.index[name] }

// Groups returns the attached groups in order
func (p *Parser) Groups() []*Group { return slices.Clone(p.groups) }

// Rules returns the attached rules with canonical names
func (p *Parser) Rules() []*Rule { return slices.Clone(p.rules) }

// Items returns every option, group by group
func (p *Parser) Items() []*Item {
	var items []*Item
	for _, g := range p.groups {
		items = append(items, g.items...)
	}
	return items
}

// Parse matches args (after skipping Offset tokens). In strict mode the first
// error is returned as a *ParseError. In diagnostic mode every error is logged
// and the result is nil with a *multierror.Error holding them all.
func (p *Parser) Parse(args ...string) (*Options, error) {
	p.seal()
	if p.offset > 0 {
		args = args[min(p.offset, len(args)):]
	}
	return p.parse(args)
}

// ParseFile matches the tokens of a parameter file. Offset does not apply.
func (p *Parser) ParseFile(path string) (*Options, error) {
	p.seal()
	tokens, err := paramfile.ReadFile(path)
	if err != nil {
		m := p.newMatcher()
		m.fail(fileError(path, err))
		return m.result()
	}
	return p.parse(tokens)
}

func (p *Parser) parse(tokens []string) (*Options, error) {
	m := p.newMatcher()

	expanded, err := p.expand(tokens)
	if err != nil {
		m.fail(err)
		return m.result()
	}
	m.tokens = expanded
	if p.debug {
		p.logger.Debug("%s: matching %d tokens %q", p.name, len(expanded), expanded)
	}

	if p.detectHelp(expanded) {
		m.simpleParse()
	} else {
		m.fullParse()
	}
	return m.result()
}

// resolve maps a token to its declared option. Debug options are undeclared
// outside diagnostic mode.
func (p *Parser) resolve(token string) *Item {
	it := p.index[token]
	if it == nil || (it.Is(Debug) && !p.debug) {
		return nil
	}
	return it
}

// detectHelp reports whether a recognized help option occurs before the match
// cap is reached.
func (p *Parser) detectHelp(tokens []string) bool {
	matched := 0
	for _, tok := range tokens {
		it := p.resolve(tok)
		if it == nil {
			continue
		}
		if it.Is(Help) {
			return true
		}
		matched++
		if p.maxMatched > 0 && matched >= p.maxMatched {
			return false
		}
	}
	return false
}

// capture counts the tokens at the head of rest that belong to an option of
// the given arity: up to arity of them (all for -1), stopping at the first
// declared option name.
func (p *Parser) capture(rest []string, arity int) int {
	limit := len(rest)
	if arity >= 0 {
		limit = min(arity, limit)
	}
	n := 0
	for n < limit && p.resolve(rest[n]) == nil {
		n++
	}
	return n
}

func (p *Parser) unknownError(token string) *ParseError {
	if it := p.index[token]; it != nil && it.Is(Debug) {
		return NewParseError(ErrorTypeUnknownOption, token,
			"option %s is only available in diagnostic mode", token)
	}

	err := NewParseError(ErrorTypeUnknownOption, token, "no option defined for %q", token)
	var candidates []string
	for _, it := range p.Items() {
		if it.Is(Hidden) || p.resolve(it.Name()) == nil {
			continue
		}
		candidates = append(candidates, it.names...)
	}
	err.Suggestion = fuzzy.Suggest(token, candidates)
	return err
}

// matcher holds the state of one Parse call
type matcher struct {
	p      *Parser
	tokens []string
	opts   *Options
	err    error
	errs   *multierror.Error
}

func (p *Parser) newMatcher() *matcher {
	return &matcher{p: p, opts: newOptions(p)}
}

// fail records err and reports whether matching must stop.
func (m *matcher) fail(err error) bool {
	if !m.p.debug {
		m.err = err
		return true
	}
	m.p.logger.Error("%v", err)
	m.errs = multierror.Append(m.errs, err)
	return false
}

func (m *matcher) result() (*Options, error) {
	if m.err != nil {
		return nil, m.err
	}
	if err := m.errs.ErrorOrNil(); err != nil {
		m.p.logger.Info("%s: %d error(s), no options returned", m.p.name, len(m.errs.Errors))
		return nil, err
	}
	return m.opts, nil
}

// simpleParse fills a help-mode result: recognized options get their default
// (set for flags) without consuming or validating anything.
func (m *matcher) simpleParse() {
	m.opts.help = true
	matched := 0
	for _, tok := range m.tokens {
		it := m.p.resolve(tok)
		if it == nil || m.opts.IsPassedIn(it.Name()) {
			continue
		}
		m.opts.set(it, it.helpValue(), nil)
		matched++
		if m.p.maxMatched > 0 && matched >= m.p.maxMatched {
			return
		}
	}
}

func (m *matcher) fullParse() {
	p, tokens := m.p, m.tokens
	matched := 0

	for i := 0; i < len(tokens); {
		tok := tokens[i]
		i++

		it := p.resolve(tok)
		if it == nil {
			if m.fail(p.unknownError(tok)) {
				return
			}
			continue
		}

		if m.opts.IsPassedIn(it.Name()) {
			if m.fail(NewParseError(ErrorTypeDuplicateOption, it.Name(),
				"option %s is specified more than once", it.Name())) {
				return
			}
			i += p.capture(tokens[i:], it.arity)
			continue
		}

		matched++
		if p.maxMatched > 0 && matched >= p.maxMatched {
			rest := tokens[i:]
			if it.arity != -1 && it.arity != len(rest) {
				m.fail(NewParseError(ErrorTypeArityMismatch, it.Name(),
					"option %s receives all %d remaining tokens but takes %d", it.Name(), len(rest), it.arity))
			} else {
				m.store(it, rest)
			}
			break
		}

		n := p.capture(tokens[i:], it.arity)
		captured := tokens[i : i+n]
		i += n
		if it.arity > 0 && n < it.arity {
			if m.fail(NewParseError(ErrorTypeArityMismatch, it.Name(),
				"option %s takes %d argument(s), got %d", it.Name(), it.arity, n)) {
				return
			}
			continue
		}
		if m.store(it, captured) {
			return
		}
	}
	if m.err != nil {
		return
	}

	for _, it := range p.Items() {
		if !it.Is(Required) || m.opts.IsPassedIn(it.Name()) || p.resolve(it.Name()) == nil {
			continue
		}
		if m.fail(NewParseError(ErrorTypeMissingRequired, it.Name(),
			"missing required option %s", it.Name())) {
			return
		}
	}

	for _, r := range p.rules {
		if err := r.Check(m.opts); err != nil && m.fail(err) {
			return
		}
	}
}

// store converts and validates the captured tokens of it
func (m *matcher) store(it *Item, tokens []string) bool {
	v, err := it.convert(tokens)
	if err != nil {
		return m.fail(err)
	}
	m.opts.set(it, v, slices.Clone(tokens))
	if m.p.debug {
		m.p.logger.Debug("%s <- %q", it.Name(), tokens)
	}
	return false
}

package command

import (
	"slices"

	"github.com/Zhangliubin/commandParser-1.1-sub000/types"
)

// Group is a named, ordered set of options. Groups only scope documentation and
// name uniqueness; matching resolves names across every group of a parser.
type Group struct {
	name   string
	items  []*Item
	index  map[string]*Item
	parser *Parser
}

// NewGroup creates a detached group. Attach it with Parser.AddGroup.
func NewGroup(name string) *Group {
	return &Group{name: name, index: make(map[string]*Item)}
}

func (g *Group) Name() string { return g.name }

// Len returns the number of options
func (g *Group) Len() int { return len(g.items) }

// Items returns the options in registration order
func (g *Group) Items() []*Item { return slices.Clone(g.items) }

// Lookup finds an option of this group by any of its names
func (g *Group) Lookup(name string) *Item { return g.index[name] }

func (g *Group) sealed() bool {
	return g.parser != nil && g.parser.isSealed()
}

// Register declares an option of type t and returns its builder. The first
// name is canonical. Names must match [A-Za-z0-9+\-_.]+ and be unique within
// the group and, once attached, within the parser.
func (g *Group) Register(t types.Type, names ...string) *ItemBuilder {
	if g.sealed() {
		configPanic(first(names), "cannot register options after parsing has started")
	}
	if !t.Valid() {
		configPanic(first(names), "unsupported type %s", t)
	}
	if len(names) == 0 {
		configPanic("", "an option needs at least one name")
	}
	g.checkNames(names)

	it := newItem(t, names)
	g.add(it)
	return &ItemBuilder{item: it}
}

// Merge moves every option of other into g. Nothing is moved if any name
// would be duplicated. other must not be attached to a parser.
func (g *Group) Merge(other *Group) *Group {
	if other == g {
		return g
	}
	if other.parser != nil {
		configPanic("", "group %q is already attached to a parser", other.name)
	}
	if g.sealed() {
		configPanic("", "cannot merge into group %q after parsing has started", g.name)
	}

	var names []string
	for _, it := range other.items {
		names = append(names, it.names...)
	}
	g.checkNames(names)

	for _, it := range other.items {
		g.add(it)
	}
	other.items = nil
	other.index = make(map[string]*Item)
	return g
}

func (g *Group) checkNames(names []string) {
	for i, name := range names {
		if !namePattern.MatchString(name) {
			configPanic(name, "illegal option name (allowed: letters, digits and +-_.)")
		}
		if slices.Contains(names[:i], name) {
			configPanic(name, "name given twice")
		}
		if _, dup := g.index[name]; dup {
			configPanic(name, "duplicate option name in group %q", g.name)
		}
		if g.parser != nil && g.parser.index[name] != nil {
			configPanic(name, "duplicate option name")
		}
	}
}

func (g *Group) add(it *Item) {
	it.group = g
	g.items = append(g.items, it)
	for _, name := range it.names {
		g.index[name] = it
		if g.parser != nil {
			g.parser.index[name] = it
		}
	}
}

func first(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

package warning

import (
	"fmt"
	"strings"
	"sync"
)

// Category identifies a kind of warning.
type Category uint16

const (
	Base Category = iota
	Format
	Engine
	DPKT
	Scapy
	PyShark
	File
	Layer
	Protocol
	Attribute
	DevMode
	Vendor
	InvalidVendor
	VendorRequest
	VendorRuntime
	Emoji

	builtinCount
)

// noParent marks the root.
const noParent = ^Category(0)

type entry struct {
	name   string
	desc   string
	parent Category
}

var (
	mu    sync.RWMutex
	table = []entry{
		Base:          {"BaseWarning", "base class for all warnings", noParent},
		Format:        {"FormatWarning", "malformed or unexpected data layout", Base},
		Engine:        {"EngineWarning", "parsing engine selection or behaviour issue", Base},
		DPKT:          {"DPKTWarning", "DPKT engine unavailable or misbehaving", Engine},
		Scapy:         {"ScapyWarning", "Scapy engine unavailable or misbehaving", Engine},
		PyShark:       {"PySharkWarning", "PyShark engine unavailable or misbehaving", Engine},
		File:          {"FileWarning", "file-level anomaly (truncated, unknown magic)", Base},
		Layer:         {"LayerWarning", "protocol layer anomaly", Base},
		Protocol:      {"ProtocolWarning", "protocol field or semantics anomaly", Base},
		Attribute:     {"AttributeWarning", "deprecated or missing attribute access", Base},
		DevMode:       {"DevModeWarning", "only relevant in development mode", Base},
		Vendor:        {"VendorWarning", "vendor or reference data issue", Base},
		InvalidVendor: {"InvalidVendorWarning", "vendor data malformed", Vendor},
		VendorRequest: {"VendorRequestWarning", "remote fetch of vendor data failed", Vendor},
		VendorRuntime: {"VendorRuntimeWarning", "vendor data usable but degraded", Vendor},
		Emoji:         {"EmojiWarning", "decorative output fallback", Base},
	}
	byName = indexNames(table)
)

func indexNames(t []entry) map[string]Category {
	m := make(map[string]Category, len(t)*2)
	for i, e := range t {
		addName(m, e.name, Category(i))
	}
	return m
}

// addName indexes both "VendorWarning" and "vendor".
func addName(m map[string]Category, name string, c Category) {
	low := strings.ToLower(name)
	m[low] = c
	if short := strings.TrimSuffix(low, "warning"); short != "" && short != low {
		if _, taken := m[short]; !taken {
			m[short] = c
		}
	}
}

// Register adds a new leaf category under parent and returns its tag.
// It panics if parent is unknown or name is already taken.
func Register(name string, parent Category, desc string) Category {
	mu.Lock()
	defer mu.Unlock()

	if strings.TrimSpace(name) == "" {
		panic("warning: Register with empty name")
	}
	if _, dup := byName[strings.ToLower(name)]; dup {
		panic(fmt.Sprintf("warning: category %q already registered", name))
	}
	if int(parent) >= len(table) {
		panic(fmt.Sprintf("warning: unknown parent category %d for %q", uint16(parent), name))
	}
	if len(table) >= int(noParent) {
		panic("warning: category table is full")
	}

	c := Category(len(table))
	table = append(table, entry{name: name, desc: desc, parent: parent})
	addName(byName, name, c)
	return c
}

// Lookup resolves a category by its full ("VendorWarning") or short
// ("vendor") name, case-insensitively.
func Lookup(name string) (Category, bool) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// MustLookup is like Lookup but panics on unknown names.
func MustLookup(name string) Category {
	c, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("warning: unknown category %q", name))
	}
	return c
}

// All returns every known category in definition order.
func All() []Category {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Category, len(table))
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

func (c Category) lookup() (entry, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if int(c) >= len(table) {
		return entry{}, false
	}
	return table[c], true
}

// Valid reports whether c is part of the taxonomy.
func (c Category) Valid() bool {
	_, ok := c.lookup()
	return ok
}

// Name returns the stable category name, e.g. "ProtocolWarning".
func (c Category) Name() string {
	e, ok := c.lookup()
	if !ok {
		return fmt.Sprintf("UnknownWarning(%d)", uint16(c))
	}
	return e.name
}

func (c Category) String() string {
	return c.Name()
}

// Description returns a one-line summary of the category.
func (c Category) Description() string {
	e, ok := c.lookup()
	if !ok {
		return "unknown warning category"
	}
	return e.desc
}

// Parent returns the direct parent. The root, and tags outside the table,
// report ok == false; unknown tags are treated as children of Base by
// IsDescendantOf.
func (c Category) Parent() (Category, bool) {
	e, ok := c.lookup()
	if !ok || e.parent == noParent {
		return 0, false
	}
	return e.parent, true
}

// Is reports whether c is ancestor or a descendant of it.
func (c Category) Is(ancestor Category) bool {
	return IsDescendantOf(c, ancestor)
}

// IsDescendantOf reports whether candidate equals ancestor or reaches it by
// following parent links.
func IsDescendantOf(candidate, ancestor Category) bool {
	mu.RLock()
	defer mu.RUnlock()

	if candidate == ancestor {
		return true
	}
	if int(candidate) >= len(table) {
		// Unknown tags hang off the root.
		return ancestor == Base
	}
	cur := candidate
	// Bounded walk: a cycle cannot outlast the table length.
	for range len(table) {
		p := table[cur].parent
		if p == noParent || int(p) >= len(table) {
			return false
		}
		if p == ancestor {
			return true
		}
		cur = p
	}
	return false
}

// Ancestors returns the parent chain of c, nearest first, ending at Base.
func (c Category) Ancestors() []Category {
	var out []Category
	cur := c
	for range len(All()) {
		p, ok := cur.Parent()
		if !ok {
			break
		}
		out = append(out, p)
		cur = p
	}
	if !c.Valid() {
		out = append(out, Base)
	}
	return out
}

// Depth is the number of edges between c and the root.
func (c Category) Depth() int {
	return len(c.Ancestors())
}

// Children returns the direct children of c in definition order.
func (c Category) Children() []Category {
	mu.RLock()
	defer mu.RUnlock()
	var out []Category
	for i, e := range table {
		if e.parent == c {
			out = append(out, Category(i))
		}
	}
	return out
}

// Descendants returns every category below c in definition order.
func (c Category) Descendants() []Category {
	var out []Category
	for _, cand := range All() {
		if cand != c && IsDescendantOf(cand, c) {
			out = append(out, cand)
		}
	}
	return out
}

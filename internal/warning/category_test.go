package warning

import (
	"strings"
	"testing"
)

func TestEveryCategoryDescendsFromBase(t *testing.T) {
	for _, c := range All() {
		if !IsDescendantOf(c, Base) {
			t.Fatalf("%s is not a descendant of BaseWarning", c)
		}
		if !IsDescendantOf(c, c) {
			t.Fatalf("%s is not a descendant of itself", c)
		}
	}
}

func TestIsDescendantOf(t *testing.T) {
	cases := []struct {
		cand, anc Category
		want      bool
	}{
		{VendorRuntime, Vendor, true},
		{VendorRuntime, Base, true},
		{VendorRequest, Vendor, true},
		{InvalidVendor, Engine, false},
		{Vendor, VendorRuntime, false},
		{DPKT, Engine, true},
		{PyShark, Scapy, false},
		{Protocol, Layer, false},
		{Base, Vendor, false},
		{Category(9999), Base, true},
		{Category(9999), Vendor, false},
	}
	for _, tc := range cases {
		if got := IsDescendantOf(tc.cand, tc.anc); got != tc.want {
			t.Fatalf("IsDescendantOf(%s, %s) = %v, want %v", tc.cand, tc.anc, got, tc.want)
		}
		if got := tc.cand.Is(tc.anc); got != tc.want {
			t.Fatalf("%s.Is(%s) = %v, want %v", tc.cand, tc.anc, got, tc.want)
		}
	}
}

func TestSingleParent(t *testing.T) {
	if _, ok := Base.Parent(); ok {
		t.Fatalf("BaseWarning must be the root")
	}
	for _, c := range All() {
		if c == Base {
			continue
		}
		p, ok := c.Parent()
		if !ok {
			t.Fatalf("%s has no parent", c)
		}
		found := 0
		for _, child := range p.Children() {
			if child == c {
				found++
			}
		}
		if found != 1 {
			t.Fatalf("%s listed %d times under %s", c, found, p)
		}
	}
}

func TestBuiltinNames(t *testing.T) {
	want := []string{
		"BaseWarning", "FormatWarning", "EngineWarning", "DPKTWarning",
		"ScapyWarning", "PySharkWarning", "FileWarning", "LayerWarning",
		"ProtocolWarning", "AttributeWarning", "DevModeWarning", "VendorWarning",
		"InvalidVendorWarning", "VendorRequestWarning", "VendorRuntimeWarning",
		"EmojiWarning",
	}
	if len(want) != int(builtinCount) {
		t.Fatalf("builtin count = %d, want %d", builtinCount, len(want))
	}
	for i, name := range want {
		if got := Category(i).Name(); got != name {
			t.Fatalf("Category(%d).Name() = %q, want %q", i, got, name)
		}
	}
}

func TestAncestorsAndDepth(t *testing.T) {
	got := VendorRuntime.Ancestors()
	if len(got) != 2 || got[0] != Vendor || got[1] != Base {
		t.Fatalf("VendorRuntime.Ancestors() = %v", got)
	}
	if d := Base.Depth(); d != 0 {
		t.Fatalf("Base.Depth() = %d", d)
	}
	if d := DPKT.Depth(); d != 2 {
		t.Fatalf("DPKT.Depth() = %d", d)
	}
	if d := Category(9999).Depth(); d != 1 {
		t.Fatalf("unknown Depth() = %d", d)
	}
}

func TestDescendants(t *testing.T) {
	got := Vendor.Descendants()
	want := []Category{InvalidVendor, VendorRequest, VendorRuntime}
	if len(got) != len(want) {
		t.Fatalf("Vendor.Descendants() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Vendor.Descendants() = %v, want %v", got, want)
		}
	}
}

func TestLookup(t *testing.T) {
	cases := []struct {
		in   string
		want Category
	}{
		{"VendorWarning", Vendor},
		{"vendorwarning", Vendor},
		{"vendor", Vendor},
		{" Protocol ", Protocol},
		{"dpkt", DPKT},
		{"BaseWarning", Base},
	}
	for _, tc := range cases {
		got, ok := Lookup(tc.in)
		if !ok || got != tc.want {
			t.Fatalf("Lookup(%q) = %v, %v; want %v", tc.in, got, ok, tc.want)
		}
	}
	if _, ok := Lookup("NoSuchWarning"); ok {
		t.Fatalf("Lookup of unknown name succeeded")
	}
}

func TestUnknownCategoryName(t *testing.T) {
	c := Category(4242)
	if c.Valid() {
		t.Fatalf("Category(4242) reported valid")
	}
	if got := c.Name(); got != "UnknownWarning(4242)" {
		t.Fatalf("Name() = %q", got)
	}
}

func TestRegisterAddsLeaf(t *testing.T) {
	before := make(map[Category][]Category)
	for _, c := range All() {
		before[c] = c.Ancestors()
	}

	c := Register("ReassemblyWarning", Protocol, "datagram reassembly anomaly")
	if !c.Valid() || c.Name() != "ReassemblyWarning" {
		t.Fatalf("registered category = %v", c)
	}
	if !c.Is(Protocol) || !c.Is(Base) || c.Is(Vendor) {
		t.Fatalf("unexpected ancestry for %s: %v", c, c.Ancestors())
	}
	if got, ok := Lookup("reassembly"); !ok || got != c {
		t.Fatalf("Lookup(reassembly) = %v, %v", got, ok)
	}

	for cat, anc := range before {
		now := cat.Ancestors()
		if len(now) != len(anc) {
			t.Fatalf("ancestry of %s changed after Register", cat)
		}
		for i := range anc {
			if now[i] != anc[i] {
				t.Fatalf("ancestry of %s changed after Register", cat)
			}
		}
	}
}

func TestRegisterPanics(t *testing.T) {
	cases := []struct {
		name   string
		parent Category
		msg    string
	}{
		{"VendorWarning", Base, "already registered"},
		{"OrphanWarning", Category(60000), "unknown parent"},
		{"  ", Base, "empty name"},
	}
	for _, tc := range cases {
		func() {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatalf("Register(%q) did not panic", tc.name)
				}
				if s, _ := r.(string); !strings.Contains(s, tc.msg) {
					t.Fatalf("Register(%q) panic = %v, want %q", tc.name, r, tc.msg)
				}
			}()
			Register(tc.name, tc.parent, "")
		}()
	}
}

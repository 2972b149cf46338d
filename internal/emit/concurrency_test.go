package emit

import (
	"testing"

	"golang.org/x/sync/errgroup"

	"pcapkit/internal/warning"
)

func emitFromSiteA(e *Emitter) { e.Warn(warning.Layer, "site a") }
func emitFromSiteB(e *Emitter) { e.Warn(warning.Layer, "site b") }

func TestConcurrentEmissionDedup(t *testing.T) {
	e, sink := newTestEmitter(Options{})

	var g errgroup.Group
	for i := range 64 {
		g.Go(func() error {
			for range 100 {
				if i%2 == 0 {
					emitFromSiteA(e)
				} else {
					emitFromSiteB(e)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("errgroup: %v", err)
	}

	got := sink.Lines()
	if len(got) != 2 {
		t.Fatalf("got %d lines %q, want exactly one per call site", len(got), got)
	}
	seen := map[string]bool{}
	for _, l := range got {
		seen[l] = true
	}
	if !seen["LayerWarning: site a"] || !seen["LayerWarning: site b"] {
		t.Fatalf("lines = %q", got)
	}
}

func TestConcurrentFilterMutation(t *testing.T) {
	e, _ := newTestEmitter(Options{DefaultAction: ActionAlways})

	var g errgroup.Group
	for i := range 16 {
		g.Go(func() error {
			for j := range 200 {
				switch (i + j) % 5 {
				case 0:
					e.Suppress(warning.Vendor, true)
				case 1:
					e.RemoveRules(warning.Vendor)
				case 2:
					e.Reset()
				case 3:
					_ = e.Rules()
				default:
					e.Warn(warning.VendorRequest, "fetch {0}", j)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("errgroup: %v", err)
	}

	// Whatever interleaving happened, the rule list never holds duplicates.
	rules := e.Rules()
	for i := range rules {
		for j := i + 1; j < len(rules); j++ {
			if rules[i] == rules[j] {
				t.Fatalf("duplicate rule %v in %v", rules[i], rules)
			}
		}
	}
}

package emit

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"pcapkit/internal/trace"
	"pcapkit/internal/warnfmt"
	"pcapkit/internal/warning"
)

// DefaultDedupCapacity bounds the "already shown" registry.
const DefaultDedupCapacity = 4096

// Options configures an Emitter.
type Options struct {
	Sink          Sink            // diagnostic channel, os.Stderr when nil
	Render        warnfmt.Options // presentation
	DefaultAction Action          // applies when no rule matches
	DevMode       bool            // show DevModeWarning
	DedupCapacity int             // 0 - DefaultDedupCapacity
	Rules         []Rule          // applied on top of the defaults, in order
	Metrics       *Metrics        // optional
	Tracer        trace.Tracer    // optional decision tracing
}

// Event is one warning on its way through the emitter. It lives for a
// single call.
type Event struct {
	Category  warning.Category
	Message   string // raw producer message
	Args      []any
	Text      string // interpolated message, or the raw one plus a sentinel
	FormatErr error
	Location  Location
}

type dedupKey struct {
	cat  warning.Category
	loc  locationKey
	once bool
}

// Emitter owns the filter state and deduplication registry. All methods are
// safe for concurrent use; the sink is always written outside of any lock.
type Emitter struct {
	opts     Options
	renderer *warnfmt.Renderer
	sink     Sink
	seen     *lru.Cache[dedupKey, struct{}]
	metrics  *Metrics
	tracer   trace.Tracer

	mu     sync.RWMutex
	rules  []Rule // newest first
	defAct Action
}

// New builds an Emitter in its default filter state.
func New(opts Options) *Emitter {
	if opts.DedupCapacity <= 0 {
		opts.DedupCapacity = DefaultDedupCapacity
	}
	sink := opts.Sink
	if sink == nil {
		sink = Stderr()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	// lru.New only fails on a non-positive size.
	seen, err := lru.New[dedupKey, struct{}](opts.DedupCapacity)
	if err != nil {
		panic(err)
	}

	e := &Emitter{
		opts:     opts,
		renderer: warnfmt.NewRenderer(opts.Render),
		sink:     sink,
		seen:     seen,
		metrics:  opts.Metrics,
		tracer:   tracer,
	}
	e.Reset()
	return e
}

// Warn emits a warning attributed to the caller of Warn.
func (e *Emitter) Warn(cat warning.Category, msg string, args ...any) {
	e.emit(1, nil, cat, msg, args)
}

// WarnDepth is Warn with the attributed frame moved depth levels further up
// the stack, for thin wrappers around the emitter. Negative depths count as 0.
func (e *Emitter) WarnDepth(depth int, cat warning.Category, msg string, args ...any) {
	e.emit(1+max(depth, 0), nil, cat, msg, args)
}

// WarnAt emits a warning attributed to an explicit location.
func (e *Emitter) WarnAt(loc Location, cat warning.Category, msg string, args ...any) {
	e.emit(0, &loc, cat, msg, args)
}

// emit never panics and never reports failure. skip counts frames above
// emit's direct caller.
func (e *Emitter) emit(skip int, loc *Location, cat warning.Category, msg string, args []any) {
	if e == nil {
		return
	}
	defer func() {
		// A warning must never take the host down.
		_ = recover()
	}()

	ev := Event{Category: cat, Message: msg, Args: args}
	ev.Text, ev.FormatErr = warnfmt.Message(msg, args)
	if ev.FormatErr != nil {
		e.metrics.formatFailed(cat)
	}

	if loc != nil {
		ev.Location = *loc
	} else {
		ev.Location = Caller(skip + 1)
	}

	act, rule := e.decide(cat)
	if act == ActionIgnore {
		e.metrics.suppressed(cat, "rule")
		e.record(trace.KindSuppressed, &ev, act, rule, "")
		return
	}

	var (
		key   dedupKey
		dedup bool
	)
	switch act {
	case ActionOncePerLocation:
		key, dedup = dedupKey{cat: cat, loc: ev.Location.key()}, true
	case ActionOnce:
		key, dedup = dedupKey{cat: cat, once: true}, true
	}
	if dedup {
		if seen, _ := e.seen.ContainsOrAdd(key, struct{}{}); seen {
			e.metrics.suppressed(cat, "duplicate")
			e.record(trace.KindDuplicate, &ev, act, rule, "")
			return
		}
	}

	line := e.renderer.Render(cat, ev.Text, ev.Location.String())
	if err := e.route(line); err != nil {
		// Not shown, so the next attempt from this site gets its chance.
		if dedup {
			e.seen.Remove(key)
		}
		e.metrics.routeFailed()
		e.record(trace.KindRouteFailed, &ev, act, rule, err.Error())
		return
	}
	e.metrics.emitted(cat)
	e.record(trace.KindShown, &ev, act, rule, "")
}

// decide returns the action for cat and the rule that chose it (nil when
// the default applied).
func (e *Emitter) decide(cat warning.Category) (Action, *Rule) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for i := range e.rules {
		if e.rules[i].Matches(cat) {
			r := e.rules[i]
			return r.Action, &r
		}
	}
	return e.defAct, nil
}

func (e *Emitter) route(line string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panic: %v", r)
		}
	}()
	return e.sink.Write(line)
}

func (e *Emitter) record(kind trace.Kind, ev *Event, act Action, rule *Rule, detail string) {
	if !e.tracer.Enabled() || !e.tracer.Level().ShouldEmit(kind) {
		return
	}
	if detail == "" && ev.FormatErr != nil {
		detail = ev.FormatErr.Error()
	}
	te := &trace.Event{
		Time:     time.Now(),
		Kind:     kind,
		Category: ev.Category.Name(),
		Action:   act.String(),
		Location: ev.Location.String(),
		Message:  ev.Text,
		Detail:   detail,
	}
	if rule != nil {
		te.Rule = rule.String()
	}
	e.tracer.Emit(te)
}

// AddRule installs r ahead of every existing rule. Adding a rule that is
// already present moves it to the front instead of duplicating it.
func (e *Emitter) AddRule(r Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = prepend(removeRule(e.rules, r), r)
}

// Suppress hides cat, and its descendants when propagate is set.
func (e *Emitter) Suppress(cat warning.Category, propagate bool) {
	e.AddRule(Rule{Category: cat, Action: ActionIgnore, Propagate: propagate})
}

// RemoveRules drops every rule targeting exactly cat and reports how many
// were removed.
func (e *Emitter) RemoveRules(cat warning.Category) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.rules[:0:0]
	for _, r := range e.rules {
		if r.Category != cat {
			kept = append(kept, r)
		}
	}
	n := len(e.rules) - len(kept)
	e.rules = kept
	return n
}

// Rules returns a copy of the active rules, newest first.
func (e *Emitter) Rules() []Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// DefaultAction returns the action used when no rule matches.
func (e *Emitter) DefaultAction() Action {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.defAct
}

// SetDefaultAction changes the action used when no rule matches.
func (e *Emitter) SetDefaultAction(a Action) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.defAct = a
}

// Reset restores the configured filter state and forgets every warning
// already shown.
func (e *Emitter) Reset() {
	e.mu.Lock()
	e.rules = e.rules[:0:0]
	for _, r := range defaultRules(e.opts.DevMode) {
		e.rules = prepend(removeRule(e.rules, r), r)
	}
	for _, r := range e.opts.Rules {
		e.rules = prepend(removeRule(e.rules, r), r)
	}
	e.defAct = e.opts.DefaultAction
	e.mu.Unlock()

	e.seen.Purge()
}

// For returns a Producer pinned to cat.
func (e *Emitter) For(cat warning.Category) Producer {
	return Producer{e: e, cat: cat}
}

func removeRule(rules []Rule, r Rule) []Rule {
	out := rules[:0:0]
	for _, have := range rules {
		if have != r {
			out = append(out, have)
		}
	}
	return out
}

func prepend(rules []Rule, r Rule) []Rule {
	out := make([]Rule, 0, len(rules)+1)
	out = append(out, r)
	return append(out, rules...)
}

package emit

import "pcapkit/internal/warning"

// Producer is a category-pinned shim around an Emitter. Warnings are still
// attributed to the code calling the Producer, not to the Producer itself.
type Producer struct {
	e   *Emitter
	cat warning.Category
}

// Category returns the pinned category.
func (p Producer) Category() warning.Category {
	return p.cat
}

// Warn emits msg under the pinned category.
func (p Producer) Warn(msg string, args ...any) {
	p.e.emit(1, nil, p.cat, msg, args)
}

// WarnDepth is Warn for wrappers around the Producer.
func (p Producer) WarnDepth(depth int, msg string, args ...any) {
	p.e.emit(1+max(depth, 0), nil, p.cat, msg, args)
}

// WarnAt emits msg under the pinned category at an explicit location.
func (p Producer) WarnAt(loc Location, msg string, args ...any) {
	p.e.emit(0, &loc, p.cat, msg, args)
}

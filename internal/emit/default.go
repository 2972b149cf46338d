package emit

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"pcapkit/internal/warning"
)

// DevModeEnv switches development-only warnings on for the default emitter.
const DevModeEnv = "PCAPKIT_DEVMODE"

var (
	defaultOnce    sync.Once
	defaultEmitter atomic.Pointer[Emitter]
)

// DevModeFromEnv reports whether PCAPKIT_DEVMODE holds a true value.
func DevModeFromEnv() bool {
	v := strings.TrimSpace(os.Getenv(DevModeEnv))
	switch strings.ToLower(v) {
	case "yes", "on":
		return true
	}
	on, err := strconv.ParseBool(v)
	return err == nil && on
}

// Default returns the process-wide emitter, writing to os.Stderr with the
// once-per-location policy.
func Default() *Emitter {
	defaultOnce.Do(func() {
		if defaultEmitter.Load() == nil {
			defaultEmitter.CompareAndSwap(nil, New(Options{DevMode: DevModeFromEnv()}))
		}
	})
	return defaultEmitter.Load()
}

// SetDefault replaces the process-wide emitter and returns the previous one.
// A nil e leaves the default in place and returns it.
func SetDefault(e *Emitter) *Emitter {
	if e == nil {
		return Default()
	}
	Default()
	return defaultEmitter.Swap(e)
}

// Warn emits through the default emitter, attributed to the caller.
func Warn(cat warning.Category, msg string, args ...any) {
	Default().emit(1, nil, cat, msg, args)
}

// WarnDepth emits through the default emitter with a stack hint.
func WarnDepth(depth int, cat warning.Category, msg string, args ...any) {
	Default().emit(1+max(depth, 0), nil, cat, msg, args)
}

// WarnAt emits through the default emitter at an explicit location.
func WarnAt(loc Location, cat warning.Category, msg string, args ...any) {
	Default().emit(0, &loc, cat, msg, args)
}

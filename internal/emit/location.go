package emit

import (
	"path/filepath"
	"runtime"
	"strconv"

	"fortio.org/safecast"
)

// Location identifies the call site a warning is attributed to. It is either
// resolved from the call stack or supplied by the producer as a token.
type Location struct {
	File string
	Line uint32
	Func string
	Tag  string // logical location for producers without a meaningful frame
}

// At builds an explicit location token.
func At(tag string) Location {
	return Location{Tag: tag}
}

// IsZero reports whether nothing is known about the location.
func (l Location) IsZero() bool {
	return l.File == "" && l.Tag == ""
}

// String renders "file.go:12", the tag, or both.
func (l Location) String() string {
	switch {
	case l.File == "":
		return l.Tag
	case l.Tag == "":
		return filepath.Base(l.File) + ":" + strconv.FormatUint(uint64(l.Line), 10)
	default:
		return filepath.Base(l.File) + ":" + strconv.FormatUint(uint64(l.Line), 10) + " (" + l.Tag + ")"
	}
}

type locationKey struct {
	file string
	line uint32
	tag  string
}

func (l Location) key() locationKey {
	return locationKey{file: l.File, line: l.Line, tag: l.Tag}
}

// Caller resolves the frame skip levels above the function calling Caller.
// Unreachable frames yield a Location tagged "unknown".
func Caller(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{Tag: "unknown"}
	}
	loc := Location{File: file}
	if l, err := safecast.Conv[uint32](line); err == nil {
		loc.Line = l
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		loc.Func = fn.Name()
	}
	return loc
}

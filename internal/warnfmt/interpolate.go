package warnfmt

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatError describes why a message could not be interpolated.
type FormatError struct {
	Reason string
	Args   []any
}

func (e *FormatError) Error() string {
	return "format error: " + e.Reason
}

// Interpolate substitutes positional placeholders in msg with args.
//
// Placeholders follow the str.format convention used by the packet engine:
// "{0}", "{1}" select an argument by index, "{}" takes the next one, and
// "{{" / "}}" are literal braces. A field may carry a conversion ("!r" for
// the Go-syntax form, "!s" for the plain one) and a format spec after ':'
// in the [[fill]align][sign][#][0][width][.precision][type] form, e.g.
// "{0:#06x}" or "{1:>8}". Types b, c, d, e, E, f, F, g, G, n, o, s, x and X
// are supported; centering, grouping and '%' are not.
//
// Without args the message is not interpolated, so pre-formatted text
// containing braces is returned as-is, unless it holds a well-formed
// positional placeholder, which is reported as a missing argument.
//
// Arity mismatches (missing or unused arguments), mixing "{}" with "{N}",
// unsupported specs and malformed braces yield a *FormatError.
func Interpolate(msg string, args []any) (string, error) {
	if len(args) == 0 {
		if field, ok := firstPlaceholder(msg); ok {
			return "", &FormatError{Reason: fmt.Sprintf("missing argument for {%s} (have 0)", field)}
		}
		return msg, nil
	}

	var (
		b      strings.Builder
		used   = make([]bool, len(args))
		auto   = 0
		manual = false
	)
	fail := func(format string, a ...any) (string, error) {
		return "", &FormatError{Reason: fmt.Sprintf(format, a...), Args: args}
	}

	for i := 0; i < len(msg); i++ {
		ch := msg[i]
		switch ch {
		case '{':
			if i+1 < len(msg) && msg[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(msg[i+1:], '}')
			if end < 0 {
				return fail("unterminated placeholder at offset %d", i)
			}
			field := msg[i+1 : i+1+end]
			i += end + 1

			ref, verb, err := parseField(field)
			if err != nil {
				return fail("%v", err)
			}
			var idx int
			if ref == "" {
				if manual {
					return fail("cannot mix automatic and manual field numbering")
				}
				idx = auto
				auto++
			} else {
				n, err := strconv.Atoi(ref)
				if err != nil || n < 0 {
					return fail("invalid placeholder {%s}", field)
				}
				if auto > 0 {
					return fail("cannot mix automatic and manual field numbering")
				}
				manual = true
				idx = n
			}
			if idx >= len(args) {
				return fail("missing argument %d (have %d)", idx, len(args))
			}
			used[idx] = true
			b.WriteString(fmt.Sprintf(verb, args[idx]))
		case '}':
			if i+1 < len(msg) && msg[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return fail("single '}' at offset %d", i)
		default:
			b.WriteByte(ch)
		}
	}

	unused := 0
	for _, u := range used {
		if !u {
			unused++
		}
	}
	if unused > 0 {
		return fail("%d of %d arguments unused", unused, len(args))
	}
	return b.String(), nil
}

// firstPlaceholder finds the first field that would take an argument:
// "{}", "{N}" or either with a conversion or spec. Other brace runs are
// literal text.
func firstPlaceholder(msg string) (string, bool) {
	for i := 0; i < len(msg); i++ {
		if msg[i] != '{' {
			continue
		}
		if i+1 < len(msg) && msg[i+1] == '{' {
			i++
			continue
		}
		end := strings.IndexByte(msg[i+1:], '}')
		if end < 0 {
			return "", false
		}
		field := msg[i+1 : i+1+end]
		ref, _, err := parseField(field)
		if err == nil && (ref == "" || isDigits(ref)) {
			return field, true
		}
		i += end
	}
	return "", false
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// parseField splits "ref!conv:spec" and returns the argument reference and
// the equivalent fmt verb.
func parseField(field string) (string, string, error) {
	ref, spec, hasSpec := strings.Cut(field, ":")
	ref, conv, hasConv := strings.Cut(ref, "!")

	verb := "%v"
	if hasConv {
		switch conv {
		case "s":
		case "r":
			verb = "%#v"
		default:
			return "", "", fmt.Errorf("unsupported conversion !%s in {%s}", conv, field)
		}
	}
	if !hasSpec || spec == "" {
		return ref, verb, nil
	}
	v, err := specVerb(spec, hasConv && conv == "r")
	if err != nil {
		return "", "", fmt.Errorf("%v in {%s}", err, field)
	}
	return ref, v, nil
}

// specVerb maps a str.format spec onto a fmt verb.
func specVerb(spec string, repr bool) (string, error) {
	var flags strings.Builder
	i := 0
	isAlign := func(c byte) bool { return c == '<' || c == '>' || c == '^' || c == '=' }

	align, fill := byte(0), byte(' ')
	switch {
	case len(spec) >= 2 && isAlign(spec[1]):
		fill, align = spec[0], spec[1]
		i = 2
	case isAlign(spec[0]):
		align = spec[0]
		i = 1
	}
	switch align {
	case '^':
		return "", fmt.Errorf("centered alignment is not supported")
	case '<':
		flags.WriteByte('-')
	}
	switch fill {
	case ' ':
	case '0':
		if align != '<' {
			flags.WriteByte('0')
		}
	default:
		return "", fmt.Errorf("fill %q is not supported", fill)
	}

	if i < len(spec) && (spec[i] == '+' || spec[i] == ' ' || spec[i] == '-') {
		if spec[i] != '-' {
			flags.WriteByte(spec[i])
		}
		i++
	}
	if i < len(spec) && spec[i] == '#' {
		flags.WriteByte('#')
		i++
	}
	if i < len(spec) && spec[i] == '0' {
		flags.WriteByte('0')
		i++
	}
	start := i
	for i < len(spec) && spec[i] >= '0' && spec[i] <= '9' {
		i++
	}
	width := spec[start:i]
	prec := ""
	if i < len(spec) && spec[i] == '.' {
		start = i
		i++
		for i < len(spec) && spec[i] >= '0' && spec[i] <= '9' {
			i++
		}
		prec = spec[start:i]
	}

	var verb byte
	switch rest := spec[i:]; rest {
	case "":
		verb = 'v'
		if repr {
			flags.WriteByte('#')
		}
	case "b", "c", "d", "e", "E", "f", "F", "g", "G", "o", "s", "x", "X":
		verb = rest[0]
		if verb == 'F' {
			verb = 'f'
		}
	case "n":
		verb = 'd'
	default:
		return "", fmt.Errorf("unsupported format spec %q", spec)
	}
	return "%" + flags.String() + width + prec + string(verb), nil
}

// Sentinel appends a visible formatting-failure notice to the raw message.
func Sentinel(msg string, err error) string {
	var b strings.Builder
	b.WriteString(msg)
	b.WriteString(" [")
	b.WriteString(err.Error())
	if fe, ok := err.(*FormatError); ok && len(fe.Args) > 0 {
		b.WriteString("; args:")
		for _, a := range fe.Args {
			b.WriteByte(' ')
			b.WriteString(fmt.Sprintf("%#v", a))
		}
	}
	b.WriteByte(']')
	return b.String()
}

// Message interpolates msg and falls back to Sentinel on failure. The
// returned error is informational only.
func Message(msg string, args []any) (string, error) {
	text, err := Interpolate(msg, args)
	if err != nil {
		return Sentinel(msg, err), err
	}
	return text, nil
}

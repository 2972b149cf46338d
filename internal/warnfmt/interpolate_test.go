package warnfmt

import (
	"errors"
	"strings"
	"testing"
)

func TestInterpolate(t *testing.T) {
	cases := []struct {
		msg  string
		args []any
		want string
	}{
		{"unknown field 0x1f", nil, "unknown field 0x1f"},
		{"literal {braces} kept without args", nil, "literal {braces} kept without args"},
		{"{0} of {1}", []any{3, 4}, "3 of 4"},
		{"{1} before {0}", []any{"a", "b"}, "b before a"},
		{"{0} and {0}", []any{"x"}, "x and x"},
		{"{} then {}", []any{1, "two"}, "1 then two"},
		{"{{escaped}} {0}", []any{true}, "{escaped} true"},
		{"vendor {0}: код {1}", []any{"tcp", 7}, "vendor tcp: код 7"},
		{`{"len": 3} stays literal`, nil, `{"len": 3} stays literal`},
		{"{{0}} is escaped", nil, "{{0}} is escaped"},
		{"checksum {0:#x}", []any{31}, "checksum 0x1f"},
		{"type {0:04X}", []any{2048}, "type 0800"},
		{"ratio {0:.2f}", []any{1.5}, "ratio 1.50"},
		{"[{0:>5}] [{1:<5}]", []any{"ip", "tcp"}, "[   ip] [tcp  ]"},
		{"{0:+d} {1:o} {2:b}", []any{7, 8, 5}, "+7 10 101"},
		{"layer {0!r}", []any{"IPv4"}, `layer "IPv4"`},
		{"{:x}-{:x}", []any{10, 11}, "a-b"},
	}
	for _, tc := range cases {
		got, err := Interpolate(tc.msg, tc.args)
		if err != nil {
			t.Fatalf("Interpolate(%q, %v) error: %v", tc.msg, tc.args, err)
		}
		if got != tc.want {
			t.Fatalf("Interpolate(%q, %v) = %q, want %q", tc.msg, tc.args, got, tc.want)
		}
	}
}

func TestInterpolateFailures(t *testing.T) {
	cases := []struct {
		msg    string
		args   []any
		reason string
	}{
		{"{0} of {1}", []any{3}, "missing argument 1"},
		{"no placeholders", []any{1}, "1 of 1 arguments unused"},
		{"{0}", []any{1, 2}, "1 of 2 arguments unused"},
		{"{} and {1}", []any{1, 2}, "cannot mix"},
		{"{1} and {}", []any{1, 2}, "cannot mix"},
		{"{0", []any{1}, "unterminated placeholder"},
		{"{name}", []any{1}, "invalid placeholder {name}"},
		{"{-1}", []any{1}, "invalid placeholder"},
		{"{0} }", []any{1}, "single '}'"},
		{"{0} of {1}", nil, "missing argument for {0} (have 0)"},
		{"offset {:#x}", nil, "missing argument for {:#x}"},
		{"{0:^8}", []any{1}, "centered alignment is not supported"},
		{"{0:,}", []any{1000}, "unsupported format spec"},
		{"{0:*<4}", []any{1}, "fill"},
		{"{0!a}", []any{1}, "unsupported conversion !a"},
	}
	for _, tc := range cases {
		_, err := Interpolate(tc.msg, tc.args)
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Fatalf("Interpolate(%q, %v) error = %v, want *FormatError", tc.msg, tc.args, err)
		}
		if !strings.Contains(fe.Reason, tc.reason) {
			t.Fatalf("Interpolate(%q) reason = %q, want it to contain %q", tc.msg, fe.Reason, tc.reason)
		}
	}
}

func TestMessageSentinel(t *testing.T) {
	got, err := Message("{0} of {1}", []any{3})
	if err == nil {
		t.Fatalf("expected informational error")
	}
	want := "{0} of {1} [format error: missing argument 1 (have 1); args: 3]"
	if got != want {
		t.Fatalf("Message() = %q, want %q", got, want)
	}
}

type panicky struct{}

func (panicky) String() string { panic("boom") }

func TestMessageNeverPanics(t *testing.T) {
	inputs := []struct {
		msg  string
		args []any
	}{
		{"{0}", []any{panicky{}}},
		{"{0}", []any{nil}},
		{"{", []any{nil, nil}},
		{"}", []any{(*int)(nil)}},
		{"{99999999999999999999}", []any{1}},
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Message(%q) panicked: %v", in.msg, r)
				}
			}()
			_, _ = Message(in.msg, in.args)
		}()
	}
}

package trace

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format represents the output format for trace events.
type Format uint8

const (
	FormatAuto   Format = iota // pick from the output path
	FormatText                 // human-readable text
	FormatNDJSON               // newline-delimited JSON
)

// ParseFormat converts a string to Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
	}
}

// FormatEvent formats an event according to the specified format.
func FormatEvent(ev *Event, format Format) []byte {
	switch format {
	case FormatNDJSON:
		return formatNDJSON(ev)
	default:
		return formatText(ev)
	}
}

// formatNDJSON formats an event as newline-delimited JSON.
func formatNDJSON(ev *Event) []byte {
	type jsonEvent struct {
		Time     string `json:"time"`
		Seq      uint64 `json:"seq"`
		Kind     string `json:"kind"`
		Category string `json:"category"`
		Action   string `json:"action,omitempty"`
		Rule     string `json:"rule,omitempty"`
		Location string `json:"location,omitempty"`
		Message  string `json:"message"`
		Detail   string `json:"detail,omitempty"`
	}

	j := jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Category: ev.Category,
		Action:   ev.Action,
		Rule:     ev.Rule,
		Location: ev.Location,
		Message:  ev.Message,
		Detail:   ev.Detail,
	}

	data, err := json.Marshal(j)
	if err != nil {
		return nil
	}
	return append(data, '\n')
}

// formatText formats an event as human-readable text.
// Format: #seq kind Category @location [action by rule] message (detail)
func formatText(ev *Event) []byte {
	var sb strings.Builder

	fmt.Fprintf(&sb, "#%d %-12s %s", ev.Seq, ev.Kind, ev.Category)
	if ev.Location != "" {
		sb.WriteString(" @")
		sb.WriteString(ev.Location)
	}
	if ev.Action != "" {
		sb.WriteString(" [")
		sb.WriteString(ev.Action)
		if ev.Rule != "" {
			sb.WriteString(" by ")
			sb.WriteString(ev.Rule)
		}
		sb.WriteString("]")
	}
	sb.WriteString(" ")
	sb.WriteString(ev.Message)
	if ev.Detail != "" {
		sb.WriteString(" (")
		sb.WriteString(ev.Detail)
		sb.WriteString(")")
	}

	sb.WriteString("\n")
	return []byte(sb.String())
}

// Package config loads warning filter configuration from TOML files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"pcapkit/internal/emit"
	"pcapkit/internal/warnfmt"
	"pcapkit/internal/warning"
)

// FileName is looked up from the working directory upwards.
const FileName = "pcapkit-warnings.toml"

// RulesEnv holds extra rules, comma separated, e.g.
// "never-again:VendorWarning,always:ProtocolWarning:nopropagate".
const RulesEnv = "PCAPKIT_WARNINGS"

// ColorMode selects when the category name is colored.
type ColorMode string

const (
	ColorAuto ColorMode = "auto"
	ColorOn   ColorMode = "on"
	ColorOff  ColorMode = "off"
)

// ParseColorMode validates a color mode string.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorOn, ColorOff:
		return m, nil
	case "always", "true":
		return ColorOn, nil
	case "never", "false":
		return ColorOff, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q (expected auto|on|off)", s)
}

// Resolve turns the mode into a yes/no given whether the channel is a terminal.
func (m ColorMode) Resolve(isTerminal bool) bool {
	switch m {
	case ColorOn:
		return true
	case ColorOff:
		return false
	}
	return isTerminal
}

// RuleConfig is one [[rule]] table.
type RuleConfig struct {
	Category  string `toml:"category"`
	Action    string `toml:"action"`
	Propagate *bool  `toml:"propagate"`
}

// Config mirrors the TOML file.
type Config struct {
	Default       string       `toml:"default"`
	DevMode       bool         `toml:"devmode"`
	DedupCapacity int          `toml:"dedup_capacity"`
	ShowLocation  bool         `toml:"show_location"`
	Color         string       `toml:"color"`
	Width         int          `toml:"width"`
	Rules         []RuleConfig `toml:"rule"`

	// Path is the file the configuration came from, empty for defaults.
	Path string `toml:"-"`
}

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses the TOML file at path and validates it.
func Load(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if _, err := cfg.EmitOptions(false); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path when given, otherwise searches from the working
// directory, and falls back to the zero configuration.
func LoadOrDefault(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	found, ok, err := Find(".")
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Config{}, nil
	}
	return Load(found)
}

// ApplyEnv overlays PCAPKIT_DEVMODE and PCAPKIT_WARNINGS. Environment rules
// are appended, so they win over rules from the file.
func (c *Config) ApplyEnv() error {
	if _, set := os.LookupEnv(emit.DevModeEnv); set {
		c.DevMode = emit.DevModeFromEnv()
	}
	raw := strings.TrimSpace(os.Getenv(RulesEnv))
	if raw == "" {
		return nil
	}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		r, err := emit.ParseRule(item)
		if err != nil {
			return fmt.Errorf("%s: %w", RulesEnv, err)
		}
		propagate := r.Propagate
		c.Rules = append(c.Rules, RuleConfig{
			Category:  r.Category.Name(),
			Action:    r.Action.String(),
			Propagate: &propagate,
		})
	}
	return nil
}

// EmitOptions converts the configuration into emitter options. Sink, metrics
// and tracer are left for the caller.
func (c Config) EmitOptions(isTerminal bool) (emit.Options, error) {
	def, err := emit.ParseAction(c.Default)
	if err != nil {
		return emit.Options{}, fmt.Errorf("default: %w", err)
	}
	if c.DedupCapacity < 0 {
		return emit.Options{}, fmt.Errorf("dedup_capacity must not be negative, got %d", c.DedupCapacity)
	}
	if c.Width < 0 {
		return emit.Options{}, fmt.Errorf("width must not be negative, got %d", c.Width)
	}
	color, err := ParseColorMode(c.Color)
	if err != nil {
		return emit.Options{}, err
	}

	rules := make([]emit.Rule, 0, len(c.Rules))
	for i, rc := range c.Rules {
		cat, ok := warning.Lookup(rc.Category)
		if !ok {
			return emit.Options{}, fmt.Errorf("rule %d: unknown category %q", i+1, rc.Category)
		}
		act, err := emit.ParseAction(rc.Action)
		if err != nil {
			return emit.Options{}, fmt.Errorf("rule %d: %w", i+1, err)
		}
		propagate := true
		if rc.Propagate != nil {
			propagate = *rc.Propagate
		}
		rules = append(rules, emit.Rule{Category: cat, Action: act, Propagate: propagate})
	}

	return emit.Options{
		DefaultAction: def,
		DevMode:       c.DevMode,
		DedupCapacity: c.DedupCapacity,
		Rules:         rules,
		Render: warnfmt.Options{
			ShowLocation: c.ShowLocation,
			Color:        color.Resolve(isTerminal),
			Width:        c.Width,
		},
	}, nil
}

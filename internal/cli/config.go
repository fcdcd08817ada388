package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/seitarof/gen-bind/internal/matcher"
	"github.com/seitarof/gen-bind/internal/report"
	"github.com/seitarof/gen-bind/internal/resolver"
)

// Config stores CLI options for a single resolution run.
type Config struct {
	Target   string   `yaml:"target" toml:"target"`
	Packages []string `yaml:"packages" toml:"packages"`
	Dir      string   `yaml:"dir" toml:"dir"`
	Exclude  []string `yaml:"exclude" toml:"exclude"`
	Slots    []string `yaml:"slots" toml:"slots"`
	Leaves   []string `yaml:"leaves" toml:"leaves"`
	Marker   string   `yaml:"marker" toml:"marker"`
	Strategy string   `yaml:"strategy" toml:"strategy"`
	Output   string   `yaml:"output" toml:"output"`
	Format   string   `yaml:"format" toml:"format"`
	Verbose  bool     `yaml:"verbose" toml:"verbose"`

	ConfigPath  string `yaml:"-" toml:"-"`
	ShowVersion bool   `yaml:"-" toml:"-"`
}

func defaultConfig() *Config {
	return &Config{
		Marker:   matcher.DefaultMarker,
		Strategy: "auto",
		Format:   string(report.FormatText),
	}
}

// LoadFile reads a YAML or TOML config file, chosen by extension.
// Keys missing from the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	cfg.ConfigPath = path
	return cfg, nil
}

// OutputFilename returns destination file path for generator layer. The
// generated file declares the package of the first leaf.
func (c *Config) OutputFilename() string {
	return c.Output
}

// ResolverStrategy maps the configured strategy name onto the resolver,
// letting auto pick by the target's kind.
func (c *Config) ResolverStrategy(target resolver.Decl) (resolver.Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(c.Strategy)) {
	case "", "auto":
		return resolver.StrategyFor(target), nil
	case resolver.ClassChain.String():
		return resolver.ClassChain, nil
	case resolver.InterfaceAware.String():
		return resolver.InterfaceAware, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q", c.Strategy)
	}
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Target) == "" {
		return fmt.Errorf("--target is required")
	}
	if len(c.Packages) == 0 {
		return fmt.Errorf("--packages is required")
	}
	switch strings.ToLower(strings.TrimSpace(c.Strategy)) {
	case "", "auto", resolver.ClassChain.String(), resolver.InterfaceAware.String():
	default:
		return fmt.Errorf("--strategy must be auto, class or interface, got %q", c.Strategy)
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("--format: %w", err)
	}
	return nil
}

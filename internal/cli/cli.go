package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/seitarof/gen-bind/internal/matcher"
	"github.com/seitarof/gen-bind/internal/report"
)

// ParseArgs parses command line arguments into Config. A config file named
// by --config is loaded first; flags given explicitly override it.
func ParseArgs(args []string) (*Config, error) {
	flags := defaultConfig()
	var packagesRaw, excludeRaw, slotsRaw, leavesRaw string

	fs := pflag.NewFlagSet("gen-bind", pflag.ContinueOnError)
	fs.StringVarP(&flags.ConfigPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	fs.StringVarP(&flags.Target, "target", "t", "", "qualified name of the generic target type")
	fs.StringVarP(&packagesRaw, "packages", "p", "", "comma-separated package patterns to search for leaves")
	fs.StringVar(&flags.Dir, "dir", "", "directory package patterns are resolved from")
	fs.StringVar(&excludeRaw, "exclude", "", "comma-separated qualified name prefixes never traversed")
	fs.StringVar(&slotsRaw, "slots", "", "comma-separated target parameters to resolve (default all)")
	fs.StringVar(&leavesRaw, "leaves", "", "comma-separated leaf type name globs")
	fs.StringVar(&flags.Marker, "marker", matcher.DefaultMarker, "doc comment line marking a leaf type")
	fs.StringVar(&flags.Strategy, "strategy", "auto", "resolution strategy: auto, class or interface")
	fs.StringVarP(&flags.Output, "output", "o", "", "generated assertion file (optional); it declares the first leaf's package, so place it in that package's directory")
	fs.StringVar(&flags.Format, "format", string(report.FormatText), "report format: text, json or yaml")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable debug logging")
	fs.BoolVarP(&flags.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if flags.ShowVersion {
		return flags, nil
	}

	flags.Packages = splitCommaList(packagesRaw)
	flags.Exclude = splitCommaList(excludeRaw)
	flags.Slots = splitCommaList(slotsRaw)
	flags.Leaves = splitCommaList(leavesRaw)

	cfg := flags
	if flags.ConfigPath != "" {
		loaded, err := LoadFile(flags.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = mergeFlags(loaded, flags, fs)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags copies every flag the user set explicitly over base.
func mergeFlags(base, flags *Config, fs *pflag.FlagSet) *Config {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "target":
			base.Target = flags.Target
		case "packages":
			base.Packages = flags.Packages
		case "dir":
			base.Dir = flags.Dir
		case "exclude":
			base.Exclude = flags.Exclude
		case "slots":
			base.Slots = flags.Slots
		case "leaves":
			base.Leaves = flags.Leaves
		case "marker":
			base.Marker = flags.Marker
		case "strategy":
			base.Strategy = flags.Strategy
		case "output":
			base.Output = flags.Output
		case "format":
			base.Format = flags.Format
		case "verbose":
			base.Verbose = flags.Verbose
		}
	})
	return base
}

func splitCommaList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

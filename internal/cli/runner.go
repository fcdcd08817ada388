package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"go.uber.org/zap"

	"github.com/seitarof/gen-bind/internal/generator"
	"github.com/seitarof/gen-bind/internal/matcher"
	"github.com/seitarof/gen-bind/internal/parser"
	"github.com/seitarof/gen-bind/internal/report"
	"github.com/seitarof/gen-bind/internal/resolver"
)

// ErrNoLeaves is returned when the searched packages contain no leaf types.
var ErrNoLeaves = errors.New("no leaf types found")

// Runner orchestrates parser/matcher/resolver/generator layers.
type Runner interface {
	Run(cfg *Config, out io.Writer) error
}

// ResolverFactory builds the resolver for one run once the target is known.
type ResolverFactory func(ctx resolver.Context, host resolver.Introspector, opts ...resolver.Option) resolver.Resolver

type runnerImpl struct {
	parser      parser.Parser
	leaves      matcher.LeafMatcher
	newResolver ResolverFactory
	generator   generator.Generator
	log         *zap.Logger
}

// NewRunner creates a default runner implementation. A nil factory uses
// resolver.New and a nil logger discards output.
func NewRunner(
	p parser.Parser,
	lm matcher.LeafMatcher,
	rf ResolverFactory,
	g generator.Generator,
	log *zap.Logger,
) Runner {
	if rf == nil {
		rf = resolver.New
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &runnerImpl{
		parser:      p,
		leaves:      lm,
		newResolver: rf,
		generator:   g,
		log:         log,
	}
}

// Run executes a single resolution cycle.
func (r *runnerImpl) Run(cfg *Config, out io.Writer) error {
	infos, err := r.parser.Parse(cfg.Packages...)
	if err != nil {
		return fmt.Errorf("parse packages: %w", err)
	}
	target, err := r.parser.LookupDecl(cfg.Target)
	if err != nil {
		return fmt.Errorf("load target: %w", err)
	}

	leaves := r.leaves.Match(infos)
	if len(leaves) == 0 {
		return fmt.Errorf("%w in %q", ErrNoLeaves, cfg.Packages)
	}

	host := parser.NewHost()
	slots, err := targetSlots(cfg, host, target)
	if err != nil {
		return err
	}
	strategy, err := cfg.ResolverStrategy(target)
	if err != nil {
		return err
	}

	ctx := resolver.StaticContext{
		Target:   target.QualifiedName(),
		Excluded: cfg.Exclude,
		Factory:  resolver.NewSlotFactory(slots...),
	}
	res := r.newResolver(ctx, host, resolver.WithStrategy(strategy), resolver.WithLogger(r.log))

	results := make([]report.Result, 0, len(leaves))
	bindings := make([]generator.Binding, 0, len(leaves))
	complete := 0
	for _, leaf := range leaves {
		m, ok := res.Resolve(leaf.Decl)
		if !ok {
			m = nil
		}
		result := buildResult(leaf, target, slots, m)
		if result.Complete {
			complete++
		}
		results = append(results, result)
		bindings = append(bindings, generator.Binding{Leaf: leaf, Target: target, Model: m})
	}
	r.log.Info("resolved leaves",
		zap.String("target", target.QualifiedName()),
		zap.String("strategy", strategy.String()),
		zap.Int("leaves", len(leaves)),
		zap.Int("complete", complete),
	)

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	if err := report.Write(out, format, results); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if cfg.OutputFilename() == "" || r.generator == nil {
		return nil
	}
	if err := r.generator.Generate(cfg, bindings); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	return nil
}

// targetSlots returns the configured slots, defaulting to every parameter
// the target declares.
func targetSlots(cfg *Config, host resolver.Introspector, target resolver.Decl) ([]string, error) {
	params := host.TypeParams(target)
	if len(cfg.Slots) == 0 {
		return params, nil
	}
	for _, slot := range cfg.Slots {
		if !slices.Contains(params, slot) {
			return nil, fmt.Errorf("slot %q is not a type parameter of %s", slot, target.QualifiedName())
		}
	}
	return cfg.Slots, nil
}

func buildResult(leaf *parser.DeclInfo, target resolver.Decl, slots []string, m *resolver.Model) report.Result {
	result := report.Result{
		Leaf:   leaf.QualifiedName(),
		Target: target.QualifiedName(),
	}
	if m == nil {
		return result
	}
	result.Resolved = true
	result.Complete = m.Complete()

	rec := m.Record()
	for _, slot := range slots {
		sv := report.SlotValue{Slot: slot}
		if rec != nil {
			if v, ok := rec.Get(slot); ok {
				sv.Type = v.String()
				sv.Bound = true
			}
		}
		result.Slots = append(result.Slots, sv)
	}
	return result
}

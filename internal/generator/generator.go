package generator

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"go/types"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"go.uber.org/zap"
	"golang.org/x/tools/imports"

	"github.com/seitarof/gen-bind/internal/parser"
	"github.com/seitarof/gen-bind/internal/resolver"
)

//go:embed templates/*.go.tmpl
var templateFS embed.FS

// ErrNoBindings is returned when no leaf has a complete binding to emit.
var ErrNoBindings = errors.New("no complete bindings")

// Binding pairs a leaf declaration with its resolved model.
type Binding struct {
	Leaf   *parser.DeclInfo
	Target *parser.Decl
	Model  *resolver.Model
}

// Generator emits compile-time binding assertions.
type Generator interface {
	Generate(cfg Config, bindings []Binding) error
}

// Config is the minimum config contract required by generator.
type Config interface {
	OutputFilename() string
}

// Formatter formats generated Go code and organizes imports.
type Formatter interface {
	Format(filename string, src []byte) ([]byte, error)
}

// FileWriter writes generated code to disk.
type FileWriter interface {
	Write(filename string, data []byte) error
}

// Option configures the generator.
type Option func(*generatorImpl)

// WithLogger sets the logger skipped bindings are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(g *generatorImpl) {
		if l != nil {
			g.log = l
		}
	}
}

type generatorImpl struct {
	formatter Formatter
	writer    FileWriter
	tmpl      *template.Template
	log       *zap.Logger
}

type goimportsFormatter struct{}

type fileWriter struct{}

type templateData struct {
	Package  string
	Imports  []importSpec
	Bindings []bindingTemplateData
}

type importSpec struct {
	Alias string
	Path  string
}

type bindingTemplateData struct {
	Leaf          string
	Target        string
	Instantiation string
	Args          []string
}

// New creates a code generator.
func New(f Formatter, w FileWriter, opts ...Option) Generator {
	tmpl := template.Must(template.New("").ParseFS(templateFS, "templates/*.go.tmpl"))
	g := &generatorImpl{formatter: f, writer: w, tmpl: tmpl, log: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewGoimportsFormatter creates a formatter backed by goimports.
func NewGoimportsFormatter() Formatter {
	return &goimportsFormatter{}
}

// NewFileWriter creates a plain file writer.
func NewFileWriter() FileWriter {
	return &fileWriter{}
}

func (g *generatorImpl) Generate(cfg Config, bindings []Binding) error {
	data, err := g.buildTemplateData(bindings)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, "bindings.go.tmpl", data); err != nil {
		return fmt.Errorf("template: %w", err)
	}

	formatted, err := g.formatter.Format(cfg.OutputFilename(), buf.Bytes())
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if err := g.writer.Write(cfg.OutputFilename(), formatted); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (f *goimportsFormatter) Format(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

func (w *fileWriter) Write(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0o644)
}

func (g *generatorImpl) buildTemplateData(bindings []Binding) (templateData, error) {
	if len(bindings) == 0 {
		return templateData{}, ErrNoBindings
	}

	// The file lives in the package of the first leaf.
	first := bindings[0].Leaf
	q := newQualifier(first.PkgPath)
	out := make([]bindingTemplateData, 0, len(bindings))

	for _, b := range bindings {
		args, ok := g.bindingArgs(b, first.PkgPath)
		if !ok {
			continue
		}
		rendered := make([]string, 0, len(args))
		table := make([]string, 0, len(args))
		for _, t := range args {
			rendered = append(rendered, types.TypeString(t, q.qualify))
			table = append(table, types.TypeString(t, nil))
		}
		out = append(out, bindingTemplateData{
			Leaf:          b.Leaf.QualifiedName(),
			Target:        b.Target.QualifiedName(),
			Instantiation: q.typeName(b.Target) + "[" + strings.Join(rendered, ", ") + "]",
			Args:          table,
		})
	}
	if len(out) == 0 {
		return templateData{}, ErrNoBindings
	}

	return templateData{
		Package:  first.PkgName,
		Imports:  q.imports(),
		Bindings: out,
	}, nil
}

// bindingArgs returns the target's type arguments in parameter order, or
// false when they cannot be spelled from the output package.
func (g *generatorImpl) bindingArgs(b Binding, outPath string) ([]types.Type, bool) {
	leaf := b.Leaf.QualifiedName()
	if b.Model == nil || b.Target == nil {
		g.log.Warn("leaf has no binding, skipped", zap.String("leaf", leaf))
		return nil, false
	}
	if !b.Model.Complete() {
		g.log.Warn("incomplete binding skipped", zap.String("leaf", leaf))
		return nil, false
	}

	if reason := unreferable(b.Target.Named(), outPath); reason != "" {
		g.log.Warn("target cannot be referenced from the output package, skipped",
			zap.String("leaf", leaf),
			zap.String("reason", reason),
		)
		return nil, false
	}

	params := b.Target.Named().TypeParams()
	rec := b.Model.Record()
	args := make([]types.Type, 0, params.Len())
	for i := 0; i < params.Len(); i++ {
		slot := params.At(i).Obj().Name()
		v, ok := rec.Get(slot)
		if !ok {
			g.log.Warn("binding does not cover every target parameter, skipped",
				zap.String("leaf", leaf),
				zap.String("slot", slot),
			)
			return nil, false
		}
		ref, ok := v.(*parser.Ref)
		if !ok {
			g.log.Warn("binding value is not a Go type, skipped",
				zap.String("leaf", leaf),
				zap.String("slot", slot),
			)
			return nil, false
		}
		if reason := unreferable(ref.Type(), outPath); reason != "" {
			g.log.Warn("binding value cannot be referenced from the output package, skipped",
				zap.String("leaf", leaf),
				zap.String("slot", slot),
				zap.String("type", ref.String()),
				zap.String("reason", reason),
			)
			return nil, false
		}
		args = append(args, ref.Type())
	}
	return args, true
}

// unreferable reports why t cannot be written in a file of package outPath:
// it still mentions a type parameter, or names an unexported type of another
// package. It returns "" when t can be written.
func unreferable(t types.Type, outPath string) string {
	switch v := t.(type) {
	case *types.Basic, nil:
		return ""
	case *types.Alias:
		return unreferable(types.Unalias(v), outPath)
	case *types.TypeParam:
		return "type parameter " + v.Obj().Name()
	case *types.Named:
		obj := v.Obj()
		if obj.Pkg() != nil && obj.Pkg().Path() != outPath && !obj.Exported() {
			return "unexported type " + obj.Pkg().Path() + "." + obj.Name()
		}
		args := v.TypeArgs()
		for i := 0; i < args.Len(); i++ {
			if reason := unreferable(args.At(i), outPath); reason != "" {
				return reason
			}
		}
		return ""
	case *types.Pointer:
		return unreferable(v.Elem(), outPath)
	case *types.Slice:
		return unreferable(v.Elem(), outPath)
	case *types.Array:
		return unreferable(v.Elem(), outPath)
	case *types.Chan:
		return unreferable(v.Elem(), outPath)
	case *types.Map:
		if reason := unreferable(v.Key(), outPath); reason != "" {
			return reason
		}
		return unreferable(v.Elem(), outPath)
	case *types.Tuple:
		for i := 0; i < v.Len(); i++ {
			if reason := unreferable(v.At(i).Type(), outPath); reason != "" {
				return reason
			}
		}
		return ""
	case *types.Signature:
		if reason := unreferable(v.Params(), outPath); reason != "" {
			return reason
		}
		return unreferable(v.Results(), outPath)
	case *types.Struct:
		for i := 0; i < v.NumFields(); i++ {
			f := v.Field(i)
			if f.Pkg() != nil && f.Pkg().Path() != outPath && !f.Exported() {
				return "unexported field " + f.Name()
			}
			if reason := unreferable(f.Type(), outPath); reason != "" {
				return reason
			}
		}
		return ""
	case *types.Interface:
		for i := 0; i < v.NumEmbeddeds(); i++ {
			if reason := unreferable(v.EmbeddedType(i), outPath); reason != "" {
				return reason
			}
		}
		for i := 0; i < v.NumExplicitMethods(); i++ {
			m := v.ExplicitMethod(i)
			if m.Pkg() != nil && m.Pkg().Path() != outPath && !m.Exported() {
				return "unexported method " + m.Name()
			}
			if reason := unreferable(m.Type(), outPath); reason != "" {
				return reason
			}
		}
		return ""
	case *types.Union:
		for i := 0; i < v.Len(); i++ {
			if reason := unreferable(v.Term(i).Type(), outPath); reason != "" {
				return reason
			}
		}
		return ""
	default:
		return ""
	}
}

// qualifier renders package-qualified names relative to the output package
// and records the imports they need.
type qualifier struct {
	self    string
	aliases map[string]string // path -> alias
	taken   map[string]string // alias -> path
}

func newQualifier(self string) *qualifier {
	return &qualifier{self: self, aliases: map[string]string{}, taken: map[string]string{}}
}

func (q *qualifier) qualify(pkg *types.Package) string {
	if pkg == nil || pkg.Path() == q.self {
		return ""
	}
	if alias, ok := q.aliases[pkg.Path()]; ok {
		return alias
	}
	alias := pkg.Name()
	for i := 2; ; i++ {
		if _, used := q.taken[alias]; !used {
			break
		}
		alias = pkg.Name() + strconv.Itoa(i)
	}
	q.aliases[pkg.Path()] = alias
	q.taken[alias] = pkg.Path()
	return alias
}

func (q *qualifier) typeName(d *parser.Decl) string {
	if p := q.qualify(d.Pkg()); p != "" {
		return p + "." + d.Name()
	}
	return d.Name()
}

func (q *qualifier) imports() []importSpec {
	out := make([]importSpec, 0, len(q.aliases))
	for path, alias := range q.aliases {
		spec := importSpec{Path: path}
		if alias != lastElem(path) {
			spec.Alias = alias
		}
		out = append(out, spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func lastElem(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

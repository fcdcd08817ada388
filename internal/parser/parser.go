package parser

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"
)

// ErrDeclNotFound is returned when a qualified name does not name a type.
var ErrDeclNotFound = errors.New("declaration not found")

// Parser loads Go packages and extracts their type declarations.
type Parser interface {
	Parse(patterns ...string) ([]*PackageInfo, error)
	LookupDecl(qualifiedName string) (*Decl, error)
}

// Option configures the parser.
type Option func(*parserImpl)

// WithDir sets the directory packages are resolved from.
func WithDir(dir string) Option {
	return func(p *parserImpl) { p.dir = dir }
}

type parserImpl struct {
	dir   string
	cache map[string]*packages.Package
}

// New returns default parser.
func New(opts ...Option) Parser {
	p := &parserImpl{cache: map[string]*packages.Package{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

const loadMode = packages.NeedName |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo |
	packages.NeedModule

func (p *parserImpl) Parse(patterns ...string) ([]*PackageInfo, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no package patterns")
	}
	pkgs, err := p.load(patterns...)
	if err != nil {
		return nil, err
	}

	infos := make([]*PackageInfo, 0, len(pkgs))
	for _, pkg := range pkgs {
		p.cache[pkg.PkgPath] = pkg
		infos = append(infos, packageInfo(pkg))
	}
	return infos, nil
}

func (p *parserImpl) LookupDecl(qualifiedName string) (*Decl, error) {
	i := strings.LastIndex(qualifiedName, ".")
	if i <= 0 || i == len(qualifiedName)-1 {
		return nil, fmt.Errorf("%q is not a qualified type name: %w", qualifiedName, ErrDeclNotFound)
	}
	pkgPath, typeName := qualifiedName[:i], qualifiedName[i+1:]

	pkg, err := p.loadPackage(pkgPath)
	if err != nil {
		return nil, err
	}
	if pkg.Types == nil || pkg.Types.Scope() == nil {
		return nil, fmt.Errorf("type info unavailable for package %q", pkgPath)
	}

	obj, ok := pkg.Types.Scope().Lookup(typeName).(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("type %q in package %q: %w", typeName, pkgPath, ErrDeclNotFound)
	}
	named, ok := types.Unalias(obj.Type()).(*types.Named)
	if !ok {
		return nil, fmt.Errorf("%q in package %q is not a named type: %w", typeName, pkgPath, ErrDeclNotFound)
	}
	return NewDecl(named), nil
}

func (p *parserImpl) loadPackage(pkgPath string) (*packages.Package, error) {
	if cached, ok := p.cache[pkgPath]; ok {
		return cached, nil
	}
	pkgs, err := p.load(pkgPath)
	if err != nil {
		return nil, err
	}
	p.cache[pkgPath] = pkgs[0]
	return pkgs[0], nil
}

func (p *parserImpl) load(patterns ...string) ([]*packages.Package, error) {
	cfg := &packages.Config{Mode: loadMode, Dir: p.dir}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages %q: %w", patterns, err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("packages %q have compilation errors", patterns)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("packages %q not found", patterns)
	}
	return pkgs, nil
}

func packageInfo(pkg *packages.Package) *PackageInfo {
	info := &PackageInfo{Path: pkg.PkgPath, Name: pkg.Name}
	if pkg.TypesInfo == nil {
		return info
	}
	for _, file := range pkg.Syntax {
		info.Decls = append(info.Decls, fileDecls(pkg, file)...)
	}
	return info
}

func fileDecls(pkg *packages.Package, file *ast.File) []*DeclInfo {
	var out []*DeclInfo
	for _, d := range file.Decls {
		gen, ok := d.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.Assign.IsValid() {
				continue
			}
			obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
			if !ok || obj.Parent() != pkg.Types.Scope() {
				continue
			}
			named, ok := types.Unalias(obj.Type()).(*types.Named)
			if !ok {
				continue
			}
			doc := ts.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			out = append(out, &DeclInfo{
				Decl:     NewDecl(named),
				Name:     obj.Name(),
				PkgPath:  pkg.PkgPath,
				PkgName:  pkg.Name,
				Generic:  named.Origin().TypeParams().Len() > 0,
				Comments: commentLines(doc),
				Pos:      pkg.Fset.Position(ts.Pos()),
			})
		}
	}
	return out
}

// commentLines keeps directive-looking lines that ast.CommentGroup.Text drops.
func commentLines(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}
	lines := make([]string, 0, len(doc.List))
	for _, c := range doc.List {
		text := strings.TrimPrefix(c.Text, "//")
		text = strings.TrimPrefix(text, "/*")
		text = strings.TrimSuffix(text, "*/")
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

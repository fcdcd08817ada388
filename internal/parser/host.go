package parser

import (
	"go/types"

	"github.com/seitarof/gen-bind/internal/resolver"
)

// Decl is a package-level named type, always held in its generic origin form.
type Decl struct {
	named *types.Named
}

// NewDecl returns the declaration of named, or nil for a nil input.
func NewDecl(named *types.Named) *Decl {
	if named == nil {
		return nil
	}
	return &Decl{named: named.Origin()}
}

func (d *Decl) QualifiedName() string {
	return QualifiedName(d.named.Obj())
}

func (d *Decl) IsInterface() bool {
	_, ok := d.named.Underlying().(*types.Interface)
	return ok
}

// Name returns the unqualified type name.
func (d *Decl) Name() string { return d.named.Obj().Name() }

// Named returns the origin named type.
func (d *Decl) Named() *types.Named { return d.named }

// Pkg returns the declaring package, nil for universe types.
func (d *Decl) Pkg() *types.Package { return d.named.Obj().Pkg() }

// QualifiedName renders obj as "pkgpath.Name".
func QualifiedName(obj types.Object) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return obj.Pkg().Path() + "." + obj.Name()
}

// Ref is a type expression from a declaration or instantiation.
type Ref struct {
	t types.Type
}

// NewRef wraps t.
func NewRef(t types.Type) *Ref {
	return &Ref{t: t}
}

// Type returns the wrapped go/types type.
func (r *Ref) Type() types.Type { return r.t }

func (r *Ref) IsVariable() bool {
	_, ok := types.Unalias(r.t).(*types.TypeParam)
	return ok
}

func (r *Ref) Name() string {
	if tp, ok := types.Unalias(r.t).(*types.TypeParam); ok {
		return tp.Obj().Name()
	}
	return types.TypeString(r.t, nil)
}

func (r *Ref) Args() []resolver.TypeRef {
	named, ok := types.Unalias(r.t).(*types.Named)
	if !ok || named.TypeArgs() == nil {
		return nil
	}
	list := named.TypeArgs()
	args := make([]resolver.TypeRef, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		args = append(args, NewRef(list.At(i)))
	}
	return args
}

func (r *Ref) String() string {
	return types.TypeString(r.t, nil)
}

// Host implements resolver.Introspector on go/types. Struct embedding plays
// the role of inheritance: see embeddedEdges.
type Host struct{}

// NewHost returns the go/types host.
func NewHost() *Host {
	return &Host{}
}

func (h *Host) DeclOf(ref resolver.TypeRef) (resolver.Decl, bool) {
	r, ok := ref.(*Ref)
	if !ok || r == nil {
		return nil, false
	}
	named, ok := types.Unalias(r.t).(*types.Named)
	if !ok {
		return nil, false
	}
	return NewDecl(named), true
}

func (h *Host) Superclass(d resolver.Decl) (resolver.TypeRef, bool) {
	decl, ok := d.(*Decl)
	if !ok {
		return nil, false
	}
	spine, _ := embeddedEdges(decl.named)
	if spine == nil {
		return nil, false
	}
	return NewRef(spine), true
}

func (h *Host) Interfaces(d resolver.Decl) []resolver.TypeRef {
	decl, ok := d.(*Decl)
	if !ok {
		return nil
	}
	_, ribs := embeddedEdges(decl.named)
	out := make([]resolver.TypeRef, 0, len(ribs))
	for _, t := range ribs {
		out = append(out, NewRef(t))
	}
	return out
}

func (h *Host) TypeParams(d resolver.Decl) []string {
	decl, ok := d.(*Decl)
	if !ok {
		return nil
	}
	list := decl.named.TypeParams()
	names := make([]string, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		names = append(names, list.At(i).Obj().Name())
	}
	return names
}

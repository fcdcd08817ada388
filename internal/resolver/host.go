package resolver

import "strings"

// Decl is a type declaration in the host type system.
type Decl interface {
	QualifiedName() string
	IsInterface() bool
}

// TypeRef is a type expression as written at a use site. It is either a
// declared reference, possibly parameterized, or a type-parameter variable.
type TypeRef interface {
	// IsVariable reports whether the reference names a type parameter.
	IsVariable() bool
	// Name is the variable name for variable references, and the canonical
	// type string for declared ones.
	Name() string
	Args() []TypeRef
	String() string
}

// Introspector answers structural questions about the host type system.
// All lists are in declaration order.
type Introspector interface {
	DeclOf(ref TypeRef) (Decl, bool)
	Superclass(d Decl) (TypeRef, bool)
	Interfaces(d Decl) []TypeRef
	TypeParams(d Decl) []string
}

// Context describes one resolution run.
type Context interface {
	TargetQualifiedName() string
	ExcludedPrefixes() []string
	// NewRecord returns a fresh empty record.
	NewRecord() Record
}

// StaticContext is a Context with fixed values.
type StaticContext struct {
	Target   string
	Excluded []string
	Factory  func() Record
}

func (c StaticContext) TargetQualifiedName() string { return c.Target }

func (c StaticContext) ExcludedPrefixes() []string { return c.Excluded }

func (c StaticContext) NewRecord() Record {
	if c.Factory == nil {
		return NewSlotRecord()
	}
	return c.Factory()
}

func isExcluded(ctx Context, name string) bool {
	for _, prefix := range ctx.ExcludedPrefixes() {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

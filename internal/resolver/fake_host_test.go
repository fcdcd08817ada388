package resolver

import "strings"

type fakeRef struct {
	variable bool
	name     string
	args     []TypeRef
}

func (r *fakeRef) IsVariable() bool { return r.variable }
func (r *fakeRef) Name() string     { return r.name }
func (r *fakeRef) Args() []TypeRef  { return r.args }

func (r *fakeRef) String() string {
	if len(r.args) == 0 {
		return r.name
	}
	parts := make([]string, 0, len(r.args))
	for _, a := range r.args {
		parts = append(parts, a.String())
	}
	return r.name + "<" + strings.Join(parts, ", ") + ">"
}

func ref(name string, args ...TypeRef) TypeRef {
	return &fakeRef{name: name, args: args}
}

func tv(name string) TypeRef {
	return &fakeRef{variable: true, name: name}
}

type fakeDecl struct {
	name   string
	iface  bool
	params []string
	super  TypeRef
	ifaces []TypeRef
}

func (d *fakeDecl) QualifiedName() string { return d.name }
func (d *fakeDecl) IsInterface() bool     { return d.iface }

// fakeHost is an in-memory type system that counts structural queries.
type fakeHost struct {
	decls map[string]*fakeDecl
	calls int
}

func newFakeHost() *fakeHost {
	return &fakeHost{decls: map[string]*fakeDecl{}}
}

func (h *fakeHost) class(name string, params ...string) *declBuilder {
	d := &fakeDecl{name: name, params: params}
	h.decls[name] = d
	return &declBuilder{d: d}
}

func (h *fakeHost) iface(name string, params ...string) *declBuilder {
	d := &fakeDecl{name: name, iface: true, params: params}
	h.decls[name] = d
	return &declBuilder{d: d}
}

func (h *fakeHost) decl(name string) Decl {
	return h.decls[name]
}

func (h *fakeHost) DeclOf(r TypeRef) (Decl, bool) {
	h.calls++
	if r == nil || r.IsVariable() {
		return nil, false
	}
	d, ok := h.decls[r.Name()]
	if !ok {
		return nil, false
	}
	return d, true
}

func (h *fakeHost) Superclass(d Decl) (TypeRef, bool) {
	h.calls++
	fd := d.(*fakeDecl)
	if fd.super == nil {
		return nil, false
	}
	return fd.super, true
}

func (h *fakeHost) Interfaces(d Decl) []TypeRef {
	h.calls++
	return d.(*fakeDecl).ifaces
}

func (h *fakeHost) TypeParams(d Decl) []string {
	h.calls++
	return d.(*fakeDecl).params
}

type declBuilder struct {
	d *fakeDecl
}

func (b *declBuilder) extends(r TypeRef) *declBuilder {
	b.d.super = r
	return b
}

func (b *declBuilder) implements(refs ...TypeRef) *declBuilder {
	b.d.ifaces = append(b.d.ifaces, refs...)
	return b
}

func slotName(t interface{ Helper() }, m *Model, slot string) string {
	t.Helper()
	if m == nil || m.Record() == nil {
		return ""
	}
	v, ok := m.Record().Get(slot)
	if !ok {
		return ""
	}
	return v.String()
}

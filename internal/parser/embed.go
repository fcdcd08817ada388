package parser

import "go/types"

// embeddedEdges splits the embedded named types of a declaration into the
// spine (first embedded struct of a struct type) and ribs (everything else
// embedded, in declaration order).
func embeddedEdges(named *types.Named) (spine types.Type, ribs []types.Type) {
	switch under := named.Underlying().(type) {
	case *types.Struct:
		for i := 0; i < under.NumFields(); i++ {
			f := under.Field(i)
			if !f.Embedded() {
				continue
			}
			t, n := embeddedNamed(f.Type())
			if n == nil {
				continue
			}
			if spine == nil {
				if _, ok := n.Underlying().(*types.Struct); ok {
					spine = t
					continue
				}
			}
			ribs = append(ribs, t)
		}
	case *types.Interface:
		for i := 0; i < under.NumEmbeddeds(); i++ {
			t, n := embeddedNamed(under.EmbeddedType(i))
			if n == nil {
				continue
			}
			ribs = append(ribs, t)
		}
	}
	return spine, ribs
}

// embeddedNamed unwraps aliases and one pointer level of an embedded type.
func embeddedNamed(t types.Type) (types.Type, *types.Named) {
	switch v := t.(type) {
	case *types.Alias:
		return embeddedNamed(types.Unalias(v))
	case *types.Pointer:
		return embeddedNamed(v.Elem())
	case *types.Named:
		return v, v
	}
	return nil, nil
}

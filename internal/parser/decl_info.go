package parser

import "go/token"

// PackageInfo lists the package-level type declarations of one package.
type PackageInfo struct {
	Path  string
	Name  string
	Decls []*DeclInfo
}

// DeclInfo describes one type declaration for leaf discovery.
type DeclInfo struct {
	Decl    *Decl
	Name    string
	PkgPath string
	PkgName string
	Generic bool
	// Comments holds the doc comment lines with their markers stripped.
	Comments []string
	Pos      token.Position
}

// QualifiedName returns the identity the resolver caches under.
func (d *DeclInfo) QualifiedName() string {
	return d.PkgPath + "." + d.Name
}

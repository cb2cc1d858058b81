// Package ast mirrors the syntax tree emitted by the external C front-end.
//
// The node set is closed: every kind the front-end can produce for the
// declarations we care about has a type here, and conversion code switches
// over them exhaustively. Kinds outside this set decode to Unknown so that
// a single exotic declaration is rejected during conversion instead of
// failing the whole parse.
package ast

// Node is implemented by every syntax tree node.
type Node interface {
	node()
}

// Unit is the translation unit root holding the top-level declarations in
// source order.
type Unit struct {
	Ext []Node
}

// FuncDef is a full function definition. Only the embedded declaration is
// ever inspected; the body is opaque to the generator.
type FuncDef struct {
	Decl Node
}

// Decl declares a named object or function.
type Decl struct {
	Name     string
	Quals    []string
	Align    []Node
	Storage  []string
	FuncSpec []string
	Type     Node
}

// FuncDecl is the declarator of a function: its parameter list plus the
// declarator chain of the return type.
type FuncDecl struct {
	Args *ParamList
	Type Node
}

// ParamList holds the parameter declarations of a FuncDecl. A nil list
// means the empty parentheses form "f()".
type ParamList struct {
	Params []Node
}

// ArrayDecl wraps one array layer around its element type.
type ArrayDecl struct {
	Type Node
}

// PtrDecl wraps one pointer layer around its pointee type.
type PtrDecl struct {
	Type Node
}

// TypeDecl anchors a declarator chain to the concrete type it resolves to.
type TypeDecl struct {
	DeclName string
	Quals    []string
	Type     Node
}

// IdentifierType names a primitive or typedef type. Multi-word spellings
// such as "unsigned long" arrive as separate entries in Names.
type IdentifierType struct {
	Names []string
}

// Struct references a struct type by tag. The tag is empty for anonymous
// structs.
type Struct struct {
	Name string
}

// Enum references an enum type by tag.
type Enum struct {
	Name string
}

// Union references a union type by tag.
type Union struct {
	Name string
}

// Typename wraps an unnamed type, e.g. the lone parameter in "void f(int)".
type Typename struct {
	Name  string
	Quals []string
	Type  Node
}

// EllipsisParam is the "..." parameter marker of a variadic function.
type EllipsisParam struct{}

// Unknown stands in for any node kind this package does not model, keeping
// the original kind name for diagnostics.
type Unknown struct {
	Kind string
}

func (*Unit) node()           {}
func (*FuncDef) node()        {}
func (*Decl) node()           {}
func (*FuncDecl) node()       {}
func (*ParamList) node()      {}
func (*ArrayDecl) node()      {}
func (*PtrDecl) node()        {}
func (*TypeDecl) node()       {}
func (*IdentifierType) node() {}
func (*Struct) node()         {}
func (*Enum) node()           {}
func (*Union) node()          {}
func (*Typename) node()       {}
func (*EllipsisParam) node()  {}
func (*Unknown) node()        {}

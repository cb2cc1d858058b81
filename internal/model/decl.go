// Package model defines the intermediate representation for collected C
// declarations and renders them back to C source fragments.
package model

import (
	"slices"
	"strings"
)

// TypeRef is a flattened C type reference: a base spelling wrapped by
// pointer and array layers. The declarator nesting order is gone; only the
// depth of each kind survives.
type TypeRef struct {
	Base     string // Base spelling (e.g. "uint32_t", "struct _lv_obj_t")
	Pointers int    // Pointer layers around the base
	Arrays   int    // Array layers around the base
}

// String renders the base followed by its pointer layers (e.g. "lv_obj_t **").
// Array layers render on the declared name, not on the type.
func (t TypeRef) String() string {
	if t.Pointers == 0 {
		return t.Base
	}
	return t.Base + " " + strings.Repeat("*", t.Pointers)
}

// IsVoid reports whether the type renders as plain "void".
func (t TypeRef) IsVoid() bool {
	return t.Base == "void" && t.Pointers == 0
}

// Object is a declared C object: a variable, a field, or a function
// parameter. Name is empty for the unnamed "void" parameter form.
type Object struct {
	Name    string   // Declared name
	Quals   []string // Type qualifiers (e.g. "const")
	Align   []string // Alignment specifiers
	Storage []string // Storage-class specifiers (e.g. "extern")
	Type    TypeRef  // Flattened type
}

// NameString returns the declared name, with one "[]" appended per array
// layer when withArrays is set.
func (o *Object) NameString(withArrays bool) string {
	if !withArrays || o.Type.Arrays == 0 {
		return o.Name
	}
	return o.Name + strings.Repeat("[]", o.Type.Arrays)
}

// Declaration renders the object as a C declaration fragment. The unnamed
// plain "void" parameter renders as the bare keyword.
func (o *Object) Declaration(semicolon bool) string {
	var b strings.Builder
	writeWords(&b, o.Quals)
	writeWords(&b, o.Align)
	writeWords(&b, o.Storage)
	if o.Type.IsVoid() && o.Name == "" {
		b.WriteString("void")
	} else {
		b.WriteString(o.Type.String())
		b.WriteString(" ")
		b.WriteString(o.NameString(true))
	}
	if semicolon {
		b.WriteString(";")
	}
	return b.String()
}

// String renders the declaration without a trailing semicolon.
func (o *Object) String() string {
	return o.Declaration(false)
}

// Function is a collected function declaration.
type Function struct {
	Name      string   // Function name
	Quals     []string // Type qualifiers on the return type
	Storage   []string // Storage-class specifiers
	FuncSpecs []string // Function specifiers (e.g. "inline")
	Return    TypeRef  // Flattened return type
	Params    []Object // Parameters in declared order
}

// Declaration renders the function prototype.
func (f *Function) Declaration(semicolon bool) string {
	var b strings.Builder
	writeWords(&b, f.Quals)
	writeWords(&b, f.Storage)
	writeWords(&b, f.FuncSpecs)
	b.WriteString(f.Return.String())
	b.WriteString(" ")
	b.WriteString(f.Name)
	b.WriteString("(")
	for i := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Params[i].Declaration(false))
	}
	b.WriteString(")")
	if semicolon {
		b.WriteString(";")
	}
	return b.String()
}

// String renders the prototype with a trailing semicolon.
func (f *Function) String() string {
	return f.Declaration(true)
}

// CallExpr renders the statement that forwards a call to the function.
// Parameters rendering as plain "void" are omitted; a non-void result is
// captured into a local named ret.
func (f *Function) CallExpr() string {
	args := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		if p.Type.IsVoid() {
			continue
		}
		args = append(args, p.Name)
	}
	call := f.Name + "(" + strings.Join(args, ", ") + ");"
	if f.Return.IsVoid() {
		return call
	}
	return f.Return.String() + " ret = " + call
}

// WithName returns a deep copy of the function under a new name. The copy
// shares no slices with the receiver.
func (f *Function) WithName(name string) *Function {
	params := make([]Object, len(f.Params))
	for i, p := range f.Params {
		params[i] = Object{
			Name:    p.Name,
			Quals:   slices.Clone(p.Quals),
			Align:   slices.Clone(p.Align),
			Storage: slices.Clone(p.Storage),
			Type:    p.Type,
		}
	}
	return &Function{
		Name:      name,
		Quals:     slices.Clone(f.Quals),
		Storage:   slices.Clone(f.Storage),
		FuncSpecs: slices.Clone(f.FuncSpecs),
		Return:    f.Return,
		Params:    params,
	}
}

func writeWords(b *strings.Builder, words []string) {
	for _, w := range words {
		b.WriteString(w)
		b.WriteString(" ")
	}
}

package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safelvgl/internal/ast"
	"safelvgl/internal/model"
)

func ident(names ...string) *ast.IdentifierType {
	return &ast.IdentifierType{Names: names}
}

func typeDecl(inner ast.Node) *ast.TypeDecl {
	return &ast.TypeDecl{Type: inner}
}

func ptr(inner ast.Node) *ast.PtrDecl {
	return &ast.PtrDecl{Type: inner}
}

func arr(inner ast.Node) *ast.ArrayDecl {
	return &ast.ArrayDecl{Type: inner}
}

func param(name string, chain ast.Node, quals ...string) *ast.Decl {
	return &ast.Decl{Name: name, Quals: quals, Type: chain}
}

func funcDecl(name string, ret ast.Node, params ...ast.Node) *ast.Decl {
	var args *ast.ParamList
	if len(params) > 0 {
		args = &ast.ParamList{Params: params}
	}
	return &ast.Decl{
		Name: name,
		Type: &ast.FuncDecl{Args: args, Type: ret},
	}
}

func TestResolveType(t *testing.T) {
	cases := []struct {
		name  string
		chain ast.Node
		want  model.TypeRef
	}{
		{
			name:  "plain identifier",
			chain: typeDecl(ident("int")),
			want:  model.TypeRef{Base: "int"},
		},
		{
			name:  "single pointer",
			chain: ptr(typeDecl(ident("char"))),
			want:  model.TypeRef{Base: "char", Pointers: 1},
		},
		{
			name:  "double pointer",
			chain: ptr(ptr(typeDecl(ident("lv_obj_t")))),
			want:  model.TypeRef{Base: "lv_obj_t", Pointers: 2},
		},
		{
			name:  "array of pointers",
			chain: arr(ptr(typeDecl(ident("char")))),
			want:  model.TypeRef{Base: "char", Pointers: 1, Arrays: 1},
		},
		{
			name:  "stacked arrays outside pointers",
			chain: arr(arr(ptr(typeDecl(ident("uint8_t"))))),
			want:  model.TypeRef{Base: "uint8_t", Pointers: 1, Arrays: 2},
		},
		{
			name:  "typename unwrapped before terminal",
			chain: ptr(&ast.Typename{Type: typeDecl(ident("void"))}),
			want:  model.TypeRef{Base: "void", Pointers: 1},
		},
		{
			name:  "struct tag",
			chain: ptr(typeDecl(&ast.Struct{Name: "_lv_event_t"})),
			want:  model.TypeRef{Base: "struct _lv_event_t", Pointers: 1},
		},
		{
			name:  "enum tag",
			chain: typeDecl(&ast.Enum{Name: "_lv_align_t"}),
			want:  model.TypeRef{Base: "enum _lv_align_t"},
		},
		{
			name:  "multi-word spelling keeps first token",
			chain: typeDecl(ident("unsigned", "long")),
			want:  model.TypeRef{Base: "unsigned"},
		},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveType(tt.chain)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTypeUnsupported(t *testing.T) {
	cases := []struct {
		name  string
		chain ast.Node
	}{
		{"union base", typeDecl(&ast.Union{Name: "_lv_value_t"})},
		{"anonymous struct", typeDecl(&ast.Struct{})},
		{"anonymous enum", typeDecl(&ast.Enum{})},
		{"empty identifier", typeDecl(ident())},
		{"pointer to array", ptr(arr(typeDecl(ident("int"))))},
		{"function pointer", ptr(&ast.FuncDecl{Type: typeDecl(ident("void"))})},
		{"unknown node", typeDecl(&ast.Unknown{Kind: "Alignas"})},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveType(tt.chain)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupportedType)
		})
	}
}

package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFunctionDeclaration(t *testing.T) {
	doc := `{
		"_nodetype": "FileAST",
		"ext": [
			{
				"_nodetype": "Decl",
				"name": "lv_timer_create",
				"quals": [],
				"align": [],
				"storage": ["extern"],
				"funcspec": [],
				"type": {
					"_nodetype": "FuncDecl",
					"args": {
						"_nodetype": "ParamList",
						"params": [
							{
								"_nodetype": "Decl",
								"name": "period",
								"quals": ["const"],
								"align": [],
								"storage": [],
								"funcspec": [],
								"type": {
									"_nodetype": "TypeDecl",
									"declname": "period",
									"quals": ["const"],
									"type": {"_nodetype": "IdentifierType", "names": ["uint32_t"]}
								}
							}
						]
					},
					"type": {
						"_nodetype": "PtrDecl",
						"type": {
							"_nodetype": "TypeDecl",
							"declname": "lv_timer_create",
							"quals": [],
							"type": {"_nodetype": "Struct", "name": "_lv_timer_t"}
						}
					}
				}
			}
		]
	}`

	unit, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, unit.Ext, 1)

	decl, ok := unit.Ext[0].(*Decl)
	require.True(t, ok, "expected *Decl, got %T", unit.Ext[0])
	assert.Equal(t, "lv_timer_create", decl.Name)
	assert.Equal(t, []string{"extern"}, decl.Storage)
	assert.Empty(t, decl.Align)

	fd, ok := decl.Type.(*FuncDecl)
	require.True(t, ok, "expected *FuncDecl, got %T", decl.Type)
	require.NotNil(t, fd.Args)
	require.Len(t, fd.Args.Params, 1)

	param, ok := fd.Args.Params[0].(*Decl)
	require.True(t, ok)
	assert.Equal(t, "period", param.Name)
	assert.Equal(t, []string{"const"}, param.Quals)

	pd, ok := fd.Type.(*PtrDecl)
	require.True(t, ok, "expected *PtrDecl, got %T", fd.Type)
	td, ok := pd.Type.(*TypeDecl)
	require.True(t, ok)
	st, ok := td.Type.(*Struct)
	require.True(t, ok)
	assert.Equal(t, "_lv_timer_t", st.Name)
}

func TestDecodeFunctionDefinition(t *testing.T) {
	doc := `{
		"_nodetype": "FileAST",
		"ext": [
			{
				"_nodetype": "FuncDef",
				"decl": {
					"_nodetype": "Decl",
					"name": "lv_tick_inc",
					"quals": [],
					"align": [],
					"storage": [],
					"funcspec": [],
					"type": {
						"_nodetype": "FuncDecl",
						"args": null,
						"type": {
							"_nodetype": "TypeDecl",
							"declname": "lv_tick_inc",
							"quals": [],
							"type": {"_nodetype": "IdentifierType", "names": ["void"]}
						}
					}
				},
				"body": {"_nodetype": "Compound", "block_items": []}
			}
		]
	}`

	unit, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, unit.Ext, 1)

	def, ok := unit.Ext[0].(*FuncDef)
	require.True(t, ok, "expected *FuncDef, got %T", unit.Ext[0])
	decl, ok := def.Decl.(*Decl)
	require.True(t, ok)
	assert.Equal(t, "lv_tick_inc", decl.Name)

	fd, ok := decl.Type.(*FuncDecl)
	require.True(t, ok)
	assert.Nil(t, fd.Args)
}

func TestDecodeVariadicAndTypename(t *testing.T) {
	doc := `{
		"_nodetype": "FileAST",
		"ext": [
			{
				"_nodetype": "Decl",
				"name": "lv_snprintf",
				"quals": [],
				"align": [],
				"storage": [],
				"funcspec": [],
				"type": {
					"_nodetype": "FuncDecl",
					"args": {
						"_nodetype": "ParamList",
						"params": [
							{
								"_nodetype": "Typename",
								"name": null,
								"quals": [],
								"type": {
									"_nodetype": "TypeDecl",
									"declname": null,
									"quals": [],
									"type": {"_nodetype": "IdentifierType", "names": ["int"]}
								}
							},
							{"_nodetype": "EllipsisParam"}
						]
					},
					"type": {
						"_nodetype": "TypeDecl",
						"declname": "lv_snprintf",
						"quals": [],
						"type": {"_nodetype": "IdentifierType", "names": ["int"]}
					}
				}
			}
		]
	}`

	unit, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	decl := unit.Ext[0].(*Decl)
	fd := decl.Type.(*FuncDecl)
	require.Len(t, fd.Args.Params, 2)

	tn, ok := fd.Args.Params[0].(*Typename)
	require.True(t, ok, "expected *Typename, got %T", fd.Args.Params[0])
	assert.Empty(t, tn.Name)

	_, ok = fd.Args.Params[1].(*EllipsisParam)
	assert.True(t, ok, "expected *EllipsisParam, got %T", fd.Args.Params[1])
}

func TestDecodeUnknownKind(t *testing.T) {
	doc := `{
		"_nodetype": "FileAST",
		"ext": [
			{"_nodetype": "Pragma", "string": "pack(1)"}
		]
	}`

	unit, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, unit.Ext, 1)

	un, ok := unit.Ext[0].(*Unknown)
	require.True(t, ok, "expected *Unknown, got %T", unit.Ext[0])
	assert.Equal(t, "Pragma", un.Kind)
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"truncated", `{"_nodetype": "FileAST", "ext": [`},
		{"missing nodetype", `{"ext": []}`},
		{"wrong root", `{"_nodetype": "Decl", "name": "x"}`},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

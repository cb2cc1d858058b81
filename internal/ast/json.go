package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads a front-end JSON dump into a Unit. Nodes are objects
// discriminated by their "_nodetype" field, following the pycparser JSON
// serialization.
func Decode(r io.Reader) (*Unit, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("reading syntax tree: %w", err)
	}
	n, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	unit, ok := n.(*Unit)
	if !ok {
		return nil, fmt.Errorf("syntax tree root is %T, not a translation unit", n)
	}
	return unit, nil
}

type nodeHeader struct {
	Kind string `json:"_nodetype"`
}

var nullLiteral = []byte("null")

func decodeNode(raw json.RawMessage) (Node, error) {
	if len(raw) == 0 || bytes.Equal(raw, nullLiteral) {
		return nil, nil
	}
	var h nodeHeader
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, fmt.Errorf("reading node header: %w", err)
	}

	switch h.Kind {
	case "FileAST":
		var v struct {
			Ext []json.RawMessage `json:"ext"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("reading translation unit: %w", err)
		}
		ext, err := decodeNodes(v.Ext)
		if err != nil {
			return nil, err
		}
		return &Unit{Ext: ext}, nil

	case "FuncDef":
		var v struct {
			Decl json.RawMessage `json:"decl"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("reading function definition: %w", err)
		}
		decl, err := decodeNode(v.Decl)
		if err != nil {
			return nil, err
		}
		return &FuncDef{Decl: decl}, nil

	case "Decl":
		var v struct {
			Name     string            `json:"name"`
			Quals    []string          `json:"quals"`
			Align    []json.RawMessage `json:"align"`
			Storage  []string          `json:"storage"`
			FuncSpec []string          `json:"funcspec"`
			Type     json.RawMessage   `json:"type"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("reading declaration: %w", err)
		}
		typ, err := decodeNode(v.Type)
		if err != nil {
			return nil, err
		}
		align, err := decodeNodes(v.Align)
		if err != nil {
			return nil, err
		}
		return &Decl{
			Name:     v.Name,
			Quals:    v.Quals,
			Align:    align,
			Storage:  v.Storage,
			FuncSpec: v.FuncSpec,
			Type:     typ,
		}, nil

	case "FuncDecl":
		var v struct {
			Args json.RawMessage `json:"args"`
			Type json.RawMessage `json:"type"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("reading function declarator: %w", err)
		}
		argsNode, err := decodeNode(v.Args)
		if err != nil {
			return nil, err
		}
		var args *ParamList
		if argsNode != nil {
			pl, ok := argsNode.(*ParamList)
			if !ok {
				return nil, fmt.Errorf("function declarator args is %T, not a parameter list", argsNode)
			}
			args = pl
		}
		typ, err := decodeNode(v.Type)
		if err != nil {
			return nil, err
		}
		return &FuncDecl{Args: args, Type: typ}, nil

	case "ParamList":
		var v struct {
			Params []json.RawMessage `json:"params"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("reading parameter list: %w", err)
		}
		params, err := decodeNodes(v.Params)
		if err != nil {
			return nil, err
		}
		return &ParamList{Params: params}, nil

	case "ArrayDecl":
		var v struct {
			Type json.RawMessage `json:"type"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("reading array declarator: %w", err)
		}
		typ, err := decodeNode(v.Type)
		if err != nil {
			return nil, err
		}
		return &ArrayDecl{Type: typ}, nil

	case "PtrDecl":
		var v struct {
			Type json.RawMessage `json:"type"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("reading pointer declarator: %w", err)
		}
		typ, err := decodeNode(v.Type)
		if err != nil {
			return nil, err
		}
		return &PtrDecl{Type: typ}, nil

	case "TypeDecl":
		var v struct {
			DeclName string          `json:"declname"`
			Quals    []string        `json:"quals"`
			Type     json.RawMessage `json:"type"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("reading type declarator: %w", err)
		}
		typ, err := decodeNode(v.Type)
		if err != nil {
			return nil, err
		}
		return &TypeDecl{DeclName: v.DeclName, Quals: v.Quals, Type: typ}, nil

	case "IdentifierType":
		var v struct {
			Names []string `json:"names"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("reading identifier type: %w", err)
		}
		return &IdentifierType{Names: v.Names}, nil

	case "Struct":
		var v struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("reading struct reference: %w", err)
		}
		return &Struct{Name: v.Name}, nil

	case "Enum":
		var v struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("reading enum reference: %w", err)
		}
		return &Enum{Name: v.Name}, nil

	case "Union":
		var v struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("reading union reference: %w", err)
		}
		return &Union{Name: v.Name}, nil

	case "Typename":
		var v struct {
			Name  string          `json:"name"`
			Quals []string        `json:"quals"`
			Type  json.RawMessage `json:"type"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("reading type name: %w", err)
		}
		typ, err := decodeNode(v.Type)
		if err != nil {
			return nil, err
		}
		return &Typename{Name: v.Name, Quals: v.Quals, Type: typ}, nil

	case "EllipsisParam":
		return &EllipsisParam{}, nil

	case "":
		return nil, fmt.Errorf("node is missing its _nodetype field")

	default:
		return &Unknown{Kind: h.Kind}, nil
	}
}

func decodeNodes(raws []json.RawMessage) ([]Node, error) {
	if len(raws) == 0 {
		return nil, nil
	}
	nodes := make([]Node, 0, len(raws))
	for _, raw := range raws {
		n, err := decodeNode(raw)
		if err != nil {
			return nil, err
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

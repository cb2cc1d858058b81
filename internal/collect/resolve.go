package collect

import (
	"fmt"

	"safelvgl/internal/ast"
	"safelvgl/internal/model"
)

// resolveType flattens the declarator chain rooted at n into a TypeRef.
// Array layers are counted first, then pointer layers, so only shapes with
// all arrays outside all pointers resolve; anything else terminates on an
// unexpected node and is reported as unsupported.
func resolveType(n ast.Node) (model.TypeRef, error) {
	var ref model.TypeRef

	for {
		ad, ok := n.(*ast.ArrayDecl)
		if !ok {
			break
		}
		ref.Arrays++
		n = ad.Type
	}
	for {
		pd, ok := n.(*ast.PtrDecl)
		if !ok {
			break
		}
		ref.Pointers++
		n = pd.Type
	}
	if tn, ok := n.(*ast.Typename); ok {
		n = tn.Type
	}

	td, ok := n.(*ast.TypeDecl)
	if !ok {
		return model.TypeRef{}, fmt.Errorf("%w: declarator chain ends in %T", ErrUnsupportedType, n)
	}

	switch t := td.Type.(type) {
	case *ast.IdentifierType:
		if len(t.Names) == 0 {
			return model.TypeRef{}, fmt.Errorf("%w: identifier type without a name", ErrUnsupportedType)
		}
		// Multi-word spellings keep only their first token.
		ref.Base = t.Names[0]
	case *ast.Struct:
		if t.Name == "" {
			return model.TypeRef{}, fmt.Errorf("%w: anonymous struct", ErrUnsupportedType)
		}
		ref.Base = "struct " + t.Name
	case *ast.Enum:
		if t.Name == "" {
			return model.TypeRef{}, fmt.Errorf("%w: anonymous enum", ErrUnsupportedType)
		}
		ref.Base = "enum " + t.Name
	default:
		return model.TypeRef{}, fmt.Errorf("%w: %T as base type", ErrUnsupportedType, td.Type)
	}

	return ref, nil
}

// Package collect walks a parsed translation unit and gathers the function
// declarations eligible for wrapping.
package collect

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"safelvgl/internal/ast"
	"safelvgl/internal/model"
)

// Collector accumulates wrappable functions from one or more translation
// units. Functions are kept in first-seen order; redeclarations of a name
// never replace the first one.
type Collector struct {
	blacklist []*regexp.Regexp
	funcs     *linkedhashmap.Map
	log       *slog.Logger
}

// New creates a Collector with the given blacklist patterns.
func New(blacklist []*regexp.Regexp, log *slog.Logger) *Collector {
	if log == nil {
		log = slog.Default()
	}
	return &Collector{
		blacklist: blacklist,
		funcs:     linkedhashmap.New(),
		log:       log,
	}
}

// CompilePatterns compiles blacklist expressions. Patterns match at the
// start of the function name only.
func CompilePatterns(exprs []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(`\A(?:` + expr + `)`)
		if err != nil {
			return nil, fmt.Errorf("compiling blacklist pattern %q: %w", expr, err)
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

// AddPattern appends a compiled pattern to the blacklist.
func (c *Collector) AddPattern(re *regexp.Regexp) {
	c.blacklist = append(c.blacklist, re)
}

// Patterns returns the active blacklist.
func (c *Collector) Patterns() []*regexp.Regexp {
	return c.blacklist
}

// Collect walks the top level of unit and records every wrappable function
// declaration. Declarations that cannot be wrapped are logged and skipped;
// Collect itself never fails.
func (c *Collector) Collect(unit *ast.Unit) []*model.Function {
	for _, n := range unit.Ext {
		switch node := n.(type) {
		case *ast.FuncDef:
			if d, ok := node.Decl.(*ast.Decl); ok {
				c.add(d)
			}
		case *ast.Decl:
			if _, ok := node.Type.(*ast.FuncDecl); ok {
				c.add(node)
			}
		}
	}
	return c.Functions()
}

// Functions returns the collected functions in first-seen order.
func (c *Collector) Functions() []*model.Function {
	funcs := make([]*model.Function, 0, c.funcs.Size())
	for _, v := range c.funcs.Values() {
		funcs = append(funcs, v.(*model.Function))
	}
	return funcs
}

// add converts one function declaration and records it. It reports whether
// the function was added.
func (c *Collector) add(d *ast.Decl) bool {
	for _, re := range c.blacklist {
		if re.MatchString(d.Name) {
			c.log.Info("function is blacklisted", "func", d.Name)
			return false
		}
	}
	if _, seen := c.funcs.Get(d.Name); seen {
		c.log.Debug("duplicate declaration", "func", d.Name)
		return false
	}

	fn, err := declToFunction(d)
	if err != nil {
		c.log.Warn("dropping function", "func", d.Name, "error", err)
		return false
	}
	c.funcs.Put(fn.Name, fn)
	return true
}

// declToFunction converts a front-end function declaration into the model.
func declToFunction(d *ast.Decl) (*model.Function, error) {
	if len(d.Align) > 0 {
		return nil, fmt.Errorf("%w: alignment specifier", ErrUnsupportedType)
	}
	fd, ok := d.Type.(*ast.FuncDecl)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a function declarator", ErrUnsupportedType, d.Type)
	}

	ret, err := resolveType(fd.Type)
	if err != nil {
		return nil, fmt.Errorf("return type: %w", err)
	}

	var params []model.Object
	if fd.Args != nil {
		params = make([]model.Object, 0, len(fd.Args.Params))
		for _, p := range fd.Args.Params {
			obj, err := paramToObject(p)
			if err != nil {
				return nil, err
			}
			if obj.Name == "" && !obj.Type.IsVoid() {
				return nil, fmt.Errorf("%w: unnamed parameter", ErrUnsupportedType)
			}
			params = append(params, obj)
		}
	}

	return &model.Function{
		Name:      d.Name,
		Quals:     d.Quals,
		Storage:   d.Storage,
		FuncSpecs: d.FuncSpec,
		Return:    ret,
		Params:    params,
	}, nil
}

// paramToObject converts one parameter node into an object declaration.
func paramToObject(n ast.Node) (model.Object, error) {
	switch p := n.(type) {
	case *ast.Decl:
		if len(p.Align) > 0 {
			return model.Object{}, fmt.Errorf("%w: alignment specifier on parameter %q", ErrUnsupportedType, p.Name)
		}
		ref, err := resolveType(p.Type)
		if err != nil {
			return model.Object{}, fmt.Errorf("parameter %q: %w", p.Name, err)
		}
		return model.Object{
			Name:    p.Name,
			Quals:   p.Quals,
			Storage: p.Storage,
			Type:    ref,
		}, nil

	case *ast.Typename:
		ref, err := resolveType(p.Type)
		if err != nil {
			return model.Object{}, err
		}
		return model.Object{
			Name:  p.Name,
			Quals: p.Quals,
			Type:  ref,
		}, nil

	case *ast.EllipsisParam:
		return model.Object{}, ErrVariadic

	default:
		return model.Object{}, fmt.Errorf("%w: %T as parameter", ErrUnsupportedType, n)
	}
}

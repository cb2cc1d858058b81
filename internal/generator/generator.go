// Package generator renders collected functions through the wrapper
// templates and writes the output documents.
package generator

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"safelvgl/internal/lvgl"
	"safelvgl/internal/model"
)

// Output document names. The header declares every wrapper the source
// defines, so the pair always ships together.
const (
	HeaderName = "safe_lvgl.h"
	SourceName = "safe_lvgl.c"
)

// Emitter renders wrapper declarations and definitions. LoadFuncTemplates
// must be called before rendering.
type Emitter struct {
	prefix   string
	version  lvgl.Version
	declTmpl string
	defTmpl  string
	log      *slog.Logger
	now      func() time.Time
}

// New creates an Emitter that renames wrapped functions with prefix and
// stamps documents with the given LVGL version.
func New(prefix string, version lvgl.Version, log *slog.Logger) *Emitter {
	if log == nil {
		log = slog.Default()
	}
	return &Emitter{
		prefix:  prefix,
		version: version,
		log:     log,
		now:     time.Now,
	}
}

// LoadFuncTemplates loads the per-function declaration and definition
// templates. An empty path selects the embedded default.
func (e *Emitter) LoadFuncTemplates(declPath, defPath string) error {
	decl, err := loadTemplate(declPath, "func_decl.h")
	if err != nil {
		return fmt.Errorf("function declaration template: %w", err)
	}
	def, err := loadTemplate(defPath, "func_def.c")
	if err != nil {
		return fmt.Errorf("function definition template: %w", err)
	}
	e.declTmpl = decl
	e.defTmpl = def
	return nil
}

// FuncDecl renders the wrapper declaration for fn.
func (e *Emitter) FuncDecl(fn *model.Function) string {
	return e.expand(e.declTmpl, fn)
}

// FuncDef renders the wrapper definition for fn.
func (e *Emitter) FuncDef(fn *model.Function) string {
	return e.expand(e.defTmpl, fn)
}

// expand substitutes the per-function tokens into tmpl. The declaration
// token renders the function under its wrapper name; the call and return
// tokens forward to the original.
func (e *Emitter) expand(tmpl string, fn *model.Function) string {
	safe := fn.WithName(e.prefix + fn.Name)

	out := strings.ReplaceAll(tmpl, tokenFuncDecl, safe.Declaration(false))
	out = strings.ReplaceAll(out, tokenFuncCall, fn.CallExpr())
	ret := ""
	if !fn.Return.IsVoid() {
		ret = "return ret;"
	}
	out = strings.ReplaceAll(out, tokenFuncRet, ret)
	out = strings.ReplaceAll(out, tokenFuncComms, "")

	e.log.Debug("rendered wrapper", "func", fn.Name, "wrapper", safe.Name)
	return out
}

// WriteDocuments renders the header and source documents for funcs into
// outDir. The two documents are independent and are written concurrently;
// both carry the same timestamp.
func (e *Emitter) WriteDocuments(funcs []*model.Function, headerTmpl, sourceTmpl, outDir string) error {
	stamp := e.now()

	var g errgroup.Group
	g.Go(func() error {
		var blob strings.Builder
		for _, fn := range funcs {
			blob.WriteString(e.FuncDecl(fn))
			blob.WriteString("\r\n\r\n")
		}
		return e.writeDocument(headerTmpl, "header.h", outDir, HeaderName, blob.String(), stamp)
	})
	g.Go(func() error {
		var blob strings.Builder
		for _, fn := range funcs {
			blob.WriteString(e.FuncDef(fn))
			blob.WriteString("\r\n\r\n")
		}
		return e.writeDocument(sourceTmpl, "source.c", outDir, SourceName, blob.String(), stamp)
	})
	return g.Wait()
}

// writeDocument streams one document template to outDir/filename,
// substituting the document tokens line by line. Every line is terminated
// with CRLF regardless of the template's own endings.
func (e *Emitter) writeDocument(tmplPath, defaultName, outDir, filename, contents string, stamp time.Time) error {
	in, err := openTemplate(tmplPath, defaultName)
	if err != nil {
		return err
	}
	defer in.Close()

	outPath := filepath.Join(outDir, filename)
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}

	w := bufio.NewWriter(out)
	sc := bufio.NewScanner(decodeBOM(in))
	sc.Buffer(nil, maxLineBytes)
	for sc.Scan() {
		line := strings.ReplaceAll(sc.Text(), "\r", "") + "\r\n"
		line = e.expandDocument(line, contents, filename, stamp)
		if _, err := w.WriteString(line); err != nil {
			out.Close()
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
	}
	if err := sc.Err(); err != nil {
		out.Close()
		return fmt.Errorf("reading template for %s: %w", filename, err)
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", outPath, err)
	}

	e.log.Info("wrote document", "path", outPath)
	return nil
}

// expandDocument substitutes the document tokens into one template line.
// The contents blob is inserted first, so document tokens inside rendered
// functions are substituted as well.
func (e *Emitter) expandDocument(line, contents, filename string, stamp time.Time) string {
	line = strings.ReplaceAll(line, tokenContents, contents)
	line = strings.ReplaceAll(line, tokenVersion, e.version.String())
	line = strings.ReplaceAll(line, tokenFilename, filename)
	line = strings.ReplaceAll(line, tokenDate, stamp.Format("2006/01/02"))
	line = strings.ReplaceAll(line, tokenTime, stamp.Format("15:04:05"))
	return line
}

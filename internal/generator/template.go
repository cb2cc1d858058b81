package generator

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Tokens recognized in the per-function templates.
const (
	tokenFuncDecl  = "${func_decl}"
	tokenFuncCall  = "${func_call}"
	tokenFuncRet   = "${func_ret}"
	tokenFuncComms = "${func_comms}"
)

// Tokens recognized in the document templates.
const (
	tokenContents = "${contents_here}"
	tokenVersion  = "${lvgl_version}"
	tokenFilename = "${filename}"
	tokenDate     = "${date}"
	tokenTime     = "${time}"
)

// maxLineBytes caps a single scanned template line, raised from bufio's
// 64KB default.
const maxLineBytes = 1 << 20

//go:embed templates
var defaultTemplates embed.FS

// openTemplate opens the template at path, falling back to the embedded
// default of the given name when path is empty.
func openTemplate(path, name string) (io.ReadCloser, error) {
	if path == "" {
		f, err := defaultTemplates.Open("templates/" + name)
		if err != nil {
			return nil, fmt.Errorf("opening default template %s: %w", name, err)
		}
		return f, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening template: %w", err)
	}
	return f, nil
}

// loadTemplate reads a whole template with line endings normalized to CRLF.
func loadTemplate(path, name string) (string, error) {
	f, err := openTemplate(path, name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return readCRLF(f)
}

// readCRLF reads r line by line, tolerating a leading byte order mark and
// rewriting every line ending to CRLF. A final line without a terminator
// still gains one.
func readCRLF(r io.Reader) (string, error) {
	var b strings.Builder
	sc := bufio.NewScanner(decodeBOM(r))
	sc.Buffer(nil, maxLineBytes)
	for sc.Scan() {
		b.WriteString(strings.ReplaceAll(sc.Text(), "\r", ""))
		b.WriteString("\r\n")
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("reading template: %w", err)
	}
	return b.String(), nil
}

func decodeBOM(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

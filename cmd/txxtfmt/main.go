// Command txxtfmt is a reference CLI over package txxt: it parses a TXXT
// document, reports any diagnostics to stderr, and can print a session
// outline or atomically rewrite the file in place.
//
// Grounded on cmd/poc/main.go's flag parsing and its streamStore.save's
// renameio.TempFile/CloseAtomicallyReplace commit pattern; the parser
// itself stays I/O-free (package txxt never touches a file handle).
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/google/renameio"

	"github.com/arthurdebert/txxt"
	"github.com/arthurdebert/txxt/ast"
)

func main() {
	var (
		stdin   bool
		write   bool
		outline bool
		file    string
	)
	flag.BoolVar(&stdin, "stdin", false, "read source from stdin instead of -file")
	flag.StringVar(&file, "file", "", "path to a .txxt file")
	flag.BoolVar(&write, "write", false, "atomically rewrite -file once parsed cleanly")
	flag.BoolVar(&outline, "outline", false, "also print the document's session outline to stdout")
	flag.Parse()

	var (
		source []byte
		err    error
	)
	if stdin {
		source, err = ioutil.ReadAll(os.Stdin)
	} else if file != "" {
		source, err = ioutil.ReadFile(file)
	} else {
		log.Fatal("one of -stdin or -file is required")
	}
	if err != nil {
		log.Fatal(err)
	}

	doc := txxt.Parse(source)

	hadError := false
	for _, d := range doc.Diagnostics() {
		fmt.Fprintln(os.Stderr, formatDiagnostic(source, d))
		if d.Severity == ast.SeverityError {
			hadError = true
		}
	}

	if outline {
		writeOutline(os.Stdout, doc.Root(), 0)
	}

	if write && !hadError {
		if file == "" {
			log.Fatal("-write requires -file")
		}
		if err := atomicWrite(file, source); err != nil {
			log.Fatal(err)
		}
	}

	if hadError {
		os.Exit(1)
	}
}

func formatDiagnostic(source []byte, d ast.Diagnostic) string {
	pos := d.Span.Start
	return fmt.Sprintf("%d:%d: %s: %s: %s", pos.Line, pos.Col, d.Severity, d.Code, d.Message)
}

// writeOutline prints each Session's title and anchor slug, indented by
// nesting depth, mirroring cmd/soc/outline.go's depth-indented line
// writer over a structurally different (non-temporal) tree.
func writeOutline(w io.Writer, blocks []ast.Block, depth int) {
	for _, b := range blocks {
		sess, ok := b.(*ast.Session)
		if !ok {
			continue
		}
		var buf bytes.Buffer
		for i := 0; i < depth; i++ {
			buf.WriteString("  ")
		}
		fmt.Fprintf(&buf, "#[%s] %s\n", sess.Anchor, plainText(sess.Title))
		io.WriteString(w, buf.String())
		writeOutline(w, sess.Children, depth+1)
	}
}

func plainText(inlines []ast.Inline) string {
	var buf bytes.Buffer
	for _, in := range inlines {
		if id, ok := in.(*ast.Identity); ok {
			buf.WriteString(id.Text)
		}
	}
	return buf.String()
}

// atomicWrite commits content to path without ever leaving a partially
// written file behind on failure or interruption.
func atomicWrite(path string, content []byte) (rerr error) {
	pf, err := renameio.TempFile("", path)
	if err != nil {
		return err
	}
	defer func() {
		if rerr == nil {
			rerr = pf.CloseAtomicallyReplace()
		}
		rerr2 := pf.Cleanup()
		if rerr == nil {
			rerr = rerr2
		}
	}()
	_, err = pf.Write(content)
	return err
}

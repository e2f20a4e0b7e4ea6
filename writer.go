package vmt

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// Encode writes a Document to writer.
func Encode(w io.Writer, d *Document, opt *FormatOptions) error {
	fopt := opt.normalize()
	// Buffered writer reduces syscall overhead and short writes.
	bw := bufio.NewWriter(w)
	wr := &writer{w: bw, indent: fopt.Indent}
	if err := wr.writeDocument(d); err != nil {
		return err
	}

	return bw.Flush()
}

// EncodeFile writes a Document to a file using safe-write discipline: the
// content lands in a temporary file that replaces the destination only on
// success, so a failed write never corrupts the previous document.
func EncodeFile(path string, d *Document, opt *FormatOptions) error {
	b, err := Format(d, opt)
	if err != nil {
		return err
	}

	return writeFileAtomic(path, b, 0o600)
}

// Format renders a Document to bytes.
func Format(d *Document, opt *FormatOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, d, opt); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// writer writes a Document to a writer.
type writer struct {
	w      io.Writer // Writer to write to
	indent string    // Indentation string
	cache  []string  // Cache of indentation strings
	level  int       // Current nesting level
}

// writeDocument writes a Document to the writer.
func (w *writer) writeDocument(d *Document) error {
	if d.Kind == KindPatch {
		return w.writePatch(d)
	}

	return w.writeStandard(d)
}

// writeStandard writes a standard document: the quoted shader name
// followed by one parameter per line.
func (w *writer) writeStandard(d *Document) error {
	if err := w.writeQuoted(d.Shader); err != nil {
		return err
	}
	if err := w.writeString("\n{\n"); err != nil {
		return err
	}

	w.level++
	if err := w.writeParams(&d.Params); err != nil {
		return err
	}
	w.level--

	return w.writeString("}\n")
}

// writePatch writes a patch document. Insert always precedes replace, and
// both sections are emitted even when empty so the structural shape stays
// recognizable for re-parsing and tooling.
func (w *writer) writePatch(d *Document) error {
	if err := w.writeString("patch\n{\n"); err != nil {
		return err
	}
	w.level++

	if err := w.writeIndent(); err != nil {
		return err
	}
	if err := w.writeString("include "); err != nil {
		return err
	}
	if err := w.writeQuoted(d.Include); err != nil {
		return err
	}
	if err := w.writeString("\n"); err != nil {
		return err
	}

	if err := w.writeSection("insert", &d.Insert); err != nil {
		return err
	}
	if err := w.writeSection("replace", &d.Replace); err != nil {
		return err
	}

	w.level--
	return w.writeString("}\n")
}

// writeSection writes a named parameter block of a patch document.
func (w *writer) writeSection(name string, ps *ParameterSet) error {
	if err := w.writeIndent(); err != nil {
		return err
	}
	if err := w.writeString(name); err != nil {
		return err
	}
	if err := w.writeString("\n"); err != nil {
		return err
	}
	if err := w.writeIndent(); err != nil {
		return err
	}
	if err := w.writeString("{\n"); err != nil {
		return err
	}

	w.level++
	if err := w.writeParams(ps); err != nil {
		return err
	}
	w.level--

	if err := w.writeIndent(); err != nil {
		return err
	}

	return w.writeString("}\n")
}

// writeParams writes the parameters of a set, one per line.
func (w *writer) writeParams(ps *ParameterSet) error {
	for _, p := range ps.Params() {
		if err := w.writeIndent(); err != nil {
			return err
		}
		if err := w.writeQuoted(p.Key); err != nil {
			return err
		}
		if err := w.writeString(" "); err != nil {
			return err
		}
		if err := w.writeQuoted(p.Value); err != nil {
			return err
		}
		if err := w.writeString("\n"); err != nil {
			return err
		}
	}

	return nil
}

// writeIndent writes the current indentation level to the writer.
func (w *writer) writeIndent() error {
	if w.level <= 0 {
		return nil
	}

	// Cache repeated indentation strings per nesting level.
	return w.writeString(w.indentFor(w.level))
}

// writeQuoted writes a quoted string to the writer.
func (w *writer) writeQuoted(s string) error {
	if err := w.writeString("\""); err != nil {
		return err
	}
	if err := w.writeString(s); err != nil {
		return err
	}

	return w.writeString("\"")
}

// writeString writes a string to the writer.
func (w *writer) writeString(s string) error {
	_, err := io.WriteString(w.w, s)
	return err
}

// indentFor returns the cached indentation for a nesting level.
func (w *writer) indentFor(level int) string {
	if level <= 0 {
		return ""
	}

	if len(w.cache) <= level {
		w.cache = append(w.cache, make([]string, level-len(w.cache)+1)...)
	}
	if w.cache[level] == "" {
		w.cache[level] = strings.Repeat(w.indent, level)
	}

	return w.cache[level]
}

// Serializing trees back to text.
//
// The writer re-emits a tree in either the standard wire form or the
// extended human form, compact or indented. Output is deterministic for a
// fixed Format, and writing then re-parsing a tree reproduces a
// structurally equal tree in both modes.
package infinity

import (
	"fmt"
	"io"
	"strings"
)

// Format selects how a tree is written. The zero value is the wire form:
// underscore-quoted, compact.
type Format struct {
	Extended bool // human-readable extended format; not valid server input
	Indent   int  // spaces per nesting level; 0 writes one line
}

// eol returns the line break for the format. Indented output uses CRLF,
// matching what the server itself emits; compact output stays on one line.
func (f Format) eol() string {
	if f.Indent > 0 {
		return "\r\n"
	}
	return ""
}

// Write emits e to w in the given format.
func Write(w io.Writer, e Element, f Format) error {
	sw := &stickyWriter{w: w}
	writeElement(sw, e, f, 0)
	return sw.err
}

// Text renders e as a string in the given format.
func Text(e Element, f Format) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, e, f); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func mustWrite(e Element, f Format) string {
	s, err := Text(e, f)
	if err != nil {
		return fmt.Sprintf("<unwritable: %v>", err)
	}
	return s
}

// stickyWriter keeps the first write error so the tree walk doesn't thread
// an error return through every level.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (sw *stickyWriter) writeString(s string) {
	if sw.err == nil {
		_, sw.err = io.WriteString(sw.w, s)
	}
}

func writeElement(sw *stickyWriter, e Element, f Format, depth int) {
	if isNullElement(e) {
		sw.writeString("null")
		return
	}
	if v, ok := e.(Value); ok {
		text, quoted, err := QuoteValue(v, f.Extended)
		if err != nil {
			sw.err = err
			return
		}
		if quoted {
			text = jsonQuote(text)
		}
		sw.writeString(text)
		return
	}
	open, shut := "{", "}"
	if e.IsList() {
		open, shut = "[", "]"
	}
	sw.writeString(open + f.eol())
	first := true
	for key, child := range e.Entries() {
		if !first {
			sw.writeString("," + f.eol())
		}
		first = false
		writeIndent(sw, f, depth+1)
		if e.IsObject() {
			k, err := QuoteKey(key, f.Extended)
			if err != nil {
				sw.err = err
				return
			}
			if !f.Extended {
				k = jsonQuote(k)
			}
			sw.writeString(k + ": ")
		}
		writeElement(sw, child, f, depth+1)
	}
	sw.writeString(f.eol())
	writeIndent(sw, f, depth)
	sw.writeString(shut)
}

// writeIndent pads to depth, or writes a single separating space in
// compact mode.
func writeIndent(sw *stickyWriter, f Format, depth int) {
	if f.Indent == 0 {
		sw.writeString(" ")
		return
	}
	sw.writeString(strings.Repeat(" ", depth*f.Indent))
}

// Package debug has helpers producing human readable dumps of engine state.
package debug

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"
)

// TreeWriter builds indented text tree, two spaces per level.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Field writes label and value, value is quoted when it would be ambiguous
// otherwise. Empty values are skipped.
func (tw TreeWriter) Field(depth int, label, value string) {
	if value == "" {
		return
	}
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// List writes label with item count followed by items in natural order, one
// per line. Items are sorted in place.
func (tw TreeWriter) List(depth int, label string, items []string) {
	tw.Line(depth, "%s (%d)", label, len(items))
	sort.Sort(natural.StringSlice(items))
	for _, it := range items {
		tw.Line(depth+1, "%s", encodeText(it))
	}
}

func encodeText(raw string) string {
	if raw == "" || strings.ContainsAny(raw, " \t\n\"") {
		return strconv.Quote(raw)
	}
	return raw
}

package output

import (
	"bufio"
	"io"
)

// MarkdownWriter emits the converted markdown as-is, one document after
// another. Stats and warnings are not included; use a structured format
// for those.
type MarkdownWriter struct {
	w *bufio.Writer
}

// NewMarkdownWriter creates a markdown writer.
func NewMarkdownWriter(w io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		w: bufio.NewWriter(w),
	}
}

// Write writes the document's markdown.
func (w *MarkdownWriter) Write(doc *Document) error {
	_, err := w.w.WriteString(doc.Markdown)
	return err
}

// Flush flushes the buffer.
func (w *MarkdownWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *MarkdownWriter) Close() error {
	return w.Flush()
}

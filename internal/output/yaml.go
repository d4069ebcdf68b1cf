package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter writes YAML output. Like the JSON writer, a single document is
// emitted directly and multiple documents as a sequence.
type YAMLWriter struct {
	w    *bufio.Writer
	docs []*Document
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{
		w: bufio.NewWriter(w),
	}
}

// Write buffers a document.
func (w *YAMLWriter) Write(doc *Document) error {
	w.docs = append(w.docs, doc)
	return nil
}

// Flush writes the buffered documents.
func (w *YAMLWriter) Flush() error {
	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)

	var err error
	if len(w.docs) == 1 {
		err = encoder.Encode(w.docs[0])
	} else {
		err = encoder.Encode(w.docs)
	}
	if err != nil {
		return err
	}

	if err := encoder.Close(); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes and closes the writer.
func (w *YAMLWriter) Close() error {
	return w.Flush()
}

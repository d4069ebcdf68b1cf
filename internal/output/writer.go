// Package output handles serialization of conversion results.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/pagemark/pagemark/pkg/convert"
)

// Format represents output format types.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatJSONL    Format = "jsonl"
	FormatYAML     Format = "yaml"
)

// Document is the serializable form of a single conversion.
type Document struct {
	URL       string            `json:"url,omitempty" yaml:"url,omitempty"`
	Source    string            `json:"source,omitempty" yaml:"source,omitempty"`
	FetchedAt time.Time         `json:"fetched_at,omitzero" yaml:"fetched_at,omitempty"`
	Markdown  string            `json:"markdown" yaml:"markdown"`
	Stats     *convert.Stats    `json:"stats,omitempty" yaml:"stats,omitempty"`
	Warnings  []convert.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Writer serializes documents to an output stream.
type Writer interface {
	// Write outputs a single document.
	Write(doc *Document) error

	// Flush ensures all buffered data is written.
	Flush() error

	// Close releases resources.
	Close() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty bool
	indent string
}

// WithPretty enables pretty-printing for JSON output.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// WithIndent sets the indentation string for JSON output.
func WithIndent(indent string) WriterOption {
	return func(c *writerConfig) {
		c.indent = indent
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		pretty: true,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatMarkdown:
		return NewMarkdownWriter(w), nil
	case FormatJSON:
		return NewJSONWriter(w, cfg.pretty, cfg.indent), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

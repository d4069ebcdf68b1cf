// Package convert turns parsed HTML documents into Markdown-flavored text
// suitable for consumption by language models. The converter is a pure
// function of (document, config): it never mutates the input tree, performs
// no I/O, and holds no state between calls.
package convert

// DefaultMaxDepth is the recursion limit applied when Config.MaxDepth is
// zero. Real documents rarely nest past a few dozen levels; anything deeper
// is treated as pathological input.
const DefaultMaxDepth = 512

// Config defines the conversion options.
type Config struct {
	// PreserveLinks emits links as [text](href) instead of bare text.
	PreserveLinks bool `json:"preserve_links" yaml:"preserve_links"`

	// PreserveImages emits images as ![alt](src); otherwise images are
	// dropped entirely.
	PreserveImages bool `json:"preserve_images" yaml:"preserve_images"`

	// IncludeMetadata prepends a front matter block with the document
	// title, meta description, and conversion date.
	IncludeMetadata bool `json:"include_metadata" yaml:"include_metadata"`

	// MaxDepth bounds tree recursion. Conversion of a document nested
	// deeper than this fails with ErrDepthExceeded instead of exhausting
	// the call stack. Zero means DefaultMaxDepth.
	MaxDepth int `json:"max_depth" yaml:"max_depth"`
}

// DefaultConfig returns the default configuration: bare text output with no
// links, images, or front matter.
func DefaultConfig() *Config {
	return &Config{
		MaxDepth: DefaultMaxDepth,
	}
}

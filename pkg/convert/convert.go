package convert

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrDepthExceeded is returned when the input tree nests deeper than the
// configured MaxDepth. Check with errors.Is.
var ErrDepthExceeded = errors.New("input tree exceeds maximum depth")

// Converter converts a parsed HTML document into Markdown.
// A Converter is immutable after creation and safe for concurrent use.
type Converter struct {
	config *Config

	// now supplies the front matter date. Overridable in tests.
	now func() time.Time
}

// New creates a Converter with the given configuration.
// If config is nil, DefaultConfig() is used.
func New(config *Config) *Converter {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return &Converter{
		config: &cfg,
		now:    time.Now,
	}
}

// Name returns the converter name for logging.
func (c *Converter) Name() string {
	return "pagemark"
}

// ConvertString parses raw HTML and converts it to Markdown.
func (c *Converter) ConvertString(html string) (string, error) {
	result := c.ConvertStringWithStats(html)
	return result.Markdown, result.Error
}

// ConvertStringWithStats parses raw HTML, converts it, and returns detailed
// stats including parse timing and input size. On parse failure the result
// carries the error and a warning; no partial output is produced.
func (c *Converter) ConvertStringWithStats(html string) *Result {
	parseStart := time.Now()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	parseDuration := time.Since(parseStart)

	if err != nil {
		result := &Result{
			Stats: NewStats(),
			Error: fmt.Errorf("parsing html: %w", err),
		}
		result.Stats.InputBytes = len(html)
		result.Stats.ParseDuration = parseDuration
		result.AddWarning("parse", "html parse failed", err.Error())
		return result
	}

	result := c.ConvertWithStats(doc)
	result.Stats.InputBytes = len(html)
	result.Stats.ParseDuration = parseDuration
	result.Stats.TotalDuration += parseDuration
	return result
}

// Convert converts a parsed document to Markdown. The document body is the
// traversal root; documents without a body are traversed from their root.
// The input tree is never mutated. The only failure mode is ErrDepthExceeded.
func (c *Converter) Convert(doc *goquery.Document) (string, error) {
	result := c.ConvertWithStats(doc)
	return result.Markdown, result.Error
}

// ConvertWithStats performs a conversion and returns detailed stats.
func (c *Converter) ConvertWithStats(doc *goquery.Document) *Result {
	startTime := time.Now()
	result := &Result{
		Stats: NewStats(),
	}

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	w := &walker{
		config:   c.config,
		stats:    result.Stats,
		maxDepth: c.config.MaxDepth,
	}

	convertStart := time.Now()
	var sb strings.Builder
	w.formatChildren(&sb, root, 0)
	result.Stats.ConvertDuration = time.Since(convertStart)

	if w.tooDeep {
		result.Error = ErrDepthExceeded
		result.AddWarning("convert", "tree nests deeper than the configured limit",
			fmt.Sprintf("max_depth=%d", c.config.MaxDepth))
		result.Stats.TotalDuration = time.Since(startTime)
		return result
	}

	body := sb.String()
	if c.config.IncludeMetadata {
		body = c.frontMatter(doc) + body
	}

	postStart := time.Now()
	result.Markdown = Normalize(body)
	result.Stats.PostProcessDuration = time.Since(postStart)

	result.Stats.OutputBytes = len(result.Markdown)
	result.Stats.TotalDuration = time.Since(startTime)
	return result
}

// frontMatter builds the metadata block prepended when IncludeMetadata is set.
// The description line is omitted entirely when the document has no
// meta description; the date is the time of the conversion call.
func (c *Converter) frontMatter(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = "Untitled"
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "title: %q\n", title)

	if desc, ok := doc.Find("meta[name='description']").Attr("content"); ok {
		if desc = strings.TrimSpace(desc); desc != "" {
			fmt.Fprintf(&sb, "description: %q\n", desc)
		}
	}

	fmt.Fprintf(&sb, "date: %q\n", c.now().UTC().Format(time.RFC3339))
	sb.WriteString("---\n\n")
	return sb.String()
}

package convert

import (
	"fmt"
	"strings"
	"time"
)

// Stats captures metrics about a single conversion.
type Stats struct {
	// Size metrics
	InputBytes  int `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int `json:"output_bytes" yaml:"output_bytes"`

	// Element counts
	ElementsVisited int            `json:"elements_visited" yaml:"elements_visited"`
	ElementsByTag   map[string]int `json:"elements_by_tag" yaml:"elements_by_tag"`   // tag -> count
	SkippedSubtrees map[string]int `json:"skipped_subtrees" yaml:"skipped_subtrees"` // script/style/noscript -> count

	// Content counts
	Links  int `json:"links" yaml:"links"`
	Images int `json:"images" yaml:"images"`
	Tables int `json:"tables" yaml:"tables"`
	Lists  int `json:"lists" yaml:"lists"`

	// Timing
	ParseDuration       time.Duration `json:"parse_duration_ms" yaml:"parse_duration_ms"`
	ConvertDuration     time.Duration `json:"convert_duration_ms" yaml:"convert_duration_ms"`
	PostProcessDuration time.Duration `json:"post_process_duration_ms" yaml:"post_process_duration_ms"`
	TotalDuration       time.Duration `json:"total_duration_ms" yaml:"total_duration_ms"`
}

// NewStats creates a Stats instance with initialized maps.
func NewStats() *Stats {
	return &Stats{
		ElementsByTag:   make(map[string]int),
		SkippedSubtrees: make(map[string]int),
	}
}

// RecordTag records that an element was formatted.
func (s *Stats) RecordTag(tag string) {
	s.ElementsVisited++
	s.ElementsByTag[strings.ToLower(tag)]++
}

// RecordSkip records that a subtree was excluded from traversal.
func (s *Stats) RecordSkip(tag string) {
	s.SkippedSubtrees[strings.ToLower(tag)]++
}

// TotalSkipped returns the sum of all skipped subtrees.
func (s *Stats) TotalSkipped() int {
	total := 0
	for _, count := range s.SkippedSubtrees {
		total += count
	}
	return total
}

// ReductionPercent returns the percentage reduction from input to output.
// It returns 0 when the input size is unknown (document-based conversion).
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	if s.InputBytes > 0 {
		sb.WriteString(fmt.Sprintf("Size: %d -> %d bytes (%.1f%% reduction)\n",
			s.InputBytes, s.OutputBytes, s.ReductionPercent()))
	} else {
		sb.WriteString(fmt.Sprintf("Size: %d bytes out\n", s.OutputBytes))
	}

	sb.WriteString(fmt.Sprintf("Elements: %d formatted, %d subtrees skipped\n",
		s.ElementsVisited, s.TotalSkipped()))

	sb.WriteString(fmt.Sprintf("Content: links=%d, images=%d, tables=%d, lists=%d\n",
		s.Links, s.Images, s.Tables, s.Lists))

	sb.WriteString(fmt.Sprintf("Timing: parse=%v, convert=%v, post=%v, total=%v\n",
		s.ParseDuration.Round(time.Millisecond),
		s.ConvertDuration.Round(time.Millisecond),
		s.PostProcessDuration.Round(time.Millisecond),
		s.TotalDuration.Round(time.Millisecond)))

	return sb.String()
}

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Phase   string `json:"phase" yaml:"phase"`     // "parse", "convert", "output"
	Message string `json:"message" yaml:"message"` // Human-readable description
	Context string `json:"context" yaml:"context"` // Element or value that caused the issue
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result contains the output of a conversion.
type Result struct {
	// Markdown is the converted document. Empty when Error is set:
	// conversion either completes fully or produces no output.
	Markdown string `json:"markdown" yaml:"markdown"`

	// Stats contains metrics about what was done.
	Stats *Stats `json:"stats" yaml:"stats"`

	// Warnings contains non-fatal issues encountered.
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Error is set when conversion could not complete (depth exceeded).
	Error error `json:"error,omitempty" yaml:"error,omitempty"`
}

// AddWarning adds a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Phase:   phase,
		Message: message,
		Context: context,
	})
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

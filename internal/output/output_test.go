package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestNewWriter_UnsupportedFormat(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, Format("xml"))
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "xml") {
		t.Errorf("error should name the format, got %q", err.Error())
	}
}

func TestMarkdownWriter_Passthrough(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, FormatMarkdown)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := &Document{Markdown: "# Title\n\nbody\n", Source: "page.html"}
	if err := w.Write(doc); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if buf.String() != "# Title\n\nbody\n" {
		t.Errorf("markdown writer should pass markdown through verbatim, got %q", buf.String())
	}
}

func TestJSONWriter_SingleDocument(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := w.Write(&Document{URL: "https://x.io", Markdown: "m\n"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	var decoded Document
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not a single JSON object: %v\n%s", err, buf.String())
	}
	if decoded.URL != "https://x.io" || decoded.Markdown != "m\n" {
		t.Errorf("unexpected decoded document: %+v", decoded)
	}
}

func TestJSONWriter_MultipleDocuments(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")

	_ = w.Write(&Document{Markdown: "a\n"})
	_ = w.Write(&Document{Markdown: "b\n"})
	if err := w.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	var decoded []Document
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, buf.String())
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(decoded))
	}
}

func TestJSONLWriter_OneLinePerDocument(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONLWriter(buf)

	_ = w.Write(&Document{Markdown: "a\n"})
	_ = w.Write(&Document{Markdown: "b\n"})
	if err := w.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	for _, line := range lines {
		var decoded Document
		if err := json.Unmarshal([]byte(line), &decoded); err != nil {
			t.Errorf("line is not valid JSON: %v (%q)", err, line)
		}
	}
}

func TestYAMLWriter_SingleDocument(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, FormatYAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := w.Write(&Document{URL: "https://x.io", Markdown: "m\n"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	var decoded Document
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, buf.String())
	}
	if decoded.URL != "https://x.io" {
		t.Errorf("unexpected decoded document: %+v", decoded)
	}
}

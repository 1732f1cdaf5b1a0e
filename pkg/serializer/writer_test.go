package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type testConfig struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

type serviceRows []testConfig

func (s serviceRows) Columns() []string { return []string{"NAME", "VALUE"} }

func (s serviceRows) Rows() [][]string {
	rows := make([][]string, 0, len(s))
	for _, c := range s {
		rows = append(rows, []string{c.Name, strings.Repeat("*", c.Value)})
	}
	return rows
}

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	data := []testConfig{{Name: "auth", Value: 12}, {Name: "admin", Value: 24}}
	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result []testConfig
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}
	if len(result) != 2 || result[0].Name != "auth" || result[1].Value != 24 {
		t.Errorf("Unexpected data: %+v", result)
	}
}

func TestWriter_SerializeJSON_NoHTMLEscape(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	if err := writer.Serialize(context.Background(), map[string]string{"path": "/v1/search?q=a&limit=1"}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(buf.String(), "q=a&limit=1") {
		t.Errorf("expected unescaped ampersand, got %s", buf.String())
	}
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatYAML, &buf)

	data := []testConfig{{Name: "auth", Value: 12}}
	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result []testConfig
	if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal YAML: %v", err)
	}
	if len(result) != 1 || result[0].Name != "auth" {
		t.Errorf("Unexpected data: %+v", result)
	}
}

func TestWriter_SerializeTable_Flat(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	data := []any{testConfig{Name: "auth", Value: 12}, testConfig{Name: "admin", Value: 24}}
	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "FIELD") || !strings.Contains(output, "VALUE") {
		t.Error("Expected table header not found")
	}
	if !strings.Contains(output, "[0].Name") || !strings.Contains(output, "[1].Value") {
		t.Error("Expected flattened keys not found")
	}
}

func TestWriter_SerializeTable_Tabular(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	if err := writer.Serialize(context.Background(), serviceRows{{Name: "auth", Value: 2}}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "NAME") || !strings.Contains(lines[0], "VALUE") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "----") {
		t.Errorf("unexpected separator %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "auth") || !strings.HasSuffix(lines[2], "**") {
		t.Errorf("unexpected row %q", lines[2])
	}
}

func TestWriter_SerializeTable_EmptyData(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	if err := writer.Serialize(context.Background(), map[string]string{}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "<empty>" {
		t.Errorf("expected <empty>, got %q", buf.String())
	}
}

func TestWriter_SerializeTable_NestedAndNil(t *testing.T) {
	type inner struct {
		Port int
	}
	type outer struct {
		Name  string
		Inner inner
		Ptr   *inner
		Tags  map[string]string
	}

	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	data := outer{Name: "auth", Inner: inner{Port: 8080}, Tags: map[string]string{"kind": "standard"}}
	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"Inner.Port", "8080", "Tags.kind", "standard", "Ptr", "<nil>"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestWriter_RejectsBundle(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	err := writer.Serialize(context.Background(), fileBundle{"index.html": []byte("x")})
	if !errors.Is(err, ErrBundleUnsupported) {
		t.Errorf("expected ErrBundleUnsupported, got %v", err)
	}
}

func TestWriter_CanceledContext(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := writer.Serialize(ctx, testConfig{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("expected nothing written")
	}
}

func TestNewWriter_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter("invalid", &buf)

	if writer.format != FormatJSON {
		t.Errorf("expected fallback to JSON, got %s", writer.format)
	}
	if err := writer.Serialize(context.Background(), testConfig{Name: "auth", Value: 1}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result testConfig
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal as JSON: %v", err)
	}
}

func TestNewWriter_DefaultsToStdout(t *testing.T) {
	writer := NewWriter(FormatJSON, nil)
	if writer.output != os.Stdout {
		t.Error("expected stdout when output is nil")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		format  Format
		unknown bool
		ext     string
	}{
		{FormatJSON, false, "json"},
		{FormatYAML, false, "yaml"},
		{FormatTable, false, "txt"},
		{Format("xml"), true, "json"},
		{Format(""), true, "json"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := tt.format.IsUnknown(); got != tt.unknown {
				t.Errorf("IsUnknown() = %v, want %v", got, tt.unknown)
			}
			if got := tt.format.Extension(); got != tt.ext {
				t.Errorf("Extension() = %q, want %q", got, tt.ext)
			}
		})
	}

	if len(SupportedFormats()) != 3 {
		t.Errorf("expected 3 supported formats, got %v", SupportedFormats())
	}
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("empty path is stdout", func(t *testing.T) {
		s := NewFileWriterOrStdout(FormatJSON, "  ")
		w, ok := s.(*Writer)
		if !ok || w.output != os.Stdout {
			t.Errorf("expected stdout writer, got %T", s)
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "services.yaml")
		s := NewFileWriterOrStdout(FormatYAML, path)
		if err := s.Serialize(context.Background(), []testConfig{{Name: "auth"}}); err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}
		if err := Close(s); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if err := Close(s); err != nil {
			t.Fatalf("second Close failed: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if !strings.Contains(string(content), "name: auth") {
			t.Errorf("unexpected file content %q", content)
		}
	})

	t.Run("configmap uri", func(t *testing.T) {
		s := NewFileWriterOrStdout(FormatJSON, "cm://docs/site")
		cm, ok := s.(*ConfigMapWriter)
		if !ok {
			t.Fatalf("expected ConfigMapWriter, got %T", s)
		}
		if cm.namespace != "docs" || cm.name != "site" {
			t.Errorf("unexpected target %s/%s", cm.namespace, cm.name)
		}
	})

	t.Run("bad configmap uri falls back to stdout", func(t *testing.T) {
		if _, ok := NewFileWriterOrStdout(FormatJSON, "cm://docs").(*Writer); !ok {
			t.Error("expected stdout writer for malformed URI")
		}
	})

	t.Run("invalid path falls back to stdout", func(t *testing.T) {
		s := NewFileWriterOrStdout(FormatJSON, "/nonexistent/dir/out.json")
		w, ok := s.(*Writer)
		if !ok || w.output != os.Stdout {
			t.Error("expected stdout writer for invalid path")
		}
	})
}

package api

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"yaml", OutputFormatYAML, false},
		{"json", OutputFormatJSON, false},
		{"", DefaultOutput, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("ParseOutputFormat(%q) = %q, %v", tt.in, got, err)
			}
		})
	}
}

func TestSetOutputFormat(t *testing.T) {
	defer SetOutputFormat("yaml")

	SetOutputFormat("json")
	if GetOutputFormat() != OutputFormatJSON {
		t.Errorf("format = %s, want json", GetOutputFormat())
	}
	SetOutputFormat("bogus")
	if GetOutputFormat() != DefaultOutput {
		t.Errorf("format = %s, want default", GetOutputFormat())
	}
}

func TestOutputTo(t *testing.T) {
	data := map[string]any{"header": "АРХАНГЕЛЬСКАЯ", "text": "<br>"}

	var buf bytes.Buffer
	if err := OutputTo(&buf, OutputFormatJSON, data); err != nil {
		t.Fatalf("json output failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"text": "<br>"`) {
		t.Errorf("json output escaped markup: %s", buf.String())
	}

	buf.Reset()
	if err := OutputTo(&buf, OutputFormatYAML, data); err != nil {
		t.Fatalf("yaml output failed: %v", err)
	}
	if !strings.Contains(buf.String(), "header: АРХАНГЕЛЬСКАЯ") {
		t.Errorf("unexpected yaml output: %s", buf.String())
	}

	if err := OutputTo(&buf, "xml", data); err == nil {
		t.Error("expected error for unknown format")
	}
}

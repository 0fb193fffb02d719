package output

import (
	"bytes"
	"strings"
	"testing"
)

type item struct {
	DisplayName string `json:"displayName"`
	Size        int64  `json:"size,omitempty"`
}

func TestPrint_YAMLUsesJSONKeys(t *testing.T) {
	var buf bytes.Buffer
	if err := Print(&buf, YAML, []item{{DisplayName: "7-Zip"}}, nil); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if !strings.Contains(buf.String(), "displayName: 7-Zip") {
		t.Errorf("unexpected yaml: %s", buf.String())
	}
	if strings.Contains(buf.String(), "size") {
		t.Errorf("omitempty field rendered: %s", buf.String())
	}
}

func TestPrint_TableCallsRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := Print(&buf, Table, nil, func() {
		RenderTable(&buf, []string{"Name"}, [][]interface{}{{"7-Zip"}}, "1 app")
	})
	if err != nil {
		t.Fatalf("Print: %v", err)
	}
	if !strings.Contains(buf.String(), "7-Zip") || !strings.Contains(buf.String(), "1 app") {
		t.Errorf("unexpected table: %s", buf.String())
	}
}

func TestPrint_UnknownFormat(t *testing.T) {
	if err := Print(&bytes.Buffer{}, "xml", nil, func() {}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

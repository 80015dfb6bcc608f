package outwriter

import (
	"bytes"
	"strings"
	"testing"

	"codescan/internal/envelope"
)

func TestWrite_YAMLRendersMultiLineContentAsLiteralBlock(t *testing.T) {
	env := &envelope.OutputEnvelope{
		Meta: envelope.MetaInfo{ElapsedMs: 5, ScanID: "abc"},
		Files: []envelope.FileEntry{
			{Path: "a.go", Contents: envelope.LiteralString("line one\nline two\n")},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, env, YAML); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "contents: |") {
		t.Fatalf("expected literal block scalar style, got:\n%s", out)
	}
	if !strings.Contains(out, "scanId: abc") {
		t.Fatalf("expected scanId field, got:\n%s", out)
	}
}

func TestWrite_JSONUsesCamelCaseKeys(t *testing.T) {
	env := &envelope.OutputEnvelope{
		Meta: envelope.MetaInfo{ElapsedMs: 5, FilesScanned: 2},
	}

	var buf bytes.Buffer
	if err := Write(&buf, env, JSON); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"elapsedMs"`) || !strings.Contains(out, `"filesScanned"`) {
		t.Fatalf("expected camelCase JSON keys, got:\n%s", out)
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("json") != JSON {
		t.Error("expected json to parse as JSON")
	}
	if ParseFormat("yaml") != YAML {
		t.Error("expected yaml to parse as YAML")
	}
	if ParseFormat("") != YAML {
		t.Error("expected empty string to default to YAML")
	}
}

package textenc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeUTF8Passthrough(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:04,000\nHello, world! Ça roule très bien, señor.\n"
	out, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if out != input {
		t.Errorf("expected passthrough, got %q", out)
	}
}

func TestDecodeStripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBF1\n00:00:01,000 --> 00:00:04,000\nHello with a byte-order mark ahead of it.\n"
	out, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if strings.HasPrefix(out, "\xEF\xBB\xBF") {
		t.Error("BOM not stripped")
	}
	if !strings.HasPrefix(out, "1\n") {
		t.Errorf("unexpected content start: %q", out[:8])
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.srt")
	content := "1\n00:00:01,000 --> 00:00:04,000\nRead from disk.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if out != content {
		t.Errorf("expected %q, got %q", content, out)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.srt")); err == nil {
		t.Error("expected error for missing file")
	}
}

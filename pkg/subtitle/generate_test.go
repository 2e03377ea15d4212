package subtitle

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestGenerateSRTRoundTrip(t *testing.T) {
	content := "1\n" +
		"00:00:01,000 --> 00:00:04,000\n" +
		"Hello, world!\n" +
		"\n" +
		"2\n" +
		"00:00:05,500 --> 00:00:08,200\n" +
		"This is a test.\n" +
		"With multiple lines.\n"

	doc := ParseSRT(content, &ParseOptions{PreserveIndexes: true})
	if len(doc.Errors) != 0 {
		t.Fatalf("fixture should parse cleanly: %v", doc.Errors)
	}

	out, err := GenerateSRT(doc, true)
	if err != nil {
		t.Fatalf("GenerateSRT failed: %v", err)
	}
	if out != content {
		t.Errorf("round trip mismatch:\n--- want ---\n%q\n--- got ---\n%q", content, out)
	}
}

func TestGenerateVTTRoundTrip(t *testing.T) {
	content := "WEBVTT\n" +
		"\n" +
		"intro\n" +
		"00:01.000 --> 00:04.000 align:start\n" +
		"Hello\n" +
		"\n" +
		"00:05.000 --> 00:08.000\n" +
		"<v Fred>Hi there</v>\n"

	doc := ParseVTT(content, &ParseOptions{PreserveIndexes: true})
	if len(doc.Errors) != 0 {
		t.Fatalf("fixture should parse cleanly: %v", doc.Errors)
	}

	out, err := GenerateVTT(doc, true)
	if err != nil {
		t.Fatalf("GenerateVTT failed: %v", err)
	}
	if out != content {
		t.Errorf("round trip mismatch:\n--- want ---\n%q\n--- got ---\n%q", content, out)
	}
}

func TestGenerateVTTStylesAndRegions(t *testing.T) {
	content := "WEBVTT\n" +
		"\n" +
		"STYLE\n" +
		"::cue { color: gold; }\n" +
		"\n" +
		"REGION\n" +
		"id=r1 width=40% lines=2 regionanchor=0%,100% viewportanchor=10%,90% scroll=up\n" +
		"\n" +
		"00:01.000 --> 00:02.000\n" +
		"Anchored\n"

	doc := ParseVTT(content, &ParseOptions{PreserveIndexes: true})
	out, err := GenerateVTT(doc, true)
	if err != nil {
		t.Fatalf("GenerateVTT failed: %v", err)
	}
	if out != content {
		t.Errorf("round trip mismatch:\n--- want ---\n%q\n--- got ---\n%q", content, out)
	}
}

// a non-canonical but valid source round-trips at the model level rather
// than byte for byte
func TestModelLevelRoundTrip(t *testing.T) {
	content := `1
0:0:1,0 --> 0:0:4,0
Sloppy padding
`
	first := ParseSRT(content, &ParseOptions{PreserveIndexes: true})
	out, err := GenerateSRT(first, true)
	if err != nil {
		t.Fatalf("GenerateSRT failed: %v", err)
	}
	second := ParseSRT(out, &ParseOptions{PreserveIndexes: true})
	if !reflect.DeepEqual(first.Cues, second.Cues) {
		t.Errorf("model mismatch:\nfirst:  %+v\nsecond: %+v", first.Cues, second.Cues)
	}
}

func TestParseGenerateIdempotence(t *testing.T) {
	inputs := []string{
		"1\n00:00:01,000 --> 00:00:04,000\nHello\n",
		"5\n00:00:01,000 --> 00:00:04,000\nOut of order\n\n2\n00:00:05,000 --> 00:00:06,000\nStill here\n",
		"WEBVTT\n\n00:01.000 --> 00:04.000\nHi\n",
		"00:00:01,000 --> 00:00:02,000 glued text\n",
	}
	for _, input := range inputs {
		once := Parse(input, nil)
		onceOut, err := Build(once, &BuildOptions{Format: once.Type})
		if err != nil {
			t.Fatalf("build failed for %q: %v", input, err)
		}
		twice := Parse(onceOut, nil)
		twiceOut, err := Build(twice, &BuildOptions{Format: twice.Type})
		if err != nil {
			t.Fatalf("build failed for %q: %v", onceOut, err)
		}
		if onceOut != twiceOut {
			t.Errorf("not idempotent for %q:\nonce:  %q\ntwice: %q",
				input, onceOut, twiceOut)
		}
		if !reflect.DeepEqual(Parse(onceOut, nil).Cues, twice.Cues) {
			t.Errorf("cue model drifted for %q", input)
		}
	}
}

func TestGenerateSRTRenumbers(t *testing.T) {
	cues := []Cue{
		{Index: 9, Start: time.Second, End: 2 * time.Second, Text: "A"},
		{Index: 4, Start: 3 * time.Second, End: 4 * time.Second, Text: "B"},
	}
	out, err := GenerateSRT(cues, false)
	if err != nil {
		t.Fatalf("GenerateSRT failed: %v", err)
	}
	if !strings.HasPrefix(out, "1\n") || !strings.Contains(out, "\n2\n") {
		t.Errorf("expected sequential renumbering, got:\n%s", out)
	}

	preserved, err := GenerateSRT(cues, true)
	if err != nil {
		t.Fatalf("GenerateSRT failed: %v", err)
	}
	if !strings.HasPrefix(preserved, "9\n") || !strings.Contains(preserved, "\n4\n") {
		t.Errorf("expected declared indexes, got:\n%s", preserved)
	}
}

func TestGenerateText(t *testing.T) {
	cues := []Cue{
		{Index: 1, Start: 0, End: time.Second, Text: "First"},
		{Index: 2, Start: 2 * time.Second, End: 3 * time.Second, Text: "Second\nline"},
	}
	out, err := GenerateText(cues)
	if err != nil {
		t.Fatalf("GenerateText failed: %v", err)
	}
	if out != "First\n\nSecond\nline\n" {
		t.Errorf("got %q", out)
	}
}

func TestBuildDispatch(t *testing.T) {
	cues := []Cue{{Index: 1, Start: 0, End: time.Second, Text: "Hi"}}

	srt, err := Build(cues, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !strings.Contains(srt, "00:00:00,000 --> 00:00:01,000") {
		t.Errorf("default build should be SRT, got %q", srt)
	}

	vtt, err := Build(cues, &BuildOptions{Format: FormatVTT})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !strings.HasPrefix(vtt, "WEBVTT\n") {
		t.Errorf("expected VTT output, got %q", vtt)
	}

	// legacy callers pass the format as a bare string
	legacy, err := Build(cues, &BuildOptions{Format: Format("vtt")})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if legacy != vtt {
		t.Errorf("string format should behave like the constant")
	}

	if _, err := Build(cues, &BuildOptions{Format: Format("ssa")}); err == nil {
		t.Error("expected error for unsupported format")
	}
	if _, err := Build(42, nil); err == nil {
		t.Error("expected error for unsupported input type")
	}
}

func TestGenerateEmpty(t *testing.T) {
	out, err := GenerateSRT([]Cue{}, false)
	if err != nil {
		t.Fatalf("GenerateSRT failed: %v", err)
	}
	if out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

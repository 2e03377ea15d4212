package subtitle

import (
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Format
	}{
		{
			name:    "webvtt header",
			content: "WEBVTT\n\n00:01.000 --> 00:02.000\nHi\n",
			want:    FormatVTT,
		},
		{
			name:    "webvtt header with metadata suffix",
			content: "WEBVTT - captions\n\n00:01.000 --> 00:02.000\nHi\n",
			want:    FormatVTT,
		},
		{
			name:    "webvtt header after blank lines",
			content: "\n\nWEBVTT\n\n00:01.000 --> 00:02.000\nHi\n",
			want:    FormatVTT,
		},
		{
			name:    "numbered entries",
			content: "1\n00:00:01,000 --> 00:00:02,000\nHi\n",
			want:    FormatSRT,
		},
		{
			name:    "numbered entry later in file",
			content: "some stray line\n\n1\n00:00:01,000 --> 00:00:02,000\nHi\n",
			want:    FormatSRT,
		},
		{
			name:    "fallback prefers the recovering reading",
			content: "00:00:01,000 --> garbage\nHi\n",
			want:    FormatSRT,
		},
		{
			name:    "fallback headerless vtt",
			content: "00:01.000 --> 00:02.000\nHi\n\n00:03.000 --> 00:04.000\nBye\n",
			want:    FormatVTT,
		},
		{
			name:    "fallback textual identifier",
			content: "opening remarks\n00:01.000 --> 00:02.000\nHi\n",
			want:    FormatVTT,
		},
		{
			name:    "garbage",
			content: "this is just prose\nwith no structure\n",
			want:    FormatUnknown,
		},
		{
			name:    "empty",
			content: "",
			want:    FormatUnknown,
		},
		{
			name:    "whitespace only",
			content: "  \n\t\n",
			want:    FormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := DetectFormat(tt.content)
			if got != tt.want {
				t.Errorf("DetectFormat(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestDetectFormatDiagnostics(t *testing.T) {
	format, diags := DetectFormat("")
	if format != FormatUnknown {
		t.Fatalf("expected unknown format, got %v", format)
	}
	if len(diags) != 1 || diags[0].Message != "Empty subtitle content" {
		t.Errorf("expected empty-content diagnostic, got %v", diags)
	}

	_, diags = DetectFormat("nothing subtitle shaped here")
	if len(diags) != 1 || diags[0].Severity != SeverityError {
		t.Errorf("expected one error diagnostic, got %v", diags)
	}
}

func TestParseAutoDetect(t *testing.T) {
	srt := Parse("1\n00:00:01,000 --> 00:00:02,000\nHi\n", nil)
	if srt.Type != FormatSRT {
		t.Errorf("expected SRT, got %v", srt.Type)
	}
	if len(srt.Cues) != 1 {
		t.Errorf("expected 1 cue, got %d", len(srt.Cues))
	}

	vtt := Parse("WEBVTT\n\n00:01.000 --> 00:02.000\nHi\n", nil)
	if vtt.Type != FormatVTT {
		t.Errorf("expected VTT, got %v", vtt.Type)
	}
	if len(vtt.Cues) != 1 {
		t.Errorf("expected 1 cue, got %d", len(vtt.Cues))
	}
}

func TestParseUnknownNeverFails(t *testing.T) {
	doc := Parse("complete nonsense", nil)
	if doc.Type != FormatUnknown {
		t.Errorf("expected unknown type, got %v", doc.Type)
	}
	if len(doc.Cues) != 0 {
		t.Errorf("expected no cues, got %d", len(doc.Cues))
	}
	if !doc.HasErrors() {
		t.Error("expected at least one error diagnostic")
	}

	empty := Parse("", nil)
	if empty.Type != FormatUnknown || !empty.HasErrors() {
		t.Errorf("empty input should yield unknown with an error, got %+v", empty)
	}
}

func TestParseStripsCodeFence(t *testing.T) {
	fenced := "```srt\n1\n00:00:01,000 --> 00:00:02,000\nFenced\n```"
	doc := Parse(fenced, nil)
	if doc.Type != FormatSRT {
		t.Fatalf("expected SRT, got %v", doc.Type)
	}
	if len(doc.Cues) != 1 || doc.Cues[0].Text != "Fenced" {
		t.Errorf("unexpected cues: %+v", doc.Cues)
	}

	vtt := Parse("```\nWEBVTT\n\n00:01.000 --> 00:02.000\nHi\n```\n", nil)
	if vtt.Type != FormatVTT {
		t.Errorf("expected VTT, got %v", vtt.Type)
	}
}

package subtitle

import (
	"regexp"
	"strings"
)

var codeFence = regexp.MustCompile("(?s)^```[a-zA-Z0-9]*[ \t]*\n(.*?)\n?```[ \t]*$")

// Parse auto-detects the subtitle format of content and runs the matching
// parser. Inputs that match no known grammar come back as a Document with
// type unknown, no cues, and a single document-level error; Parse never
// fails outright for any string input.
func Parse(content string, opts *ParseOptions) *Document {
	body := stripCodeFence(content)
	format, diags := DetectFormat(body)
	switch format {
	case FormatSRT:
		return ParseSRT(body, opts)
	case FormatVTT:
		return ParseVTT(body, opts)
	}
	return &Document{Type: FormatUnknown, Errors: diags}
}

// DetectFormat classifies content as SRT or VTT with cheap heuristics: a
// WEBVTT header, then a numbered-entry-plus-timestamp-line shape, then a
// tie-break that parses both ways and keeps the reading with fewer errors.
func DetectFormat(content string) (Format, []Diagnostic) {
	body := stripCodeFence(content)
	if strings.TrimSpace(body) == "" {
		return FormatUnknown, []Diagnostic{{
			Line:     1,
			Message:  "Empty subtitle content",
			Severity: SeverityError,
		}}
	}

	lines := splitLines(body)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "WEBVTT") {
			return FormatVTT, nil
		}
		break
	}

	for i := 0; i+1 < len(lines); i++ {
		if isDigits(strings.TrimSpace(lines[i])) && containsArrow(lines[i+1]) {
			return FormatSRT, nil
		}
	}

	if containsArrow(body) {
		srtDoc := ParseSRT(body, nil)
		vttDoc := ParseVTT(body, nil)
		if vttDoc.ErrorCount() < srtDoc.ErrorCount() {
			return FormatVTT, nil
		}
		if srtDoc.ErrorCount() < vttDoc.ErrorCount() {
			return FormatSRT, nil
		}
		if len(vttDoc.Errors) < len(srtDoc.Errors) {
			return FormatVTT, nil
		}
		return FormatSRT, nil
	}

	return FormatUnknown, []Diagnostic{{
		Line:     1,
		Message:  "Unrecognized subtitle format",
		Severity: SeverityError,
	}}
}

// stripCodeFence unwraps content pasted inside a markdown code fence.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if m := codeFence.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	return content
}

package subtitle

import (
	"fmt"
	"strings"
)

// canonical emission order for cue settings; map iteration would jitter the
// output between runs
var settingOrder = []string{"vertical", "line", "position", "size", "align", "region"}

// Build serializes a document or bare cue list into the requested format.
// The zero-value options produce SRT without index preservation.
func Build(input any, opts *BuildOptions) (string, error) {
	format := FormatSRT
	preserve := false
	if opts != nil {
		if opts.Format != "" {
			format = opts.Format
		}
		preserve = opts.PreserveIndexes
	}
	switch format {
	case FormatSRT:
		return GenerateSRT(input, preserve)
	case FormatVTT:
		return GenerateVTT(input, preserve)
	case FormatText:
		return GenerateText(input)
	}
	return "", fmt.Errorf("unsupported output format: %s", format)
}

// GenerateSRT renders cues as SubRip text: index, comma-decimal timestamp
// line, text, one blank line between cues. With preserveIndexes the emitted
// numbers come from Cue.Index; otherwise cues are renumbered from 1.
func GenerateSRT(input any, preserveIndexes bool) (string, error) {
	doc, err := toDocument(input)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, cue := range doc.Cues {
		idx := i + 1
		if preserveIndexes && cue.Index > 0 {
			idx = cue.Index
		}
		fmt.Fprintf(&sb, "%d\n", idx)
		fmt.Fprintf(&sb, "%s --> %s\n",
			formatSRTTime(cue.Start), formatSRTTime(cue.End))
		sb.WriteString(cue.Text)
		sb.WriteString("\n\n")
	}
	return trimTrailing(sb.String()), nil
}

// GenerateVTT renders a WebVTT document: header, style blocks, region
// blocks, then cues. Identifiers are emitted verbatim with preserveIndexes,
// or renumbered sequentially without it.
func GenerateVTT(input any, preserveIndexes bool) (string, error) {
	doc, err := toDocument(input)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")

	for _, style := range doc.Styles {
		sb.WriteString("STYLE\n")
		sb.WriteString(style)
		sb.WriteString("\n\n")
	}

	for _, region := range doc.Regions {
		fmt.Fprintf(&sb,
			"REGION\nid=%s width=%s lines=%d regionanchor=%s viewportanchor=%s scroll=%s\n\n",
			region.ID, region.Width, region.Lines,
			region.RegionAnchor, region.ViewportAnchor, region.Scroll)
	}

	for i, cue := range doc.Cues {
		if preserveIndexes {
			if cue.VTT != nil && cue.VTT.Identifier != "" {
				sb.WriteString(cue.VTT.Identifier)
				sb.WriteString("\n")
			}
		} else {
			fmt.Fprintf(&sb, "%d\n", i+1)
		}

		fmt.Fprintf(&sb, "%s --> %s",
			formatVTTTime(cue.Start), formatVTTTime(cue.End))
		if cue.VTT != nil {
			for _, key := range settingOrder {
				if val, ok := cue.VTT.Settings[key]; ok {
					fmt.Fprintf(&sb, " %s:%s", key, val)
				}
			}
		}
		sb.WriteString("\n")

		sb.WriteString(vttCueText(cue))
		sb.WriteString("\n\n")
	}
	return trimTrailing(sb.String()), nil
}

// GenerateText renders only the cue text, blocks separated by blank lines.
func GenerateText(input any) (string, error) {
	doc, err := toDocument(input)
	if err != nil {
		return "", err
	}
	if len(doc.Cues) == 0 {
		return "", nil
	}
	texts := make([]string, len(doc.Cues))
	for i, cue := range doc.Cues {
		texts[i] = cue.Text
	}
	return strings.Join(texts, "\n\n") + "\n", nil
}

func vttCueText(cue Cue) string {
	if cue.VTT == nil || len(cue.VTT.Voices) == 0 {
		return cue.Text
	}
	lines := make([]string, len(cue.VTT.Voices))
	for i, voice := range cue.VTT.Voices {
		lines[i] = fmt.Sprintf("<v %s>%s</v>", voice.Name, voice.Text)
	}
	return strings.Join(lines, "\n")
}

func toDocument(input any) (*Document, error) {
	switch v := input.(type) {
	case *Document:
		if v == nil {
			return &Document{}, nil
		}
		return v, nil
	case Document:
		return &v, nil
	case []Cue:
		return &Document{Cues: v}, nil
	}
	return nil, fmt.Errorf("unsupported input type %T: want *Document or []Cue", input)
}

func trimTrailing(s string) string {
	if s == "" {
		return s
	}
	return strings.TrimRight(s, "\n") + "\n"
}

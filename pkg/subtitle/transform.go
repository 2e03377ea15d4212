package subtitle

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// display-time bounds used when NormalizeDurations is called with zero values
const (
	DefaultMinDuration = time.Second
	DefaultMaxDuration = 7 * time.Second
)

// Shift returns a copy of cues with every timing moved by delta, clamped at
// zero. The pre-shift interval is recorded in Original the first time a
// cue's timing is altered.
func Shift(cues []Cue, delta time.Duration) []Cue {
	out := make([]Cue, len(cues))
	for i, cue := range cues {
		out[i] = retime(cue, cue.Start+delta, cue.End+delta)
	}
	return out
}

// Scale returns a copy of cues with every timing multiplied by factor,
// stretching or compressing the whole track around zero.
func Scale(cues []Cue, factor float64) []Cue {
	out := make([]Cue, len(cues))
	for i, cue := range cues {
		start := time.Duration(float64(cue.Start) * factor)
		end := time.Duration(float64(cue.End) * factor)
		out[i] = retime(cue, start, end)
	}
	return out
}

// MergeOverlapping folds runs of intersecting cues into single cues,
// concatenating their text line by line. Indexes are reassigned
// sequentially afterwards.
func MergeOverlapping(cues []Cue) []Cue {
	var out []Cue
	for _, cue := range cues {
		if n := len(out); n > 0 && cue.Start < out[n-1].End {
			last := &out[n-1]
			if cue.End > last.End {
				last.End = cue.End
			}
			last.Text = last.Text + "\n" + cue.Text
			continue
		}
		out = append(out, cue)
	}
	for i := range out {
		out[i].Index = i + 1
	}
	return out
}

// NormalizeDurations clamps every cue's display time into [min, max],
// without running an extended cue into the start of the next one. Zero
// bounds fall back to the defaults.
func NormalizeDurations(cues []Cue, min, max time.Duration) []Cue {
	if min <= 0 {
		min = DefaultMinDuration
	}
	if max <= 0 {
		max = DefaultMaxDuration
	}
	out := make([]Cue, len(cues))
	for i, cue := range cues {
		end := cue.End
		if d := end - cue.Start; d < min {
			end = cue.Start + min
		} else if d > max {
			end = cue.Start + max
		}
		if i+1 < len(cues) && end > cues[i+1].Start && cues[i+1].Start > cue.Start {
			end = cues[i+1].Start
		}
		out[i] = retime(cue, cue.Start, end)
	}
	return out
}

// Validate reports problems in a cue list without fixing anything. The
// diagnostic Line field carries the 1-based cue position, since a bare cue
// list has no source lines.
func Validate(cues []Cue) []Diagnostic {
	if len(cues) == 0 {
		return []Diagnostic{newDiag(1, SeverityError, "No subtitle cues found")}
	}
	var diags []Diagnostic
	for i, cue := range cues {
		pos := i + 1
		if strings.TrimSpace(cue.Text) == "" {
			diags = append(diags, newDiag(pos, SeverityError,
				"Cue %d has no text content", cue.Index))
		}
		if cue.End < cue.Start {
			diags = append(diags, newDiag(pos, SeverityError,
				"Cue %d ends before it starts", cue.Index))
			continue
		}
		if d := cue.End - cue.Start; d < 500*time.Millisecond {
			diags = append(diags, newDiag(pos, SeverityWarning,
				"Cue %d is displayed for under half a second", cue.Index))
		} else if d > 10*time.Second {
			diags = append(diags, newDiag(pos, SeverityWarning,
				"Cue %d is displayed for over ten seconds", cue.Index))
		}
		if i == 0 {
			continue
		}
		prev := cues[i-1]
		if prev.Index > 0 && cue.Index > 0 && cue.Index != prev.Index+1 {
			diags = append(diags, newDiag(pos, SeverityWarning,
				"Non-sequential subtitle index: expected %d, got %d",
				prev.Index+1, cue.Index))
		}
		if prev.Start == cue.Start && prev.End == cue.End {
			continue
		}
		if prev.End > cue.Start {
			diags = append(diags, newDiag(pos, SeverityWarning,
				"Subtitle overlap: cue %d ends after cue %d starts",
				prev.Index, cue.Index))
		}
	}
	return diags
}

var looseTime = regexp.MustCompile(`\d[\d:.,]*\d`)

// ExtractTimes scans free text for anything the timestamp engine can read
// and returns the parsed values in order of appearance.
func ExtractTimes(text string) []time.Duration {
	var out []time.Duration
	for _, tok := range looseTime.FindAllString(text, -1) {
		d, err := parseTimeToken(tok, false)
		if err != nil && !errors.Is(err, ErrUnusualTimestamp) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// retime moves a cue to a new interval, stamping Original on first change
// and clamping negatives at zero.
func retime(cue Cue, start, end time.Duration) Cue {
	if start < 0 {
		start = 0
	}
	if end < 0 {
		end = 0
	}
	if start == cue.Start && end == cue.End {
		return cue
	}
	if cue.Original == nil {
		cue.Original = &TimeRange{Start: cue.Start, End: cue.End}
	}
	cue.Start, cue.End = start, end
	return cue
}

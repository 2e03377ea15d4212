package subtitle

import (
	"fmt"
	"time"
)

// represents a subtitle document format
type Format string

const (
	FormatSRT     Format = "srt"
	FormatVTT     Format = "vtt"
	FormatText    Format = "text"
	FormatUnknown Format = "unknown"
)

// severity of a parser diagnostic
type Severity string

const (
	// the problem was recovered; the cue was kept or defaulted
	SeverityWarning Severity = "warning"
	// the cue was rejected, or the document could not be parsed at all
	SeverityError Severity = "error"
)

// a single issue found while parsing; Line is 1-based and counts every
// physical line of the original input, blank lines included
type Diagnostic struct {
	Line     int
	Message  string
	Severity Severity
}

// start/end pair in force before the first timing transform touched a cue
type TimeRange struct {
	Start time.Duration
	End   time.Duration
}

// one voice span extracted from <v Name>...</v> markup
type Voice struct {
	Name string
	Text string
}

// WebVTT-only cue fields; nil on cues parsed from SRT
type VTTCue struct {
	Identifier string
	Settings   map[string]string
	Voices     []Voice
}

// represents a single subtitle entry
type Cue struct {
	Index    int
	Start    time.Duration
	End      time.Duration
	Text     string
	Original *TimeRange
	VTT      *VTTCue
}

// parsed WEBVTT REGION block
type Region struct {
	ID             string
	Width          string
	Lines          int
	RegionAnchor   string
	ViewportAnchor string
	Scroll         string
}

// result of a parse call; Cues keep source order, they are never re-sorted
type Document struct {
	Type    Format
	Cues    []Cue
	Errors  []Diagnostic
	Styles  []string
	Regions []Region
}

// reports whether any diagnostic has error severity
func (d *Document) HasErrors() bool {
	for _, diag := range d.Errors {
		if diag.Severity == SeverityError {
			return true
		}
	}
	return false
}

// count of error-severity diagnostics
func (d *Document) ErrorCount() int {
	n := 0
	for _, diag := range d.Errors {
		if diag.Severity == SeverityError {
			n++
		}
	}
	return n
}

// optional parsing hook; must not change behavior, no-op when nil
type TraceFunc func(format string, args ...any)

type ParseOptions struct {
	// keep source-declared indexes and VTT identifiers instead of
	// renumbering sequentially from 1
	PreserveIndexes bool
	Trace           TraceFunc
}

func (o *ParseOptions) trace() TraceFunc {
	if o == nil || o.Trace == nil {
		return func(string, ...any) {}
	}
	return o.Trace
}

func (o *ParseOptions) preserve() bool {
	return o != nil && o.PreserveIndexes
}

type BuildOptions struct {
	Format          Format
	PreserveIndexes bool
}

func newDiag(line int, sev Severity, format string, args ...any) Diagnostic {
	return Diagnostic{
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
		Severity: sev,
	}
}


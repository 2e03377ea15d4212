package subtitle

import (
	"errors"
	"strings"
	"time"
)

// ParseSRT parses SubRip text into a Document. It never fails: malformed
// cues are recovered or dropped with a diagnostic and the scan continues at
// the next recognizable cue.
func ParseSRT(content string, opts *ParseOptions) *Document {
	doc := &Document{Type: FormatSRT}
	if strings.TrimSpace(content) == "" {
		doc.Errors = append(doc.Errors, Diagnostic{
			Line:     1,
			Message:  "Empty subtitle content",
			Severity: SeverityError,
		})
		return doc
	}

	p := &srtParser{
		cur:   &lineCursor{lines: splitLines(content)},
		opts:  opts,
		trace: opts.trace(),
		doc:   doc,
	}

	for !p.cur.eof() {
		if strings.TrimSpace(p.cur.peek()) == "" {
			p.cur.next()
			continue
		}
		p.parseCue()
	}

	p.reportOverlaps()

	if len(doc.Cues) == 0 && len(doc.Errors) == 0 {
		doc.Errors = append(doc.Errors, Diagnostic{
			Line:     1,
			Message:  "No subtitle cues found",
			Severity: SeverityError,
		})
	}
	return doc
}

type srtParser struct {
	cur   *lineCursor
	opts  *ParseOptions
	trace TraceFunc
	doc   *Document

	// timestamp line of each accepted cue, for overlap reports
	cueLines []int
	// last source-declared index, for sequence warnings
	lastIndex int
	// last display index handed out
	counter int
}

func (p *srtParser) parseCue() {
	cur := p.cur
	line := strings.TrimSpace(cur.peek())

	declared := 0
	hasIndex := false
	if isDigits(line) {
		if next, ok := cur.peekAt(1); ok && containsArrow(next) {
			declared = atoi(line)
			hasIndex = true
			if p.lastIndex > 0 && declared != p.lastIndex+1 {
				p.warnf(cur.lineNo(),
					"Non-sequential subtitle index: expected %d, got %d",
					p.lastIndex+1, declared)
			}
			p.lastIndex = declared
			cur.next()
		}
	}

	tsLine := cur.lineNo()
	raw := strings.TrimSpace(cur.peek())
	if !containsArrow(raw) {
		p.errorf(tsLine, "Invalid subtitle format: %q", raw)
		p.resync()
		return
	}
	cur.next()

	if !hasIndex {
		p.warnf(tsLine, "Missing subtitle index, auto-numbering")
	}

	startTok, endTok, trailing := splitTimestampLine(raw)
	start, end, ok := p.parseInterval(tsLine, startTok, endTok)
	if !ok {
		p.resync()
		return
	}

	text, ok := p.collectText(trailing)
	if !ok {
		p.errorf(tsLine, "Subtitle cue has no text content")
		return
	}

	p.accept(Cue{Start: start, End: end, Text: text}, declared, hasIndex, tsLine)
}

// parseInterval applies the side-defaulting policy: one bad side is
// defaulted with a warning, two bad sides reject the cue.
func (p *srtParser) parseInterval(tsLine int, startTok, endTok string) (start, end time.Duration, ok bool) {
	startVal, serr := parseTimeToken(startTok, false)
	endVal, eerr := parseTimeToken(endTok, false)

	if errors.Is(serr, ErrUnusualTimestamp) {
		p.warnf(tsLine, "Unusually large start timestamp: %q", startTok)
		serr = nil
	}
	if errors.Is(eerr, ErrUnusualTimestamp) {
		p.warnf(tsLine, "Unusually large end timestamp: %q", endTok)
		eerr = nil
	}

	if serr != nil && eerr != nil {
		p.errorf(tsLine, "Unparseable timestamps: %q --> %q", startTok, endTok)
		return 0, 0, false
	}
	if serr != nil {
		p.warnf(tsLine, "Invalid start timestamp %q, defaulting to zero", startTok)
		startVal = 0
	}
	if eerr != nil {
		p.warnf(tsLine, "Invalid end timestamp %q, defaulting to start time", endTok)
		endVal = startVal
	}
	if endVal < startVal {
		p.warnf(tsLine, "End time precedes start time, swapping")
		startVal, endVal = endVal, startVal
	}
	return startVal, endVal, true
}

func (p *srtParser) collectText(trailing string) (string, bool) {
	text := collectCueText(p.cur, trailing)
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

func (p *srtParser) accept(cue Cue, declared int, hasIndex bool, tsLine int) {
	if p.opts.preserve() && hasIndex {
		cue.Index = declared
		p.counter = declared
	} else {
		p.counter++
		cue.Index = p.counter
	}
	p.doc.Cues = append(p.doc.Cues, cue)
	p.cueLines = append(p.cueLines, tsLine)
	p.trace("srt: accepted cue %d [%s --> %s]",
		cue.Index, formatSRTTime(cue.Start), formatSRTTime(cue.End))
}

// resync scans forward to the next line that looks like a bare cue index.
func (p *srtParser) resync() {
	cur := p.cur
	for !cur.eof() {
		trimmed := strings.TrimSpace(cur.peek())
		if isDigits(trimmed) {
			if next, ok := cur.peekAt(1); ok && containsArrow(next) {
				return
			}
		}
		cur.next()
	}
}

func (p *srtParser) reportOverlaps() {
	p.doc.Errors = append(p.doc.Errors, overlapWarnings(p.doc.Cues, p.cueLines)...)
}

func (p *srtParser) warnf(line int, format string, args ...any) {
	p.addDiag(line, SeverityWarning, format, args...)
}

func (p *srtParser) errorf(line int, format string, args ...any) {
	p.addDiag(line, SeverityError, format, args...)
}

func (p *srtParser) addDiag(line int, sev Severity, format string, args ...any) {
	d := newDiag(line, sev, format, args...)
	p.trace("srt: %s at line %d: %s", d.Severity, d.Line, d.Message)
	p.doc.Errors = append(p.doc.Errors, d)
}

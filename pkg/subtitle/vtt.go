package subtitle

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	voiceSpan = regexp.MustCompile(`(?s)<v(?:\.[\w.-]+)*[ \t]+([^>]+)>(.*?)</v>`)
	openVoice = regexp.MustCompile(`(?s)<v(?:\.[\w.-]+)*[ \t]+([^>]+)>(.*)$`)
)

// cue setting keys the parser retains; anything else on the timestamp line
// is ignored
var knownSettings = map[string]bool{
	"vertical": true,
	"line":     true,
	"position": true,
	"size":     true,
	"align":    true,
	"region":   true,
}

// ParseVTT parses WebVTT text into a Document. Like ParseSRT it never
// fails: every problem is either recovered with a warning or attributed to
// a single dropped cue, and the scan resumes at the next block.
func ParseVTT(content string, opts *ParseOptions) *Document {
	doc := &Document{Type: FormatVTT}
	if strings.TrimSpace(content) == "" {
		doc.Errors = append(doc.Errors, Diagnostic{
			Line:     1,
			Message:  "Empty subtitle content",
			Severity: SeverityError,
		})
		return doc
	}

	p := &vttParser{
		cur:   &lineCursor{lines: splitLines(content)},
		opts:  opts,
		trace: opts.trace(),
		doc:   doc,
	}

	p.skipHeader()
	for !p.cur.eof() {
		if strings.TrimSpace(p.cur.peek()) == "" {
			p.cur.next()
			continue
		}
		p.parseBlock()
	}

	doc.Errors = append(doc.Errors, overlapWarnings(doc.Cues, p.cueLines)...)

	if len(doc.Cues) == 0 && len(doc.Errors) == 0 {
		doc.Errors = append(doc.Errors, Diagnostic{
			Line:     1,
			Message:  "No subtitle cues found",
			Severity: SeverityError,
		})
	}
	return doc
}

type vttParser struct {
	cur   *lineCursor
	opts  *ParseOptions
	trace TraceFunc
	doc   *Document

	cueLines []int
	counter  int
}

// skipHeader consumes an optional WEBVTT header line plus any metadata
// lines up to the first blank line. Files without a header go straight to
// block scanning.
func (p *vttParser) skipHeader() {
	cur := p.cur
	if cur.eof() || !strings.HasPrefix(strings.TrimSpace(cur.peek()), "WEBVTT") {
		return
	}
	cur.next()
	for !cur.eof() && strings.TrimSpace(cur.peek()) != "" {
		cur.next()
	}
}

func (p *vttParser) parseBlock() {
	line := strings.TrimSpace(p.cur.peek())
	switch {
	case strings.HasPrefix(line, "NOTE"):
		p.skipComment()
	case line == "STYLE" || strings.HasPrefix(line, "STYLE "):
		p.parseStyle()
	case line == "REGION" || strings.HasPrefix(line, "REGION "):
		p.parseRegion()
	default:
		p.parseCue()
	}
}

// a comment runs to the next blank line, but never swallows a line holding
// a timestamp separator: that is a real cue
func (p *vttParser) skipComment() {
	cur := p.cur
	cur.next()
	for !cur.eof() {
		line := cur.peek()
		if strings.TrimSpace(line) == "" || containsArrow(line) {
			return
		}
		cur.next()
	}
}

func (p *vttParser) parseStyle() {
	cur := p.cur
	cur.next()
	var body []string
	for !cur.eof() && strings.TrimSpace(cur.peek()) != "" {
		body = append(body, cur.next())
	}
	p.doc.Styles = append(p.doc.Styles, strings.Join(body, "\n"))
	p.trace("vtt: style block (%d lines)", len(body))
}

func (p *vttParser) parseRegion() {
	cur := p.cur
	cur.next()
	region := Region{
		Width:          "100%",
		Lines:          3,
		RegionAnchor:   "0%,100%",
		ViewportAnchor: "0%,100%",
		Scroll:         "none",
	}
	for !cur.eof() && strings.TrimSpace(cur.peek()) != "" {
		for _, tok := range strings.Fields(cur.next()) {
			key, val, ok := strings.Cut(tok, "=")
			if !ok {
				continue
			}
			switch strings.ToLower(key) {
			case "id":
				region.ID = val
			case "width":
				region.Width = val
			case "lines":
				if n, err := strconv.Atoi(val); err == nil {
					region.Lines = n
				}
			case "regionanchor":
				region.RegionAnchor = val
			case "viewportanchor":
				region.ViewportAnchor = val
			case "scroll":
				if val == "up" || val == "none" {
					region.Scroll = val
				}
			}
		}
	}
	p.doc.Regions = append(p.doc.Regions, region)
	p.trace("vtt: region %q", region.ID)
}

func (p *vttParser) parseCue() {
	cur := p.cur
	line := strings.TrimSpace(cur.peek())

	identifier := ""
	hasIdent := false
	identLine := cur.lineNo()
	if !containsArrow(line) {
		identifier = line
		hasIdent = true
		cur.next()
		if cur.eof() || !containsArrow(cur.peek()) {
			p.errorf(identLine, "Invalid subtitle format: %q", identifier)
			p.resync()
			return
		}
	}

	tsLine := cur.lineNo()
	raw := strings.TrimSpace(cur.next())
	startTok, endTok, settingsStr := splitTimestampLine(raw)

	start, serr := parseTimeToken(startTok, true)
	end, eerr := parseTimeToken(endTok, true)
	if errors.Is(serr, ErrUnusualTimestamp) {
		p.warnf(tsLine, "Unusually large start timestamp: %q", startTok)
		serr = nil
	}
	if errors.Is(eerr, ErrUnusualTimestamp) {
		p.warnf(tsLine, "Unusually large end timestamp: %q", endTok)
		eerr = nil
	}

	// unlike SRT there is no side defaulting here: a bad side drops the
	// whole cue, with a single diagnostic, and the scanner moves past its
	// text block
	switch {
	case serr != nil && eerr != nil:
		p.errorf(tsLine, "Unparseable timestamps: %q --> %q", startTok, endTok)
		p.skipCueBody()
		return
	case serr != nil:
		p.errorf(tsLine, "Invalid start timestamp %q, cue dropped", startTok)
		p.skipCueBody()
		return
	case eerr != nil:
		p.errorf(tsLine, "Invalid end timestamp %q, cue dropped", endTok)
		p.skipCueBody()
		return
	}

	if end < start {
		p.warnf(tsLine, "End time precedes start time, swapping")
		start, end = end, start
	}

	settings := parseCueSettings(settingsStr)

	text := collectCueText(cur, "")
	if strings.TrimSpace(text) == "" {
		p.errorf(tsLine, "Subtitle cue has no text content")
		return
	}
	text, voices := extractVoices(text)

	cue := Cue{Start: start, End: end, Text: text}

	ext := &VTTCue{}
	tagged := false
	if p.opts.preserve() && hasIdent {
		ext.Identifier = identifier
		tagged = true
	}
	if len(settings) > 0 {
		ext.Settings = settings
		tagged = true
	}
	if len(voices) > 0 {
		ext.Voices = voices
		tagged = true
	}
	if tagged {
		cue.VTT = ext
	}

	if p.opts.preserve() && hasIdent && isDigits(identifier) {
		cue.Index = atoi(identifier)
		p.counter = cue.Index
	} else {
		p.counter++
		cue.Index = p.counter
	}

	p.doc.Cues = append(p.doc.Cues, cue)
	p.cueLines = append(p.cueLines, tsLine)
	p.trace("vtt: accepted cue %d [%s --> %s]",
		cue.Index, formatVTTTime(cue.Start), formatVTTTime(cue.End))
}

func parseCueSettings(s string) map[string]string {
	var settings map[string]string
	for _, tok := range strings.Fields(s) {
		key, val, ok := strings.Cut(tok, ":")
		if !ok || !knownSettings[strings.ToLower(key)] {
			continue
		}
		if settings == nil {
			settings = make(map[string]string)
		}
		settings[strings.ToLower(key)] = val
	}
	return settings
}

// extractVoices pulls <v Speaker>...</v> spans out of the collected text.
// The markup is stripped, the spoken words stay in the display text. When a
// span is left unclosed a looser open-tag-to-end match still yields a voice
// entry.
func extractVoices(text string) (string, []Voice) {
	var voices []Voice
	out := voiceSpan.ReplaceAllStringFunc(text, func(m string) string {
		sub := voiceSpan.FindStringSubmatch(m)
		voices = append(voices, Voice{
			Name: strings.TrimSpace(sub[1]),
			Text: sub[2],
		})
		return sub[2]
	})
	if len(voices) == 0 {
		if sub := openVoice.FindStringSubmatch(out); sub != nil {
			voices = append(voices, Voice{
				Name: strings.TrimSpace(sub[1]),
				Text: sub[2],
			})
			out = openVoice.ReplaceAllString(out, "$2")
		}
	}
	return out, voices
}

// skipCueBody advances past the text block of a rejected cue so the next
// block parses cleanly.
func (p *vttParser) skipCueBody() {
	cur := p.cur
	for !cur.eof() {
		line := cur.peek()
		if strings.TrimSpace(line) == "" || containsArrow(line) {
			return
		}
		cur.next()
	}
}

// resync scans forward to the next block boundary.
func (p *vttParser) resync() {
	p.skipCueBody()
}

func (p *vttParser) warnf(line int, format string, args ...any) {
	p.addDiag(line, SeverityWarning, format, args...)
}

func (p *vttParser) errorf(line int, format string, args ...any) {
	p.addDiag(line, SeverityError, format, args...)
}

func (p *vttParser) addDiag(line int, sev Severity, format string, args ...any) {
	d := newDiag(line, sev, format, args...)
	p.trace("vtt: %s at line %d: %s", d.Severity, d.Line, d.Message)
	p.doc.Errors = append(p.doc.Errors, d)
}

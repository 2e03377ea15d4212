package subtitle

import (
	"io"
	"regexp"
	"strings"

	"github.com/dimchansky/utfbom"
)

// lineCursor walks the physical lines of the input. Each parse call owns its
// own cursor, so entry points stay reentrant.
type lineCursor struct {
	lines []string
	pos   int
}

func (c *lineCursor) eof() bool {
	return c.pos >= len(c.lines)
}

func (c *lineCursor) peek() string {
	if c.eof() {
		return ""
	}
	return c.lines[c.pos]
}

func (c *lineCursor) peekAt(offset int) (string, bool) {
	i := c.pos + offset
	if i < 0 || i >= len(c.lines) {
		return "", false
	}
	return c.lines[i], true
}

func (c *lineCursor) next() string {
	line := c.peek()
	if !c.eof() {
		c.pos++
	}
	return line
}

// 1-based number of the line the cursor sits on, capped so diagnostics
// never point past the input
func (c *lineCursor) lineNo() int {
	n := c.pos + 1
	if n > len(c.lines) {
		n = len(c.lines)
	}
	if n < 1 {
		n = 1
	}
	return n
}

var digitsOnly = regexp.MustCompile(`^\d+$`)

func isDigits(s string) bool {
	return s != "" && digitsOnly.MatchString(s)
}

func containsArrow(line string) bool {
	return strings.Contains(line, "-->")
}

// splitLines strips any BOM, normalizes line endings, and splits the input
// into physical lines.
func splitLines(content string) []string {
	raw, err := io.ReadAll(utfbom.SkipOnly(strings.NewReader(content)))
	if err != nil {
		raw = []byte(content)
	}
	s := strings.ReplaceAll(string(raw), "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// collectCueText gathers cue text lines until a blank line or an unambiguous
// start of the next cue. A line containing the timestamp arrow, well formed
// or not, is always a cue boundary so the scan can recover the next cue.
func collectCueText(cur *lineCursor, first string) string {
	var lines []string
	if first != "" {
		lines = append(lines, first)
	}
	for !cur.eof() {
		line := cur.peek()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			break
		}
		if containsArrow(line) {
			break
		}
		if isDigits(trimmed) {
			if next, ok := cur.peekAt(1); ok && containsArrow(next) {
				break
			}
		}
		lines = append(lines, line)
		cur.next()
	}
	return strings.Join(lines, "\n")
}

// overlapWarnings compares successive accepted cues in parse order and
// reports intersecting intervals. Cues sharing the exact same interval are
// treated as intentional and skipped.
func overlapWarnings(cues []Cue, cueLines []int) []Diagnostic {
	var diags []Diagnostic
	for i := 0; i+1 < len(cues); i++ {
		a, b := cues[i], cues[i+1]
		if a.Start == b.Start && a.End == b.End {
			continue
		}
		if a.End > b.Start {
			diags = append(diags, newDiag(cueLines[i+1], SeverityWarning,
				"Subtitle overlap: cue %d ends after cue %d starts",
				a.Index, b.Index))
		}
	}
	return diags
}

// splitTimestampLine breaks a "start --> end ..." line into its two
// timestamp tokens plus whatever trails the end token: glued-on cue text in
// SRT, cue settings in VTT.
func splitTimestampLine(line string) (start, end, trailing string) {
	parts := strings.SplitN(line, "-->", 2)
	start = strings.TrimSpace(parts[0])
	if len(parts) == 1 {
		return start, "", ""
	}
	rest := strings.TrimSpace(parts[1])
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		return start, rest[:i], strings.TrimSpace(rest[i+1:])
	}
	return start, rest, ""
}

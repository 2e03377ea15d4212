package subtitle

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// anything at 100 hours or beyond is treated as a suspicious timestamp
const maxPlausibleTime = 359999999 * time.Millisecond

var (
	// no interpretation of the token is plausible
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	// the token parsed, but the value exceeds 100 hours; the parsed value
	// is still returned so callers can keep it with a warning
	ErrUnusualTimestamp = errors.New("unusually large timestamp")
)

// Candidate shapes, most specific first. The first structurally valid match
// wins; the ordering is load-bearing for ambiguous tokens like "04:604".
var (
	percentShape = regexp.MustCompile(`^(\d{1,3}(?:\.\d+)?)%$`)
	fullShape    = regexp.MustCompile(`^(\d{1,3}):(\d{1,2}):(\d{1,2})[.,](\d{1,3})$`)
	shortShape   = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})[.,](\d{1,3})$`)
	secondsShape = regexp.MustCompile(`^(\d{1,2})[.,](\d{1,3})$`)
	quadShape    = regexp.MustCompile(`^(\d{1,3}):(\d{1,2}):(\d{1,2}):(\d{3})$`)
	tripleShape  = regexp.MustCompile(`^(\d{1,3}):(\d{1,2}):(\d{1,3})$`)
	pairShape    = regexp.MustCompile(`^(\d{1,2}):(\d{1,3})$`)
	digitRun     = regexp.MustCompile(`^\d{4,7}$`)
	legacyShape  = regexp.MustCompile(`^(\d{1,3})[:,](\d{1,2}),(\d{1,2}),(\d{1,3})$`)

	// longest run of legal timestamp characters at the end of a token
	timeTail = regexp.MustCompile(`[0-9:.,%]+$`)
)

// ParseTimestamp parses a single timestamp token of unknown shape into a
// duration with millisecond resolution. It accepts the canonical SRT and VTT
// forms plus the malformed variants seen in real subtitle files: missing
// zero padding, truncated hour or minute fields, colon-separated
// milliseconds, bare digit runs, and comma-delimited SRT legacy groups.
func ParseTimestamp(token string) (time.Duration, error) {
	return parseTimeToken(token, false)
}

// FormatTimestamp renders a duration in the canonical text form of the given
// format. SRT is always "HH:MM:SS,mmm"; VTT omits the hours field when it is
// exactly zero. Negative durations are clamped to zero.
func FormatTimestamp(d time.Duration, format Format) string {
	if format == FormatVTT {
		return formatVTTTime(d)
	}
	return formatSRTTime(d)
}

func parseTimeToken(token string, vtt bool) (time.Duration, error) {
	tok := strings.TrimSpace(token)
	if tok == "" {
		return 0, fmt.Errorf("%w: empty token", ErrInvalidTimestamp)
	}

	d, ok := matchTimeShape(tok, vtt)
	if !ok {
		// a corrupted token may still carry a parseable tail; never scan
		// back past an illegal character
		if tail := timeTail.FindString(tok); tail != "" && tail != tok {
			d, ok = matchTimeShape(tail, vtt)
		}
	}
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, token)
	}
	if d > maxPlausibleTime {
		return d, fmt.Errorf("%w: %q", ErrUnusualTimestamp, token)
	}
	return d, nil
}

func matchTimeShape(tok string, vtt bool) (time.Duration, bool) {
	if vtt {
		if m := percentShape.FindStringSubmatch(tok); m != nil {
			pct, err := strconv.ParseFloat(m[1], 64)
			if err != nil || pct > 100 {
				return 0, false
			}
			return time.Duration(pct/100*86400000) * time.Millisecond, true
		}
	}

	if m := fullShape.FindStringSubmatch(tok); m != nil {
		return clockTime(atoi(m[1]), atoi(m[2]), atoi(m[3]), padMillis(m[4])), true
	}

	if m := shortShape.FindStringSubmatch(tok); m != nil {
		return clockTime(0, atoi(m[1]), atoi(m[2]), padMillis(m[3])), true
	}

	if m := secondsShape.FindStringSubmatch(tok); m != nil {
		return clockTime(0, 0, atoi(m[1]), padMillis(m[2])), true
	}

	if m := quadShape.FindStringSubmatch(tok); m != nil {
		// H:MM:SS:mmm only holds when the third segment is a plausible
		// seconds value
		if atoi(m[3]) < 60 {
			return clockTime(atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[4])), true
		}
		return 0, false
	}

	if m := tripleShape.FindStringSubmatch(tok); m != nil {
		// MM:SS:mmm when the last segment looks like bare milliseconds and
		// the middle one is a plausible seconds value; otherwise the token
		// is a plain clock reading with implicit .000
		if len(m[3]) == 3 && atoi(m[2]) < 60 {
			return clockTime(0, atoi(m[1]), atoi(m[2]), atoi(m[3])), true
		}
		return clockTime(atoi(m[1]), atoi(m[2]), atoi(m[3]), 0), true
	}

	if m := pairShape.FindStringSubmatch(tok); m != nil {
		if len(m[2]) == 3 {
			// "04:604" reads as seconds:milliseconds when the first segment
			// is a plausible seconds value
			if atoi(m[1]) < 60 {
				return clockTime(0, 0, atoi(m[1]), atoi(m[2])), true
			}
			return clockTime(0, atoi(m[1]), 0, atoi(m[2])), true
		}
		return clockTime(0, atoi(m[1]), atoi(m[2]), 0), true
	}

	if digitRun.MatchString(tok) {
		// a separator-free run: last three digits are milliseconds, the
		// rest is total seconds
		cut := len(tok) - 3
		secs := atoi(tok[:cut])
		return time.Duration(secs)*time.Second +
			time.Duration(atoi(tok[cut:]))*time.Millisecond, true
	}

	if m := legacyShape.FindStringSubmatch(tok); m != nil {
		// comma-delimited SRT legacy form; rewrite to the canonical shape
		// and run it through the matcher again
		canonical := fmt.Sprintf("%s:%s:%s.%s", m[1], m[2], m[3], m[4])
		return matchTimeShape(canonical, false)
	}

	return 0, false
}

func clockTime(h, m, s, ms int) time.Duration {
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond
}

// atoi is only called on regexp-verified digit runs
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// millisecond fragments carry decimal-fraction semantics: "5" means .500,
// not 5ms
func padMillis(s string) int {
	for len(s) < 3 {
		s += "0"
	}
	return atoi(s)
}

func formatSRTTime(d time.Duration) string {
	h, m, s, ms := splitClock(d)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func formatVTTTime(d time.Duration) string {
	h, m, s, ms := splitClock(d)
	if h == 0 {
		return fmt.Sprintf("%02d:%02d.%03d", m, s, ms)
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

func splitClock(d time.Duration) (h, m, s, ms int64) {
	t := d.Milliseconds()
	if t < 0 {
		t = 0
	}
	h = t / 3600000
	t %= 3600000
	m = t / 60000
	t %= 60000
	s = t / 1000
	ms = t % 1000
	return h, m, s, ms
}

package requirement

import "strings"

// logicalLine is a continuation-folded line and the 1-based number of the
// raw line it starts on.
type logicalLine struct {
	text string
	num  int
}

// SplitLines splits text into logical lines. A raw line ending in a single
// backslash continues on the next raw line; the backslash is dropped. A
// doubled backslash at the end of a line is kept literally.
func SplitLines(text string) []string {
	lines := splitLogical(text)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.text
	}
	return out
}

func splitLogical(text string) []logicalLine {
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	// A trailing newline does not start another line.
	if raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}

	var (
		out     []logicalLine
		buf     strings.Builder
		start   int
		pending bool
	)
	for i, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if !pending {
			start = i + 1
		}
		if continues(line) {
			buf.WriteString(line[:len(line)-1])
			pending = true
			continue
		}
		buf.WriteString(line)
		out = append(out, logicalLine{text: buf.String(), num: start})
		buf.Reset()
		pending = false
	}
	if pending {
		out = append(out, logicalLine{text: buf.String(), num: start})
	}
	return out
}

func continues(line string) bool {
	return strings.HasSuffix(line, `\`) && !strings.HasSuffix(line, `\\`)
}

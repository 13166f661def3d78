package llmjson

import (
	"strings"
	"unicode"
)

// closingQuoteLookahead is how far past a candidate closing quote the scan
// looks for structural punctuation.
const closingQuoteLookahead = 9

// repairQuotes escapes unescaped double quotes inside JSON string values,
// e.g. "command": "grep "ERROR"" becomes "command": "grep \"ERROR\"".
//
// It is a single forward scan with two pieces of state: whether the scan is
// inside a string, and whether the previous character was an unconsumed
// backslash. A quote met inside a string is treated as the closing quote
// only when the next non-whitespace character within the lookahead window
// is one of , } ] : (object keys close before a colon) or the quote ends
// the text; otherwise it is escaped in place. The lookahead is a heuristic,
// not a grammar: a legitimate string value ending in one of those
// punctuation characters can still be misjudged.
func repairQuotes(text string) string {
	var out strings.Builder
	out.Grow(len(text))

	inString := false
	escapePending := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if escapePending {
			out.WriteByte(c)
			escapePending = false
			continue
		}

		if c == '\\' {
			out.WriteByte(c)
			escapePending = true
			continue
		}

		if c == '"' {
			if !inString {
				out.WriteByte(c)
				inString = true
				continue
			}
			if isClosingQuote(text, i) {
				out.WriteByte(c)
				inString = false
			} else {
				out.WriteString(`\"`)
			}
			continue
		}

		out.WriteByte(c)
	}

	return out.String()
}

// isClosingQuote reports whether the quote at position i plausibly closes a
// string value.
func isClosingQuote(text string, i int) bool {
	if i == len(text)-1 {
		return true
	}
	end := i + 1 + closingQuoteLookahead
	if end > len(text) {
		end = len(text)
	}
	window := strings.TrimLeftFunc(text[i+1:end], unicode.IsSpace)
	if window == "" {
		return false
	}
	switch window[0] {
	case ',', '}', ']', ':':
		return true
	}
	return false
}

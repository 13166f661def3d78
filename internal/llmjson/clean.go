package llmjson

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSONBlock is returned by extraction when the text holds no
// bracket-delimited span at all.
var ErrNoJSONBlock = errors.New("no JSON object or array found in LLM response")

var (
	lineCommentRe   = regexp.MustCompile(`//[^\n]*`)
	blockCommentRe  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	pyTrueRe        = regexp.MustCompile(`\bTrue\b`)
	pyFalseRe       = regexp.MustCompile(`\bFalse\b`)
	pyNoneRe        = regexp.MustCompile(`\bNone\b`)
)

// stripFences removes a leading markdown code fence (optionally tagged
// "json") and a trailing fence from the text.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		rest := strings.TrimPrefix(text[3:], "json")
		text = strings.TrimLeft(rest, " \t\r\n")
	}
	if strings.HasSuffix(text, "```") {
		text = strings.TrimRight(text[:len(text)-3], " \t\r\n")
	}
	return strings.TrimSpace(text)
}

// extractJSONBlock locates the outermost JSON object or array by first and
// last delimiter position. The object span wins unless the array's opening
// bracket occurs strictly before the object's opening brace. Only positions
// are inspected here; structural validation happens in the decode that
// follows, so brackets inside quoted strings cannot break anything worse
// than that decode.
func extractJSONBlock(text string) (string, error) {
	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")
	startArr := strings.Index(text, "[")
	endArr := strings.LastIndex(text, "]")

	switch {
	case startObj != -1 && endObj != -1 && (startArr == -1 || startObj < startArr):
		return span(text, startObj, endObj), nil
	case startArr != -1 && endArr != -1:
		return span(text, startArr, endArr), nil
	default:
		return "", ErrNoJSONBlock
	}
}

// span slices text[start:end+1], degrading to an empty (undecodable) span
// when the closing delimiter precedes the opening one.
func span(text string, start, end int) string {
	if end < start {
		return ""
	}
	return text[start : end+1]
}

// aggressiveClean removes line and block comments, collapses trailing commas
// before a closing } or ], and rewrites the Python literals True/False/None
// to their JSON forms. Literal rewriting is token-bounded so identifiers
// containing the words are left alone.
func aggressiveClean(text string) string {
	text = lineCommentRe.ReplaceAllString(text, "")
	text = blockCommentRe.ReplaceAllString(text, "")
	text = trailingCommaRe.ReplaceAllString(text, "$1")
	text = pyTrueRe.ReplaceAllString(text, "true")
	text = pyFalseRe.ReplaceAllString(text, "false")
	text = pyNoneRe.ReplaceAllString(text, "null")
	return text
}

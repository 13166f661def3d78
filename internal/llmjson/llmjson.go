// Package llmjson recovers structured JSON from raw LLM output.
//
// Models that are asked for JSON routinely wrap it in prose or markdown
// fences, add comments or trailing commas, emit Python literals, or leave
// double quotes inside string values unescaped. Parse works through a fixed
// ladder of strategies, cheapest first, and short-circuits on the first one
// whose output decodes cleanly:
//
//  1. Direct decode of the raw text.
//  2. Markdown fence removal plus extraction of the outermost object/array.
//  3. Aggressive cleaning: comment removal, trailing-comma collapse,
//     Python literal rewriting.
//  4. Quote repair: a forward character scan that escapes unescaped double
//     quotes found inside string values.
//
// Strategy failures are silent; only the final outcome is observable. There
// is no partial, field-by-field salvage: each strategy either yields a fully
// decodable document or the ladder advances.
package llmjson

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Fallback is the record returned (as a mapping) in non-strict mode when
// every recovery strategy fails.
type Fallback struct {
	RawText      string `json:"raw_text"`
	Error        string `json:"error"`
	CleanAttempt string `json:"clean_attempt"`
}

// asRecord renders the fallback in the three-key mapping shape consumers see.
func (f Fallback) asRecord() map[string]any {
	return map[string]any{
		"raw_text":      f.RawText,
		"error":         f.Error,
		"clean_attempt": f.CleanAttempt,
	}
}

// RecoveryError is returned in strict mode when every strategy fails. It
// carries the last decode error and the final cleaned string for diagnostics.
type RecoveryError struct {
	Err          error
	CleanAttempt string
}

func (e *RecoveryError) Error() string {
	return fmt.Sprintf("response could not be parsed as JSON after multiple attempts: %v (cleaned attempt: %s)", e.Err, e.CleanAttempt)
}

func (e *RecoveryError) Unwrap() error {
	return e.Err
}

var (
	loggerMu sync.RWMutex
	logger   = slog.Default()
)

// SetLogger replaces the package logger used for strategy diagnostics.
// Logging never affects parse semantics; a nil logger disables it.
func SetLogger(l *slog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func logDebug(msg string, args ...any) {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l != nil {
		l.Debug(msg, args...)
	}
}

// Parse recovers a JSON object from raw LLM output.
//
// On success the decoded object is returned. If every strategy fails and
// strict is true, the error is a *RecoveryError; if strict is false, the
// returned mapping is the three-key fallback record (raw_text, error,
// clean_attempt) and the error is nil. A document that recovers to a
// non-object value (for example a bare array) is treated as a failure of
// the same kind.
func Parse(raw string, strict bool) (map[string]any, error) {
	value, attempt, err := recoverValue(raw)
	if err == nil {
		if obj, ok := value.(map[string]any); ok {
			return obj, nil
		}
		err = fmt.Errorf("recovered document is not a JSON object (%T)", value)
	}

	logDebug("all recovery strategies failed", "error", err)

	if strict {
		return nil, &RecoveryError{Err: err, CleanAttempt: attempt}
	}
	return Fallback{
		RawText:      raw,
		Error:        err.Error(),
		CleanAttempt: attempt,
	}.asRecord(), nil
}

// ParseValue is Parse without the object restriction: any JSON value model
// result (object, array, string, number, boolean, null) is accepted.
func ParseValue(raw string, strict bool) (any, error) {
	value, attempt, err := recoverValue(raw)
	if err == nil {
		return value, nil
	}

	logDebug("all recovery strategies failed", "error", err)

	if strict {
		return nil, &RecoveryError{Err: err, CleanAttempt: attempt}
	}
	return Fallback{
		RawText:      raw,
		Error:        err.Error(),
		CleanAttempt: attempt,
	}.asRecord(), nil
}

// recoverValue walks the strategy ladder. It returns the decoded value on
// success, or the last cleaning attempt and last error on total failure.
func recoverValue(raw string) (value any, lastAttempt string, lastErr error) {
	// Strategy 1: the response is already valid JSON.
	if v, err := decode(raw); err == nil {
		logDebug("parsed LLM response", "strategy", "direct")
		return v, "", nil
	}

	// Strategy 2: strip fences, extract the outermost object or array.
	lastAttempt = stripFences(raw)
	block, exErr := extractJSONBlock(lastAttempt)
	if exErr != nil {
		// No delimiters at all. Strategies 3 and 4 also need the extracted
		// block, so they inherit this failure.
		return nil, lastAttempt, exErr
	}
	lastAttempt = block
	if v, err := decode(block); err == nil {
		logDebug("parsed LLM response", "strategy", "extract")
		return v, "", nil
	} else {
		lastErr = err
	}

	// Strategy 3: aggressive cleaning on top of the extracted block.
	cleaned := aggressiveClean(block)
	lastAttempt = cleaned
	if v, err := decode(cleaned); err == nil {
		logDebug("parsed LLM response", "strategy", "clean")
		return v, "", nil
	} else {
		lastErr = err
	}

	// Strategy 4: escape unescaped quotes inside string values.
	repaired := repairQuotes(cleaned)
	lastAttempt = repaired
	if v, err := decode(repaired); err == nil {
		logDebug("parsed LLM response", "strategy", "quote-repair")
		return v, "", nil
	} else {
		lastErr = err
	}

	return nil, lastAttempt, lastErr
}

// decode unmarshals text into the generic JSON value model.
func decode(text string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	return v, nil
}

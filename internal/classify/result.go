package classify

// Result is a classification outcome. It mirrors the model's structured
// response plus the OCR and combined confidence scores computed by the
// image pipeline. Fields holds the full recovered mapping so callers can
// reach anything the model emitted beyond the typed fields.
type Result struct {
	DocumentType       string         `json:"document_type" yaml:"document_type"`
	Confidence         float64        `json:"confidence" yaml:"confidence"`
	Reasoning          string         `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	KeyIndicators      []string       `json:"key_indicators,omitempty" yaml:"key_indicators,omitempty"`
	NegativeIndicators []string       `json:"negative_indicators,omitempty" yaml:"negative_indicators,omitempty"`
	OCRConfidence      float64        `json:"ocr_confidence,omitempty" yaml:"ocr_confidence,omitempty"`
	CombinedConfidence float64        `json:"combined_confidence,omitempty" yaml:"combined_confidence,omitempty"`
	Error              string         `json:"error,omitempty" yaml:"error,omitempty"`
	Fields             map[string]any `json:"-" yaml:"-"`
}

// resultFromRecord builds a Result from a recovered response mapping.
// Model output is untrusted, so every field is coerced leniently: wrong
// types are dropped rather than failing the whole classification.
func resultFromRecord(record map[string]any) *Result {
	r := &Result{
		DocumentType: "unknown",
		Fields:       record,
	}

	if v, ok := record["document_type"].(string); ok && v != "" {
		r.DocumentType = v
	}
	r.Confidence = toFloat(record["confidence"])
	if v, ok := record["reasoning"].(string); ok {
		r.Reasoning = v
	}
	r.KeyIndicators = toStringSlice(record["key_indicators"])
	r.NegativeIndicators = toStringSlice(record["negative_indicators"])
	if v, ok := record["error"].(string); ok {
		r.Error = v
	}

	return r
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

func toStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

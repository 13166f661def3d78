// Package extract converts OCR text into a structured DocumentExtraction
// record. The model's response is recovered with internal/llmjson, checked
// against a JSON Schema, then decoded into the typed record.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/docsift/docsift/internal/llmjson"
	"github.com/docsift/docsift/internal/providers"
)

const extractionPromptTemplate = `
You are extracting information from a OCR Text:
{ocr_text}

Extract the following fields and return as JSON. Always include "document_type"
(one of: bank_statement, salary_slip, itr, utility_bill, check) and only the
fields that apply to that type:
- For bank_statement: account_holder_name, account_number, statement_period_start, statement_period_end, opening_balance, closing_balance
- For salary_slip: employee_name, employee_id, month, year, basic_salary, allowances, deductions, net_salary, employer_name
- For itr: taxpayer_name, pan_number, assessment_year, total_income, tax_payable, filing_date
- For utility_bill: consumer_name, consumer_number, bill_date, due_date, billing_period_start, billing_period_end, total_amount, utility_type
- For check: check_number, date, payee_name, amount_in_numbers, amount_in_words, bank_name

Balances and amounts are numbers, everything else is a string. Omit fields
the text does not support.
`

// BuildPrompt fills the extraction prompt with OCR text.
func BuildPrompt(ocrText string) string {
	return strings.Replace(extractionPromptTemplate, "{ocr_text}", ocrText, 1)
}

// Extractor turns document text into DocumentExtraction records.
type Extractor struct {
	llm    providers.LLMClient
	logger *slog.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(llm providers.LLMClient, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{llm: llm, logger: logger}
}

// ExtractText extracts structured fields from document text. The model
// response must recover to a schema-valid record; extraction is strict,
// there is no fallback.
func (e *Extractor) ExtractText(ctx context.Context, text string) (*DocumentExtraction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text content is empty")
	}

	completion, err := e.llm.Complete(ctx, &providers.CompletionRequest{
		Prompt: BuildPrompt(text),
	})
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	record, err := llmjson.Parse(completion.Content, true)
	if err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	if err := validateExtraction(record); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode extraction record: %w", err)
	}
	var result DocumentExtraction
	if err := json.Unmarshal(encoded, &result); err != nil {
		return nil, fmt.Errorf("failed to decode extraction record: %w", err)
	}

	e.logger.Info("extracted document fields",
		"document_type", result.DocumentType,
		"model", completion.ModelUsed,
		"tokens", completion.TotalTokens)
	return &result, nil
}

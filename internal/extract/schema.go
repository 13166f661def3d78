package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// DocumentExtraction is a flat extraction record. Every field beyond the
// document type is optional so a single record covers all five document
// families; absent fields stay nil.
type DocumentExtraction struct {
	DocumentType string `json:"document_type" yaml:"document_type"`

	// Bank statement
	AccountHolderName    *string  `json:"account_holder_name,omitempty" yaml:"account_holder_name,omitempty"`
	AccountNumber        *string  `json:"account_number,omitempty" yaml:"account_number,omitempty"`
	StatementPeriodStart *string  `json:"statement_period_start,omitempty" yaml:"statement_period_start,omitempty"`
	StatementPeriodEnd   *string  `json:"statement_period_end,omitempty" yaml:"statement_period_end,omitempty"`
	OpeningBalance       *float64 `json:"opening_balance,omitempty" yaml:"opening_balance,omitempty"`
	ClosingBalance       *float64 `json:"closing_balance,omitempty" yaml:"closing_balance,omitempty"`

	// Salary slip
	EmployeeName *string  `json:"employee_name,omitempty" yaml:"employee_name,omitempty"`
	EmployeeID   *string  `json:"employee_id,omitempty" yaml:"employee_id,omitempty"`
	Month        *string  `json:"month,omitempty" yaml:"month,omitempty"`
	Year         *string  `json:"year,omitempty" yaml:"year,omitempty"`
	BasicSalary  *float64 `json:"basic_salary,omitempty" yaml:"basic_salary,omitempty"`
	Allowances   *float64 `json:"allowances,omitempty" yaml:"allowances,omitempty"`
	Deductions   *float64 `json:"deductions,omitempty" yaml:"deductions,omitempty"`
	NetSalary    *float64 `json:"net_salary,omitempty" yaml:"net_salary,omitempty"`
	EmployerName *string  `json:"employer_name,omitempty" yaml:"employer_name,omitempty"`

	// Income tax return
	TaxpayerName   *string  `json:"taxpayer_name,omitempty" yaml:"taxpayer_name,omitempty"`
	PANNumber      *string  `json:"pan_number,omitempty" yaml:"pan_number,omitempty"`
	AssessmentYear *string  `json:"assessment_year,omitempty" yaml:"assessment_year,omitempty"`
	TotalIncome    *float64 `json:"total_income,omitempty" yaml:"total_income,omitempty"`
	TaxPayable     *float64 `json:"tax_payable,omitempty" yaml:"tax_payable,omitempty"`
	FilingDate     *string  `json:"filing_date,omitempty" yaml:"filing_date,omitempty"`

	// Utility bill
	ConsumerName       *string  `json:"consumer_name,omitempty" yaml:"consumer_name,omitempty"`
	ConsumerNumber     *string  `json:"consumer_number,omitempty" yaml:"consumer_number,omitempty"`
	BillDate           *string  `json:"bill_date,omitempty" yaml:"bill_date,omitempty"`
	DueDate            *string  `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	BillingPeriodStart *string  `json:"billing_period_start,omitempty" yaml:"billing_period_start,omitempty"`
	BillingPeriodEnd   *string  `json:"billing_period_end,omitempty" yaml:"billing_period_end,omitempty"`
	TotalAmount        *float64 `json:"total_amount,omitempty" yaml:"total_amount,omitempty"`
	UtilityType        *string  `json:"utility_type,omitempty" yaml:"utility_type,omitempty"`

	// Check
	CheckNumber     *string  `json:"check_number,omitempty" yaml:"check_number,omitempty"`
	PayeeName       *string  `json:"payee_name,omitempty" yaml:"payee_name,omitempty"`
	AmountInNumbers *float64 `json:"amount_in_numbers,omitempty" yaml:"amount_in_numbers,omitempty"`
	AmountInWords   *string  `json:"amount_in_words,omitempty" yaml:"amount_in_words,omitempty"`
	BankName        *string  `json:"bank_name,omitempty" yaml:"bank_name,omitempty"`
}

// DocumentTypes are the accepted values for document_type.
var DocumentTypes = []string{
	"bank_statement",
	"salary_slip",
	"itr",
	"utility_bill",
	"check",
}

// extractionSchema is the JSON Schema the model's output must satisfy.
// Numeric fields also admit null so models that emit explicit nulls for
// absent values still validate.
const extractionSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["document_type"],
  "properties": {
    "document_type": {
      "type": "string",
      "enum": ["bank_statement", "salary_slip", "itr", "utility_bill", "check"]
    },
    "account_holder_name": {"type": ["string", "null"]},
    "account_number": {"type": ["string", "null"]},
    "statement_period_start": {"type": ["string", "null"]},
    "statement_period_end": {"type": ["string", "null"]},
    "opening_balance": {"type": ["number", "null"]},
    "closing_balance": {"type": ["number", "null"]},
    "employee_name": {"type": ["string", "null"]},
    "employee_id": {"type": ["string", "null"]},
    "month": {"type": ["string", "null"]},
    "year": {"type": ["string", "null"]},
    "basic_salary": {"type": ["number", "null"]},
    "allowances": {"type": ["number", "null"]},
    "deductions": {"type": ["number", "null"]},
    "net_salary": {"type": ["number", "null"]},
    "employer_name": {"type": ["string", "null"]},
    "taxpayer_name": {"type": ["string", "null"]},
    "pan_number": {"type": ["string", "null"]},
    "assessment_year": {"type": ["string", "null"]},
    "total_income": {"type": ["number", "null"]},
    "tax_payable": {"type": ["number", "null"]},
    "filing_date": {"type": ["string", "null"]},
    "consumer_name": {"type": ["string", "null"]},
    "consumer_number": {"type": ["string", "null"]},
    "bill_date": {"type": ["string", "null"]},
    "due_date": {"type": ["string", "null"]},
    "billing_period_start": {"type": ["string", "null"]},
    "billing_period_end": {"type": ["string", "null"]},
    "total_amount": {"type": ["number", "null"]},
    "utility_type": {"type": ["string", "null"]},
    "check_number": {"type": ["string", "null"]},
    "payee_name": {"type": ["string", "null"]},
    "amount_in_numbers": {"type": ["number", "null"]},
    "amount_in_words": {"type": ["string", "null"]},
    "bank_name": {"type": ["string", "null"]}
  }
}`

// validateExtraction validates a recovered record against the extraction
// schema before it is decoded into DocumentExtraction.
func validateExtraction(record map[string]any) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("extraction.json", strings.NewReader(extractionSchema)); err != nil {
		return fmt.Errorf("failed to load extraction schema: %w", err)
	}
	schema, err := compiler.Compile("extraction.json")
	if err != nil {
		return fmt.Errorf("failed to compile extraction schema: %w", err)
	}

	if err := schema.Validate(normalizeForValidation(record)); err != nil {
		return fmt.Errorf("extraction does not match schema: %w", err)
	}
	return nil
}

// normalizeForValidation round-trips the record through JSON so validation
// sees the same value model a decoder would (float64 numbers, plain maps).
func normalizeForValidation(record map[string]any) any {
	b, err := json.Marshal(record)
	if err != nil {
		return record
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return record
	}
	return doc
}

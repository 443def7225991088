package domain

import "time"

// Rule identifies the reconciliation rule a FailureRecord violated.
type Rule string

const (
	RuleDuplicateReference Rule = "duplicate_reference"
	RuleBalanceMismatch    Rule = "balance_mismatch"
	RuleMissingCounterpart Rule = "missing_counterpart"
	RuleMalformedRecord    Rule = "malformed_record"
)

// Rules lists every rule in evaluation order.
var Rules = []Rule{
	RuleDuplicateReference,
	RuleBalanceMismatch,
	RuleMalformedRecord,
	RuleMissingCounterpart,
}

// FailureRecord describes one rule violation of one primary transaction.
// The transaction fields are copied verbatim from the offending record.
type FailureRecord struct {
	Reference     string `json:"Reference"`
	AccountNumber string `json:"Account Number"`
	Description   string `json:"Description"`
	StartBalance  string `json:"Start Balance"`
	Mutation      string `json:"Mutation"`
	EndBalance    string `json:"End Balance"`
	Rule          Rule   `json:"Rule"`
	Detail        string `json:"Detail,omitempty"`
}

// NewFailure builds a FailureRecord for rule from a primary record.
func NewFailure(t TransactionRecord, rule Rule, detail string) FailureRecord {
	return FailureRecord{
		Reference:     t.Reference,
		AccountNumber: t.AccountNumber,
		Description:   t.Description,
		StartBalance:  t.StartBalance,
		Mutation:      t.Mutation,
		EndBalance:    t.EndBalance,
		Rule:          rule,
		Detail:        detail,
	}
}

// Row returns the failure as a report row in column order.
func (f FailureRecord) Row() []string {
	return []string{
		f.Reference,
		f.AccountNumber,
		f.Description,
		f.StartBalance,
		f.Mutation,
		f.EndBalance,
	}
}

// ReportColumns is the fixed header of the tabular report.
var ReportColumns = []string{
	"Reference",
	"Account Number",
	"Description",
	"Start Balance",
	"Mutation",
	"End Balance",
}

// ReconciliationRun is the outcome of one reconciliation pass.
type ReconciliationRun struct {
	ID             string
	StartedAt      time.Time
	FinishedAt     time.Time
	PrimaryCount   int
	CompanionCount int
	Failures       []FailureRecord
}

// Verified reports whether the run found no failures.
func (r *ReconciliationRun) Verified() bool {
	return len(r.Failures) == 0
}

// Duration returns how long the run took.
func (r *ReconciliationRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

package usecase

import "github.com/iho/txrecon/internal/domain"

// Result is the outcome of Reconcile.
type Result struct {
	Failures []domain.FailureRecord
}

// CountByRule returns how many failures each rule produced.
func (r Result) CountByRule() map[domain.Rule]int {
	counts := make(map[domain.Rule]int, len(domain.Rules))
	for _, f := range r.Failures {
		counts[f.Rule]++
	}
	return counts
}

// Reconcile checks every primary record against three rules, in order:
// duplicate reference, balance consistency, presence in the companion set.
// Each rule that fails adds one FailureRecord; output follows primary input order.
// A record whose amounts do not parse yields a malformed_record failure instead of
// a balance_mismatch failure.
func Reconcile(primary []domain.TransactionRecord, companion []domain.CompanionRecord) Result {
	index := make(map[string]struct{}, len(companion))
	for _, c := range companion {
		index[c.Reference] = struct{}{}
	}

	seen := make(map[string]struct{}, len(primary))
	failures := make([]domain.FailureRecord, 0)

	for _, tx := range primary {
		if _, dup := seen[tx.Reference]; dup {
			failures = append(failures, domain.NewFailure(tx, domain.RuleDuplicateReference, ""))
		} else {
			seen[tx.Reference] = struct{}{}
		}

		balances, err := tx.Balances()
		switch {
		case err != nil:
			failures = append(failures, domain.NewFailure(tx, domain.RuleMalformedRecord, err.Error()))
		case !balances.Consistent():
			failures = append(failures, domain.NewFailure(tx, domain.RuleBalanceMismatch,
				"expected end balance "+balances.Expected().String()))
		}

		if _, ok := index[tx.Reference]; !ok {
			failures = append(failures, domain.NewFailure(tx, domain.RuleMissingCounterpart, ""))
		}
	}

	return Result{Failures: failures}
}

package domain

import (
	"fmt"
	"strings"
)

// NormalizeTransaction trims surrounding whitespace from every field.
func NormalizeTransaction(t TransactionRecord) TransactionRecord {
	return TransactionRecord{
		Reference:     NormalizeReference(t.Reference),
		AccountNumber: strings.TrimSpace(t.AccountNumber),
		Description:   strings.TrimSpace(t.Description),
		StartBalance:  strings.TrimSpace(t.StartBalance),
		Mutation:      strings.TrimSpace(t.Mutation),
		EndBalance:    strings.TrimSpace(t.EndBalance),
	}
}

// NormalizeReference trims a join key the same way NormalizeTransaction does,
// so both sources compare equal references.
func NormalizeReference(reference string) string {
	return strings.TrimSpace(reference)
}

// ValidateReference checks that a reference can serve as a join key.
func ValidateReference(reference string) error {
	if strings.TrimSpace(reference) == "" {
		return fmt.Errorf("%w: reference cannot be empty", ErrFormat)
	}

	return nil
}

// ValidateTransactionShape checks the fields a loader must provide.
// Free text and amounts are not judged here; malformed amounts are reported by reconciliation.
func ValidateTransactionShape(t TransactionRecord) error {
	return ValidateReference(t.Reference)
}

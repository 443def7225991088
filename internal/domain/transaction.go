package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionRecord is one entry of the primary transaction log.
// Amounts are kept as the text found in the source; Balances parses them.
type TransactionRecord struct {
	Reference     string
	AccountNumber string
	Description   string
	StartBalance  string
	Mutation      string
	EndBalance    string
}

// Balances holds the parsed amounts of a TransactionRecord.
type Balances struct {
	Start    decimal.Decimal
	Mutation decimal.Decimal
	End      decimal.Decimal
}

// Expected returns start + mutation.
func (b Balances) Expected() decimal.Decimal {
	return b.Start.Add(b.Mutation)
}

// Consistent reports whether the end balance equals start + mutation exactly.
func (b Balances) Consistent() bool {
	return b.End.Equal(b.Expected())
}

// Balances parses the three amount fields.
// It returns an error wrapping ErrMalformedRecord naming the first field that does not parse.
func (t TransactionRecord) Balances() (Balances, error) {
	start, err := ParseAmount(t.StartBalance)
	if err != nil {
		return Balances{}, fmt.Errorf("%w: startBalance: %w", ErrMalformedRecord, err)
	}

	mutation, err := ParseAmount(t.Mutation)
	if err != nil {
		return Balances{}, fmt.Errorf("%w: mutation: %w", ErrMalformedRecord, err)
	}

	end, err := ParseAmount(t.EndBalance)
	if err != nil {
		return Balances{}, fmt.Errorf("%w: endBalance: %w", ErrMalformedRecord, err)
	}

	return Balances{Start: start, Mutation: mutation, End: end}, nil
}

// CompanionRecord is one row of the companion record set.
// Only Reference takes part in reconciliation; Fields carries the whole row.
type CompanionRecord struct {
	Reference string
	Fields    map[string]string
}

// ParseAmount parses a decimal amount from source text.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrEmptyAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return d, nil
}

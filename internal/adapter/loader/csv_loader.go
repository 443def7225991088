package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iho/txrecon/internal/domain"
)

// ReferenceColumn is the companion column joined against TransactionRecord.Reference.
// The match is exact: case and spelling must agree.
const ReferenceColumn = "Reference"

const utf8BOM = "\ufeff"

// CSVLoader loads the companion record set from a CSV file with a header row.
type CSVLoader struct {
	path string
}

// NewCSVLoader creates a new CSVLoader reading path.
func NewCSVLoader(path string) *CSVLoader {
	return &CSVLoader{path: path}
}

// LoadCompanions implements usecase.CompanionLoader.
func (l *CSVLoader) LoadCompanions(ctx context.Context) ([]domain.CompanionRecord, error) {
	f, err := openSource(ctx, l.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := DecodeCompanions(ctxReader{ctx: ctx, r: f})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}

	return records, nil
}

// DecodeCompanions parses companion rows keyed by the header row.
// Short rows leave the missing columns empty. The reference is trimmed like the
// primary side; Fields keeps the raw cell text. Read failures wrap domain.ErrIO;
// anything else wraps domain.ErrFormat.
func DecodeCompanions(r io.Reader) ([]domain.CompanionRecord, error) {
	reader := csv.NewReader(sourceReader{r: r})
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header row", domain.ErrFormat)
		}
		return nil, fmt.Errorf("header: %w", decodeError(err))
	}

	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	refIdx := -1
	for i, name := range header {
		if name == ReferenceColumn {
			refIdx = i
			break
		}
	}
	if refIdx < 0 {
		return nil, fmt.Errorf("%w: no %q column in header %v", domain.ErrFormat, ReferenceColumn, header)
	}

	records := make([]domain.CompanionRecord, 0)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, decodeError(err)
		}

		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				fields[name] = row[i]
			} else {
				fields[name] = ""
			}
		}

		records = append(records, domain.CompanionRecord{
			Reference: domain.NormalizeReference(fields[ReferenceColumn]),
			Fields:    fields,
		})
	}

	return records, nil
}

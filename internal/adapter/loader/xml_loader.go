package loader

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/iho/txrecon/internal/domain"
)

// XMLLoader loads the primary transaction log from an XML document of the form
//
//	<records>
//	  <record reference="130498">
//	    <accountNumber>NL69ABNA0433647324</accountNumber>
//	    <description>Tickets for Peter Theuß</description>
//	    <startBalance>26.9</startBalance>
//	    <mutation>-18.78</mutation>
//	    <endBalance>8.12</endBalance>
//	  </record>
//	</records>
//
// Every field may be an attribute or a child element; the element wins.
type XMLLoader struct {
	path string
}

// NewXMLLoader creates a new XMLLoader reading path.
func NewXMLLoader(path string) *XMLLoader {
	return &XMLLoader{path: path}
}

// LoadTransactions implements usecase.PrimaryLoader.
func (l *XMLLoader) LoadTransactions(ctx context.Context) ([]domain.TransactionRecord, error) {
	f, err := openSource(ctx, l.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := DecodeTransactions(ctxReader{ctx: ctx, r: f})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}

	return records, nil
}

type xmlDocument struct {
	XMLName xml.Name    `xml:"records"`
	Records []xmlRecord `xml:"record"`
}

type xmlRecord struct {
	ReferenceAttr     string `xml:"reference,attr"`
	AccountNumberAttr string `xml:"accountNumber,attr"`
	DescriptionAttr   string `xml:"description,attr"`
	StartBalanceAttr  string `xml:"startBalance,attr"`
	MutationAttr      string `xml:"mutation,attr"`
	EndBalanceAttr    string `xml:"endBalance,attr"`

	Reference     *string `xml:"reference"`
	AccountNumber *string `xml:"accountNumber"`
	Description   *string `xml:"description"`
	StartBalance  *string `xml:"startBalance"`
	Mutation      *string `xml:"mutation"`
	EndBalance    *string `xml:"endBalance"`
}

func pick(elem *string, attr string) string {
	if elem != nil {
		return *elem
	}
	return attr
}

func (r xmlRecord) toDomain() domain.TransactionRecord {
	return domain.NormalizeTransaction(domain.TransactionRecord{
		Reference:     pick(r.Reference, r.ReferenceAttr),
		AccountNumber: pick(r.AccountNumber, r.AccountNumberAttr),
		Description:   pick(r.Description, r.DescriptionAttr),
		StartBalance:  pick(r.StartBalance, r.StartBalanceAttr),
		Mutation:      pick(r.Mutation, r.MutationAttr),
		EndBalance:    pick(r.EndBalance, r.EndBalanceAttr),
	})
}

// DecodeTransactions parses an XML transaction log.
// Read failures wrap domain.ErrIO; anything else wraps domain.ErrFormat.
func DecodeTransactions(r io.Reader) ([]domain.TransactionRecord, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(sourceReader{r: r}).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", domain.ErrFormat)
		}
		return nil, decodeError(err)
	}

	records := make([]domain.TransactionRecord, 0, len(doc.Records))
	for i, raw := range doc.Records {
		record := raw.toDomain()
		if err := domain.ValidateTransactionShape(record); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		records = append(records, record)
	}

	return records, nil
}

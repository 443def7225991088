package report

import (
	"bufio"
	"io"
	"strings"
)

// writeQuotedCSV writes rows with every field double-quoted and embedded quotes doubled.
// encoding/csv only quotes fields that need it, so rows are encoded here.
func writeQuotedCSV(w io.Writer, rows [][]string) error {
	bw := bufio.NewWriter(w)

	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				if err := bw.WriteByte(','); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(quote(field)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

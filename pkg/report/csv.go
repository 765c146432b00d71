package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gardar/ocrlabels/pkg/blocks"
)

// DefaultHeaders are the label fields exported by default
var DefaultHeaders = []string{
	"Item",
	"Order ID",
	"Order date",
	"Outposts ID",
	"Asset ID",
	"PO",
	"State",
	"Region Coppel (site name)",
	"Site detalle",
}

// WriteCSV writes a header row followed by one row per label. Each column is filled with the
// field of the same name; missing fields are left empty. An "Item" column that the label does
// not provide is numbered from 1.
func WriteCSV(w io.Writer, headers []string, rows []*blocks.Fields) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, fields := range rows {
		record := make([]string, len(headers))
		for col, h := range headers {
			if fields != nil {
				if v, ok := fields.Get(h); ok {
					record[col] = v
					continue
				}
			}
			if h == "Item" {
				record[col] = fmt.Sprintf("%d", i+1)
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

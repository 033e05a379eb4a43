package ports

import (
	"context"

	"github.com/opskit/slipway/pkg/domain"
)

// RowStore is append-mostly tabular persistence over the analysis spreadsheet.
//
// The design assumes a single in-process writer at a time; there is no
// locking and no multi-writer consistency.
type RowStore interface {
	// ReadAll parses the first worksheet: row 1 is the header, every later
	// row becomes a RowRecord keyed by header name. Cells with no value map
	// to the empty string.
	ReadAll(ctx context.Context) ([]domain.RowRecord, error)

	// Append adds one row populating only the subject-name column. A missing
	// backing file is not an error: it is created with the fixed header
	// first. No de-duplication against prior rows.
	Append(ctx context.Context, subjectName string) error
}

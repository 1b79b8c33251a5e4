package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
)

// LenderNameHeader is the single header column of a saved result file.
const LenderNameHeader = "Lender Name"

// QualifyingLoanSinkCSV writes lender names to a CSV file, one per row.
type QualifyingLoanSinkCSV struct {
	path string
}

func NewQualifyingLoanSinkCSV(path string) *QualifyingLoanSinkCSV {
	return &QualifyingLoanSinkCSV{path: path}
}

// Save writes nothing when lenders is empty.
func (s *QualifyingLoanSinkCSV) Save(ctx context.Context, lenders []string) error {
	if len(lenders) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{LenderNameHeader}); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, name := range lenders {
		if err := w.Write([]string{name}); err != nil {
			f.Close()
			return fmt.Errorf("write lender %q: %w", name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", s.path, err)
	}
	return f.Close()
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"loan-qualifier/domain"
)

// RateSheetFile loads the rate sheet from a local CSV file.
type RateSheetFile struct {
	path string
}

func NewRateSheetFile(path string) *RateSheetFile {
	return &RateSheetFile{path: path}
}

func (r *RateSheetFile) Source() string {
	return "file"
}

func (r *RateSheetFile) Location() string {
	return r.path
}

func (r *RateSheetFile) Load(ctx context.Context) (domain.RateSheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewRateSheetUnavailableError(fmt.Sprintf("can't find this path: %s", r.path))
		}
		return nil, domain.NewRateSheetUnavailableError(err.Error())
	}
	defer f.Close()

	sheet, err := ParseRateSheet(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	return sheet, nil
}

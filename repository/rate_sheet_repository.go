package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"loan-qualifier/domain"
)

// RateSheetColumns is the fixed number of fields in every rate sheet row.
const RateSheetColumns = 5

// RateSheetRepository supplies the lender rate sheet.
type RateSheetRepository interface {
	Load(ctx context.Context) (domain.RateSheet, error)
	// Source names where the rows come from, for logs and metrics.
	Source() string
}

// ParseRateSheet reads CSV with a header row followed by rows of
// lender, max loan size, max LTV, min credit score, max DTI.
// The header is dropped. Any bad row fails the whole load.
func ParseRateSheet(r io.Reader) (domain.RateSheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	sheet := domain.RateSheet{}
	header := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, domain.NewMalformedRowError(parseErr.Line, parseErr.Err.Error())
			}
			return nil, fmt.Errorf("read rate sheet: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if header {
			header = false
			continue
		}

		row, err := parseRateSheetRow(record)
		if err != nil {
			return nil, domain.NewMalformedRowError(line, err.Error())
		}
		sheet = append(sheet, row)
	}

	return sheet, nil
}

func parseRateSheetRow(record []string) (domain.RateSheetRow, error) {
	if len(record) != RateSheetColumns {
		return domain.RateSheetRow{}, fmt.Errorf("expected %d fields, got %d", RateSheetColumns, len(record))
	}
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	name := record[0]
	if name == "" {
		return domain.RateSheetRow{}, errors.New("lender name is empty")
	}

	maxLoan, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return domain.RateSheetRow{}, fmt.Errorf("max loan size %q is not a number", record[1])
	}
	maxLTV, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return domain.RateSheetRow{}, fmt.Errorf("max loan to value %q is not a number", record[2])
	}
	minScore, err := strconv.Atoi(record[3])
	if err != nil {
		return domain.RateSheetRow{}, fmt.Errorf("min credit score %q is not an integer", record[3])
	}
	maxDTI, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return domain.RateSheetRow{}, fmt.Errorf("max debt to income %q is not a number", record[4])
	}

	return domain.RateSheetRow{
		LenderName:      name,
		MaxLoanSize:     maxLoan,
		MaxLoanToValue:  maxLTV,
		MinCreditScore:  minScore,
		MaxDebtToIncome: maxDTI,
	}, nil
}

package repository

import (
	"context"

	"loan-qualifier/domain"
)

// RateSheetMemory serves a fixed, already loaded rate sheet.
type RateSheetMemory struct {
	sheet domain.RateSheet
}

func NewRateSheetMemory(sheet domain.RateSheet) *RateSheetMemory {
	return &RateSheetMemory{sheet: sheet}
}

func (r *RateSheetMemory) Source() string {
	return "memory"
}

// Load returns a copy so callers can never change the stored rows.
func (r *RateSheetMemory) Load(_ context.Context) (domain.RateSheet, error) {
	return append(domain.RateSheet{}, r.sheet...), nil
}

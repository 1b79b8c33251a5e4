package service

import "loan-qualifier/domain"

// filterRows returns a new sheet with the rows for which keep is true,
// in their original order.
func filterRows(sheet domain.RateSheet, keep func(domain.RateSheetRow) bool) domain.RateSheet {
	out := make(domain.RateSheet, 0, len(sheet))
	for _, row := range sheet {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// FilterMaxLoanSize keeps lenders whose max loan size covers loanAmount.
func FilterMaxLoanSize(loanAmount float64, sheet domain.RateSheet) domain.RateSheet {
	return filterRows(sheet, func(row domain.RateSheetRow) bool {
		return loanAmount <= row.MaxLoanSize
	})
}

// FilterCreditScore keeps lenders whose minimum score is met.
func FilterCreditScore(creditScore int, sheet domain.RateSheet) domain.RateSheet {
	return filterRows(sheet, func(row domain.RateSheetRow) bool {
		return creditScore >= row.MinCreditScore
	})
}

func FilterDebtToIncome(debtToIncome float64, sheet domain.RateSheet) domain.RateSheet {
	return filterRows(sheet, func(row domain.RateSheetRow) bool {
		return debtToIncome <= row.MaxDebtToIncome
	})
}

func FilterLoanToValue(loanToValue float64, sheet domain.RateSheet) domain.RateSheet {
	return filterRows(sheet, func(row domain.RateSheetRow) bool {
		return loanToValue <= row.MaxLoanToValue
	})
}

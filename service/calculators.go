package service

import "loan-qualifier/domain"

// CalculateMonthlyDebtRatio returns debt / income.
func CalculateMonthlyDebtRatio(debt, income float64) (float64, error) {
	if income == 0 {
		return 0, domain.ErrInvalidIncome
	}
	return debt / income, nil
}

// CalculateLoanToValueRatio returns loanAmount / homeValue.
func CalculateLoanToValueRatio(loanAmount, homeValue float64) (float64, error) {
	if homeValue == 0 {
		return 0, domain.ErrInvalidHomeValue
	}
	return loanAmount / homeValue, nil
}

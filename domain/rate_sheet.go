package domain

// RateSheetRow is one lender loan product from the rate sheet.
type RateSheetRow struct {
	LenderName      string  `json:"lender_name"`
	MaxLoanSize     float64 `json:"max_loan_size"`
	MaxLoanToValue  float64 `json:"max_loan_to_value"`
	MinCreditScore  int     `json:"min_credit_score"`
	MaxDebtToIncome float64 `json:"max_debt_to_income"`
}

// RateSheet is an ordered list of rows with the header already stripped.
type RateSheet []RateSheetRow

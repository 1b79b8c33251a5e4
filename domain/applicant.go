package domain

type ApplicantProfile struct {
	CreditScore   int     `json:"credit_score"`
	MonthlyDebt   float64 `json:"monthly_debt"`
	MonthlyIncome float64 `json:"monthly_income"`
	LoanAmount    float64 `json:"loan_amount"`
	HomeValue     float64 `json:"home_value"`
}

type Ratios struct {
	DebtToIncome float64 `json:"debt_to_income"`
	LoanToValue  float64 `json:"loan_to_value"`
}

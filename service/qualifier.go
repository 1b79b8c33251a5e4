package service

import (
	"fmt"

	"loan-qualifier/domain"
)

// Filter stage names, in the order FindQualifyingLoans applies them.
const (
	StageMaxLoanSize  = "max_loan_size"
	StageCreditScore  = "credit_score"
	StageDebtToIncome = "debt_to_income"
	StageLoanToValue  = "loan_to_value"
)

// FindQualifyingLoans computes the applicant's ratios and runs the four
// qualification filters over sheet. It never mutates sheet. A zero income
// or home value aborts the run before any filter is applied.
func FindQualifyingLoans(
	sheet domain.RateSheet,
	applicant domain.ApplicantProfile,
) (domain.Qualification, error) {

	dti, err := CalculateMonthlyDebtRatio(applicant.MonthlyDebt, applicant.MonthlyIncome)
	if err != nil {
		return domain.Qualification{}, fmt.Errorf("debt to income ratio: %w", err)
	}

	ltv, err := CalculateLoanToValueRatio(applicant.LoanAmount, applicant.HomeValue)
	if err != nil {
		return domain.Qualification{}, fmt.Errorf("loan to value ratio: %w", err)
	}

	counts := make([]domain.StageCount, 0, 4)

	filtered := FilterMaxLoanSize(applicant.LoanAmount, sheet)
	counts = append(counts, domain.StageCount{Stage: StageMaxLoanSize, Rows: len(filtered)})

	filtered = FilterCreditScore(applicant.CreditScore, filtered)
	counts = append(counts, domain.StageCount{Stage: StageCreditScore, Rows: len(filtered)})

	filtered = FilterDebtToIncome(dti, filtered)
	counts = append(counts, domain.StageCount{Stage: StageDebtToIncome, Rows: len(filtered)})

	filtered = FilterLoanToValue(ltv, filtered)
	counts = append(counts, domain.StageCount{Stage: StageLoanToValue, Rows: len(filtered)})

	return domain.Qualification{
		Ratios: domain.Ratios{
			DebtToIncome: dti,
			LoanToValue:  ltv,
		},
		StageCounts: counts,
		Loans:       filtered,
	}, nil
}

// LenderNames returns the lender name of each row, in order.
func LenderNames(sheet domain.RateSheet) []string {
	names := make([]string, 0, len(sheet))
	for _, row := range sheet {
		names = append(names, row.LenderName)
	}
	return names
}

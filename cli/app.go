package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"loan-qualifier/domain"
	"loan-qualifier/logger"
	"loan-qualifier/repository"
	"loan-qualifier/service"
)

// App is the interactive loan qualifier: it asks for a rate sheet and the
// applicant's figures, prints the qualifying lenders and offers to save them.
type App struct {
	prompt  *Prompter
	out     io.Writer
	logger  logger.Logger
	newSink func(path string) repository.QualifyingLoanSink
}

func NewApp(in io.Reader, out io.Writer, log logger.Logger) *App {
	return &App{
		prompt: NewPrompter(in, out),
		out:    out,
		logger: log,
		newSink: func(path string) repository.QualifyingLoanSink {
			return repository.NewQualifyingLoanSinkCSV(path)
		},
	}
}

func (a *App) Run(ctx context.Context) error {
	sheet, err := a.loadRateSheet(ctx)
	if err != nil {
		return err
	}

	applicant, err := a.applicantInfo()
	if err != nil {
		return err
	}

	svc := service.NewQualifierService(repository.NewRateSheetMemory(sheet), a.logger)
	result, err := svc.Qualify(ctx, applicant)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "The monthly debt to income ratio is %.2f\n", result.Ratios.DebtToIncome)
	fmt.Fprintf(a.out, "The loan to value ratio is %.2f.\n", result.Ratios.LoanToValue)
	fmt.Fprintf(a.out, "Found %d qualifying loans\n", result.Count)

	return a.saveQualifyingLoans(ctx, result.Lenders)
}

func (a *App) loadRateSheet(ctx context.Context) (domain.RateSheet, error) {
	path, err := a.prompt.Text("Enter a file path to a rate-sheet (.csv):")
	if err != nil {
		return nil, err
	}
	return repository.NewRateSheetFile(path).Load(ctx)
}

func (a *App) applicantInfo() (domain.ApplicantProfile, error) {
	var (
		p   domain.ApplicantProfile
		err error
	)
	if p.CreditScore, err = a.prompt.Int("What's your credit score?"); err != nil {
		return p, err
	}
	if p.MonthlyDebt, err = a.prompt.Float("What's your current amount of monthly debt?"); err != nil {
		return p, err
	}
	if p.MonthlyIncome, err = a.prompt.Float("What's your total monthly income?"); err != nil {
		return p, err
	}
	if p.LoanAmount, err = a.prompt.Float("What's your desired loan amount?"); err != nil {
		return p, err
	}
	if p.HomeValue, err = a.prompt.Float("What's your home value?"); err != nil {
		return p, err
	}
	return p, nil
}

func (a *App) saveQualifyingLoans(ctx context.Context, lenders []string) error {
	if len(lenders) == 0 {
		fmt.Fprintln(a.out, "I'm sorry, there are no loans that you qualify for.")
		return nil
	}

	for _, name := range lenders {
		fmt.Fprintf(a.out, "  - %s\n", name)
	}

	confirm, err := a.prompt.Confirm("Would you like to save your qualified loan list as a new .csv file?")
	if err != nil {
		return err
	}
	if !confirm {
		fmt.Fprintln(a.out, "Thank you for using the Loan Qualifier Application, have a good day!")
		return nil
	}

	path, err := a.prompt.Text("Please enter a file path to save your list of qualifying loans (.csv):")
	if err != nil {
		return err
	}
	if err := a.newSink(path).Save(ctx, lenders); err != nil {
		return fmt.Errorf("save qualifying loans: %w", err)
	}

	fmt.Fprintln(a.out, "Your file has been saved, thank you for using the Loan Qualifier Application!")
	return nil
}

// UserMessage turns a run failure into the line shown to the user.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidIncome):
		return "Monthly income must be greater than zero to calculate a debt to income ratio."
	case errors.Is(err, domain.ErrInvalidHomeValue):
		return "Home value must be greater than zero to calculate a loan to value ratio."
	case errors.Is(err, domain.ErrMalformedRow):
		return fmt.Sprintf("The rate sheet could not be read: %v", err)
	case errors.Is(err, domain.ErrRateSheetUnavailable):
		var de *domain.DomainError
		if errors.As(err, &de) && de.Details != "" {
			return "Oops! " + de.Details
		}
		return "Oops! The rate sheet is unavailable."
	case errors.Is(err, ErrInputClosed):
		return "Input closed before all questions were answered."
	}
	return err.Error()
}

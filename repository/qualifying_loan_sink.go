package repository

import "context"

// QualifyingLoanSink persists the lender names of a qualifying set.
type QualifyingLoanSink interface {
	Save(ctx context.Context, lenders []string) error
}

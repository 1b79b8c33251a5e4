package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"loan-qualifier/domain"
	"loan-qualifier/logger"
	"loan-qualifier/metrics"
	"loan-qualifier/repository"
)

// roundTo2Decimals is for display only; qualification uses full precision.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// QualifierService loads the current rate sheet and runs the qualification
// pipeline against it, reporting every run through logs and metrics.
type QualifierService struct {
	rates  repository.RateSheetRepository
	logger logger.Logger
	runID  func() string
}

func NewQualifierService(rates repository.RateSheetRepository, log logger.Logger) *QualifierService {
	return &QualifierService{
		rates:  rates,
		logger: log.WithFields(map[string]interface{}{"source": rates.Source()}),
		runID:  uuid.NewString,
	}
}

// RateSheet loads the rate sheet from the configured source.
func (s *QualifierService) RateSheet(ctx context.Context) (domain.RateSheet, error) {
	sheet, err := s.rates.Load(ctx)
	if err != nil {
		metrics.RateSheetLoads.WithLabelValues(s.rates.Source(), "error").Inc()
		return nil, fmt.Errorf("load rate sheet: %w", err)
	}
	metrics.RateSheetLoads.WithLabelValues(s.rates.Source(), "ok").Inc()
	return sheet, nil
}

// Qualify returns the lenders whose criteria the applicant satisfies.
// An empty Lenders list is a valid outcome, not an error.
func (s *QualifierService) Qualify(
	ctx context.Context,
	applicant domain.ApplicantProfile,
) (domain.QualificationResult, error) {
	start := time.Now()
	defer func() {
		metrics.QualificationDuration.Observe(time.Since(start).Seconds())
	}()

	runID := s.runID()
	log := s.logger.WithFields(map[string]interface{}{"runId": runID})

	sheet, err := s.RateSheet(ctx)
	if err != nil {
		metrics.QualificationRuns.WithLabelValues(metrics.OutcomeError).Inc()
		log.WithError(err).Error("rate sheet load failed", nil)
		return domain.QualificationResult{}, err
	}

	q, err := FindQualifyingLoans(sheet, applicant)
	if err != nil {
		metrics.QualificationRuns.WithLabelValues(metrics.OutcomeError).Inc()
		log.WithError(err).Warn("qualification rejected", nil)
		return domain.QualificationResult{}, err
	}

	log.Info("ratios calculated", map[string]interface{}{
		"debtToIncome": roundTo2Decimals(q.Ratios.DebtToIncome),
		"loanToValue":  roundTo2Decimals(q.Ratios.LoanToValue),
	})
	for _, sc := range q.StageCounts {
		metrics.QualificationStageRows.WithLabelValues(sc.Stage).Observe(float64(sc.Rows))
		log.Debug("filter stage", map[string]interface{}{
			"stage": sc.Stage,
			"rows":  sc.Rows,
		})
	}

	lenders := LenderNames(q.Loans)
	outcome := metrics.OutcomeQualified
	if len(lenders) == 0 {
		outcome = metrics.OutcomeNoMatch
	}
	metrics.QualificationRuns.WithLabelValues(outcome).Inc()

	log.Info(fmt.Sprintf("found %d qualifying loans", len(lenders)), map[string]interface{}{
		"rateSheetRows": len(sheet),
		"count":         len(lenders),
	})

	return domain.QualificationResult{
		RunID:   runID,
		Ratios:  q.Ratios,
		Lenders: lenders,
		Count:   len(lenders),
	}, nil
}

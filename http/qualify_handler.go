package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"loan-qualifier/domain"
	"loan-qualifier/logger"
	"loan-qualifier/service"
)

type QualifyHandler struct {
	service *service.QualifierService
	logger  logger.Logger
}

func NewQualifyHandler(service *service.QualifierService, log logger.Logger) *QualifyHandler {
	return &QualifyHandler{
		service: service,
		logger:  log.WithFields(map[string]interface{}{"handler": "qualify"}),
	}
}

// Qualify handles POST /loan/qualify.
func (h *QualifyHandler) Qualify(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		writeError(w, h.logger, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var input domain.ApplicantProfile
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Qualify(r.Context(), input)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}

// RateSheet handles GET /loan/rate-sheet.
func (h *QualifyHandler) RateSheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.service.RateSheet(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, sheet)
}

func (h *QualifyHandler) writeDomainError(w http.ResponseWriter, err error) {
	var de *domain.DomainError
	if !errors.As(err, &de) {
		h.logger.WithError(err).Error("unclassified qualification failure", nil)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch de.Code {
	case domain.ErrCodeInvalidIncome, domain.ErrCodeInvalidHomeValue:
		status = http.StatusUnprocessableEntity
	case domain.ErrCodeMalformedRow, domain.ErrCodeRateSheetUnavailable:
		status = http.StatusServiceUnavailable
		h.logger.WithError(err).Error("rate sheet unusable", nil)
	}

	writeJSON(w, h.logger, status, errorResponse{
		Error:   de.Message,
		Code:    string(de.Code),
		Details: de.Details,
	})
}

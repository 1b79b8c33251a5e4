package repository

import (
	"context"
	"sync"
)

// QualifyingLoanSinkMemory is an in-memory implementation of QualifyingLoanSink.
type QualifyingLoanSinkMemory struct {
	mu   sync.Mutex
	data [][]string
}

func NewQualifyingLoanSinkMemory() *QualifyingLoanSinkMemory {
	return &QualifyingLoanSinkMemory{
		data: [][]string{},
	}
}

func (s *QualifyingLoanSinkMemory) Save(_ context.Context, lenders []string) error {
	if len(lenders) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append(s.data, append([]string(nil), lenders...))
	return nil
}

// Saved returns a copy of every list saved so far.
func (s *QualifyingLoanSinkMemory) Saved() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.data))
	for i, l := range s.data {
		out[i] = append([]string(nil), l...)
	}
	return out
}

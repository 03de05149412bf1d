package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/loan-landing-api/internal/domain"
)

// VerificationStore keeps pending verification codes in process memory.
// A restart drops every outstanding code.
type VerificationStore struct {
	mu      sync.Mutex
	records map[string]domain.VerificationRecord
}

func NewVerificationStore() *VerificationStore {
	return &VerificationStore{records: make(map[string]domain.VerificationRecord)}
}

func (s *VerificationStore) Put(_ context.Context, rec *domain.VerificationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Phone] = *rec
	return nil
}

func (s *VerificationStore) Get(_ context.Context, phone string) (*domain.VerificationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[phone]
	if !ok {
		return nil, fmt.Errorf("verification not found: %w", domain.ErrNotFound)
	}
	return &rec, nil
}

func (s *VerificationStore) CompareAndDelete(_ context.Context, rec *domain.VerificationRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.records[rec.Phone]
	if !ok || !sameIssue(&cur, rec) {
		return false, nil
	}
	delete(s.records, rec.Phone)
	return true, nil
}

func (s *VerificationStore) IncrementAttempts(_ context.Context, rec *domain.VerificationRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.records[rec.Phone]
	if !ok || !sameIssue(&cur, rec) {
		return 0, nil
	}
	cur.Attempts++
	s.records[rec.Phone] = cur
	return cur.Attempts, nil
}

// Len returns the number of stored records, expired ones included.
func (s *VerificationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func sameIssue(a, b *domain.VerificationRecord) bool {
	return a.Code == b.Code && a.IssuedAt.Equal(b.IssuedAt)
}

package service

import (
	"context"
	"errors"

	"github.com/iliyamo/three-level-auth/internal/logging"
	"github.com/iliyamo/three-level-auth/internal/model"
	"github.com/iliyamo/three-level-auth/internal/queue"
	"github.com/iliyamo/three-level-auth/internal/repository"
)

// PatternService enrolls and validates drawn patterns.
type PatternService struct {
	accounts AccountStore
	patterns PatternStore
	compare  PatternComparator
	audit    auditor
}

// NewPatternService wires the pattern factor.  A nil comparator means exact
// sequence equality.
func NewPatternService(accounts AccountStore, patterns PatternStore, cmp PatternComparator, events EventSink, log logging.Logger) *PatternService {
	if cmp == nil {
		cmp = ExactPattern{}
	}
	return &PatternService{accounts: accounts, patterns: patterns, compare: cmp, audit: newAuditor(events, log)}
}

// Enroll appends a new pattern for the account and returns the record id.
// Earlier patterns are left in place.
func (s *PatternService) Enroll(ctx context.Context, accountID model.AccountID, sequence []int) (model.RecordID, error) {
	id, err := s.enroll(ctx, accountID, sequence)
	s.audit.record(ctx, queue.AuthEvent{Type: queue.EventPatternEnrolled, AccountID: accountID.String()}, err)
	return id, err
}

func (s *PatternService) enroll(ctx context.Context, accountID model.AccountID, sequence []int) (model.RecordID, error) {
	if _, err := lookupAccount(ctx, s.accounts, accountID); err != nil {
		return model.RecordID{}, err
	}
	rec := model.PatternCredential{
		ID:        model.NewRecordID(),
		AccountID: accountID,
		Sequence:  sequence,
	}
	if err := s.patterns.Insert(ctx, rec); err != nil {
		return model.RecordID{}, storageErr("insert pattern", err)
	}
	return rec.ID, nil
}

// Validate compares sequence against the account's earliest stored pattern.
func (s *PatternService) Validate(ctx context.Context, accountID model.AccountID, sequence []int) error {
	err := s.validate(ctx, accountID, sequence)
	s.audit.record(ctx, queue.AuthEvent{Type: queue.EventPatternValidated, AccountID: accountID.String()}, err)
	return err
}

func (s *PatternService) validate(ctx context.Context, accountID model.AccountID, sequence []int) error {
	stored, err := s.patterns.FirstByAccount(ctx, accountID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRecordNotFound
	}
	if err != nil {
		return storageErr("load pattern", err)
	}
	if len(stored.Sequence) == 0 {
		return ErrNoStoredPattern
	}
	if !s.compare.Match(stored.Sequence, sequence) {
		return ErrPatternMismatch
	}
	return nil
}

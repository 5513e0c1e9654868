package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/three-level-auth/internal/logging"
	"github.com/iliyamo/three-level-auth/internal/model"
	"github.com/iliyamo/three-level-auth/internal/queue"
	"github.com/iliyamo/three-level-auth/internal/repository"
)

// FaceService enrolls and verifies the facial image factor.
type FaceService struct {
	accounts AccountStore
	faces    FaceStore
	compare  FaceComparator
	audit    auditor
}

// NewFaceService wires the facial factor.  A nil comparator means byte
// equality.
func NewFaceService(accounts AccountStore, faces FaceStore, cmp FaceComparator, events EventSink, log logging.Logger) *FaceService {
	if cmp == nil {
		cmp = ExactFace{}
	}
	return &FaceService{accounts: accounts, faces: faces, compare: cmp, audit: newAuditor(events, log)}
}

// imageSource yields the submitted image bytes.  It runs after the account
// lookup and before any store access.
type imageSource func() ([]byte, error)

func fromDataURL(encoded string) imageSource {
	return func() ([]byte, error) { return DecodeDataURL(encoded) }
}

func fromUpload(img []byte) imageSource {
	return func() ([]byte, error) {
		if len(img) == 0 {
			return nil, fmt.Errorf("%w: empty upload", ErrMalformedImage)
		}
		return img, nil
	}
}

// Enroll replaces the account's facial reference with the decoded image.  The
// image is decoded before anything is written.
func (s *FaceService) Enroll(ctx context.Context, accountID model.AccountID, encodedImage string) error {
	return s.enrollFrom(ctx, accountID, fromDataURL(encodedImage))
}

// EnrollImage is Enroll for an already decoded upload.
func (s *FaceService) EnrollImage(ctx context.Context, accountID model.AccountID, img []byte) error {
	return s.enrollFrom(ctx, accountID, fromUpload(img))
}

func (s *FaceService) enrollFrom(ctx context.Context, accountID model.AccountID, src imageSource) error {
	err := s.enroll(ctx, accountID, src)
	s.audit.record(ctx, queue.AuthEvent{Type: queue.EventFaceEnrolled, AccountID: accountID.String()}, err)
	return err
}

func (s *FaceService) enroll(ctx context.Context, accountID model.AccountID, src imageSource) error {
	if _, err := lookupAccount(ctx, s.accounts, accountID); err != nil {
		return err
	}
	img, err := src()
	if err != nil {
		return err
	}
	n, err := s.faces.Upsert(ctx, model.FacialCredential{AccountID: accountID, Image: img})
	if err != nil {
		return storageErr("store facial image", err)
	}
	if n == 0 {
		return ErrStorageFailure
	}
	return nil
}

// Verify checks encodedImage against the stored reference.
func (s *FaceService) Verify(ctx context.Context, accountID model.AccountID, encodedImage string) error {
	return s.verifyFrom(ctx, accountID, fromDataURL(encodedImage))
}

// VerifyImage is Verify for an already decoded upload.
func (s *FaceService) VerifyImage(ctx context.Context, accountID model.AccountID, img []byte) error {
	return s.verifyFrom(ctx, accountID, fromUpload(img))
}

func (s *FaceService) verifyFrom(ctx context.Context, accountID model.AccountID, src imageSource) error {
	err := s.verify(ctx, accountID, src)
	s.audit.record(ctx, queue.AuthEvent{Type: queue.EventFaceVerified, AccountID: accountID.String()}, err)
	return err
}

func (s *FaceService) verify(ctx context.Context, accountID model.AccountID, src imageSource) error {
	if _, err := lookupAccount(ctx, s.accounts, accountID); err != nil {
		return err
	}
	stored, err := s.faces.GetByAccount(ctx, accountID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNoStoredFace
	}
	if err != nil {
		return storageErr("load facial image", err)
	}
	if len(stored.Image) == 0 {
		return ErrNoStoredFace
	}
	img, err := src()
	if err != nil {
		return err
	}
	if !s.compare.Match(stored.Image, img) {
		return ErrFaceMismatch
	}
	return nil
}

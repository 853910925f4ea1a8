package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"suilog/internal/models"
	"suilog/internal/repositories"
)

var (
	ErrCodeInvalid     = errors.New("invalid confirmation code")
	ErrCodeExpired     = errors.New("confirmation code expired")
	ErrTooManyAttempts = errors.New("too many confirmation attempts")
	ErrResendThrottled = errors.New("confirmation resend throttled")
)

const (
	defaultConfirmationTTL = 10 * time.Minute
	maxConfirmAttempts     = 3
	maxResendsPerWindow    = 3
	resendWindow           = 10 * time.Minute
)

// ConfirmationService gates project completion behind an emailed one-time
// code. Codes are stored as bcrypt hashes only.
type ConfirmationService struct {
	repo    repositories.ConfirmationRepository
	email   EmailService
	CodeTTL time.Duration
}

func NewConfirmationService(repo repositories.ConfirmationRepository, email EmailService) *ConfirmationService {
	return &ConfirmationService{repo: repo, email: email, CodeTTL: defaultConfirmationTTL}
}

// RequestCode generates and emails a fresh code; every resend gets a new
// code. Sends are throttled per window.
func (s *ConfirmationService) RequestCode(ctx context.Context, projectID, projectName, email string) error {
	since := time.Now().Add(-resendWindow)
	cnt, err := s.repo.CountRecentSends(ctx, projectID, since)
	if err != nil {
		return err
	}
	if cnt >= maxResendsPerWindow {
		return ErrResendThrottled
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	codeHashBytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt generate: %w", err)
	}

	ttl := s.CodeTTL
	if ttl <= 0 {
		ttl = defaultConfirmationTTL
	}
	sentAt := time.Now()
	confirmation := &models.CompletionConfirmation{
		ProjectID: projectID,
		Email:     email,
		CodeHash:  string(codeHashBytes),
		SentAt:    sentAt,
		ExpiresAt: sentAt.Add(ttl),
	}
	if _, err := s.repo.Create(ctx, confirmation); err != nil {
		return err
	}

	if err := s.email.SendConfirmationCode(email, projectName, code); err != nil {
		return err
	}

	log.Printf("[confirm][send] project_id=%s email=%s", projectID, email)
	return nil
}

// Confirm checks the code against the latest hash, counting attempts and
// honoring the TTL. A code that runs out of attempts is expired on the spot.
func (s *ConfirmationService) Confirm(ctx context.Context, projectID, code string) error {
	c, err := s.repo.GetLatest(ctx, projectID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCodeInvalid
		}
		return err
	}
	if c.Confirmed {
		return ErrCodeInvalid
	}
	if time.Now().After(c.ExpiresAt) {
		return ErrCodeExpired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(c.CodeHash), []byte(code)); err != nil {
		attempts, incErr := s.repo.IncrementAttempts(ctx, c.ID)
		if incErr != nil {
			return incErr
		}
		if attempts >= maxConfirmAttempts {
			_ = s.repo.ExpireNow(ctx, c.ID)
			return ErrTooManyAttempts
		}
		return ErrCodeInvalid
	}

	if err := s.repo.MarkConfirmed(ctx, c.ID); err != nil {
		return err
	}
	log.Printf("[confirm][ok] project_id=%s", projectID)
	return nil
}

// generateCode returns a 6-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

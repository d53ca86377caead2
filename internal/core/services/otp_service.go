package services

import (
	"crypto/rand"
	"errors"
	"math/big"
	"sync"
	"time"
)

// OTP errors
var (
	ErrOTPNotFound    = errors.New("no OTP pending, request a new one")
	ErrOTPExpired     = errors.New("OTP expired, request a new one")
	ErrOTPMismatch    = errors.New("incorrect OTP")
	ErrOTPMaxAttempts = errors.New("too many incorrect attempts, request a new OTP")
	ErrOTPResendSoon  = errors.New("wait before requesting a new OTP")
)

const (
	otpLength      = 6
	otpTTL         = 5 * time.Minute
	otpResendAfter = 1 * time.Minute
	otpMaxAttempts = 5
)

// otpEntry represents a single OTP record in memory
type otpEntry struct {
	Code      string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Attempts  int
}

// OTPService handles password-reset OTP generation and verification.
// Codes live in memory only; a restart simply invalidates pending resets.
type OTPService struct {
	store    map[string]*otpEntry // key = email
	mu       sync.Mutex
	stopChan chan struct{}
}

// NewOTPService creates a new OTP service and starts its cleanup loop
func NewOTPService() *OTPService {
	svc := &OTPService{
		store:    make(map[string]*otpEntry),
		stopChan: make(chan struct{}),
	}
	go svc.cleanupLoop()
	return svc
}

// Generate creates a new 6-digit OTP for an email address.
// Throttled: a fresh code cannot be requested within a minute of the last.
func (s *OTPService) Generate(email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.store[email]; ok {
		if time.Since(existing.IssuedAt) < otpResendAfter {
			return "", ErrOTPResendSoon
		}
	}

	code, err := randomDigits(otpLength)
	if err != nil {
		return "", err
	}

	now := time.Now()
	s.store[email] = &otpEntry{
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(otpTTL),
	}

	return code, nil
}

// Verify checks the provided OTP without consuming it. Each wrong code
// counts against the attempt budget.
func (s *OTPService) Verify(email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.store[email]
	if !ok {
		return ErrOTPNotFound
	}

	if time.Now().After(entry.ExpiresAt) {
		delete(s.store, email)
		return ErrOTPExpired
	}

	if entry.Attempts >= otpMaxAttempts {
		delete(s.store, email)
		return ErrOTPMaxAttempts
	}

	if entry.Code != code {
		entry.Attempts++
		return ErrOTPMismatch
	}

	return nil
}

// Consume removes the OTP after a successful reset
func (s *OTPService) Consume(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.store, email)
}

// Stop terminates the cleanup loop
func (s *OTPService) Stop() {
	close(s.stopChan)
}

// cleanupLoop removes expired entries every 5 minutes
func (s *OTPService) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			now := time.Now()
			for email, entry := range s.store {
				if now.After(entry.ExpiresAt) {
					delete(s.store, email)
				}
			}
			s.mu.Unlock()
		case <-s.stopChan:
			return
		}
	}
}

// randomDigits generates a cryptographically random numeric code
func randomDigits(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}

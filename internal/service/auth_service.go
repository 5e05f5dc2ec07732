package service

import (
	"context"
	"fmt"
	"time"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/ports"
	"github.com/chicsouqsa-collab/Spay-sub002/pkg/apperror"

	"github.com/rs/zerolog"
)

// OpsAuthService implements ports.AuthService. Operators authenticate with a
// single pre-shared key whose Argon2id hash is part of the deployment config;
// a valid key is exchanged for a short-lived JWT used on the ops endpoints.
type OpsAuthService struct {
	keyHash  string
	hashSvc  ports.HashService
	tokenSvc ports.TokenService
	log      zerolog.Logger
}

// NewOpsAuthService creates a new OpsAuthService.
func NewOpsAuthService(keyHash string, hashSvc ports.HashService, tokenSvc ports.TokenService, log zerolog.Logger) *OpsAuthService {
	return &OpsAuthService{
		keyHash:  keyHash,
		hashSvc:  hashSvc,
		tokenSvc: tokenSvc,
		log:      log,
	}
}

// IssueToken verifies the operator key and returns a signed JWT.
func (s *OpsAuthService) IssueToken(ctx context.Context, operatorKey string) (string, time.Time, error) {
	if s.keyHash == "" {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("operator key hash not configured"))
	}

	valid, err := s.hashSvc.Verify(operatorKey, s.keyHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify operator key: %w", err))
	}
	if !valid {
		s.log.Warn().Msg("operator token request with invalid key")
		return "", time.Time{}, apperror.ErrInvalidOperatorKey()
	}

	token, expiry, err := s.tokenSvc.Generate("ops")
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	s.log.Info().Time("expires_at", expiry).Msg("operator token issued")
	return token, expiry, nil
}

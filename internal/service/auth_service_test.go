package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/ports/mocks"
	"github.com/chicsouqsa-collab/Spay-sub002/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testKeyHash = "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"

func TestOpsAuthService_IssueToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hashSvc := mocks.NewMockHashService(ctrl)
	tokenSvc := mocks.NewMockTokenService(ctrl)

	expiry := time.Now().Add(time.Hour)
	hashSvc.EXPECT().Verify("the-operator-key", testKeyHash).Return(true, nil)
	tokenSvc.EXPECT().Generate("ops").Return("signed-token", expiry, nil)

	svc := NewOpsAuthService(testKeyHash, hashSvc, tokenSvc, zerolog.Nop())

	token, expiresAt, err := svc.IssueToken(context.Background(), "the-operator-key")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.Equal(t, expiry, expiresAt)
}

func TestOpsAuthService_IssueToken_WrongKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hashSvc := mocks.NewMockHashService(ctrl)
	tokenSvc := mocks.NewMockTokenService(ctrl)

	hashSvc.EXPECT().Verify("bad-key", testKeyHash).Return(false, nil)

	svc := NewOpsAuthService(testKeyHash, hashSvc, tokenSvc, zerolog.Nop())

	_, _, err := svc.IssueToken(context.Background(), "bad-key")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, "AUTH_002"))
}

func TestOpsAuthService_IssueToken_NoHashConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewOpsAuthService("", mocks.NewMockHashService(ctrl), mocks.NewMockTokenService(ctrl), zerolog.Nop())

	_, _, err := svc.IssueToken(context.Background(), "any")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, "SYS_001"))
}

func TestOpsAuthService_IssueToken_VerifyError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hashSvc := mocks.NewMockHashService(ctrl)
	hashSvc.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(false, errors.New("corrupt hash"))

	svc := NewOpsAuthService(testKeyHash, hashSvc, mocks.NewMockTokenService(ctrl), zerolog.Nop())

	_, _, err := svc.IssueToken(context.Background(), "any")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, "SYS_001"))
}

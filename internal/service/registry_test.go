package service

import (
	"testing"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/domain"
	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/ports/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHandlerRegistry_RegistrationOrderPreserved(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := NewHandlerRegistry()
	first := mocks.NewMockEventHandler(ctrl)
	second := mocks.NewMockEventHandler(ctrl)

	require.NoError(t, registry.Register(domain.EventSubscriptionUpdated, first))
	require.NoError(t, registry.Register(domain.EventSubscriptionUpdated, second))

	handlers := registry.HandlersFor(domain.EventSubscriptionUpdated)
	require.Len(t, handlers, 2)
	assert.Same(t, first, handlers[0])
	assert.Same(t, second, handlers[1])
}

func TestHandlerRegistry_UnregisteredTypeIsEmpty(t *testing.T) {
	registry := NewHandlerRegistry()
	assert.Empty(t, registry.HandlersFor("charge.refunded"))
}

func TestHandlerRegistry_RejectsEmptyEventType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := NewHandlerRegistry()
	err := registry.Register("", mocks.NewMockEventHandler(ctrl))
	assert.Error(t, err)
}

func TestHandlerRegistry_RejectsNilHandler(t *testing.T) {
	registry := NewHandlerRegistry()
	err := registry.Register(domain.EventAccountUpdated, nil)
	assert.Error(t, err)
}

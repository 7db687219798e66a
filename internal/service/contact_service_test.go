package service_test

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/repository"
	"github.com/spec-kit/storefront-service/internal/service"
)

func newContactFixture(t *testing.T) (*service.ContactService, *service.SessionService) {
	t.Helper()
	principals := repository.NewInMemoryPrincipalRepository()
	sessions := service.NewSessionService(testConfig(), principals)
	contact := service.NewContactService(repository.NewInMemoryContactMessageRepository(), principals, "admin", nil)
	return contact, sessions
}

func TestSend_Validation(t *testing.T) {
	t.Parallel()
	contact, _ := newContactFixture(t)

	err := contact.Send(context.Background(), "", "a@b.c", "hello")
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	err = contact.Send(context.Background(), "Ann", "a@b.c", "")
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
}

func TestSend_WithoutAdminAccount(t *testing.T) {
	t.Parallel()
	contact, _ := newContactFixture(t)

	err := contact.Send(context.Background(), "Ann", "a@b.c", "hello")
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}

func TestSend_PreviewTruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()
	principals := repository.NewInMemoryPrincipalRepository()
	sessions := service.NewSessionService(testConfig(), principals)

	dispatcher := events.NewInMemoryDispatcher()
	var captured events.ContactMessagePayload
	dispatcher.Subscribe(events.EventContactMessageReceived, func(_ context.Context, event events.Event) error {
		captured = event.Payload.(events.ContactMessagePayload)
		return nil
	})
	contact := service.NewContactService(repository.NewInMemoryContactMessageRepository(), principals, "admin", dispatcher)

	ctx := context.Background()
	_, _, _, err := sessions.Register(ctx, "admin", "pw1")
	require.NoError(t, err)

	// Multibyte runes put byte offset 80 mid-rune.
	long := strings.Repeat("日", 100)
	require.NoError(t, contact.Send(ctx, "Ann", "ann@example.com", long))

	assert.True(t, utf8.ValidString(captured.Preview))
	assert.Equal(t, strings.Repeat("日", 80), captured.Preview)
}

func TestSendAndReadBack_InsertionOrder(t *testing.T) {
	t.Parallel()
	contact, sessions := newContactFixture(t)
	ctx := context.Background()

	_, _, _, err := sessions.Register(ctx, "admin", "pw1")
	require.NoError(t, err)

	require.NoError(t, contact.Send(ctx, "Ann", "ann@example.com", "first"))
	require.NoError(t, contact.Send(ctx, "Bob", "bob@example.com", "second"))

	messages, err := contact.Messages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Message)
	assert.Equal(t, "second", messages[1].Message)
	assert.Equal(t, "Ann", messages[0].Name)
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/repository"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// ContactService delivers public contact-form submissions to the admin
// principal and reads them back for the admin message view.
type ContactService struct {
	messages      repository.ContactMessageRepository
	principals    repository.PrincipalRepository
	adminUsername string
	dispatcher    events.Dispatcher
}

// NewContactService constructs the service. The admin account is named by
// configuration rather than a hardcoded lookup at each call site.
func NewContactService(messages repository.ContactMessageRepository, principals repository.PrincipalRepository, adminUsername string, dispatcher events.Dispatcher) *ContactService {
	return &ContactService{
		messages:      messages,
		principals:    principals,
		adminUsername: adminUsername,
		dispatcher:    dispatcher,
	}
}

// adminPrincipal resolves the configured admin account.
func (s *ContactService) adminPrincipal(ctx context.Context) (*domain.Principal, error) {
	principal, err := s.principals.GetByUsername(ctx, s.adminUsername)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("admin", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return principal, nil
}

// Send validates and appends a contact message to the admin's mailbox.
func (s *ContactService) Send(ctx context.Context, name, email, text string) error {
	if name == "" || email == "" || text == "" {
		return apperrors.NewValidationError("please fill in all required fields (name, email, message)", nil)
	}

	admin, err := s.adminPrincipal(ctx)
	if err != nil {
		return err
	}

	message := &domain.ContactMessage{
		PrincipalID: admin.ID,
		Name:        name,
		Email:       email,
		Message:     text,
	}
	if err := s.messages.Append(ctx, message); err != nil {
		return apperrors.NewInternalError(err)
	}

	if s.dispatcher != nil {
		preview := text
		if runes := []rune(preview); len(runes) > 80 {
			preview = string(runes[:80])
		}
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventContactMessageReceived,
			Timestamp: time.Now(),
			Payload: events.ContactMessagePayload{
				MessageID: message.ID,
				Name:      name,
				Email:     email,
				Preview:   preview,
			},
		})
	}
	return nil
}

// Messages returns the admin's messages in insertion order.
func (s *ContactService) Messages(ctx context.Context) ([]domain.ContactMessage, error) {
	admin, err := s.adminPrincipal(ctx)
	if err != nil {
		return nil, err
	}

	messages, err := s.messages.ListByPrincipal(ctx, admin.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return messages, nil
}

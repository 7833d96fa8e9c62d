package services

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"elegantstore/internal/models"
	"elegantstore/internal/repositories"
)

// NotificationPublisher publishes a best-effort event when a contact message
// is received, for downstream notification consumers.
type NotificationPublisher interface {
	PublishContactReceived(event map[string]interface{}) error
}

// ContactService handles business logic for contact form submissions.
type ContactService struct {
	repo      repositories.ContactRepository
	publisher NotificationPublisher
	validate  *validator.Validate
	log       zerolog.Logger
}

// NewContactService creates a new ContactService. The publisher is optional;
// a nil publisher disables notification events.
func NewContactService(repo repositories.ContactRepository, publisher NotificationPublisher, logger zerolog.Logger) *ContactService {
	return &ContactService{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
		log:       logger,
	}
}

// Submit validates and persists a contact message, then publishes a
// notification event. Publish failures are logged, never surfaced to the
// submitter: the message is already stored.
func (s *ContactService) Submit(message *models.ContactMessage) error {
	if err := s.validate.Struct(message); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return models.NewValidationError("Please provide all required fields")
		}
		return err
	}

	if err := s.repo.Create(message); err != nil {
		return err
	}

	if s.publisher != nil {
		event := map[string]interface{}{
			"messageId": message.ID,
			"name":      message.Name,
			"email":     message.Email,
			"subject":   message.Subject,
		}
		if err := s.publisher.PublishContactReceived(event); err != nil {
			s.log.Warn().Err(err).Str("message_id", message.ID).Msg("failed to publish contact received event")
		}
	}
	return nil
}

// List retrieves all contact messages, newest first.
func (s *ContactService) List() ([]models.ContactMessage, error) {
	return s.repo.GetAllNewestFirst()
}

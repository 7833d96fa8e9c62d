package repositories

import "elegantstore/internal/models"

// ContactRepository defines the interface for contact message data access.
// Messages are append-only; there is no update or delete.
type ContactRepository interface {
	Create(message *models.ContactMessage) error
	GetAllNewestFirst() ([]models.ContactMessage, error)
}

package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"elegantstore/internal/models"
)

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{
		db: db,
	}
}

// Create stores a new contact message.
func (r *GORMContactRepository) Create(message *models.ContactMessage) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

// GetAllNewestFirst retrieves all contact messages, newest first.
func (r *GORMContactRepository) GetAllNewestFirst() ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	if err := r.db.Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to get contact messages: %w", err)
	}
	return messages, nil
}

package models

import "time"

// ContactMessage represents a message submitted through the public contact
// form. Messages are immutable once created; there is no update or delete.
type ContactMessage struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required"`
	Subject   string    `json:"subject" validate:"required"`
	Message   string    `json:"message" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
}

package models

import "time"

const (
	NotificationTypeComment      = "comment"
	NotificationTypeAssignment   = "assignment"
	NotificationTypeStatusChange = "status_change"
)

// Notification rows are written only by the fan-out service and deleted
// by their recipient.
type Notification struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UserID    uint    `gorm:"index;not null" json:"user_id"`
	TicketID  uint    `gorm:"index;not null" json:"ticket_id"`
	Ticket    *Ticket `gorm:"foreignKey:TicketID" json:"-"`
	Type      string  `gorm:"type:varchar(20);not null" json:"type"` // comment, assignment, status_change
	Message   string  `gorm:"type:text;not null" json:"message"`
	IsRead    bool    `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

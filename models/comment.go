package models

import "time"

type Comment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	TicketID  uint   `gorm:"index;not null" json:"ticket_id"`
	Ticket    *Ticket `gorm:"foreignKey:TicketID" json:"-"`
	UserID    uint   `gorm:"index;not null" json:"user_id"`
	User      *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content   string `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in-progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

type Ticket struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	TicketNumber string `gorm:"type:varchar(20);index" json:"ticket_number"`
	Title        string `gorm:"type:varchar(255);not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	Priority     string `gorm:"type:varchar(20);not null" json:"priority"` // low, medium, high, critical
	Category     string `gorm:"type:varchar(100)" json:"category"`
	Tags         string `gorm:"type:text" json:"-"` // JSON-encoded []string
	Status       string `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	UserID       uint   `gorm:"index;not null" json:"user_id"`
	User         *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	GroupID      *uint  `gorm:"index" json:"group_id"`
	Group        *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FormatTicketNumber derives the public ticket number from the row id,
// e.g. id 7 -> TCKT-00007. Assigned by a second UPDATE after the insert.
func FormatTicketNumber(id uint) string {
	return fmt.Sprintf("TCKT-%05d", id)
}

// TagList decodes the serialized tags column, always returning a slice.
func (t *Ticket) TagList() []string {
	var tags []string
	if err := json.Unmarshal([]byte(t.Tags), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

// SetTags serializes tags into the storage column.
func (t *Ticket) SetTags(tags []string) {
	if tags == nil {
		tags = []string{}
	}
	raw, _ := json.Marshal(tags)
	t.Tags = string(raw)
}

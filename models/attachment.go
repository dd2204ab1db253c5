package models

import "time"

// Attachment stores the uploaded file inline as a blob. Exactly one of
// TicketID or CommentID is set.
type Attachment struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	TicketID     *uint  `gorm:"index" json:"ticket_id,omitempty"`
	CommentID    *uint  `gorm:"index" json:"comment_id,omitempty"`
	Filename     string `gorm:"type:varchar(255);not null" json:"filename"`
	OriginalName string `gorm:"type:varchar(255);not null" json:"original_name"`
	MimeType     string `gorm:"type:varchar(100)" json:"mimetype"`
	Size         int64  `gorm:"not null" json:"size"`
	FileData     []byte `gorm:"type:longblob" json:"-"`
	UploadDate   time.Time `gorm:"autoCreateTime" json:"upload_date"`
}

package controllers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/helpdesk-app/models"
	"github.com/yeremiapane/helpdesk-app/utils"
	"gorm.io/gorm"
)

// Per-file ceiling for uploaded attachments.
const maxAttachmentSize = 2 << 20 // 2 MB

var errAttachmentTooLarge = fmt.Errorf("attachment exceeds the %d MB limit", maxAttachmentSize>>20)

// claimsFrom returns the authenticated caller's claims set by the auth
// middleware.
func claimsFrom(c *gin.Context) (*utils.CustomClaims, error) {
	v, exists := c.Get("claims")
	if !exists {
		return nil, errors.New("missing authentication context")
	}
	claims, ok := v.(*utils.CustomClaims)
	if !ok {
		return nil, errors.New("invalid authentication context")
	}
	return claims, nil
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}

// saveAttachments stores each uploaded file as a blob row tied to a
// ticket or a comment. The stored filename is timestamp-prefixed so two
// uploads of the same file never collide.
func saveAttachments(db *gorm.DB, files []*multipart.FileHeader, ticketID, commentID *uint) ([]models.Attachment, error) {
	var saved []models.Attachment
	for _, file := range files {
		if file.Size > maxAttachmentSize {
			return saved, errAttachmentTooLarge
		}

		src, err := file.Open()
		if err != nil {
			return saved, err
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return saved, err
		}

		att := models.Attachment{
			TicketID:     ticketID,
			CommentID:    commentID,
			Filename:     fmt.Sprintf("%d-%s", time.Now().UnixNano(), file.Filename),
			OriginalName: file.Filename,
			MimeType:     file.Header.Get("Content-Type"),
			Size:         file.Size,
			FileData:     data,
		}
		if err := db.Create(&att).Error; err != nil {
			return saved, err
		}
		saved = append(saved, att)
	}
	return saved, nil
}

package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/helpdesk-app/models"
	"github.com/yeremiapane/helpdesk-app/utils"
	"gorm.io/gorm"
)

type AttachmentController struct {
	DB *gorm.DB
}

func NewAttachmentController(db *gorm.DB) *AttachmentController {
	return &AttachmentController{DB: db}
}

// metadataColumns keeps the blob out of listing queries.
const metadataColumns = "id, ticket_id, comment_id, filename, original_name, mime_type, size, upload_date"

// GetTicketAttachments -> metadata for every file on a ticket.
func (ac *AttachmentController) GetTicketAttachments(c *gin.Context) {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var attachments []models.Attachment
	if err := ac.DB.Select(metadataColumns).Where("ticket_id = ?", ticketID).
		Find(&attachments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ticket attachments", attachments)
}

// GetCommentAttachments -> metadata for every file on a comment.
func (ac *AttachmentController) GetCommentAttachments(c *gin.Context) {
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var attachments []models.Attachment
	if err := ac.DB.Select(metadataColumns).Where("comment_id = ?", commentID).
		Find(&attachments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Comment attachments", attachments)
}

// Download streams the stored bytes back unchanged, with the original
// filename and MIME type, as a forced download.
func (ac *AttachmentController) Download(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var attachment models.Attachment
	if err := ac.DB.First(&attachment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("File not found"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.OriginalName))
	c.Data(http.StatusOK, attachment.MimeType, attachment.FileData)
}

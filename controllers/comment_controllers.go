package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/helpdesk-app/models"
	"github.com/yeremiapane/helpdesk-app/services"
	"github.com/yeremiapane/helpdesk-app/utils"
	"gorm.io/gorm"
)

type CommentController struct {
	DB       *gorm.DB
	Notifier *services.Notifier
}

func NewCommentController(db *gorm.DB, notifier *services.Notifier) *CommentController {
	return &CommentController{DB: db, Notifier: notifier}
}

// GetComments -> all comments of a ticket, oldest first, with the
// author's display name joined in.
func (cc *CommentController) GetComments(c *gin.Context) {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var comments []models.Comment
	if err := cc.DB.Preload("User").Where("ticket_id = ?", ticketID).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	formatted := make([]gin.H, 0, len(comments))
	for _, comment := range comments {
		userName := ""
		if comment.User != nil {
			userName = comment.User.FullName()
		}
		formatted = append(formatted, gin.H{
			"id":        comment.ID,
			"ticketId":  comment.TicketID,
			"userId":    comment.UserID,
			"userName":  userName,
			"content":   comment.Content,
			"createdAt": comment.CreatedAt,
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Ticket comments", formatted)
}

// CreateComment accepts JSON or a multipart form with files under
// "attachments", then runs the comment fan-out.
func (cc *CommentController) CreateComment(c *gin.Context) {
	claims, err := claimsFrom(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var ticket models.Ticket
	if err := cc.DB.First(&ticket, ticketID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("Ticket not found"))
		return
	}

	var content string
	multipart := c.ContentType() == "multipart/form-data"
	if multipart {
		content = c.PostForm("content")
	} else {
		var input struct {
			Content string `json:"content" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		content = input.Content
	}
	if content == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("content is required"))
		return
	}

	comment := models.Comment{
		TicketID: ticketID,
		UserID:   claims.UserID,
		Content:  content,
	}
	if err := cc.DB.Create(&comment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	if multipart {
		if form, err := c.MultipartForm(); err == nil {
			if _, err := saveAttachments(cc.DB, form.File["attachments"], nil, &comment.ID); err != nil {
				if errors.Is(err, errAttachmentTooLarge) {
					utils.RespondError(c, http.StatusBadRequest, err)
				} else {
					utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
				}
				return
			}
		}
	}

	cc.Notifier.CommentAdded(&ticket, claims.UserID)

	utils.RespondJSON(c, http.StatusCreated, "Comment added successfully", gin.H{"id": comment.ID})
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/helpdesk-app/models"
	"github.com/yeremiapane/helpdesk-app/utils"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetMyNotifications -> the caller's notifications, newest first, each
// carrying the ticket number of the ticket it points at.
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	claims, err := claimsFrom(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var rows []struct {
		models.Notification
		TicketNumber string `json:"ticket_number"`
	}
	err = nc.DB.Model(&models.Notification{}).
		Select("notifications.*, tickets.ticket_number").
		Joins("LEFT JOIN tickets ON notifications.ticket_id = tickets.id").
		Where("notifications.user_id = ?", claims.UserID).
		Order("notifications.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	formatted := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		formatted = append(formatted, gin.H{
			"id":            row.ID,
			"user_id":       row.UserID,
			"ticket_id":     row.TicketID,
			"ticket_number": row.TicketNumber,
			"type":          row.Type,
			"message":       row.Message,
			"is_read":       row.IsRead,
			"created_at":    row.CreatedAt,
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications", formatted)
}

// MarkAllRead
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	claims, err := claimsFrom(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	if err := nc.DB.Model(&models.Notification{}).
		Where("user_id = ?", claims.UserID).
		Update("is_read", true).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications marked as read", nil)
}

// DeleteNotification -> one own row; deleting someone else's id is a
// silent no-op.
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	claims, err := claimsFrom(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := nc.DB.Where("id = ? AND user_id = ?", id, claims.UserID).
		Delete(&models.Notification{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification deleted successfully", nil)
}

// DeleteAllNotifications -> clear the caller's inbox.
func (nc *NotificationController) DeleteAllNotifications(c *gin.Context) {
	claims, err := claimsFrom(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	if err := nc.DB.Where("user_id = ?", claims.UserID).
		Delete(&models.Notification{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All notifications deleted", nil)
}

package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/helpdesk-app/models"
	"github.com/yeremiapane/helpdesk-app/services"
	"github.com/yeremiapane/helpdesk-app/utils"
	"gorm.io/gorm"
)

type TicketController struct {
	DB       *gorm.DB
	Notifier *services.Notifier
	Mailer   *services.Mailer
}

func NewTicketController(db *gorm.DB, notifier *services.Notifier, mailer *services.Mailer) *TicketController {
	return &TicketController{DB: db, Notifier: notifier, Mailer: mailer}
}

// scopeForRole narrows the ticket query to what the caller may see:
// admin and staff see everything, a leader sees own plus own-group
// tickets, a regular user sees only self-authored tickets.
func (tc *TicketController) scopeForRole(query *gorm.DB, claims *utils.CustomClaims) *gorm.DB {
	switch claims.Role {
	case models.RoleAdmin, models.RoleStaff:
		return query
	case models.RoleLeader:
		if claims.GroupID != nil {
			return query.Where("tickets.user_id = ? OR tickets.group_id = ?", claims.UserID, *claims.GroupID)
		}
		return query.Where("tickets.user_id = ?", claims.UserID)
	default:
		return query.Where("tickets.user_id = ?", claims.UserID)
	}
}

func formatTicket(t *models.Ticket) gin.H {
	customerName := ""
	customerEmail := ""
	if t.User != nil {
		customerName = t.User.FullName()
		customerEmail = t.User.Email
	}
	groupName := ""
	groupLocation := ""
	if t.Group != nil {
		groupName = t.Group.Name
		groupLocation = t.Group.Location
	}
	return gin.H{
		"id":            t.ID,
		"ticket_number": t.TicketNumber,
		"group_id":      t.GroupID,
		"groupName":     groupName,
		"groupLocation": groupLocation,
		"title":         t.Title,
		"description":   t.Description,
		"priority":      t.Priority,
		"status":        t.Status,
		"category":      t.Category,
		"user_id":       t.UserID,
		"customerName":  customerName,
		"customerEmail": customerEmail,
		"tags":          t.TagList(),
		"createdAt":     t.CreatedAt,
		"updatedAt":     t.UpdatedAt,
	}
}

// GetAllTickets
func (tc *TicketController) GetAllTickets(c *gin.Context) {
	claims, err := claimsFrom(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var tickets []models.Ticket
	query := tc.scopeForRole(tc.DB.Preload("User").Preload("Group"), claims)
	if err := query.Order("created_at DESC").Find(&tickets).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	formatted := make([]gin.H, 0, len(tickets))
	for i := range tickets {
		formatted = append(formatted, formatTicket(&tickets[i]))
	}
	utils.RespondJSON(c, http.StatusOK, "All tickets", formatted)
}

// GetTicketByID -> 404 both for unknown ids and tickets outside the
// caller's scope.
func (tc *TicketController) GetTicketByID(c *gin.Context) {
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

	var ticket models.Ticket
	query := tc.scopeForRole(tc.DB.Preload("User").Preload("Group"), claims)
	if err := query.First(&ticket, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("Ticket not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ticket detail", formatTicket(&ticket))
}

// CreateTicket accepts a plain JSON body or, when attachments are
// included, a multipart form with the files under "attachments".
// A new ticket always starts at status open; the ticket number is
// assigned by a second update once the row id is known.
func (tc *TicketController) CreateTicket(c *gin.Context) {
	claims, err := claimsFrom(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var (
		title, description, priority, category string
		tags                                   []string
	)

	multipart := c.ContentType() == "multipart/form-data"
	if multipart {
		title = c.PostForm("title")
		description = c.PostForm("description")
		priority = c.PostForm("priority")
		category = c.PostForm("category")
		if raw := c.PostForm("tags"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &tags); err != nil {
				utils.RespondError(c, http.StatusBadRequest, errors.New("invalid tags"))
				return
			}
		}
	} else {
		var input struct {
			Title       string   `json:"title" binding:"required"`
			Description string   `json:"description"`
			Priority    string   `json:"priority" binding:"required"`
			Category    string   `json:"category"`
			Tags        []string `json:"tags"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		title, description, priority, category, tags =
			input.Title, input.Description, input.Priority, input.Category, input.Tags
	}

	if title == "" || priority == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("title and priority are required"))
		return
	}

	ticket := models.Ticket{
		Title:       title,
		Description: description,
		Priority:    priority,
		Category:    category,
		Status:      models.TicketStatusOpen,
		UserID:      claims.UserID,
		GroupID:     claims.GroupID,
	}
	ticket.SetTags(tags)

	if err := tc.DB.Create(&ticket).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	ticket.TicketNumber = models.FormatTicketNumber(ticket.ID)
	if err := tc.DB.Model(&models.Ticket{}).Where("id = ?", ticket.ID).
		Update("ticket_number", ticket.TicketNumber).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	var attachments []models.Attachment
	if multipart {
		if form, err := c.MultipartForm(); err == nil {
			attachments, err = saveAttachments(tc.DB, form.File["attachments"], &ticket.ID, nil)
			if err != nil {
				if errors.Is(err, errAttachmentTooLarge) {
					utils.RespondError(c, http.StatusBadRequest, err)
				} else {
					utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
				}
				return
			}
		}
	}

	tc.Notifier.TicketCreated(&ticket)
	tc.sendTicketMail(&ticket, attachments)

	utils.InfoLogger.Printf("Ticket %s created by user %d", ticket.TicketNumber, claims.UserID)
	utils.RespondJSON(c, http.StatusCreated, "Ticket created successfully", gin.H{
		"id":           ticket.ID,
		"ticketNumber": ticket.TicketNumber,
	})
}

func (tc *TicketController) sendTicketMail(ticket *models.Ticket, attachments []models.Attachment) {
	if tc.Mailer == nil {
		return
	}

	var user models.User
	if err := tc.DB.First(&user, ticket.UserID).Error; err != nil {
		utils.ErrorLogger.Printf("Error loading user %d for ticket mail: %v", ticket.UserID, err)
		return
	}

	groupName := ""
	if ticket.GroupID != nil {
		var group models.Group
		if err := tc.DB.First(&group, *ticket.GroupID).Error; err == nil {
			groupName = group.Name
		}
	}

	tc.Mailer.SendTicketCreated(ticket, &user, groupName, attachments)
}

// UpdateTicket -> admin only; sets status and priority, then fans out
// the status-change notifications.
func (tc *TicketController) UpdateTicket(c *gin.Context) {
	claims, err := claimsFrom(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	if claims.Role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, errors.New("Admin access required"))
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var input struct {
		Status   string `json:"status" binding:"required"`
		Priority string `json:"priority" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var ticket models.Ticket
	if err := tc.DB.First(&ticket, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("Ticket not found"))
		return
	}

	updates := map[string]interface{}{
		"status":   input.Status,
		"priority": input.Priority,
	}
	if err := tc.DB.Model(&ticket).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	tc.Notifier.StatusChanged(&ticket, claims.UserID, input.Status)

	utils.RespondJSON(c, http.StatusOK, "Ticket updated successfully", nil)
}

// DeleteTicket removes the ticket with everything hanging off it:
// its attachments, its comments and their attachments. Regular users
// and leaders may only delete their own tickets.
func (tc *TicketController) DeleteTicket(c *gin.Context) {
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

	query := tc.DB.Where("id = ?", id)
	if claims.Role == models.RoleRUser || claims.Role == models.RoleLeader {
		query = query.Where("user_id = ?", claims.UserID)
	}
	var ticket models.Ticket
	if err := query.First(&ticket).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("Ticket not found or not authorized"))
		return
	}

	if err := tc.DB.Where("ticket_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	var commentIDs []uint
	if err := tc.DB.Model(&models.Comment{}).Where("ticket_id = ?", id).
		Pluck("id", &commentIDs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}
	if len(commentIDs) > 0 {
		if err := tc.DB.Where("comment_id IN ?", commentIDs).Delete(&models.Attachment{}).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
			return
		}
		if err := tc.DB.Delete(&models.Comment{}, commentIDs).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
			return
		}
	}

	if err := tc.DB.Delete(&models.Ticket{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ticket deleted successfully", nil)
}

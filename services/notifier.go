package services

import (
	"fmt"

	"github.com/yeremiapane/helpdesk-app/events"
	"github.com/yeremiapane/helpdesk-app/models"
	"github.com/yeremiapane/helpdesk-app/utils"
	"gorm.io/gorm"
)

// Notifier writes one notification row per computed recipient for a
// ticket event. Recipients are not deduplicated: a user matching more
// than one category (say, ticket owner who is also an admin) gets one
// row per category. Inserts are sequential and best effort, a failed
// insert is logged and the rest of the fan-out continues.
type Notifier struct {
	DB *gorm.DB
}

func NewNotifier(db *gorm.DB) *Notifier {
	return &Notifier{DB: db}
}

// TicketCreated notifies every admin and staff user, plus the leaders
// of the ticket's group when it has one.
func (n *Notifier) TicketCreated(ticket *models.Ticket) {
	msg := fmt.Sprintf("New ticket (%s) created by user %d", ticket.TicketNumber, ticket.UserID)
	for _, id := range n.usersWithRoles(models.RoleAdmin, models.RoleStaff) {
		n.insert(id, ticket.ID, models.NotificationTypeAssignment, msg)
	}

	if ticket.GroupID != nil {
		groupMsg := fmt.Sprintf("New ticket (%s) created in your group", ticket.TicketNumber)
		for _, id := range n.groupLeaders(*ticket.GroupID) {
			n.insert(id, ticket.ID, models.NotificationTypeAssignment, groupMsg)
		}
	}

	events.BroadcastTicketUpdate(ticket)
}

// CommentAdded notifies the ticket owner (unless they wrote the
// comment), the leaders of the ticket's group, and every admin and
// staff user including the commenter.
func (n *Notifier) CommentAdded(ticket *models.Ticket, commenterID uint) {
	if ticket.UserID != 0 && ticket.UserID != commenterID {
		msg := fmt.Sprintf("A comment was added on ticket (%s)", ticket.TicketNumber)
		n.insert(ticket.UserID, ticket.ID, models.NotificationTypeComment, msg)
	}

	if ticket.GroupID != nil {
		groupMsg := fmt.Sprintf("A comment was added on ticket (%s) in your group", ticket.TicketNumber)
		for _, id := range n.groupLeaders(*ticket.GroupID) {
			n.insert(id, ticket.ID, models.NotificationTypeComment, groupMsg)
		}
	}

	msg := fmt.Sprintf("A comment was added on ticket (%s)", ticket.TicketNumber)
	for _, id := range n.usersWithRoles(models.RoleAdmin, models.RoleStaff) {
		n.insert(id, ticket.ID, models.NotificationTypeComment, msg)
	}
}

// StatusChanged notifies the ticket owner (unless they made the
// change), the leaders of the ticket's group, and every admin. Staff
// are not on this path, unlike the other two events.
func (n *Notifier) StatusChanged(ticket *models.Ticket, updaterID uint, status string) {
	if ticket.UserID != 0 && ticket.UserID != updaterID {
		msg := fmt.Sprintf("Status of ticket (%s) changed to %s", ticket.TicketNumber, status)
		n.insert(ticket.UserID, ticket.ID, models.NotificationTypeStatusChange, msg)
	}

	msg := fmt.Sprintf("Ticket (%s) status changed to %s", ticket.TicketNumber, status)
	if ticket.GroupID != nil {
		for _, id := range n.groupLeaders(*ticket.GroupID) {
			n.insert(id, ticket.ID, models.NotificationTypeStatusChange, msg)
		}
	}

	for _, id := range n.usersWithRoles(models.RoleAdmin) {
		n.insert(id, ticket.ID, models.NotificationTypeStatusChange, msg)
	}

	events.BroadcastTicketUpdate(ticket)
}

func (n *Notifier) usersWithRoles(roles ...string) []uint {
	var ids []uint
	if err := n.DB.Model(&models.User{}).Where("role IN ?", roles).Pluck("id", &ids).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching recipients for roles %v: %v", roles, err)
		return nil
	}
	return ids
}

func (n *Notifier) groupLeaders(groupID uint) []uint {
	var ids []uint
	err := n.DB.Model(&models.User{}).
		Where("role = ? AND group_id = ?", models.RoleLeader, groupID).
		Pluck("id", &ids).Error
	if err != nil {
		utils.ErrorLogger.Printf("Error fetching leaders of group %d: %v", groupID, err)
		return nil
	}
	return ids
}

func (n *Notifier) insert(userID, ticketID uint, notifType, message string) {
	notif := models.Notification{
		UserID:   userID,
		TicketID: ticketID,
		Type:     notifType,
		Message:  message,
	}
	if err := n.DB.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("Error inserting notification for user %d: %v", userID, err)
		return
	}
	events.NotifyUser(userID, notif)
}

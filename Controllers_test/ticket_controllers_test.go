package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/helpdesk-app/models"
)

func TestCreateTicketStartsOpenWithDerivedNumber(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)
	user, token := seedUser(t, db, "Customer", "customer@example.com", models.RoleRUser, nil)

	w := doJSON(t, r, "POST", "/api/tickets", token, map[string]interface{}{
		"title":       "Printer on fire",
		"description": "It is literally on fire",
		"priority":    "critical",
		"category":    "hardware",
		"tags":        []string{"printer", "fire"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID           uint   `json:"id"`
		TicketNumber string `json:"ticketNumber"`
	}
	decodeData(t, w, &created)
	assert.Equal(t, fmt.Sprintf("TCKT-%05d", created.ID), created.TicketNumber)

	var ticket models.Ticket
	assert.NoError(t, db.First(&ticket, created.ID).Error)
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)
	assert.Equal(t, created.TicketNumber, ticket.TicketNumber)
	assert.Equal(t, user.ID, ticket.UserID)
	assert.Equal(t, []string{"printer", "fire"}, ticket.TagList())
}

// A regular user must never see a ticket they did not author.
func TestTicketVisibilityScoping(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)

	group := models.Group{Name: "Support", Location: "Yangon"}
	assert.NoError(t, db.Create(&group).Error)

	ruser, ruserToken := seedUser(t, db, "Regular", "ruser@example.com", models.RoleRUser, nil)
	other, otherToken := seedUser(t, db, "Other", "other@example.com", models.RoleRUser, &group.ID)
	_, leaderToken := seedUser(t, db, "Leader", "leader@example.com", models.RoleLeader, &group.ID)
	_, staffToken := seedUser(t, db, "Staff", "staff@example.com", models.RoleStaff, nil)

	w := doJSON(t, r, "POST", "/api/tickets", ruserToken, map[string]interface{}{
		"title": "Mine", "priority": "low",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, "POST", "/api/tickets", otherToken, map[string]interface{}{
		"title": "Group ticket", "priority": "high",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	type ticketRow struct {
		UserID  uint   `json:"user_id"`
		GroupID *uint  `json:"group_id"`
		Title   string `json:"title"`
	}

	// ruser: only self-authored
	w = doJSON(t, r, "GET", "/api/tickets", ruserToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var ruserTickets []ticketRow
	decodeData(t, w, &ruserTickets)
	assert.Len(t, ruserTickets, 1)
	for _, row := range ruserTickets {
		assert.Equal(t, ruser.ID, row.UserID)
	}

	// leader: own plus own-group tickets
	w = doJSON(t, r, "GET", "/api/tickets", leaderToken, nil)
	var leaderTickets []ticketRow
	decodeData(t, w, &leaderTickets)
	assert.Len(t, leaderTickets, 1)
	assert.Equal(t, other.ID, leaderTickets[0].UserID)

	// staff: everything
	w = doJSON(t, r, "GET", "/api/tickets", staffToken, nil)
	var staffTickets []ticketRow
	decodeData(t, w, &staffTickets)
	assert.Len(t, staffTickets, 2)

	// Detail fetch outside the scope is a 404, not a 403
	var groupTicket models.Ticket
	assert.NoError(t, db.Where("title = ?", "Group ticket").First(&groupTicket).Error)
	w = doJSON(t, r, "GET", fmt.Sprintf("/api/tickets/%d", groupTicket.ID), ruserToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateTicketAdminOnly(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)

	_, adminToken := seedUser(t, db, "Admin", "admin@example.com", models.RoleAdmin, nil)
	_, staffToken := seedUser(t, db, "Staff", "staff@example.com", models.RoleStaff, nil)
	_, ruserToken := seedUser(t, db, "Regular", "ruser@example.com", models.RoleRUser, nil)

	w := doJSON(t, r, "POST", "/api/tickets", ruserToken, map[string]interface{}{
		"title": "Broken keyboard", "priority": "low",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID uint `json:"id"`
	}
	decodeData(t, w, &created)

	update := map[string]string{"status": models.TicketStatusResolved, "priority": "medium"}

	for _, token := range []string{staffToken, ruserToken} {
		w = doJSON(t, r, "PUT", fmt.Sprintf("/api/tickets/%d", created.ID), token, update)
		assert.Equal(t, http.StatusForbidden, w.Code)
	}

	w = doJSON(t, r, "PUT", fmt.Sprintf("/api/tickets/%d", created.ID), adminToken, update)
	assert.Equal(t, http.StatusOK, w.Code)

	var ticket models.Ticket
	assert.NoError(t, db.First(&ticket, created.ID).Error)
	assert.Equal(t, models.TicketStatusResolved, ticket.Status)
	assert.Equal(t, "medium", ticket.Priority)
}

func TestDeleteTicketCascades(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)

	_, adminToken := seedUser(t, db, "Admin", "admin@example.com", models.RoleAdmin, nil)
	_, ruserToken := seedUser(t, db, "Regular", "ruser@example.com", models.RoleRUser, nil)

	w := doJSON(t, r, "POST", "/api/tickets", ruserToken, map[string]interface{}{
		"title": "Doomed ticket", "priority": "low",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID uint `json:"id"`
	}
	decodeData(t, w, &created)

	w = doJSON(t, r, "POST", fmt.Sprintf("/api/tickets/%d/comments", created.ID), adminToken, map[string]string{
		"content": "looking into it",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var comment struct {
		ID uint `json:"id"`
	}
	decodeData(t, w, &comment)

	// Attach a blob to both the ticket and the comment directly.
	ticketAtt := models.Attachment{TicketID: &created.ID, Filename: "1-a.txt", OriginalName: "a.txt", MimeType: "text/plain", Size: 1, FileData: []byte("a")}
	commentAtt := models.Attachment{CommentID: &comment.ID, Filename: "2-b.txt", OriginalName: "b.txt", MimeType: "text/plain", Size: 1, FileData: []byte("b")}
	assert.NoError(t, db.Create(&ticketAtt).Error)
	assert.NoError(t, db.Create(&commentAtt).Error)

	// Another user's ticket cannot be deleted by a ruser
	_, strangerToken := seedUser(t, db, "Stranger", "stranger@example.com", models.RoleRUser, nil)
	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/tickets/%d", created.ID), strangerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/tickets/%d", created.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Ticket{}).Where("id = ?", created.ID).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&models.Comment{}).Where("ticket_id = ?", created.ID).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&models.Attachment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetCommentsWithAuthorName(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)

	_, ruserToken := seedUser(t, db, "Regular", "ruser@example.com", models.RoleRUser, nil)
	admin, adminToken := seedUser(t, db, "Admin", "admin@example.com", models.RoleAdmin, nil)

	w := doJSON(t, r, "POST", "/api/tickets", ruserToken, map[string]interface{}{
		"title": "Need help", "priority": "medium",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID uint `json:"id"`
	}
	decodeData(t, w, &created)

	w = doJSON(t, r, "POST", fmt.Sprintf("/api/tickets/%d/comments", created.ID), adminToken, map[string]string{
		"content": "on it",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "GET", fmt.Sprintf("/api/tickets/%d/comments", created.ID), ruserToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var comments []struct {
		UserID   uint   `json:"userId"`
		UserName string `json:"userName"`
		Content  string `json:"content"`
	}
	decodeData(t, w, &comments)
	if assert.Len(t, comments, 1) {
		assert.Equal(t, admin.ID, comments[0].UserID)
		assert.Equal(t, "Admin Tester", comments[0].UserName)
		assert.Equal(t, "on it", comments[0].Content)
	}
}

package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/helpdesk-app/models"
)

func TestGroupCRUD(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)
	_, adminToken := seedUser(t, db, "Admin", "admin@example.com", models.RoleAdmin, nil)

	// Create
	w := doJSON(t, r, "POST", "/api/groups", adminToken, map[string]string{
		"name":        "Support",
		"location":    "Yangon",
		"description": "First line support",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID uint `json:"id"`
	}
	decodeData(t, w, &created)
	assert.NotZero(t, created.ID)

	// Duplicate name
	w = doJSON(t, r, "POST", "/api/groups", adminToken, map[string]string{
		"name": "Support",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Update
	w = doJSON(t, r, "PUT", fmt.Sprintf("/api/groups/%d", created.ID), adminToken, map[string]string{
		"name":        "Support L1",
		"description": "Renamed",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var group models.Group
	assert.NoError(t, db.First(&group, created.ID).Error)
	assert.Equal(t, "Support L1", group.Name)
	// Location is not part of the update payload
	assert.Equal(t, "Yangon", group.Location)
}

// Deleting a group must null out its members' group reference, not
// delete the members.
func TestDeleteGroupNullsMembers(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)
	_, adminToken := seedUser(t, db, "Admin", "admin@example.com", models.RoleAdmin, nil)

	group := models.Group{Name: "Support", Location: "Yangon"}
	assert.NoError(t, db.Create(&group).Error)
	member, _ := seedUser(t, db, "Member", "member@example.com", models.RoleRUser, &group.ID)

	w := doJSON(t, r, "DELETE", fmt.Sprintf("/api/groups/%d", group.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var survivor models.User
	assert.NoError(t, db.First(&survivor, member.ID).Error)
	assert.Nil(t, survivor.GroupID)

	var count int64
	db.Model(&models.Group{}).Where("id = ?", group.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

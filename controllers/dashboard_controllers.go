package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/helpdesk-app/models"
	"github.com/yeremiapane/helpdesk-app/utils"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

type countRow struct {
	Label string
	Count int64
}

// GetStats -> ticket counts by status and priority plus user/group
// totals, for the admin dashboard.
func (dc *DashboardController) GetStats(c *gin.Context) {
	byStatus, err := dc.groupCount("status")
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}
	byPriority, err := dc.groupCount("priority")
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	var totalTickets, totalUsers, totalGroups int64
	if err := dc.DB.Model(&models.Ticket{}).Count(&totalTickets).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}
	if err := dc.DB.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}
	if err := dc.DB.Model(&models.Group{}).Count(&totalGroups).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", gin.H{
		"total_tickets":       totalTickets,
		"total_users":         totalUsers,
		"total_groups":        totalGroups,
		"tickets_by_status":   byStatus,
		"tickets_by_priority": byPriority,
	})
}

func (dc *DashboardController) groupCount(column string) (map[string]int64, error) {
	var rows []countRow
	err := dc.DB.Model(&models.Ticket{}).
		Select(column + " AS label, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Label] = row.Count
	}
	return counts, nil
}

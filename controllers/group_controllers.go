package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/helpdesk-app/models"
	"github.com/yeremiapane/helpdesk-app/utils"
	"gorm.io/gorm"
)

type GroupController struct {
	DB *gorm.DB
}

func NewGroupController(db *gorm.DB) *GroupController {
	return &GroupController{DB: db}
}

// GetAllGroups
func (gc *GroupController) GetAllGroups(c *gin.Context) {
	var groups []models.Group
	if err := gc.DB.Order("name").Find(&groups).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All groups", groups)
}

// CreateGroup
func (gc *GroupController) CreateGroup(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Location    string `json:"location"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	group := models.Group{
		Name:        input.Name,
		Location:    input.Location,
		Description: input.Description,
	}
	if err := gc.DB.Create(&group).Error; err != nil {
		if isDuplicateKeyError(err) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("Group name already exists"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Group created successfully", gin.H{"id": group.ID})
}

// UpdateGroup -> name and description only; location is set at creation.
func (gc *GroupController) UpdateGroup(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]interface{}{
		"name":        input.Name,
		"description": input.Description,
	}
	if err := gc.DB.Model(&models.Group{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Group updated successfully", nil)
}

// DeleteGroup -> members keep their accounts, their group reference is
// nulled before the group row goes away.
func (gc *GroupController) DeleteGroup(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := gc.DB.Model(&models.User{}).Where("group_id = ?", id).
		Update("group_id", nil).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	if err := gc.DB.Delete(&models.Group{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Group deleted successfully", nil)
}

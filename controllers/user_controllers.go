package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/helpdesk-app/models"
	"github.com/yeremiapane/helpdesk-app/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Login -> verify credentials, return JWT + user payload.
// Unknown email, inactive account and wrong password all produce the
// same generic error so the response does not reveal which field failed.
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ? AND status = ?", input.Email, "active").First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.InfoLogger.Printf("Login successful for user: %s (role=%s)", user.Email, user.Role)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"email":     user.Email,
			"role":      user.Role,
			"groupId":   user.GroupID,
		},
	})
}

// ChangePassword -> re-hash and overwrite the caller's own password.
// Minimum length 6; the old password is not re-checked.
func (uc *UserController) ChangePassword(c *gin.Context) {
	claims, err := claimsFrom(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var input struct {
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(input.NewPassword) < 6 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("password must be at least 6 characters"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	if err := uc.DB.Model(&models.User{}).Where("id = ?", claims.UserID).
		Update("password", string(hashed)).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Password updated successfully", nil)
}

// GetAllUsers -> admin/leader listing with the group name joined in.
func (uc *UserController) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.Preload("Group").Order("created_at DESC").Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	formatted := make([]gin.H, 0, len(users))
	for _, user := range users {
		groupName := ""
		if user.Group != nil {
			groupName = user.Group.Name
		}
		formatted = append(formatted, gin.H{
			"id":        user.ID,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"email":     user.Email,
			"role":      user.Role,
			"status":    user.Status,
			"groupId":   user.GroupID,
			"groupName": groupName,
			"location":  user.Location,
			"createdAt": user.CreatedAt,
			"updatedAt": user.UpdatedAt,
		})
	}

	utils.RespondJSON(c, http.StatusOK, "All users", formatted)
}

// CreateUser -> admin/leader creates an account. When a group is chosen
// the user inherits the group's location unless one was given.
func (uc *UserController) CreateUser(c *gin.Context) {
	var input struct {
		FirstName string  `json:"firstName" binding:"required"`
		LastName  string  `json:"lastName" binding:"required"`
		Email     string  `json:"email" binding:"required,email"`
		Password  string  `json:"password" binding:"required"`
		Role      string  `json:"role" binding:"required"` // admin, staff, leader, ruser
		GroupID   *uint   `json:"groupId"`
		Location  *string `json:"location"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	location := input.Location
	if input.GroupID != nil {
		var group models.Group
		if err := uc.DB.First(&group, *input.GroupID).Error; err == nil && group.Location != "" {
			location = &group.Location
		}
	}

	user := models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  string(hashed),
		Role:      input.Role,
		GroupID:   input.GroupID,
		Location:  location,
		Status:    "active",
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		if isDuplicateKeyError(err) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("Email already exists"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.InfoLogger.Printf("New user created: %s (role=%s)", user.Email, user.Role)
	utils.RespondJSON(c, http.StatusCreated, "User created successfully", gin.H{"id": user.ID})
}

// UpdateUser -> admin/leader edits profile fields and status.
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var input struct {
		FirstName string `json:"firstName" binding:"required"`
		LastName  string `json:"lastName" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Role      string `json:"role" binding:"required"`
		GroupID   *uint  `json:"groupId"`
		Status    string `json:"status" binding:"required"` // active, inactive
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]interface{}{
		"first_name": input.FirstName,
		"last_name":  input.LastName,
		"email":      input.Email,
		"role":       input.Role,
		"group_id":   input.GroupID,
		"status":     input.Status,
	}
	if err := uc.DB.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User updated successfully", nil)
}

// DeleteUser
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := uc.DB.Delete(&models.User{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User deleted successfully", nil)
}

// isDuplicateKeyError covers both the mysql driver error and the sqlite
// message used in tests.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleLeader = "leader"
	RoleRUser  = "ruser"
)

type User struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	FirstName string  `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string  `gorm:"type:varchar(100);not null" json:"last_name"`
	Email     string  `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string  `gorm:"type:varchar(255);not null" json:"-"`
	Role      string  `gorm:"type:varchar(20);not null" json:"role"` // admin, staff, leader, ruser
	GroupID   *uint   `gorm:"index" json:"group_id"`
	Group     *Group  `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"group,omitempty"`
	Location  *string `gorm:"type:varchar(255)" json:"location"`
	Status    string  `gorm:"type:varchar(20);not null;default:'active'" json:"status"` // active, inactive
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

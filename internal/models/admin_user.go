package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleEditor     Role = "editor"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

type AdminUser struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Username     string     `gorm:"column:username;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"column:email;uniqueIndex;not null" json:"email"`
	FullName     string     `gorm:"column:full_name" json:"fullName"`
	Password     string     `gorm:"-" json:"-"` // plain text, only set before HashPassword
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	Role         Role       `gorm:"column:role;not null;default:'editor'" json:"role"`
	IsActive     bool       `gorm:"column:is_active;not null" json:"isActive"`
	LastLogin    *time.Time `gorm:"column:last_login" json:"lastLogin"`
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// TableName specifies the table name
func (AdminUser) TableName() string {
	return "admin_users"
}

func (u *AdminUser) HashPassword() error {
	if u.Password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	u.Password = ""
	return nil
}

func (u *AdminUser) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

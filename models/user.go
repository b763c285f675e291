package models

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type User struct {
	Id        string  `json:"id" gorm:"primaryKey"`
	FirstName string  `json:"first_name" gorm:"not null"`
	LastName  string  `json:"last_name" gorm:"not null"`
	Phone     string  `json:"phone" gorm:"size:13"`
	Password  []byte  `json:"-" gorm:"not null"`
	Username  string  `json:"username" gorm:"unique;not null"`
	Role      string  `json:"role" gorm:"size:10;not null;default:staff"`
	BranchId  *uint   `json:"branch_id"`
	Branch    *Branch `json:"-" gorm:"foreignKey:BranchId;references:Id"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	user.Id = uuid.NewString()
	return
}

func (user *User) SetPassword(password string) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), 12)
	user.Password = hashedPassword
}

func (user *User) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword(user.Password, []byte(password))
}

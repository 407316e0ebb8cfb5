package models

import "gorm.io/gorm"

// Account roles. Admins may edit the game catalog.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account. PasswordHash is never serialized.
type User struct {
	gorm.Model
	Username     string `gorm:"size:255;uniqueIndex;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	DisplayName  string `gorm:"size:255"`
	Bio          string
	AvatarURL    string `gorm:"size:1024"`
	Role         string `gorm:"size:50;not null;default:'user';index"`

	CardSets []CardSet `gorm:"foreignKey:UserID"`
}

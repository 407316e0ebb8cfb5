package models

import "time"

// CardSet is a user-owned collection of decks for one game. Card sets and
// decks are hard-deleted so the unique indexes and cascades stay meaningful.
type CardSet struct {
	ID          uint      `gorm:"primaryKey"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
	Title       string `gorm:"size:255;not null;uniqueIndex:idx_card_sets_title_user"`
	Description string `gorm:"not null"`
	ImageURL    string `gorm:"size:1024;not null"`
	GameID      uint   `gorm:"not null;index"`
	UserID      uint   `gorm:"not null;uniqueIndex:idx_card_sets_title_user;index"`

	Game  Game   `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	User  User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Decks []Deck `gorm:"foreignKey:CardSetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

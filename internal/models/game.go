package models

import "gorm.io/gorm"

// Game represents a tabletop game that card sets can reskin.
type Game struct {
	gorm.Model
	Name    string `gorm:"size:255;uniqueIndex;not null"`
	Summary string
	Rules   string

	CardDefinitions []GameCardDefinition `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// GameCardDefinition names the card definition table that backs one kind of
// card for a game. Descriptors are soft-deleted so decks that still point at
// a retired descriptor can be reported instead of breaking.
type GameCardDefinition struct {
	gorm.Model
	GameID      uint   `gorm:"not null;uniqueIndex:idx_game_card_definitions_game_name"`
	Name        string `gorm:"size:255;not null;uniqueIndex:idx_game_card_definitions_game_name"`
	Description string
	TableName   string `gorm:"size:255;not null"`
}

package models

import (
	"time"

	"github.com/lib/pq"
)

// Deck selects a set of rows from the card definition table named by its
// GameCardDefinition. CardDefinitionIDs is stored sorted and deduplicated.
type Deck struct {
	ID                   uint      `gorm:"primaryKey"`
	CreatedAt            time.Time `gorm:"index"`
	UpdatedAt            time.Time
	Name                 string `gorm:"size:255;not null;uniqueIndex:idx_decks_name_card_set"`
	Description          *string
	CardSetID            uint          `gorm:"not null;uniqueIndex:idx_decks_name_card_set;index"`
	GameCardDefinitionID uint          `gorm:"not null;index"`
	CardDefinitionIDs    pq.Int64Array `gorm:"type:bigint[];not null;default:'{}'"`

	CardSet            CardSet            `gorm:"foreignKey:CardSetID"`
	GameCardDefinition GameCardDefinition `gorm:"foreignKey:GameCardDefinitionID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

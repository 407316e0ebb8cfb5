package models

import (
	"time"

	"gorm.io/datatypes"
)

// TokenEngineCardDefinition is a development card: it produces one token of
// Token color, is worth Points and sits in Tier 1-3.
type TokenEngineCardDefinition struct {
	ID        int64          `gorm:"primaryKey"`
	Token     string         `gorm:"size:16;not null"`
	Points    int            `gorm:"not null;default:0"`
	Tier      int            `gorm:"not null;check:chk_token_engine_tier,tier BETWEEN 1 AND 3"`
	Cost      datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TokenEngineDiscoveryCardDefinition is a discovery (noble) card: points only.
type TokenEngineDiscoveryCardDefinition struct {
	ID        int64          `gorm:"primaryKey"`
	Points    int            `gorm:"not null;default:0"`
	Cost      datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// All lists every model the schema migration creates, in dependency order.
func All() []any {
	return []any{
		&User{},
		&Game{},
		&GameCardDefinition{},
		&TokenEngineCardDefinition{},
		&TokenEngineDiscoveryCardDefinition{},
		&CardSet{},
		&Deck{},
	}
}

package carddef

import (
	"time"

	"reskin/backend/internal/cost"
)

// Definition is one row of a card definition table. The concrete type is
// TokenCard or DiscoveryCard; the interface is sealed.
type Definition interface {
	DefinitionID() int64
	DefinitionPoints() int
	DefinitionCost() cost.Vector
	Kind() Kind
	definition()
}

// TokenCard is a row of TokenEngineCardDefinition.
type TokenCard struct {
	ID        int64       `json:"id"`
	Token     cost.Color  `json:"token"`
	Points    int         `json:"points"`
	Tier      int         `json:"tier"`
	Cost      cost.Vector `json:"cost"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (c TokenCard) DefinitionID() int64         { return c.ID }
func (c TokenCard) DefinitionPoints() int       { return c.Points }
func (c TokenCard) DefinitionCost() cost.Vector { return c.Cost }
func (TokenCard) Kind() Kind                    { return TokenCards }
func (TokenCard) definition()                   {}

// DiscoveryCard is a row of TokenEngineDiscoveryCardDefinition.
type DiscoveryCard struct {
	ID        int64       `json:"id"`
	Points    int         `json:"points"`
	Cost      cost.Vector `json:"cost"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (c DiscoveryCard) DefinitionID() int64         { return c.ID }
func (c DiscoveryCard) DefinitionPoints() int       { return c.Points }
func (c DiscoveryCard) DefinitionCost() cost.Vector { return c.Cost }
func (DiscoveryCard) Kind() Kind                    { return DiscoveryCards }
func (DiscoveryCard) definition()                   {}

package carddef

import (
	"cmp"
	"slices"

	"reskin/backend/internal/apperr"
)

// Order selects how ListDefinitions sorts rows.
type Order string

const (
	// OrderDefault groups token cards by tier (ascending), then points
	// (descending), then token color name. Discovery cards sort by points
	// descending. Ties always break on id.
	OrderDefault Order = "default"
	OrderID      Order = "id"
	OrderPoints  Order = "points"
	OrderCost    Order = "cost"
)

// ParseOrder accepts an order name; the empty string is OrderDefault.
func ParseOrder(s string) (Order, error) {
	switch o := Order(s); o {
	case "":
		return OrderDefault, nil
	case OrderDefault, OrderID, OrderPoints, OrderCost:
		return o, nil
	}
	return "", apperr.Validation("unknown order %q", s)
}

// Sort orders defs in place.
func Sort(defs []Definition, order Order) {
	slices.SortStableFunc(defs, func(a, b Definition) int {
		return cmp.Or(compare(a, b, order), cmp.Compare(a.DefinitionID(), b.DefinitionID()))
	})
}

func compare(a, b Definition, order Order) int {
	switch order {
	case OrderID:
		return 0
	case OrderPoints:
		return cmp.Compare(b.DefinitionPoints(), a.DefinitionPoints())
	case OrderCost:
		return cmp.Compare(a.DefinitionCost().Total(), b.DefinitionCost().Total())
	}

	switch x := a.(type) {
	case TokenCard:
		y, ok := b.(TokenCard)
		if !ok {
			return 0
		}
		return cmp.Or(
			cmp.Compare(x.Tier, y.Tier),
			cmp.Compare(y.Points, x.Points),
			cmp.Compare(string(x.Token), string(y.Token)),
		)
	case DiscoveryCard:
		return cmp.Compare(b.DefinitionPoints(), x.Points)
	}
	return 0
}

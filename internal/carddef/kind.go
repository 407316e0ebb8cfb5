package carddef

import "reskin/backend/internal/apperr"

// Kind identifies one of the card definition tables the store implements.
// The set is closed: ParseKind is the only way a stored table name becomes a
// table.
type Kind int

const (
	TokenCards Kind = iota + 1
	DiscoveryCards
)

var tableNames = map[Kind]string{
	TokenCards:     "TokenEngineCardDefinition",
	DiscoveryCards: "TokenEngineDiscoveryCardDefinition",
}

// Kinds returns every supported kind.
func Kinds() []Kind {
	return []Kind{TokenCards, DiscoveryCards}
}

// TableName is the symbolic name descriptors store for this kind.
func (k Kind) TableName() string {
	return tableNames[k]
}

func (k Kind) String() string {
	if name, ok := tableNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseKind resolves a descriptor's table name.
func ParseKind(tableName string) (Kind, error) {
	for k, name := range tableNames {
		if name == tableName {
			return k, nil
		}
	}
	return 0, &apperr.UnsupportedTableError{TableName: tableName}
}

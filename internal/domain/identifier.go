package domain

import "github.com/google/uuid"

// Identifier is a reference that is either a UUID or a name, parsed once at
// the boundary instead of string-sniffed in every handler.
type Identifier struct {
	ID   uuid.UUID
	Name string
}

// IsID reports whether the identifier parsed as a UUID.
func (i Identifier) IsID() bool {
	return i.ID != uuid.Nil
}

func (i Identifier) String() string {
	if i.IsID() {
		return i.ID.String()
	}
	return i.Name
}

// ParseIdentifier interprets s as a UUID when it parses as one, otherwise
// as a name.
func ParseIdentifier(s string) Identifier {
	if id, err := uuid.Parse(s); err == nil {
		return Identifier{ID: id}
	}
	return Identifier{Name: s}
}

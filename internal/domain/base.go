package domain

import "time"

// Base represents a military base that owns equipment stock.
type Base struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EquipmentType categorizes equipment (e.g. weapons, vehicles, ammunition).
type EquipmentType struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Equipment represents a trackable equipment item definition.
type Equipment struct {
	ID        string
	Name      string
	TypeID    string
	TypeName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

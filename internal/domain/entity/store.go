package entity

import "time"

// Store representa una tienda física (origen/destino de traslados).
type Store struct {
	ID        string
	Name      string // único
	Code      string // único
	Address   string
	City      string
	Country   string
	Phone     string
	Email     string
	ManagerID string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

package entity

import "time"

// Supplier representa un proveedor de mercancía.
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	GSTIN         string // identificación fiscal GST
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

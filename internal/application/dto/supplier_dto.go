package dto

import "time"

// CreateSupplierRequest body para registrar un proveedor.
type CreateSupplierRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
	GSTIN         string `json:"gstin,omitempty"`
}

// UpdateSupplierRequest campos opcionales a modificar.
type UpdateSupplierRequest struct {
	Name          *string `json:"name,omitempty"`
	ContactPerson *string `json:"contact_person,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty"`
	Address       *string `json:"address,omitempty"`
	GSTIN         *string `json:"gstin,omitempty"`
}

// SupplierResponse proveedor completo.
type SupplierResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	GSTIN         string    `json:"gstin,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SupplierListResponse listado paginado de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

package entity

import "time"

// Store representa una tienda (tenant) con su propio inventario y manager asignado.
type Store struct {
	ID        string
	Name      string // único
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

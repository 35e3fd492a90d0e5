package entity

import "time"

// Supplier representa un proveedor identificado por su RUC (11 dígitos, único).
type Supplier struct {
	ID         string
	Name       string
	RUC        string
	District   string
	Province   string
	Department string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

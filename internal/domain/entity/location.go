package entity

// Location representa una ubicación de almacenamiento (bodega, estante, zona).
type Location struct {
	ID          string
	Name        string
	Description string
}

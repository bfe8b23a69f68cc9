package entity

// Product representa un producto del catálogo. El ID es un token corto
// asignado externamente (ej. PRD-1A2B3C4D), estable y único.
type Product struct {
	ID          string
	Name        string
	Description string
}

package dto

import "time"

// CreateMovementRequest body para POST /api/movements.
// ID vacío = se genera un token MOV-XXXXXXXX. Al menos una de from_location
// y to_location debe venir: solo to = entrada, solo from = salida, ambas =
// traslado.
type CreateMovementRequest struct {
	ID           string `json:"id,omitempty"`
	ProductID    string `json:"product_id"`
	FromLocation string `json:"from_location,omitempty"`
	ToLocation   string `json:"to_location,omitempty"`
	Qty          int64  `json:"qty"`
}

// UpdateMovementRequest body para PUT /api/movements/{id}.
type UpdateMovementRequest struct {
	ProductID    string `json:"product_id"`
	FromLocation string `json:"from_location,omitempty"`
	ToLocation   string `json:"to_location,omitempty"`
	Qty          int64  `json:"qty"`
}

// MovementResponse representación de un movimiento del libro mayor.
type MovementResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	FromLocation string    `json:"from_location,omitempty"`
	ToLocation   string    `json:"to_location,omitempty"`
	Qty          int64     `json:"qty"`
	Timestamp    time.Time `json:"timestamp"`
}

// MovementListResponse respuesta de GET /api/movements.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Total     int                `json:"total"`
}

// ValidateMovementRequest body para POST /api/movements/validate (chequeo
// previo de solo lectura).
type ValidateMovementRequest struct {
	ProductID    string `json:"product_id"`
	FromLocation string `json:"from_location,omitempty"`
	ToLocation   string `json:"to_location,omitempty"`
	Qty          int64  `json:"qty"`
}

// ValidateMovementResponse lista completa de reglas violadas (vacía = válido).
type ValidateMovementResponse struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}

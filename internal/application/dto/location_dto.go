package dto

// CreateLocationRequest body para POST /api/locations.
// ID vacío = se genera un token LOC-XXXXXXXX.
type CreateLocationRequest struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateLocationRequest body para PUT /api/locations/{id}.
type UpdateLocationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// LocationResponse representación de una ubicación.
type LocationResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// LocationDetailResponse ubicación con sus movimientos de entrada y salida.
type LocationDetailResponse struct {
	LocationResponse
	MovementsFrom []MovementResponse `json:"movements_from"`
	MovementsTo   []MovementResponse `json:"movements_to"`
}

// LocationListResponse respuesta de GET /api/locations.
type LocationListResponse struct {
	Locations []LocationResponse `json:"locations"`
	Total     int                `json:"total"`
}

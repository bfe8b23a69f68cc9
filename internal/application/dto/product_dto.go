package dto

// CreateProductRequest body para POST /api/products.
// ID vacío = se genera un token PRD-XXXXXXXX.
type CreateProductRequest struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/{id}. El ID no se cambia.
type UpdateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProductResponse representación de un producto.
type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProductDetailResponse producto con su historial de movimientos (más recientes primero).
type ProductDetailResponse struct {
	ProductResponse
	Movements []MovementResponse `json:"movements"`
}

// ProductListResponse respuesta de GET /api/products.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
}

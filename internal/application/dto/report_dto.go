package dto

import "time"

// BalanceRow una fila del reporte de saldos (solo saldos distintos de cero),
// con nombres de producto y ubicación resueltos.
type BalanceRow struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	Balance      int64  `json:"balance"`
}

// BalanceStats escalares de resumen del reporte. TotalUnits suma TODOS los
// saldos almacenados, incluyendo filas en cero.
type BalanceStats struct {
	PositiveCount int   `json:"positive_count"`
	NegativeCount int   `json:"negative_count"`
	TotalUnits    int64 `json:"total_units"`
}

// BalanceReportResponse respuesta de GET /api/balances/report.
type BalanceReportResponse struct {
	Balances []BalanceRow `json:"balances"`
	Stats    BalanceStats `json:"stats"`
}

// LocationStock saldo de una ubicación dentro del resumen de un producto.
type LocationStock struct {
	LocationID   string    `json:"location_id"`
	LocationName string    `json:"location_name"`
	Balance      int64     `json:"balance"`
	LastUpdated  time.Time `json:"last_updated"`
}

// ProductSummaryResponse respuesta de GET /api/products/{id}/summary.
// TotalStock suma todos los saldos del producto (positivos y negativos);
// LocationsWithStock lista solo los estrictamente positivos.
type ProductSummaryResponse struct {
	ProductID          string          `json:"product_id"`
	ProductName        string          `json:"product_name"`
	ProductDescription string          `json:"product_description"`
	TotalStock         int64           `json:"total_stock"`
	LocationsWithStock []LocationStock `json:"locations_with_stock"`
	TotalLocations     int             `json:"total_locations"`
}

// ProductStock saldo de un producto dentro del resumen de una ubicación.
type ProductStock struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Balance     int64     `json:"balance"`
	LastUpdated time.Time `json:"last_updated"`
}

// LocationSummaryResponse respuesta de GET /api/locations/{id}/summary.
// TotalItems suma únicamente los saldos estrictamente positivos.
type LocationSummaryResponse struct {
	LocationID          string         `json:"location_id"`
	LocationName        string         `json:"location_name"`
	LocationDescription string         `json:"location_description"`
	TotalItems          int64          `json:"total_items"`
	ProductsInLocation  []ProductStock `json:"products_in_location"`
	TotalProductTypes   int            `json:"total_product_types"`
}

// DashboardResponse contadores globales para el tablero.
type DashboardResponse struct {
	ProductCount  int64 `json:"product_count"`
	LocationCount int64 `json:"location_count"`
	MovementCount int64 `json:"movement_count"`
	BalanceCount  int   `json:"balance_count"` // pares (producto, ubicación) con saldo ≠ 0
}

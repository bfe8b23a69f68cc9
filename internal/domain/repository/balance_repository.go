package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// BalanceRepository define el puerto para consultar/actualizar saldos por
// producto+ubicación. Las filas son propiedad exclusiva del motor de saldos:
// ningún otro componente las escribe directamente.
type BalanceRepository interface {
	// Get devuelve la fila de saldo, o nil si el par nunca ha tenido movimiento.
	Get(productID, locationID string) (*entity.Balance, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE) dentro de
	// una transacción; serializa escritores concurrentes sobre la misma clave.
	GetForUpdate(productID, locationID string) (*entity.Balance, error)
	Upsert(balance *entity.Balance) error
	ListByProduct(productID string) ([]*entity.Balance, error)
	ListByLocation(locationID string) ([]*entity.Balance, error)
	// ListNonZero devuelve las filas con saldo ≠ 0 ordenadas por
	// (product_id, location_id) ascendente. Las filas en cero existen en
	// almacenamiento pero se excluyen de esta vista.
	ListNonZero() ([]*entity.Balance, error)
	// DeleteAll vacía la tabla de saldos (solo la recomputación lo usa,
	// siempre dentro de la misma transacción que el replay completo).
	DeleteAll() error
	// SumAll suma todos los saldos almacenados, incluyendo filas en cero.
	SumAll() (int64, error)
}

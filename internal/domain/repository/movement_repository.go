package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para el libro mayor de
// movimientos. Toda mutación que afecte cantidades debe ejecutarse dentro de
// la misma transacción que las actualizaciones de saldos (ver inventory.TxRunner).
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	Update(movement *entity.Movement) error
	Delete(id string) error
	// List devuelve todos los movimientos, más recientes primero.
	List() ([]*entity.Movement, error)
	// ListAll devuelve el libro mayor completo sin orden garantizado
	// (la recomputación de saldos es independiente del orden).
	ListAll() ([]*entity.Movement, error)
	ListByProduct(productID string) ([]*entity.Movement, error)
	ListByFromLocation(locationID string) ([]*entity.Movement, error)
	ListByToLocation(locationID string) ([]*entity.Movement, error)
	// CountByProduct y CountByLocation soportan las guardas de borrado
	// de productos y ubicaciones (integridad referencial).
	CountByProduct(productID string) (int64, error)
	// CountByLocation cuenta los movimientos que referencian la ubicación
	// como origen o como destino.
	CountByLocation(locationID string) (int64, error)
	Count() (int64, error)
}
